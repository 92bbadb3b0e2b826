package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/internal/logger"
	"github.com/joshuapare/memkit/layout"
	"github.com/joshuapare/memkit/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool

	// Platform selection
	endianFlag string
	archFlag   string
	osFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Inspect C data layouts and binary files",
	Long: `memctl reads and writes binary data through C type tables and
declarative layout files. It prints platform type tables, computes struct
and union layouts, and decodes or encodes values in files.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentFlags().StringVar(&endianFlag, "endian", "", "Byte order: little, big, network or native")
	rootCmd.PersistentFlags().StringVar(&archFlag, "arch", "", "Architecture: x86, x86_64, ppc, ppc64, mips, mips64, arm, arm64 (optional _le/_be suffix)")
	rootCmd.PersistentFlags().StringVar(&osFlag, "os", "", "OS typedefs: unix, bsd, freebsd, openbsd, netbsd, linux, macos, windows")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setup applies the output flags to color and logging.
func setup() {
	if noColor || jsonOut {
		color.NoColor = true
	}
	logger.Init(logger.Options{
		Enabled: verbose && !quiet,
		Output:  os.Stderr,
		Level:   slog.LevelDebug,
	})
}

// typeSystem returns the table the platform flags select.
func typeSystem() (*ctype.TypeSystem, error) {
	p, err := types.ParsePlatform(endianFlag, archFlag, osFlag)
	if err != nil {
		return nil, err
	}
	return ctype.ForPlatform(p), nil
}

// loadLayout loads a layout file. Platform flags, when given, override the
// file's own platform.
func loadLayout(path string) (*layout.Layout, error) {
	f, err := layout.FormatFor(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	file, err := layout.Decode(fh, f)
	if err != nil {
		return nil, err
	}
	if endianFlag != "" || archFlag != "" || osFlag != "" {
		file.Platform = layout.PlatformSpec{Endian: endianFlag, Arch: archFlag, OS: osFlag}
	}
	printVerbose("Loaded layout %s (%d types)\n", path, len(file.Types))
	return layout.Compile(file)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("Error: ")+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
