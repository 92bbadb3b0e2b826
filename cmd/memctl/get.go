package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/memory"
)

var (
	getOffset int
	getCount  int
	getLayout string
	getHex    bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().IntVar(&getOffset, "offset", 0, "Byte offset to read at")
	cmd.Flags().IntVar(&getCount, "count", 0, "Read this many consecutive values (0 = one value)")
	cmd.Flags().StringVar(&getLayout, "layout", "", "Layout file whose type names the signature may use")
	cmd.Flags().BoolVar(&getHex, "hex", false, "Output numeric values as hex")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <signature>",
		Short: "Decode a typed value from a binary file",
		Long: `The get command decodes the value of a type signature at a byte offset.
Signatures are type names with optional array suffixes.

Example:
  memctl get data.bin uint32 --offset 8
  memctl get data.bin "char[16]" --arch x86_64
  memctl get data.bin uint16_be --count 4 --hex
  memctl get data.bin "point[2]" --layout shapes.yaml --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

// resolveSignature returns the type table and parsed signature for sig,
// binding layout type names when a layout file is given.
func resolveSignature(sig, layoutPath string) (*ctype.TypeSystem, any, error) {
	if layoutPath == "" {
		ts, err := typeSystem()
		return ts, sig, err
	}
	l, err := loadLayout(layoutPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load layout: %w", err)
	}
	parsed, err := l.Signature(sig)
	return l.TypeSystem(), parsed, err
}

func runGet(args []string) error {
	path, sig := args[0], args[1]

	ts, parsed, err := resolveSignature(sig, getLayout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	printVerbose("Read %d bytes from %s (%s)\n", len(data), path, ts.Name())

	buf, err := memory.NewBuffer(data, memory.WithTypeSystem(ts))
	if err != nil {
		return err
	}

	var v any
	if getCount > 0 {
		v, err = buf.GetArrayOf(parsed, getOffset, getCount)
	} else {
		v, err = buf.Get(parsed, getOffset)
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if jsonOut {
		plain, err := jsonValue(v)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"file":   path,
			"type":   sig,
			"offset": getOffset,
			"value":  plain,
		})
	}
	printInfo("%s\n", valueColor(formatValue(v, getHex)))
	return nil
}
