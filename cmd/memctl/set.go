package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memkit/memory"
)

var (
	setOffset int
	setLayout string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().IntVar(&setOffset, "offset", 0, "Byte offset to write at")
	cmd.Flags().StringVar(&setLayout, "layout", "", "Layout file whose type names the signature may use")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <signature> <value>",
		Short: "Encode a typed value into a binary file in place",
		Long: `The set command encodes a value at a byte offset of an existing file.
The file is memory-mapped and never grows. Values are written in YAML flow
syntax: numbers, quoted strings, [lists] and {maps}.

Example:
  memctl set data.bin uint32 0xdeadbeef --offset 4
  memctl set data.bin "char[8]" '"hello"'
  memctl set data.bin point '{x: 1, y: -2}' --layout shapes.yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

// parseValue reads a command-line value as YAML.
func parseValue(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("failed to parse value %q: %w", s, err)
	}
	return v, nil
}

func runSet(args []string) error {
	path, sig, raw := args[0], args[1], args[2]

	ts, parsed, err := resolveSignature(sig, setLayout)
	if err != nil {
		return err
	}
	value, err := parseValue(raw)
	if err != nil {
		return err
	}

	buf, err := memory.MapFile(path, memory.WithTypeSystem(ts))
	if err != nil {
		return fmt.Errorf("failed to map file: %w", err)
	}
	if err := buf.Put(parsed, setOffset, value); err != nil {
		buf.Close()
		return fmt.Errorf("failed to set value: %w", err)
	}
	if err := buf.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":    path,
			"type":    sig,
			"offset":  setOffset,
			"success": true,
		})
	}
	printInfo("Wrote %s at offset %d\n", sig, setOffset)
	return nil
}
