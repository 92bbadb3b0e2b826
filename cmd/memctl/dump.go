package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/memory"
)

var (
	dumpLayout string
	dumpType   string
	dumpOffset int
	dumpCount  int
	dumpHex    bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpLayout, "layout", "", "Layout file declaring the record type (required)")
	cmd.Flags().StringVar(&dumpType, "type", "", "Record type to decode (required)")
	cmd.Flags().IntVar(&dumpOffset, "offset", 0, "Byte offset of the first record")
	cmd.Flags().IntVar(&dumpCount, "count", 1, "Number of consecutive records")
	cmd.Flags().BoolVar(&dumpHex, "hex", false, "Output numeric values as hex")
	_ = cmd.MarkFlagRequired("layout")
	_ = cmd.MarkFlagRequired("type")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode records of a layout type from a binary file",
		Long: `The dump command decodes one or more consecutive struct or union records
and prints every member.

Example:
  memctl dump data.bin --layout shapes.yaml --type point
  memctl dump data.bin --layout shapes.yaml --type point --offset 16 --count 4
  memctl dump data.bin --layout shapes.toml --type header --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	l, err := loadLayout(dumpLayout)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	schema, err := l.Schema(dumpType)
	if err != nil {
		return err
	}
	if dumpCount > 1 && schema.Size() == ctype.Unsized {
		return fmt.Errorf("%s has no fixed size; dump one record at a time", schema)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	buf, err := memory.NewBuffer(data, memory.WithTypeSystem(schema.TypeSystem()))
	if err != nil {
		return err
	}

	type recordData struct {
		Offset int            `json:"offset"`
		Values map[string]any `json:"values"`
	}
	records := make([]recordData, 0, dumpCount)
	for i := 0; i < dumpCount; i++ {
		off := dumpOffset + i*schema.Size()
		obj, err := buf.GetObject(schema, off)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		values, err := obj.(memory.Record).Values()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, recordData{Offset: off, Values: values})
	}

	if jsonOut {
		return printJSON(records)
	}
	for i, rec := range records {
		if i > 0 {
			printInfo("\n")
		}
		printInfo("%s @ %s\n", schema, offsetColor(rec.Offset))
		for _, m := range schema.Layout() {
			printInfo("  %s = %s\n", nameColor(m.Name), valueColor(formatValue(rec.Values[m.Name], dumpHex)))
		}
	}
	return nil
}
