package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/memory"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <file> [type]",
		Short: "Show member offsets of a layout file",
		Long: `The layout command compiles a YAML or TOML layout file and prints each
type's size, alignment and member offsets, including padding gaps.

Example:
  memctl layout shapes.yaml
  memctl layout shapes.yaml point
  memctl layout shapes.toml --arch x86 --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

type memberInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Offset  int    `json:"offset"`
	Size    int    `json:"size"`
	Padding int    `json:"padding,omitempty"`
}

type schemaInfo struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Extends string       `json:"extends,omitempty"`
	Size    int          `json:"size"`
	Align   int          `json:"align"`
	Members []memberInfo `json:"members"`
	Tail    int          `json:"tail_padding,omitempty"`
}

func describe(s *memory.Schema) schemaInfo {
	info := schemaInfo{
		Name:  s.Name(),
		Kind:  s.Kind().String(),
		Size:  s.Size(),
		Align: s.Alignment(),
	}
	if p := s.Parent(); p != nil {
		info.Extends = p.Name()
	}
	end := 0
	for _, m := range s.Layout() {
		mi := memberInfo{Name: m.Name, Type: m.Type.String(), Offset: m.Offset, Size: m.Type.Size()}
		if s.Kind() == memory.KindStruct {
			mi.Padding = m.Offset - end
			if ctype.Sized(m.Type) {
				end = m.Offset + m.Type.Size()
			}
		}
		info.Members = append(info.Members, mi)
	}
	if s.Kind() == memory.KindStruct && info.Size != ctype.Unsized {
		info.Tail = info.Size - end
	}
	return info
}

func runLayout(args []string) error {
	l, err := loadLayout(args[0])
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	names := l.Names()
	if len(args) == 2 {
		names = []string{args[1]}
	}
	infos := make([]schemaInfo, 0, len(names))
	for _, name := range names {
		s, err := l.Schema(name)
		if err != nil {
			return err
		}
		infos = append(infos, describe(s))
	}

	if jsonOut {
		return printJSON(map[string]any{"platform": l.TypeSystem().Name(), "types": infos})
	}
	if quiet {
		return nil
	}

	for i, info := range infos {
		if i > 0 {
			fmt.Println()
		}
		size := fmt.Sprint(info.Size)
		if info.Size == ctype.Unsized {
			size = "unsized"
		}
		header := fmt.Sprintf("%s %s", info.Kind, nameColor(info.Name))
		if info.Extends != "" {
			header += " extends " + info.Extends
		}
		fmt.Printf("%s (size %s, align %d)\n", header, size, info.Align)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, m := range info.Members {
			if m.Padding > 0 {
				fmt.Fprintf(w, "  %s\t%s\t\t\n", offsetColor(m.Offset-m.Padding), padColor(fmt.Sprintf("(%d bytes padding)", m.Padding)))
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", offsetColor(m.Offset), nameColor(m.Name), m.Type)
		}
		if info.Tail > 0 {
			fmt.Fprintf(w, "  %s\t%s\t\t\n", offsetColor(info.Size-info.Tail), padColor(fmt.Sprintf("(%d bytes padding)", info.Tail)))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
