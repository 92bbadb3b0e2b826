package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var typesFilter string

func init() {
	cmd := newTypesCmd()
	cmd.Flags().StringVar(&typesFilter, "filter", "", "Only list names containing this substring")
	rootCmd.AddCommand(cmd)
}

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the types of a platform table",
		Long: `The types command lists every type name of the selected platform
with its size, alignment and byte order.

Example:
  memctl types
  memctl types --arch x86 --os windows
  memctl types --endian big --filter int`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes()
		},
	}
	return cmd
}

type typeInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Size   int    `json:"size"`
	Align  int    `json:"align"`
	Endian string `json:"endian"`
	Signed bool   `json:"signed"`
}

func runTypes() error {
	ts, err := typeSystem()
	if err != nil {
		return err
	}
	printVerbose("Platform table: %s\n", ts.Name())

	var infos []typeInfo
	for _, name := range ts.Names() {
		if typesFilter != "" && !strings.Contains(name, typesFilter) {
			continue
		}
		t, err := ts.Lookup(name)
		if err != nil {
			return err
		}
		infos = append(infos, typeInfo{
			Name:   name,
			Type:   t.String(),
			Size:   t.Size(),
			Align:  t.Alignment(),
			Endian: t.Endian().String(),
			Signed: t.Signed(),
		})
	}

	if jsonOut {
		return printJSON(map[string]any{"platform": ts.Name(), "types": infos})
	}
	if quiet {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tSIZE\tALIGN\tENDIAN")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			nameColor(info.Name), info.Type, info.Size, info.Align, info.Endian)
	}
	return w.Flush()
}
