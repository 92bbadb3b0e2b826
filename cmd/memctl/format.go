package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/joshuapare/memkit/memory"
)

var (
	nameColor   = color.New(color.FgCyan).SprintFunc()
	valueColor  = color.New(color.FgGreen).SprintFunc()
	offsetColor = color.New(color.FgYellow).SprintFunc()
	padColor    = color.New(color.Faint).SprintFunc()
)

// formatValue renders a decoded value on one line. Live objects print as
// their plain values; numbers print in hex when hex is set.
func formatValue(v any, hex bool) string {
	switch x := v.(type) {
	case memory.Object:
		plain, err := x.Value()
		if err != nil {
			return "<" + err.Error() + ">"
		}
		return formatValue(plain, hex)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatValue(item, hex)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + formatValue(x[k], hex)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case string:
		return fmt.Sprintf("%q", x)
	case uint64:
		if hex {
			return fmt.Sprintf("0x%x", x)
		}
		return fmt.Sprint(x)
	case int64:
		if hex && x >= 0 {
			return fmt.Sprintf("0x%x", x)
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(x)
	}
}

// jsonValue converts live objects to plain values for encoding.
func jsonValue(v any) (any, error) {
	switch x := v.(type) {
	case memory.Object:
		return x.Value()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			p, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	default:
		return v, nil
	}
}
