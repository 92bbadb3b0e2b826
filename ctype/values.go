package ctype

import (
	"math"
	"reflect"
	"sort"
)

// integer normalises any Go integer kind. Integral floats are accepted too.
// neg reports a negative value, in which case i holds it; otherwise u does.
func integer(v any) (i int64, u uint64, neg bool, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = rv.Int()
		if i < 0 {
			return i, 0, true, true
		}
		return i, uint64(i), false, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u = rv.Uint()
		return int64(u), u, false, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, 0, false, false
		}
		if f < 0 {
			if f < math.MinInt64 {
				return 0, 0, false, false
			}
			return int64(f), 0, true, true
		}
		if f >= math.MaxUint64 {
			return 0, 0, false, false
		}
		return int64(f), uint64(f), false, true
	case reflect.Bool:
		if rv.Bool() {
			return 1, 1, false, true
		}
		return 0, 0, false, true
	default:
		return 0, 0, false, false
	}
}

// float normalises any Go numeric kind into a float64.
func float(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

// sequence returns the elements of a Go slice or array as []any.
func sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// record returns a string-keyed map view of v, or false when v is not a map
// with string keys.
func record(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// chars splits s into one-byte strings, the decoded form of char values.
func chars(s string) []any {
	out := make([]any, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = s[i : i+1]
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
