package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/memkit/pkg/types"
)

// A signature describes a type declaratively. It is one of:
//
//   - string: a type name from the platform table, optionally followed by C
//     declarator suffixes ("uint32[4]", "char[2][8]", "uint8[]")
//   - ArraySig: a fixed-length array of a signature
//   - RangeSig: an open-ended array of a signature
//   - *Schema: a struct or union schema
//   - ctype.Type: a type used as-is

// ArraySig is a fixed-length array signature.
type ArraySig struct {
	Elem any
	Len  int
}

// ArrayOf returns the signature of n consecutive sig values.
func ArrayOf(sig any, n int) ArraySig { return ArraySig{Elem: sig, Len: n} }

func (s ArraySig) String() string { return fmt.Sprintf("%s[%d]", sigString(s.Elem), s.Len) }

// RangeSig is an open-ended array signature. It is only legal as the last
// member of a struct or at the end of a buffer.
type RangeSig struct {
	Elem any
}

// Unbounded returns the signature of an open-ended run of sig values.
func Unbounded(sig any) RangeSig { return RangeSig{Elem: sig} }

func (s RangeSig) String() string { return sigString(s.Elem) + "[]" }

func sigString(sig any) string {
	switch s := sig.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", sig)
	}
}

// ParseSignature parses a type name with C declarator suffixes. Dimensions
// read in C order, so "char[2][8]" is two arrays of eight chars. Only the
// first dimension may be empty: "uint32[][2]" is an open-ended run of pairs.
func ParseSignature(s string) (any, error) {
	s = strings.TrimSpace(s)
	name, rest, _ := strings.Cut(s, "[")
	name = strings.TrimSpace(name)
	if !validName(name) {
		return nil, types.InvalidSignature(s)
	}
	if rest == "" {
		if strings.ContainsAny(s, "[]") {
			return nil, types.InvalidSignature(s)
		}
		return name, nil
	}
	rest = "[" + rest

	var dims []int
	for rest != "" {
		if rest[0] != '[' {
			return nil, types.InvalidSignature(s)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, types.InvalidSignature(s)
		}
		dim := strings.TrimSpace(rest[1:end])
		if dim == "" {
			dims = append(dims, -1)
		} else {
			n, err := strconv.Atoi(dim)
			if err != nil || n < 0 {
				return nil, types.InvalidSignature(s)
			}
			dims = append(dims, n)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	var sig any = name
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] < 0 {
			if i != 0 {
				return nil, types.InvalidSignature(s)
			}
			sig = Unbounded(sig)
			continue
		}
		sig = ArrayOf(sig, dims[i])
	}
	return sig, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
