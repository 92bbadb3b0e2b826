// Package ctype describes C-ABI data shapes and encodes Go values into them.
//
// A Type knows its size, alignment and byte order. Scalars (IntType,
// FloatType, CharType, CStringType) encode one value; ArrayType and
// UnboundedArrayType repeat an element; StructType and UnionType lay out
// named members the way a C compiler does:
//
//	u16, _ := ctype.LittleEndian.Lookup("uint16")
//	i32, _ := ctype.LittleEndian.Lookup("int32")
//	st, _ := ctype.NewStructType([]ctype.Field{{"foo", u16}, {"bar", i32}}, ctype.LayoutOptions{})
//	st.Size()           // 8
//	st.Offset("bar")    // 4
//
// TypeSystem tables map C type names to types for a platform. Use
// ForPlatform to select an architecture and OS typedef overlay, or one of
// Native, LittleEndian, BigEndian and Network.
//
// Value mapping: signed integers decode to int64, unsigned to uint64,
// floats to float64, chars to one-byte strings, arrays to []any and
// structs and unions to map[string]any.
package ctype
