package ctype

import (
	"github.com/joshuapare/memkit/pkg/types"
)

// Unsized is the Size of unbounded arrays, C strings and structs ending in
// one. Such a type consumes whatever bytes remain and is only legal as the
// last member of a struct.
const Unsized = -1

// Type describes how one C value is laid out and encoded.
//
// Pack and Unpack convert between Go values and bytes. The four value-stream
// methods let composite types splice their members into a single linear
// sequence of scalar values: a struct member that is itself an array
// contributes its elements in place, so a struct accepts either a literal
// sequence or a live object for that member.
type Type interface {
	// Size is the encoded size in bytes, or Unsized.
	Size() int
	// Alignment is the byte boundary a value's offset must satisfy.
	Alignment() int
	// Endian is the byte order; EndianNone for single bytes and composites.
	Endian() types.Endian
	// Signed reports whether integers of this type are two's complement.
	Signed() bool

	// Pack encodes v. Out-of-range scalars fail with types.ErrOutOfRange.
	Pack(v any) ([]byte, error)
	// Unpack decodes a value from the leading Size() bytes of b.
	Unpack(b []byte) (any, error)

	// EnqueueValue flattens v onto values.
	EnqueueValue(values []any, v any) ([]any, error)
	// DequeueValue rebuilds one value from the head of values and returns the rest.
	DequeueValue(values []any) (any, []any, error)
	// PackValues appends the encoding of the leading flat values to dst.
	PackValues(dst []byte, values []any) ([]byte, []any, error)
	// UnpackValues decodes src into flat values appended to values.
	UnpackValues(src []byte, values []any) ([]any, error)

	String() string
}

// Sized reports whether t has a fixed size.
func Sized(t Type) bool {
	return t.Size() != Unsized
}

// head pops the first flat value.
func head(values []any, t Type) (any, []any, error) {
	if len(values) == 0 {
		return nil, values, types.Errorf(types.ErrKindOutOfBounds, nil,
			"value stream exhausted while decoding %s", t)
	}
	return values[0], values[1:], nil
}

// padTo extends dst with zero bytes until it is n bytes long.
func padTo(dst []byte, n int) []byte {
	if len(dst) >= n {
		return dst
	}
	return append(dst, make([]byte, n-len(dst))...)
}

// pack is the shared Pack implementation: flatten, then encode.
func pack(t Type, v any) ([]byte, error) {
	values, err := t.EnqueueValue(nil, v)
	if err != nil {
		return nil, err
	}
	capacity := t.Size()
	if capacity < 0 {
		capacity = 0
	}
	dst, _, err := t.PackValues(make([]byte, 0, capacity), values)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// unpack is the shared Unpack implementation: decode, then rebuild.
func unpack(t Type, b []byte) (any, error) {
	values, err := t.UnpackValues(b, nil)
	if err != nil {
		return nil, err
	}
	v, _, err := t.DequeueValue(values)
	return v, err
}

// shortRead reports src being smaller than the fixed size of t.
func shortRead(t Type, src []byte) error {
	if t.Size() != Unsized && len(src) < t.Size() {
		return types.Errorf(types.ErrKindOutOfBounds, len(src),
			"%s needs %d bytes, have %d", t, t.Size(), len(src))
	}
	return nil
}
