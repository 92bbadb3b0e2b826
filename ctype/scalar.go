package ctype

import (
	"fmt"
	"math"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/pkg/types"
)

// scalar holds what every fixed-size leaf type shares.
type scalar struct {
	size   int
	align  int
	endian types.Endian
}

func (s scalar) Size() int      { return s.size }
func (s scalar) Alignment() int { return s.align }

func (s scalar) Endian() types.Endian {
	if s.size == 1 {
		return types.EndianNone
	}
	return s.endian
}

func (s scalar) EnqueueValue(values []any, v any) ([]any, error) {
	return append(values, v), nil
}

// suffix renders the byte order as a type-name suffix.
func (s scalar) suffix() string {
	switch s.Endian() {
	case types.EndianLittle:
		return "_le"
	case types.EndianBig:
		return "_be"
	default:
		return ""
	}
}

// reserve appends n zero bytes and returns the new slice plus the window.
func reserve(dst []byte, n int) ([]byte, []byte) {
	start := len(dst)
	dst = padTo(dst, start+n)
	return dst, dst[start : start+n]
}

// IntType is a signed or unsigned two's complement integer of 1 to 8 bytes.
type IntType struct {
	scalar
	signed bool
}

// NewInt returns a signed integer type of size bytes, aligned to its size.
func NewInt(size int, endian types.Endian) *IntType {
	return &IntType{scalar: scalar{size: size, align: size, endian: endian}, signed: true}
}

// NewUInt returns an unsigned integer type of size bytes, aligned to its size.
func NewUInt(size int, endian types.Endian) *IntType {
	return &IntType{scalar: scalar{size: size, align: size, endian: endian}}
}

// WithAlignment returns a copy of t with a different alignment.
func (t *IntType) WithAlignment(align int) *IntType {
	c := *t
	c.align = align
	return &c
}

func (t *IntType) Signed() bool { return t.signed }

// Min and Max return the representable range.
func (t *IntType) Min() int64 {
	if !t.signed {
		return 0
	}
	return math.MinInt64 >> (64 - 8*uint(t.size))
}

func (t *IntType) Max() uint64 {
	if t.signed {
		return uint64(math.MaxInt64 >> (64 - 8*uint(t.size)))
	}
	return math.MaxUint64 >> (64 - 8*uint(t.size))
}

func (t *IntType) String() string {
	if t.signed {
		return fmt.Sprintf("int%d%s", t.size*8, t.suffix())
	}
	return fmt.Sprintf("uint%d%s", t.size*8, t.suffix())
}

// encode range-checks v and returns its two's complement bits.
func (t *IntType) encode(v any) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	i, u, neg, ok := integer(v)
	if !ok {
		return 0, types.TypeMismatch(v, t.String())
	}
	if neg {
		if i < t.Min() {
			return 0, types.OutOfRange(v, t.String())
		}
		return uint64(i), nil
	}
	if u > t.Max() {
		return 0, types.OutOfRange(v, t.String())
	}
	return u, nil
}

func (t *IntType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *IntType) Unpack(b []byte) (any, error) { return unpack(t, b) }

func (t *IntType) DequeueValue(values []any) (any, []any, error) { return head(values, t) }

func (t *IntType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	v, rest, err := head(values, t)
	if err != nil {
		return dst, values, err
	}
	bits, err := t.encode(v)
	if err != nil {
		return dst, values, err
	}
	dst, window := reserve(dst, t.size)
	buf.PutUint(window, t.size, buf.Order(t.endian), bits)
	return dst, rest, nil
}

func (t *IntType) UnpackValues(src []byte, values []any) ([]any, error) {
	if err := shortRead(t, src); err != nil {
		return values, err
	}
	order := buf.Order(t.endian)
	if t.signed {
		return append(values, buf.Int(src, t.size, order)), nil
	}
	return append(values, buf.Uint(src, t.size, order)), nil
}

// FloatType is an IEEE 754 binary32 or binary64 value.
type FloatType struct {
	scalar
}

// NewFloat returns a 4- or 8-byte float type aligned to its size.
func NewFloat(size int, endian types.Endian) *FloatType {
	return &FloatType{scalar: scalar{size: size, align: size, endian: endian}}
}

// WithAlignment returns a copy of t with a different alignment.
func (t *FloatType) WithAlignment(align int) *FloatType {
	c := *t
	c.align = align
	return &c
}

func (t *FloatType) Signed() bool { return true }

func (t *FloatType) String() string {
	return fmt.Sprintf("float%d%s", t.size*8, t.suffix())
}

func (t *FloatType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *FloatType) Unpack(b []byte) (any, error) { return unpack(t, b) }

func (t *FloatType) DequeueValue(values []any) (any, []any, error) { return head(values, t) }

func (t *FloatType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	v, rest, err := head(values, t)
	if err != nil {
		return dst, values, err
	}
	var f float64
	if v != nil {
		var ok bool
		if f, ok = float(v); !ok {
			return dst, values, types.TypeMismatch(v, t.String())
		}
	}
	var bits uint64
	if t.size == 4 {
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return dst, values, types.OutOfRange(v, t.String())
		}
		bits = uint64(math.Float32bits(float32(f)))
	} else {
		bits = math.Float64bits(f)
	}
	dst, window := reserve(dst, t.size)
	buf.PutUint(window, t.size, buf.Order(t.endian), bits)
	return dst, rest, nil
}

func (t *FloatType) UnpackValues(src []byte, values []any) ([]any, error) {
	if err := shortRead(t, src); err != nil {
		return values, err
	}
	bits := buf.Uint(src, t.size, buf.Order(t.endian))
	if t.size == 4 {
		return append(values, float64(math.Float32frombits(uint32(bits)))), nil
	}
	return append(values, math.Float64frombits(bits)), nil
}

// CharType is a C char. Values decode to one-byte strings and encode from a
// string of at most one byte, or from an integer in [-128, 255].
type CharType struct {
	scalar
	signed bool
}

// NewChar returns a signed (char) or unsigned (unsigned char) char type.
func NewChar(signed bool) *CharType {
	return &CharType{scalar: scalar{size: 1, align: 1}, signed: signed}
}

func (t *CharType) Signed() bool { return t.signed }

func (t *CharType) String() string {
	if t.signed {
		return "char"
	}
	return "uchar"
}

func (t *CharType) encode(v any) (byte, error) {
	switch c := v.(type) {
	case nil:
		return 0, nil
	case string:
		if len(c) > 1 {
			return 0, types.OutOfRange(c, t.String())
		}
		if c == "" {
			return 0, nil
		}
		return c[0], nil
	}
	i, u, neg, ok := integer(v)
	if !ok {
		return 0, types.TypeMismatch(v, t.String())
	}
	if neg {
		if i < math.MinInt8 {
			return 0, types.OutOfRange(v, t.String())
		}
		return byte(int8(i)), nil
	}
	if u > math.MaxUint8 {
		return 0, types.OutOfRange(v, t.String())
	}
	return byte(u), nil
}

func (t *CharType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *CharType) Unpack(b []byte) (any, error) { return unpack(t, b) }

func (t *CharType) DequeueValue(values []any) (any, []any, error) { return head(values, t) }

func (t *CharType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	v, rest, err := head(values, t)
	if err != nil {
		return dst, values, err
	}
	c, err := t.encode(v)
	if err != nil {
		return dst, values, err
	}
	return append(dst, c), rest, nil
}

func (t *CharType) UnpackValues(src []byte, values []any) ([]any, error) {
	if err := shortRead(t, src); err != nil {
		return values, err
	}
	return append(values, string(src[:1])), nil
}

// CStringType is a NUL-terminated string of unbounded size.
type CStringType struct{}

// CString is the shared C string type.
var CString = &CStringType{}

func (*CStringType) Size() int            { return Unsized }
func (*CStringType) Alignment() int       { return 1 }
func (*CStringType) Endian() types.Endian { return types.EndianNone }
func (*CStringType) Signed() bool         { return false }
func (*CStringType) String() string       { return "string" }

func (t *CStringType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *CStringType) Unpack(b []byte) (any, error) { return unpack(t, b) }

func (t *CStringType) EnqueueValue(values []any, v any) ([]any, error) {
	return append(values, v), nil
}

func (t *CStringType) DequeueValue(values []any) (any, []any, error) { return head(values, t) }

func (t *CStringType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	v, rest, err := head(values, t)
	if err != nil {
		return dst, values, err
	}
	switch s := v.(type) {
	case nil:
	case string:
		dst = append(dst, s...)
	case []byte:
		dst = append(dst, s...)
	default:
		return dst, values, types.TypeMismatch(v, t.String())
	}
	return append(dst, 0), rest, nil
}

// UnpackValues reads up to the first NUL, or all of src when none is present.
func (t *CStringType) UnpackValues(src []byte, values []any) ([]any, error) {
	for i, c := range src {
		if c == 0 {
			return append(values, string(src[:i])), nil
		}
	}
	return append(values, string(src)), nil
}
