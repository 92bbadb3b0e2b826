package ctype

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/pkg/types"
)

// ArrayType is a fixed-length repetition of a sized element type.
type ArrayType struct {
	elem   Type
	length int
	size   int
}

// NewArrayType returns elem repeated length times.
func NewArrayType(elem Type, length int) (*ArrayType, error) {
	if !Sized(elem) {
		return nil, types.Errorf(types.ErrKindInvalidSignature, elem.String(),
			"array element %s has no fixed size", elem)
	}
	if length < 0 {
		return nil, types.Errorf(types.ErrKindInvalidSignature, length,
			"array length %d is negative", length)
	}
	size, ok := buf.MulOverflowSafe(elem.Size(), length)
	if !ok {
		return nil, types.Errorf(types.ErrKindOutOfRange, length,
			"array of %d x %s overflows", length, elem)
	}
	return &ArrayType{elem: elem, length: length, size: size}, nil
}

// Elem returns the element type.
func (t *ArrayType) Elem() Type { return t.elem }

// Len returns the element count.
func (t *ArrayType) Len() int { return t.length }

func (t *ArrayType) Size() int            { return t.size }
func (t *ArrayType) Alignment() int       { return t.elem.Alignment() }
func (t *ArrayType) Endian() types.Endian { return t.elem.Endian() }
func (t *ArrayType) Signed() bool         { return t.elem.Signed() }

func (t *ArrayType) String() string {
	return fmt.Sprintf("%s[%d]", t.elem, t.length)
}

func (t *ArrayType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *ArrayType) Unpack(b []byte) (any, error) { return unpack(t, b) }

// EnqueueValue accepts nil, a Go slice or array of at most Len values, or a
// string when the element is a char. Missing trailing elements pack as zero.
func (t *ArrayType) EnqueueValue(values []any, v any) ([]any, error) {
	items, err := elements(t.elem, v)
	if err != nil {
		return values, err
	}
	if len(items) > t.length {
		return values, types.Errorf(types.ErrKindOutOfRange, len(items),
			"%d values do not fit in %s", len(items), t)
	}
	for i := 0; i < t.length; i++ {
		var item any
		if i < len(items) {
			item = items[i]
		}
		if values, err = t.elem.EnqueueValue(values, item); err != nil {
			return values, err
		}
	}
	return values, nil
}

func (t *ArrayType) DequeueValue(values []any) (any, []any, error) {
	out := make([]any, t.length)
	for i := range out {
		var err error
		if out[i], values, err = t.elem.DequeueValue(values); err != nil {
			return nil, values, err
		}
	}
	return out, values, nil
}

func (t *ArrayType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	for i := 0; i < t.length; i++ {
		var err error
		if dst, values, err = t.elem.PackValues(dst, values); err != nil {
			return dst, values, err
		}
	}
	return dst, values, nil
}

func (t *ArrayType) UnpackValues(src []byte, values []any) ([]any, error) {
	if err := shortRead(t, src); err != nil {
		return values, err
	}
	es := t.elem.Size()
	for i := 0; i < t.length; i++ {
		var err error
		if values, err = t.elem.UnpackValues(src[i*es:(i+1)*es], values); err != nil {
			return values, err
		}
	}
	return values, nil
}

// UnboundedArrayType is an open-ended repetition that packs exactly as many
// elements as it is given and unpacks every whole element in its input.
type UnboundedArrayType struct {
	elem Type
}

// NewUnboundedArrayType returns an open-ended array of elem.
func NewUnboundedArrayType(elem Type) (*UnboundedArrayType, error) {
	if !Sized(elem) || elem.Size() == 0 {
		return nil, types.Errorf(types.ErrKindInvalidSignature, elem.String(),
			"unbounded array element %s must have a positive fixed size", elem)
	}
	return &UnboundedArrayType{elem: elem}, nil
}

// Elem returns the element type.
func (t *UnboundedArrayType) Elem() Type { return t.elem }

func (t *UnboundedArrayType) Size() int            { return Unsized }
func (t *UnboundedArrayType) Alignment() int       { return t.elem.Alignment() }
func (t *UnboundedArrayType) Endian() types.Endian { return t.elem.Endian() }
func (t *UnboundedArrayType) Signed() bool         { return t.elem.Signed() }
func (t *UnboundedArrayType) String() string       { return t.elem.String() + "[]" }

func (t *UnboundedArrayType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *UnboundedArrayType) Unpack(b []byte) (any, error) { return unpack(t, b) }

func (t *UnboundedArrayType) EnqueueValue(values []any, v any) ([]any, error) {
	items, err := elements(t.elem, v)
	if err != nil {
		return values, err
	}
	for _, item := range items {
		if values, err = t.elem.EnqueueValue(values, item); err != nil {
			return values, err
		}
	}
	return values, nil
}

// DequeueValue consumes every remaining value.
func (t *UnboundedArrayType) DequeueValue(values []any) (any, []any, error) {
	out := []any{}
	for len(values) > 0 {
		var (
			item any
			err  error
		)
		if item, values, err = t.elem.DequeueValue(values); err != nil {
			return nil, values, err
		}
		out = append(out, item)
	}
	return out, values, nil
}

// PackValues encodes every remaining value.
func (t *UnboundedArrayType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	for len(values) > 0 {
		var err error
		if dst, values, err = t.elem.PackValues(dst, values); err != nil {
			return dst, values, err
		}
	}
	return dst, values, nil
}

func (t *UnboundedArrayType) UnpackValues(src []byte, values []any) ([]any, error) {
	es := t.elem.Size()
	for i := 0; i+es <= len(src); i += es {
		var err error
		if values, err = t.elem.UnpackValues(src[i:i+es], values); err != nil {
			return values, err
		}
	}
	return values, nil
}

// elements turns an array value into its items. A string feeds one char per
// byte when elem is a char type.
func elements(elem Type, v any) ([]any, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		if _, ok := elem.(*CharType); ok {
			return chars(s), nil
		}
		return nil, types.TypeMismatch(v, elem.String()+" array")
	}
	items, ok := sequence(v)
	if !ok {
		return nil, types.TypeMismatch(v, elem.String()+" array")
	}
	return items, nil
}
