package ctype

import (
	"github.com/joshuapare/memkit/pkg/types"
)

// UnionType overlays every member at offset 0. Its size is the largest
// member size and its alignment the largest member alignment.
type UnionType struct {
	layout
}

// NewUnionType lays fields out in parallel. Unsized members are rejected.
func NewUnionType(fields []Field, opts LayoutOptions) (*UnionType, error) {
	l, err := newLayout(fields, opts)
	if err != nil {
		return nil, err
	}
	for _, m := range l.members {
		if !Sized(m.Type) {
			return nil, types.Errorf(types.ErrKindInvalidSignature, m.Name,
				"union member %q has no fixed size", m.Name)
		}
		if m.Type.Size() > l.size {
			l.size = m.Type.Size()
		}
	}
	return &UnionType{layout: l}, nil
}

func (t *UnionType) String() string { return "union" + t.fields() }

func (t *UnionType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *UnionType) Unpack(b []byte) (any, error) { return unpack(t, b) }

// EnqueueValue keeps the member map whole: members share storage, so they
// cannot be flattened into independent slots.
func (t *UnionType) EnqueueValue(values []any, v any) ([]any, error) {
	if v == nil {
		return append(values, map[string]any{}), nil
	}
	m, ok := record(v)
	if !ok {
		return values, types.TypeMismatch(v, t.String())
	}
	if err := t.checkKeys(m); err != nil {
		return values, err
	}
	return append(values, m), nil
}

func (t *UnionType) DequeueValue(values []any) (any, []any, error) { return head(values, t) }

// PackValues writes the members present in the map in declaration order,
// so a later member overwrites the bytes it shares with an earlier one.
func (t *UnionType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	v, rest, err := head(values, t)
	if err != nil {
		return dst, values, err
	}
	var m map[string]any
	if v != nil {
		var ok bool
		if m, ok = record(v); !ok {
			return dst, values, types.TypeMismatch(v, t.String())
		}
	}
	region := make([]byte, t.size)
	for _, mem := range t.members {
		mv, present := m[mem.Name]
		if !present {
			continue
		}
		b, err := mem.Type.Pack(mv)
		if err != nil {
			return dst, values, err
		}
		copy(region, b)
	}
	return append(dst, region...), rest, nil
}

// UnpackValues decodes every member view of the shared bytes.
func (t *UnionType) UnpackValues(src []byte, values []any) ([]any, error) {
	if err := shortRead(t, src); err != nil {
		return values, err
	}
	out := make(map[string]any, len(t.members))
	for _, mem := range t.members {
		v, err := mem.Type.Unpack(src[:mem.Type.Size()])
		if err != nil {
			return values, err
		}
		out[mem.Name] = v
	}
	return append(values, out), nil
}
