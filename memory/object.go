package memory

import (
	"bytes"

	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// ObjectType is a composite type whose values are live objects: an *Array,
// *Struct or *Union reading and writing through a window of shared storage.
//
// Pack accepts a live object or a plain value (a sequence for arrays, a
// map for records). Unpack and the value-stream methods produce live
// objects aliasing the decoded bytes. Inside a value stream an object is one
// opaque value, so a struct member accepts either form.
type ObjectType interface {
	ctype.Type
	// Wrap returns a live object over the leading bytes of s.
	Wrap(s *byteslice.ByteSlice) (Object, error)
	// Underlying returns the plain aggregate, struct or union type.
	Underlying() ctype.Type
	// TypeSystem returns the table the type was resolved against.
	TypeSystem() *ctype.TypeSystem
}

// Object is a live composite value.
type Object interface {
	ObjectType() ObjectType
	ByteSlice() *byteslice.ByteSlice
	// Value returns a plain copy: []any for arrays, map[string]any for records.
	Value() (any, error)
}

// objectBase implements the ctype.Type half of an ObjectType in terms of
// the concrete type's Wrap and Underlying.
type objectBase struct {
	self  ObjectType
	under ctype.Type
	ts    *ctype.TypeSystem
}

func (b *objectBase) Size() int                     { return b.under.Size() }
func (b *objectBase) Alignment() int                { return b.under.Alignment() }
func (b *objectBase) Endian() types.Endian          { return b.under.Endian() }
func (b *objectBase) Signed() bool                  { return b.under.Signed() }
func (b *objectBase) Underlying() ctype.Type        { return b.under }
func (b *objectBase) TypeSystem() *ctype.TypeSystem { return b.ts }

// Pack encodes a live object by copying its bytes, or a plain value
// through the underlying type.
func (b *objectBase) Pack(v any) ([]byte, error) {
	if obj, ok := v.(Object); ok {
		if sameType(obj.ObjectType(), b.self) {
			return bytes.Clone(obj.ByteSlice().Bytes()), nil
		}
		plain, err := obj.Value()
		if err != nil {
			return nil, err
		}
		v = plain
	}
	return b.under.Pack(v)
}

// Unpack returns a live object aliasing b.
func (b *objectBase) Unpack(src []byte) (any, error) {
	values, err := b.UnpackValues(src, nil)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

func (b *objectBase) EnqueueValue(values []any, v any) ([]any, error) {
	return append(values, v), nil
}

// DequeueValue returns the head value as a live object, packing a plain
// value into fresh storage when needed.
func (b *objectBase) DequeueValue(values []any) (any, []any, error) {
	v, rest, err := pop(values, b.self)
	if err != nil {
		return nil, values, err
	}
	if obj, ok := v.(Object); ok && sameType(obj.ObjectType(), b.self) {
		return obj, rest, nil
	}
	raw, err := b.Pack(v)
	if err != nil {
		return nil, values, err
	}
	obj, err := b.self.Wrap(byteslice.Of(raw))
	if err != nil {
		return nil, values, err
	}
	return obj, rest, nil
}

func (b *objectBase) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	v, rest, err := pop(values, b.self)
	if err != nil {
		return dst, values, err
	}
	raw, err := b.Pack(v)
	if err != nil {
		return dst, values, err
	}
	return append(dst, raw...), rest, nil
}

func (b *objectBase) UnpackValues(src []byte, values []any) ([]any, error) {
	n := len(src)
	if size := b.Size(); size != ctype.Unsized {
		if n < size {
			return values, types.Errorf(types.ErrKindOutOfBounds, n,
				"%s needs %d bytes, have %d", b.self, size, n)
		}
		n = size
	}
	obj, err := b.self.Wrap(byteslice.Of(src[:n:n]))
	if err != nil {
		return values, err
	}
	return append(values, obj), nil
}

// aggregate is implemented by *ctype.ArrayType and *ctype.UnboundedArrayType.
type aggregate interface {
	ctype.Type
	Elem() ctype.Type
}

// ArrayObjectType produces *Array objects.
type ArrayObjectType struct {
	objectBase
	agg aggregate
}

func newArrayObjectType(agg aggregate, ts *ctype.TypeSystem) *ArrayObjectType {
	t := &ArrayObjectType{agg: agg}
	t.objectBase = objectBase{self: t, under: agg, ts: ts}
	return t
}

// Elem returns the element type.
func (t *ArrayObjectType) Elem() ctype.Type { return t.agg.Elem() }

// Len returns the fixed element count, or ctype.Unsized for open-ended arrays.
func (t *ArrayObjectType) Len() int {
	if at, ok := t.agg.(*ctype.ArrayType); ok {
		return at.Len()
	}
	return ctype.Unsized
}

func (t *ArrayObjectType) String() string { return t.agg.String() }

// Wrap views s as an array. An open-ended array covers every whole element.
func (t *ArrayObjectType) Wrap(s *byteslice.ByteSlice) (Object, error) {
	es := t.Elem().Size()
	n := t.Len()
	if n == ctype.Unsized {
		n = s.Len() / es
	}
	window, err := s.Subslice(0, n*es)
	if err != nil {
		return nil, err
	}
	return newArray(window, t, n), nil
}

// StructObjectType produces *Struct objects for a schema.
type StructObjectType struct {
	objectBase
	schema *Schema
	st     *ctype.StructType
}

func newStructObjectType(s *Schema, st *ctype.StructType, ts *ctype.TypeSystem) *StructObjectType {
	t := &StructObjectType{schema: s, st: st}
	t.objectBase = objectBase{self: t, under: st, ts: ts}
	return t
}

// Schema returns the schema the type was resolved from.
func (t *StructObjectType) Schema() *Schema { return t.schema }

// Struct returns the laid-out struct.
func (t *StructObjectType) Struct() *ctype.StructType { return t.st }

func (t *StructObjectType) String() string { return "struct " + t.schema.Name() }

func (t *StructObjectType) Wrap(s *byteslice.ByteSlice) (Object, error) {
	window, err := recordWindow(s, t.st.Size(), t.st.Members())
	if err != nil {
		return nil, err
	}
	return &Struct{record: newRecord(window, t, t.schema, t.st)}, nil
}

// UnionObjectType produces *Union objects for a schema.
type UnionObjectType struct {
	objectBase
	schema *Schema
	ut     *ctype.UnionType
}

func newUnionObjectType(s *Schema, ut *ctype.UnionType, ts *ctype.TypeSystem) *UnionObjectType {
	t := &UnionObjectType{schema: s, ut: ut}
	t.objectBase = objectBase{self: t, under: ut, ts: ts}
	return t
}

// Schema returns the schema the type was resolved from.
func (t *UnionObjectType) Schema() *Schema { return t.schema }

// Union returns the laid-out union.
func (t *UnionObjectType) Union() *ctype.UnionType { return t.ut }

func (t *UnionObjectType) String() string { return "union " + t.schema.Name() }

func (t *UnionObjectType) Wrap(s *byteslice.ByteSlice) (Object, error) {
	window, err := recordWindow(s, t.ut.Size(), t.ut.Members())
	if err != nil {
		return nil, err
	}
	return &Union{record: newRecord(window, t, t.schema, t.ut)}, nil
}

// recordWindow trims s to a record of size bytes. An unsized record keeps
// all of s, which must reach the start of its open-ended last member.
func recordWindow(s *byteslice.ByteSlice, size int, members []ctype.Member) (*byteslice.ByteSlice, error) {
	if size != ctype.Unsized {
		return s.Subslice(0, size)
	}
	if last := members[len(members)-1]; s.Len() < last.Offset {
		return nil, types.OutOfBounds(0, last.Offset, s.Len())
	}
	return s, nil
}

// sameType reports whether values of a can be copied byte for byte into b.
// Records match on schema and type table, arrays on length and element
// type. Leaf types match on name, which spells out size, signedness and
// byte order.
func sameType(a, b ctype.Type) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *StructObjectType:
		y, ok := b.(*StructObjectType)
		return ok && x.schema == y.schema && x.ts == y.ts
	case *UnionObjectType:
		y, ok := b.(*UnionObjectType)
		return ok && x.schema == y.schema && x.ts == y.ts
	case *ArrayObjectType:
		y, ok := b.(*ArrayObjectType)
		return ok && x.Len() == y.Len() && sameType(x.Elem(), y.Elem())
	}
	if _, ok := b.(ObjectType); ok {
		return false
	}
	return a.Size() == b.Size() && a.String() == b.String()
}

func pop(values []any, t ctype.Type) (any, []any, error) {
	if len(values) == 0 {
		return nil, values, types.Errorf(types.ErrKindOutOfBounds, nil,
			"value stream exhausted while decoding %s", t)
	}
	return values[0], values[1:], nil
}

// plain converts live objects inside v into plain values.
func plain(v any) (any, error) {
	switch x := v.(type) {
	case Object:
		return x.Value()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			p, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			p, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[k] = p
		}
		return out, nil
	default:
		return v, nil
	}
}
