package memory

import (
	"bytes"

	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/pkg/types"
)

// Memory is the typed access layer shared by Buffer, Array, Struct and Union.
//
// Every access resolves its signature, validates the byte range and only
// then reads or writes, so a failed call never leaves partial writes
// behind. Composite values come back as live objects aliasing the storage;
// they are cached by byte offset and type, so two reads of the same type at
// the same offset return the same object.
//
// Memory is not safe for concurrent use.
type Memory struct {
	data     *byteslice.ByteSlice
	resolver *Resolver
	objects  map[int][]Object
}

func newMemory(data *byteslice.ByteSlice, ts *ctype.TypeSystem) *Memory {
	return &Memory{data: data, resolver: NewResolver(ts)}
}

// Size returns the number of addressable bytes.
func (m *Memory) Size() int { return m.data.Len() }

// Bytes returns the storage, aliased.
func (m *Memory) Bytes() []byte { return m.data.Bytes() }

// ByteSlice returns the window the memory reads and writes.
func (m *Memory) ByteSlice() *byteslice.ByteSlice { return m.data }

// TypeSystem returns the platform table signatures resolve against.
func (m *Memory) TypeSystem() *ctype.TypeSystem { return m.resolver.TypeSystem() }

// Resolver returns the resolver signatures go through.
func (m *Memory) Resolver() *Resolver { return m.resolver }

// Clear zeroes the storage. Cached objects stay valid and read zeros.
func (m *Memory) Clear() { m.data.Fill(0) }

// Get decodes the value of type sig at byte offset off. Scalars decode to
// plain Go values; composites return the cached live object at off.
func (m *Memory) Get(sig any, off int) (any, error) {
	t, err := m.resolver.Resolve(sig)
	if err != nil {
		return nil, err
	}
	return m.getType(t, off)
}

// Put encodes v as type sig at byte offset off.
func (m *Memory) Put(sig any, off int, v any) error {
	t, err := m.resolver.Resolve(sig)
	if err != nil {
		return err
	}
	return m.putType(t, off, v)
}

// GetArrayOf decodes count consecutive values of type sig starting at off.
func (m *Memory) GetArrayOf(sig any, off, count int) ([]any, error) {
	t, err := m.resolver.Resolve(sig)
	if err != nil {
		return nil, err
	}
	es, err := elemSize(t)
	if err != nil {
		return nil, err
	}
	if _, err := buf.CheckListBounds(m.Size(), off, count, es); err != nil {
		return nil, err
	}
	out := make([]any, count)
	for i := range out {
		if out[i], err = m.getType(t, off+i*es); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// PutArrayOf encodes values as consecutive values of type sig starting at off.
func (m *Memory) PutArrayOf(sig any, off int, values []any) error {
	t, err := m.resolver.Resolve(sig)
	if err != nil {
		return err
	}
	at, err := ctype.NewArrayType(t, len(values))
	if err != nil {
		return err
	}
	if err := buf.CheckRange(m.Size(), off, at.Size()); err != nil {
		return err
	}
	raw, err := at.Pack(values)
	if err != nil {
		return err
	}
	return m.data.Write(off, raw)
}

// GetString reads a NUL-terminated string at off. A positive max bounds the
// read to max bytes; otherwise it stops at the first NUL or the end.
func (m *Memory) GetString(off, max int) (string, error) {
	size := m.Size()
	if off < 0 || off >= size {
		return "", types.Errorf(types.ErrKindOutOfBounds, off,
			"offset %d is out of bounds: 0...%d", off, size-1)
	}
	n := size - off
	if max > 0 {
		if max > n {
			return "", types.Errorf(types.ErrKindOutOfBounds, off,
				"offset %d or length %d is out of bounds: 0...%d", off, max, size-1)
		}
		n = max
	}
	raw, err := m.data.Slice(off, n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

// PutString writes s followed by a NUL terminator at off.
func (m *Memory) PutString(off int, s string) error {
	size := m.Size()
	if off < 0 || off+len(s) >= size {
		return types.Errorf(types.ErrKindOutOfBounds, off,
			"offset %d or string length %d is out of bounds: 0...%d", off, len(s), size-1)
	}
	raw := make([]byte, len(s)+1)
	copy(raw, s)
	return m.data.Write(off, raw)
}

// GetObject returns the live object of type sig at off. sig must resolve to
// an array, struct or union.
func (m *Memory) GetObject(sig any, off int) (Object, error) {
	t, err := m.resolver.Resolve(sig)
	if err != nil {
		return nil, err
	}
	ot, ok := t.(ObjectType)
	if !ok {
		return nil, types.Errorf(types.ErrKindTypeMismatch, sig,
			"%s is not an array, struct or union", t)
	}
	return m.object(ot, off)
}

// PutObject copies obj into the storage at off, in the object's own layout
// and byte order.
func (m *Memory) PutObject(off int, obj Object) error {
	if obj == nil {
		return types.MissingConfig("memory: PutObject needs an object", obj)
	}
	return m.putType(obj.ObjectType(), off, obj)
}

// window validates [off, off+size) and returns it. An unsized type extends
// to the end of the storage.
func (m *Memory) window(t ctype.Type, off int) (*byteslice.ByteSlice, error) {
	size := t.Size()
	if size == ctype.Unsized {
		if off < 0 || off > m.Size() {
			return nil, types.OutOfBounds(off, 0, m.Size())
		}
		size = m.Size() - off
	}
	return m.data.Subslice(off, size)
}

func (m *Memory) getType(t ctype.Type, off int) (any, error) {
	if ot, ok := t.(ObjectType); ok {
		return m.object(ot, off)
	}
	w, err := m.window(t, off)
	if err != nil {
		return nil, err
	}
	return t.Unpack(w.Bytes())
}

// object returns the cached object of type t at off, wrapping a new one on
// first use. Objects of other types at the same offset, such as the members
// of a union, stay cached alongside it.
func (m *Memory) object(t ObjectType, off int) (Object, error) {
	for _, obj := range m.objects[off] {
		if sameType(obj.ObjectType(), t) {
			return obj, nil
		}
	}
	w, err := m.window(t, off)
	if err != nil {
		return nil, err
	}
	obj, err := t.Wrap(w)
	if err != nil {
		return nil, err
	}
	if m.objects == nil {
		m.objects = make(map[int][]Object)
	}
	m.objects[off] = append(m.objects[off], obj)
	return obj, nil
}

func (m *Memory) putType(t ctype.Type, off int, v any) error {
	if ctype.Sized(t) {
		if err := buf.CheckRange(m.Size(), off, t.Size()); err != nil {
			return err
		}
	}
	raw, err := t.Pack(v)
	if err != nil {
		return err
	}
	return m.data.Write(off, raw)
}

// elemSize returns the size of t as an array element.
func elemSize(t ctype.Type) (int, error) {
	if !ctype.Sized(t) {
		return 0, types.Errorf(types.ErrKindInvalidSignature, t.String(),
			"%s has no fixed size", t)
	}
	return t.Size(), nil
}
