package ctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/pkg/types"
)

func fooBar(t *testing.T, opts LayoutOptions) *StructType {
	t.Helper()
	st, err := NewStructType([]Field{
		{Name: "foo", Type: lookup(t, LittleEndian, "uint16")},
		{Name: "bar", Type: lookup(t, LittleEndian, "int32")},
	}, opts)
	require.NoError(t, err)
	return st
}

func TestStructLayoutPadded(t *testing.T) {
	st := fooBar(t, LayoutOptions{})
	assert.Equal(t, 8, st.Size())
	assert.Equal(t, 4, st.Alignment())

	off, err := st.Offset("bar")
	require.NoError(t, err)
	assert.Equal(t, 4, off)

	b, err := st.Pack(map[string]any{"foo": 0x0102, "bar": -1})
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x01, 0, 0, 0xff, 0xff, 0xff, 0xff}, b)

	v, err := st.Unpack(b)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"foo": uint64(0x0102), "bar": int64(-1)}, v)
}

func TestStructLayoutPacked(t *testing.T) {
	st, err := NewStructType([]Field{
		{Name: "a", Type: lookup(t, LittleEndian, "uint8")},
		{Name: "b", Type: lookup(t, LittleEndian, "int32")},
	}, LayoutOptions{Packed: true})
	require.NoError(t, err)
	assert.True(t, st.Packed())
	assert.Equal(t, 5, st.Size())

	off, err := st.Offset("b")
	require.NoError(t, err)
	assert.Equal(t, 1, off)

	b, err := st.Pack(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 0, 0, 0}, b)
}

func TestStructLayoutLaw(t *testing.T) {
	ts := ForPlatform(types.Platform{Arch: types.ArchX86_64, OS: types.OSLinux})
	fields := []Field{
		{Name: "c", Type: lookup(t, ts, "char")},
		{Name: "d", Type: lookup(t, ts, "double")},
		{Name: "s", Type: lookup(t, ts, "short")},
		{Name: "p", Type: lookup(t, ts, "pointer")},
		{Name: "u", Type: lookup(t, ts, "uchar")},
	}
	st, err := NewStructType(fields, LayoutOptions{})
	require.NoError(t, err)

	for _, m := range st.Members() {
		assert.Zero(t, m.Offset%m.Type.Alignment(), "member %s at %d", m.Name, m.Offset)
	}
	assert.Zero(t, st.Size()%st.Alignment())
	assert.Equal(t, 40, st.Size())
	assert.Equal(t, format.AlignUp(33, 8), st.Size())
}

func TestStructAlignmentOverride(t *testing.T) {
	st := fooBar(t, LayoutOptions{Alignment: 16})
	assert.Equal(t, 16, st.Alignment())
	assert.Equal(t, 16, st.Size())

	b, err := st.Pack(nil)
	require.NoError(t, err)
	require.Len(t, b, 16)
}

func TestStructUnknownMember(t *testing.T) {
	st := fooBar(t, LayoutOptions{})
	_, err := st.Pack(map[string]any{"baz": 1})
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = st.Offset("baz")
	require.ErrorIs(t, err, types.ErrNotFound)

	_, ok := st.Member("baz")
	require.False(t, ok)
}

func TestStructInvalidDefinitions(t *testing.T) {
	u8 := lookup(t, Native, "uint8")
	tail, err := NewUnboundedArrayType(u8)
	require.NoError(t, err)

	for name, fields := range map[string][]Field{
		"duplicate":      {{Name: "a", Type: u8}, {Name: "a", Type: u8}},
		"unnamed":        {{Type: u8}},
		"untyped":        {{Name: "a"}},
		"unsized middle": {{Name: "tail", Type: tail}, {Name: "a", Type: u8}},
	} {
		_, err := NewStructType(fields, LayoutOptions{})
		require.ErrorIs(t, err, types.ErrInvalidSignature, name)
	}
}

func TestStructUnsizedTail(t *testing.T) {
	u16 := lookup(t, LittleEndian, "uint16")
	tail, err := NewUnboundedArrayType(lookup(t, LittleEndian, "uint8"))
	require.NoError(t, err)
	st, err := NewStructType([]Field{
		{Name: "len", Type: u16},
		{Name: "data", Type: tail},
	}, LayoutOptions{})
	require.NoError(t, err)
	assert.Equal(t, Unsized, st.Size())

	b, err := st.Pack(map[string]any{"len": 3, "data": []any{7, 8, 9}})
	require.NoError(t, err)
	require.Equal(t, []byte{3, 0, 7, 8, 9}, b)

	v, err := st.Unpack(b)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"len":  uint64(3),
		"data": []any{uint64(7), uint64(8), uint64(9)},
	}, v)
}

func TestStructWithArrayMember(t *testing.T) {
	arr, err := NewArrayType(lookup(t, BigEndian, "uint16"), 2)
	require.NoError(t, err)
	st, err := NewStructType([]Field{
		{Name: "tag", Type: lookup(t, BigEndian, "char")},
		{Name: "vals", Type: arr},
	}, LayoutOptions{})
	require.NoError(t, err)
	assert.Equal(t, 6, st.Size())

	b, err := st.Pack(map[string]any{"tag": "T", "vals": []int{1, 2}})
	require.NoError(t, err)
	require.Equal(t, []byte{'T', 0, 0, 1, 0, 2}, b)
}

func TestUnionLaw(t *testing.T) {
	arr, err := NewArrayType(lookup(t, LittleEndian, "uint8"), 3)
	require.NoError(t, err)
	un, err := NewUnionType([]Field{
		{Name: "b", Type: arr},
		{Name: "w", Type: lookup(t, LittleEndian, "uint16")},
		{Name: "d", Type: lookup(t, LittleEndian, "uint32")},
	}, LayoutOptions{})
	require.NoError(t, err)

	largest := 0
	for _, m := range un.Members() {
		assert.Zero(t, m.Offset)
		if m.Type.Size() > largest {
			largest = m.Type.Size()
		}
	}
	assert.Equal(t, largest, un.Size())
	assert.Equal(t, 4, un.Alignment())
}

func TestUnionPackUnpack(t *testing.T) {
	un, err := NewUnionType([]Field{
		{Name: "d", Type: lookup(t, LittleEndian, "uint32")},
		{Name: "w", Type: lookup(t, LittleEndian, "uint16")},
	}, LayoutOptions{})
	require.NoError(t, err)

	b, err := un.Pack(map[string]any{"d": 0x11223344})
	require.NoError(t, err)
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, b)

	v, err := un.Unpack(b)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"d": uint64(0x11223344), "w": uint64(0x3344)}, v)

	// The later member overwrites the shared low bytes.
	b, err = un.Pack(map[string]any{"d": 0x11223344, "w": 0xaaaa})
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0xaa, 0x22, 0x11}, b)

	_, err = un.Pack(map[string]any{"q": 1})
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = NewUnionType([]Field{{Name: "s", Type: CString}}, LayoutOptions{})
	require.ErrorIs(t, err, types.ErrInvalidSignature)
}

func TestStructContainingUnion(t *testing.T) {
	un, err := NewUnionType([]Field{
		{Name: "i", Type: lookup(t, LittleEndian, "int32")},
		{Name: "f", Type: lookup(t, LittleEndian, "float")},
	}, LayoutOptions{})
	require.NoError(t, err)
	st, err := NewStructType([]Field{
		{Name: "kind", Type: lookup(t, LittleEndian, "uint8")},
		{Name: "val", Type: un},
	}, LayoutOptions{})
	require.NoError(t, err)
	assert.Equal(t, 8, st.Size())

	b, err := st.Pack(map[string]any{"kind": 1, "val": map[string]any{"i": 5}})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 0, 0, 5, 0, 0, 0}, b)

	v, err := st.Unpack(b)
	require.NoError(t, err)
	val := v.(map[string]any)["val"].(map[string]any)
	assert.Equal(t, int64(5), val["i"])
}
