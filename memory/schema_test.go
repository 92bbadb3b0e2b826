package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

func fooBarSchema(t *testing.T, opts ...SchemaOption) *Schema {
	t.Helper()
	opts = append([]SchemaOption{
		Member("foo", "uint16"),
		Member("bar", "int32"),
		WithTypeSystem(ctype.LittleEndian),
	}, opts...)
	s, err := DefineStruct("foobar", opts...)
	require.NoError(t, err)
	return s
}

func TestDefineStructLayout(t *testing.T) {
	s := fooBarSchema(t)
	assert.Equal(t, "foobar", s.Name())
	assert.Equal(t, KindStruct, s.Kind())
	assert.Equal(t, 8, s.Size())
	assert.Equal(t, 4, s.Alignment())
	assert.True(t, s.Padding())
	assert.Equal(t, 0, s.Align())

	off, err := s.Offset("bar")
	require.NoError(t, err)
	assert.Equal(t, 4, off)

	_, err = s.Offset("baz")
	require.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, []SchemaMember{{Name: "foo", Sig: "uint16"}, {Name: "bar", Sig: "int32"}}, s.Members())
	assert.Equal(t, "struct foobar", s.String())
}

func TestDefineStructErrors(t *testing.T) {
	_, err := DefineStruct("")
	require.ErrorIs(t, err, types.ErrMissingConfig)

	_, err = DefineStruct("bad", Member("a", "nosuchtype"))
	require.ErrorIs(t, err, types.ErrUnknownType)
	assert.Contains(t, err.Error(), `member "a"`)

	_, err = DefineStruct("dup", Member("a", "uint8"), Member("a", "uint8"))
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	_, err = DefineStruct("tail", Member("rest", "uint8[]"), Member("after", "uint8"))
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	_, err = DefineUnion("u", Member("s", "string"))
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	require.Panics(t, func() { Must(DefineStruct("")) })
}

func TestExtendRecomputesLayout(t *testing.T) {
	parent := fooBarSchema(t)

	packed, err := parent.Extend("packed", Padding(false))
	require.NoError(t, err)
	assert.Equal(t, 6, packed.Size())
	off, err := packed.Offset("bar")
	require.NoError(t, err)
	assert.Equal(t, 2, off)
	assert.Equal(t, 8, parent.Size(), "parent layout is untouched")
	assert.Same(t, parent, packed.Parent())

	aligned, err := parent.Extend("aligned", Align(16))
	require.NoError(t, err)
	assert.Equal(t, 16, aligned.Size())
	assert.Equal(t, 16, aligned.Alignment())

	big, err := parent.Extend("big", WithTypeSystem(ctype.BigEndian))
	require.NoError(t, err)
	rec, err := big.FromValues(map[string]any{"foo": 1, "bar": 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0, 0, 0, 0, 0, 2}, rec.ByteSlice().Bytes())

	grown, err := parent.Extend("grown", Member("baz", "uint8"))
	require.NoError(t, err)
	assert.Equal(t, 12, grown.Size())
	assert.Len(t, parent.Members(), 2)
	assert.Len(t, grown.Members(), 3)

	// Overrides are inherited by grandchildren.
	child, err := packed.Extend("child", Member("tail", "uint8"))
	require.NoError(t, err)
	assert.False(t, child.Padding())
	assert.Equal(t, 7, child.Size())
}

func TestExtendPlatform(t *testing.T) {
	base, err := DefineStruct("stat",
		Member("size", "size_t"),
		Member("mode", "uint32"),
		WithPlatform(types.Platform{Arch: types.ArchX86_64, OS: types.OSLinux}),
	)
	require.NoError(t, err)
	assert.Equal(t, 16, base.Size())
	assert.Equal(t, types.Platform{Arch: types.ArchX86_64, OS: types.OSLinux}, base.Platform())

	arm32, err := base.Extend("stat32", WithPlatform(types.Platform{Arch: types.ArchARM, OS: types.OSLinux}))
	require.NoError(t, err)
	assert.Equal(t, 8, arm32.Size())
	assert.Equal(t, 16, base.Size())
}

func TestNestedSchemas(t *testing.T) {
	ts := WithTypeSystem(ctype.LittleEndian)
	point := Must(DefineStruct("point", Member("x", "int16"), Member("y", "int16"), ts))
	line := Must(DefineStruct("line",
		Member("tag", "char"),
		Member("ends", ArrayOf(point, 2)),
		ts,
	))
	assert.Equal(t, 10, line.Size())

	rec, err := line.FromValues(map[string]any{
		"tag":  "L",
		"ends": []any{map[string]any{"x": 1, "y": 2}, map[string]any{"x": 3, "y": 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{'L', 0, 1, 0, 2, 0, 3, 0, 4, 0}, rec.ByteSlice().Bytes())

	ends, err := rec.Field("ends")
	require.NoError(t, err)
	arr := ends.(*Array)
	second, err := arr.At(1)
	require.NoError(t, err)
	require.NoError(t, second.(*Struct).SetField("y", 40))
	assert.Equal(t, byte(40), rec.ByteSlice().Bytes()[8])

	vals, err := rec.Values()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"tag": "L",
		"ends": []any{
			map[string]any{"x": int64(1), "y": int64(2)},
			map[string]any{"x": int64(3), "y": int64(40)},
		},
	}, vals)
}

func TestLiveObjectAsMemberValue(t *testing.T) {
	ts := WithTypeSystem(ctype.LittleEndian)
	point := Must(DefineStruct("point", Member("x", "int16"), Member("y", "int16"), ts))
	box := Must(DefineStruct("box", Member("min", point), Member("max", point), ts))

	lo, err := point.FromValues(map[string]any{"x": -1, "y": -2})
	require.NoError(t, err)
	rec, err := box.FromValues(map[string]any{"min": lo, "max": map[string]any{"x": 5}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xfe, 0xff, 5, 0, 0, 0}, rec.ByteSlice().Bytes())

	require.NoError(t, rec.SetField("max", lo))
	assert.Equal(t, []byte{0xff, 0xff, 0xfe, 0xff, 0xff, 0xff, 0xfe, 0xff}, rec.ByteSlice().Bytes())

	require.ErrorIs(t, rec.SetField("mid", lo), types.ErrNotFound)
	_, err = rec.Field("mid")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestUnionRecord(t *testing.T) {
	u := Must(DefineUnion("word",
		Member("u32", "uint32"),
		Member("bytes", "uint8[4]"),
		Member("half", "uint16"),
		WithTypeSystem(ctype.LittleEndian),
	))
	assert.Equal(t, KindUnion, u.Kind())
	assert.Equal(t, 4, u.Size())
	for _, m := range u.Layout() {
		assert.Zero(t, m.Offset)
	}

	rec, err := u.New()
	require.NoError(t, err)
	_, ok := rec.(*Union)
	require.True(t, ok)

	require.NoError(t, rec.SetField("u32", 0x11223344))
	half, err := rec.Field("half")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x3344), half)

	vals, err := rec.Values()
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(0x44), uint64(0x33), uint64(0x22), uint64(0x11)}, vals["bytes"])
}

func TestUnionMemberIdentity(t *testing.T) {
	u := Must(DefineUnion("overlay",
		Member("a", "uint8[4]"),
		Member("b", "uint16[2]"),
		WithTypeSystem(ctype.LittleEndian),
	))
	rec, err := u.New()
	require.NoError(t, err)

	a, err := rec.Field("a")
	require.NoError(t, err)
	b, err := rec.Field("b")
	require.NoError(t, err)
	again, err := rec.Field("a")
	require.NoError(t, err)
	assert.Same(t, a.(*Array), again.(*Array))
	bAgain, err := rec.Field("b")
	require.NoError(t, err)
	assert.Same(t, b.(*Array), bAgain.(*Array))

	require.NoError(t, b.(*Array).Set(0, 0x0201))
	vals, err := a.(*Array).Values()
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(1), uint64(2), uint64(0), uint64(0)}, vals)
}

func TestSchemaResolvedPerTypeSystem(t *testing.T) {
	pt := Must(DefineStruct("pt",
		Member("x", "uint32"),
		Member("pair", "uint16[2]"),
		WithTypeSystem(ctype.LittleEndian),
	))
	b, err := NewBuffer(8, WithTypeSystem(ctype.BigEndian))
	require.NoError(t, err)

	first, err := b.GetObject(pt, 0)
	require.NoError(t, err)
	second, err := b.GetObject(pt, 0)
	require.NoError(t, err)
	require.Same(t, first, second)
	assert.NotSame(t, pt.Type(), first.ObjectType())
	assert.Same(t, ctype.BigEndian, first.ObjectType().TypeSystem())

	little, err := pt.FromValues(map[string]any{"x": 1, "pair": []any{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 1, 0, 2, 0}, little.ByteSlice().Bytes())

	require.NoError(t, b.Put(pt, 0, little))
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 1, 0, 2}, b.Bytes())
	vals, err := first.Value()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": uint64(1), "pair": []any{uint64(1), uint64(2)}}, vals)
}

func TestUnsizedTailRecord(t *testing.T) {
	packet := Must(DefineStruct("packet",
		Member("len", "uint16"),
		Member("data", "uint8[]"),
		WithTypeSystem(ctype.LittleEndian),
	))
	assert.Equal(t, ctype.Unsized, packet.Size())

	rec, err := packet.From([]byte{3, 0, 7, 8, 9})
	require.NoError(t, err)
	data, err := rec.Field("data")
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(7), uint64(8), uint64(9)}, data)

	empty, err := packet.New()
	require.NoError(t, err)
	assert.Equal(t, 2, empty.ByteSlice().Len())

	_, err = packet.From([]byte{1})
	require.ErrorIs(t, err, types.ErrOutOfBounds)
}

func TestUnsizedTailOfRecords(t *testing.T) {
	ts := WithTypeSystem(ctype.LittleEndian)
	entry := Must(DefineStruct("entry", Member("id", "uint8"), Member("v", "uint8"), ts))
	table := Must(DefineStruct("table", Member("n", "uint8"), Member("entries", Unbounded(entry)), ts))

	rec, err := table.From([]byte{2, 1, 10, 2, 20})
	require.NoError(t, err)
	entries, err := rec.Field("entries")
	require.NoError(t, err)
	arr, ok := entries.(*Array)
	require.True(t, ok, "got %T", entries)
	assert.Equal(t, 2, arr.Len())

	e, err := arr.At(1)
	require.NoError(t, err)
	id, err := e.(*Struct).Field("id")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)
}

func TestFromAliases(t *testing.T) {
	s := fooBarSchema(t)
	raw := make([]byte, 8)
	rec, err := s.From(raw)
	require.NoError(t, err)
	require.NoError(t, rec.SetField("bar", 1))
	assert.Equal(t, byte(1), raw[4])

	_, err = s.From(raw[:7])
	require.ErrorIs(t, err, types.ErrOutOfBounds)
	_, err = s.From(7)
	require.ErrorIs(t, err, types.ErrMissingConfig)
}

func TestDecode(t *testing.T) {
	hdr := Must(DefineStruct("header",
		Member("magic", "uint32"),
		Member("count", "uint16"),
		Member("flags", "uint8"),
		WithTypeSystem(ctype.LittleEndian),
	))
	rec, err := hdr.FromValues(map[string]any{"magic": 0xfeedface, "count": 3, "flags": 1})
	require.NoError(t, err)

	var out struct {
		Magic uint32
		Count int
		Set   bool `mem:"flags"`
	}
	require.NoError(t, rec.Decode(&out))
	assert.Equal(t, uint32(0xfeedface), out.Magic)
	assert.Equal(t, 3, out.Count)
	assert.True(t, out.Set)
}

func TestSchemaErrorsWrapKinds(t *testing.T) {
	_, err := DefineStruct("s", Member("a", 12))
	var typed *types.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, types.ErrKindInvalidSignature, typed.Kind)
}
