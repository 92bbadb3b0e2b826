package memory

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

func TestStreamRoundTrip(t *testing.T) {
	hdr := Must(DefineStruct("hdr",
		Member("kind", "uint8"),
		Member("len", "uint16"),
		WithTypeSystem(ctype.BigEndian),
	))
	big := WithTypeSystem(ctype.BigEndian)

	var out bytes.Buffer
	w := NewStream(nil, &out, big)
	require.NoError(t, w.Write("uint32", 0xcafebabe))
	require.NoError(t, w.WriteString("name"))
	require.NoError(t, w.WriteArrayOf("int16", []any{-1, 2}))
	rec, err := hdr.FromValues(map[string]any{"kind": 3, "len": 258})
	require.NoError(t, err)
	require.NoError(t, w.WriteObject(rec))
	require.NoError(t, w.Write("uint8[]", []any{9, 8}))

	assert.Equal(t, []byte{
		0xca, 0xfe, 0xba, 0xbe,
		'n', 'a', 'm', 'e', 0,
		0xff, 0xff, 0, 2,
		3, 0, 1, 2,
		9, 8,
	}, out.Bytes())

	r := NewStream(bytes.NewReader(out.Bytes()), nil, big)
	v, err := r.Read("uint32")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xcafebabe), v)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "name", s)

	vals, err := r.ReadArrayOf("int16", 2)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(-1), int64(2)}, vals)

	obj, err := r.ReadObject(hdr)
	require.NoError(t, err)
	n, err := obj.(*Struct).Field("len")
	require.NoError(t, err)
	assert.Equal(t, uint64(258), n)

	assert.False(t, r.EOF())
	rest, err := r.Read("uint8[]")
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(9), uint64(8)}, rest)
	assert.True(t, r.EOF())
}

func TestStreamReadCString(t *testing.T) {
	r := NewStream(strings.NewReader("ab\x00cd"), nil)
	v, err := r.Read("string")
	require.NoError(t, err)
	assert.Equal(t, "ab", v)

	_, err = r.ReadString()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStreamShortRead(t *testing.T) {
	r := NewStream(bytes.NewReader([]byte{1, 2}), nil)
	_, err := r.Read("uint32")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStreamMissingDirection(t *testing.T) {
	s := NewStream(nil, nil)
	assert.True(t, s.EOF())
	_, err := s.Read("uint8")
	require.ErrorIs(t, err, types.ErrMissingConfig)
	require.ErrorIs(t, s.Write("uint8", 1), types.ErrMissingConfig)
	require.ErrorIs(t, s.WriteObject(nil), types.ErrMissingConfig)

	_, err = NewStream(strings.NewReader("x"), nil).ReadObject("uint8")
	require.ErrorIs(t, err, types.ErrTypeMismatch)
	_, err = NewStream(strings.NewReader("x"), nil).ReadArrayOf("uint8[]", 1)
	require.ErrorIs(t, err, types.ErrInvalidSignature)
}
