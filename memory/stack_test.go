package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/pkg/types"
)

var x86_64 = WithPlatform(types.Platform{Arch: types.ArchX86_64})

func TestStackPushPop(t *testing.T) {
	s, err := NewStack(nil, x86_64)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Word().Size())

	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(0x41))
	assert.Equal(t, 16, s.Size())
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0x41, 0, 0, 0, 0, 0, 0, 0}, s.Bytes())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x41), v)
	assert.Equal(t, 8, s.Size())
	assert.Equal(t, 1, s.Len())

	v, err = s.Peek()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, 1, s.Len(), "peek does not pop")
}

func TestStackUnderflow(t *testing.T) {
	s, err := NewStack(nil, x86_64)
	require.NoError(t, err)

	_, err = s.Pop()
	require.ErrorIs(t, err, types.ErrUnderflow)
	require.EqualError(t, err, "pop from an empty stack")
	_, err = s.Peek()
	require.ErrorIs(t, err, types.ErrUnderflow)
}

func TestStackIndexing(t *testing.T) {
	s, err := NewStack(nil, WithPlatform(types.Platform{Arch: types.ArchX86}))
	require.NoError(t, err)
	for _, v := range []int{10, 20, 30} {
		require.NoError(t, s.Push(v))
	}
	assert.Equal(t, 12, s.Size())

	bottom, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), bottom)
	top, err := s.At(-1)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), top)

	require.NoError(t, s.Set(-2, 99))
	mid, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), mid)

	for _, i := range []int{3, -4} {
		_, err := s.At(i)
		require.ErrorIs(t, err, types.ErrOutOfBounds, "index %d", i)
		require.ErrorIs(t, s.Set(i, 0), types.ErrOutOfBounds, "index %d", i)
	}
	require.ErrorIs(t, s.Push(1<<32), types.ErrOutOfRange)
	assert.Equal(t, 3, s.Len())
}

func TestNewStackContents(t *testing.T) {
	init := []byte{7, 0, 0, 0, 0, 0, 0, 0}
	s, err := NewStack(init, x86_64)
	require.NoError(t, err)
	init[0] = 8
	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v, "initial contents are copied")

	_, err = NewStack(make([]byte, 5), x86_64)
	require.ErrorIs(t, err, types.ErrMissingConfig)
	_, err = NewStack(42, x86_64)
	require.ErrorIs(t, err, types.ErrMissingConfig)

	s, err = NewStack("\x01\x00\x00\x00", WithPlatform(types.Platform{Arch: types.ArchARM}))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}
