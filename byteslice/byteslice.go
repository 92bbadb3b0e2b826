// Package byteslice provides ByteSlice, a bounds-checked window onto shared
// byte storage.
//
// Windows compose without nesting: a ByteSlice built over another ByteSlice
// points straight at the root storage with the two offsets added, so every
// access is one indirection regardless of how the window was derived.
// Writes through any window are visible through every other window over the
// same storage.
package byteslice

import (
	"bytes"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/pkg/types"
)

// ToEnd as a length means "through the end of the base".
const ToEnd = -1

// ByteSlice is a window [offset, offset+length) onto root storage.
type ByteSlice struct {
	data   []byte
	offset int
	length int
}

// New returns a window over base, which may be a []byte (aliased), a string
// (copied into fresh storage) or a *ByteSlice (composed). The window must lie
// within base; length ToEnd extends it to the end of base.
func New(base any, offset, length int) (*ByteSlice, error) {
	var (
		data    []byte
		rootOff int
		limit   int
	)
	switch b := base.(type) {
	case []byte:
		data, limit = b, len(b)
	case string:
		data, limit = []byte(b), len(b)
	case *ByteSlice:
		if b == nil {
			return nil, types.MissingConfig("byteslice: base is a nil *ByteSlice", base)
		}
		data, rootOff, limit = b.data, b.offset, b.length
	default:
		return nil, types.MissingConfig("byteslice: base must be []byte, string or *ByteSlice", base)
	}
	if length == ToEnd {
		length = limit - offset
	}
	if err := buf.CheckRange(limit, offset, length); err != nil {
		return nil, err
	}
	return &ByteSlice{data: data, offset: rootOff + offset, length: length}, nil
}

// Of returns a window covering all of b.
func Of(b []byte) *ByteSlice {
	return &ByteSlice{data: b, length: len(b)}
}

// Make returns a window over n fresh zero bytes.
func Make(n int) *ByteSlice {
	return Of(make([]byte, n))
}

// Len returns the window length.
func (s *ByteSlice) Len() int { return s.length }

// Offset returns the window start within the root storage.
func (s *ByteSlice) Offset() int { return s.offset }

// At returns the byte at index i.
func (s *ByteSlice) At(i int) (byte, error) {
	if i < 0 || i >= s.length {
		return 0, types.IndexOutOfBounds(i, s.length)
	}
	return s.data[s.offset+i], nil
}

// Set stores c at index i.
func (s *ByteSlice) Set(i int, c byte) error {
	if i < 0 || i >= s.length {
		return types.IndexOutOfBounds(i, s.length)
	}
	s.data[s.offset+i] = c
	return nil
}

// Slice returns the n bytes at i, aliasing the storage. n may be ToEnd.
func (s *ByteSlice) Slice(i, n int) ([]byte, error) {
	if n == ToEnd {
		n = s.length - i
	}
	if err := buf.CheckRange(s.length, i, n); err != nil {
		return nil, err
	}
	start := s.offset + i
	return s.data[start : start+n : start+n], nil
}

// Subslice returns a window of n bytes at off, relative to s.
func (s *ByteSlice) Subslice(off, n int) (*ByteSlice, error) {
	return New(s, off, n)
}

// IndexOf returns the index of the first occurrence of pattern at or after
// from, searching only inside the window.
func (s *ByteSlice) IndexOf(pattern []byte, from int) (int, error) {
	if from < 0 || from > s.length {
		return 0, types.IndexOutOfBounds(from, s.length)
	}
	if i := bytes.Index(s.Bytes()[from:], pattern); i >= 0 {
		return from + i, nil
	}
	return 0, types.Errorf(types.ErrKindNotFound, pattern,
		"pattern %q not found after index %d", pattern, from)
}

// Bytes returns the window, aliasing the storage.
func (s *ByteSlice) Bytes() []byte {
	end := s.offset + s.length
	return s.data[s.offset:end:end]
}

// String returns a copy of the window as a string.
func (s *ByteSlice) String() string { return string(s.Bytes()) }

// Write copies p into the window at i. Nothing is written unless all of p fits.
func (s *ByteSlice) Write(i int, p []byte) error {
	if err := buf.CheckRange(s.length, i, len(p)); err != nil {
		return err
	}
	copy(s.data[s.offset+i:], p)
	return nil
}

// Fill sets every byte of the window to c.
func (s *ByteSlice) Fill(c byte) {
	b := s.Bytes()
	for i := range b {
		b[i] = c
	}
}

// Copy returns a window over a private copy of the bytes.
func (s *ByteSlice) Copy() *ByteSlice {
	return Of(bytes.Clone(s.Bytes()))
}

// Equal reports whether two windows hold the same bytes.
func (s *ByteSlice) Equal(o *ByteSlice) bool {
	return bytes.Equal(s.Bytes(), o.Bytes())
}
