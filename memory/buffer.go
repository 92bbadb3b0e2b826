package memory

import (
	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/pkg/types"
)

// Buffer is fixed-size byte storage with typed access.
type Buffer struct {
	*Memory
}

// NewBuffer returns a buffer over src:
//
//   - int: a fresh zero-filled buffer of that many bytes
//   - []byte or *byteslice.ByteSlice: the caller's storage, aliased
//   - string: a copy of the string
//
// Anything else fails with ErrMissingConfig.
func NewBuffer(src any, opts ...Option) (*Buffer, error) {
	cfg := newBufferConfig(opts)
	if n, ok := src.(int); ok {
		if n < 0 {
			return nil, types.MissingConfig("memory: buffer size must not be negative", n)
		}
		return &Buffer{Memory: newMemory(byteslice.Make(n), cfg.ts)}, nil
	}
	data, err := asByteSlice(src)
	if err != nil {
		return nil, err
	}
	return &Buffer{Memory: newMemory(data, cfg.ts)}, nil
}

// asByteSlice adapts the storage forms buffers accept.
func asByteSlice(src any) (*byteslice.ByteSlice, error) {
	switch s := src.(type) {
	case *byteslice.ByteSlice:
		if s == nil {
			return nil, types.MissingConfig("memory: nil *ByteSlice", src)
		}
		return s, nil
	case []byte:
		return byteslice.Of(s), nil
	case string:
		return byteslice.Of([]byte(s)), nil
	default:
		return nil, types.MissingConfig("memory: need a size, []byte, string or *ByteSlice", src)
	}
}
