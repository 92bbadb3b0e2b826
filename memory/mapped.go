package memory

import (
	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/internal/mmfile"
)

// MappedBuffer is a Buffer whose storage is a shared mapping of a file.
// Writes reach the file on Sync or Close.
type MappedBuffer struct {
	*Buffer
	mapping *mmfile.Mapping
}

// MapFile maps the file at path read-write. The buffer size is the file
// size; it does not grow.
func MapFile(path string, opts ...Option) (*MappedBuffer, error) {
	m, err := mmfile.Map(path, true)
	if err != nil {
		return nil, err
	}
	cfg := newBufferConfig(opts)
	return &MappedBuffer{
		Buffer:  &Buffer{Memory: newMemory(byteslice.Of(m.Data), cfg.ts)},
		mapping: m,
	}, nil
}

// Sync flushes modified bytes to the file.
func (b *MappedBuffer) Sync() error { return b.mapping.Sync() }

// Close flushes and unmaps the file. The buffer must not be used afterwards.
func (b *MappedBuffer) Close() error {
	if err := b.mapping.Sync(); err != nil {
		b.mapping.Close()
		return err
	}
	return b.mapping.Close()
}
