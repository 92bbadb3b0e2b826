package memory

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// Stream reads and writes typed values sequentially over a caller-supplied
// reader and writer. Either may be nil when only one direction is used.
type Stream struct {
	r        *bufio.Reader
	w        io.Writer
	resolver *Resolver
}

// NewStream returns a stream over r and w.
func NewStream(r io.Reader, w io.Writer, opts ...Option) *Stream {
	cfg := newBufferConfig(opts)
	s := &Stream{w: w, resolver: NewResolver(cfg.ts)}
	if r != nil {
		s.r = bufio.NewReader(r)
	}
	return s
}

func (s *Stream) reader() (*bufio.Reader, error) {
	if s.r == nil {
		return nil, types.MissingConfig("memory: stream has no reader", nil)
	}
	return s.r, nil
}

func (s *Stream) writer() (io.Writer, error) {
	if s.w == nil {
		return nil, types.MissingConfig("memory: stream has no writer", nil)
	}
	return s.w, nil
}

// EOF reports whether the reader has no more bytes.
func (s *Stream) EOF() bool {
	if s.r == nil {
		return true
	}
	_, err := s.r.Peek(1)
	return err != nil
}

// Read decodes the next value of type sig. A C string reads through its
// NUL; an open-ended array reads to the end of the stream.
func (s *Stream) Read(sig any) (any, error) {
	t, err := s.resolver.Resolve(sig)
	if err != nil {
		return nil, err
	}
	return s.readType(t)
}

func (s *Stream) readType(t ctype.Type) (any, error) {
	if _, ok := t.(*ctype.CStringType); ok {
		return s.ReadString()
	}
	r, err := s.reader()
	if err != nil {
		return nil, err
	}
	var raw []byte
	switch {
	case !ctype.Sized(t):
		raw, err = io.ReadAll(r)
	default:
		raw = make([]byte, t.Size())
		_, err = io.ReadFull(r, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("memory: read %s: %w", t, err)
	}
	return t.Unpack(raw)
}

// Write encodes v as type sig.
func (s *Stream) Write(sig any, v any) error {
	t, err := s.resolver.Resolve(sig)
	if err != nil {
		return err
	}
	return s.writeType(t, v)
}

func (s *Stream) writeType(t ctype.Type, v any) error {
	w, err := s.writer()
	if err != nil {
		return err
	}
	raw, err := t.Pack(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("memory: write %s: %w", t, err)
	}
	return nil
}

// ReadArrayOf decodes count consecutive values of type sig.
func (s *Stream) ReadArrayOf(sig any, count int) ([]any, error) {
	t, err := s.resolver.Resolve(sig)
	if err != nil {
		return nil, err
	}
	if _, err := elemSize(t); err != nil {
		return nil, err
	}
	out := make([]any, count)
	for i := range out {
		if out[i], err = s.readType(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteArrayOf encodes values as consecutive values of type sig.
func (s *Stream) WriteArrayOf(sig any, values []any) error {
	t, err := s.resolver.Resolve(sig)
	if err != nil {
		return err
	}
	at, err := ctype.NewArrayType(t, len(values))
	if err != nil {
		return err
	}
	return s.writeType(at, values)
}

// ReadString reads a NUL-terminated string and consumes the NUL.
func (s *Stream) ReadString() (string, error) {
	r, err := s.reader()
	if err != nil {
		return "", err
	}
	raw, err := r.ReadBytes(0)
	if err != nil {
		if errors.Is(err, io.EOF) && len(raw) > 0 {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("memory: read string: %w", err)
	}
	return string(raw[:len(raw)-1]), nil
}

// WriteString writes s followed by a NUL.
func (s *Stream) WriteString(str string) error {
	return s.writeType(ctype.CString, str)
}

// ReadObject decodes the next value of type sig, which must resolve to an
// array, struct or union, into a live object over fresh storage.
func (s *Stream) ReadObject(sig any) (Object, error) {
	t, err := s.resolver.Resolve(sig)
	if err != nil {
		return nil, err
	}
	if _, ok := t.(ObjectType); !ok {
		return nil, types.Errorf(types.ErrKindTypeMismatch, sig,
			"%s is not an array, struct or union", t)
	}
	v, err := s.readType(t)
	if err != nil {
		return nil, err
	}
	return v.(Object), nil
}

// WriteObject writes the bytes of obj.
func (s *Stream) WriteObject(obj Object) error {
	if obj == nil {
		return types.MissingConfig("memory: WriteObject needs an object", obj)
	}
	return s.writeType(obj.ObjectType(), obj)
}
