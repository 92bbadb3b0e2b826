package memory

import (
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// Stack is a LIFO of machine words. Its size is always a whole number of
// words.
type Stack struct {
	data []byte
	word ctype.Type
}

// NewStack returns a stack holding a copy of init, which may be nil, a
// []byte or a string of whole machine words.
func NewStack(init any, opts ...Option) (*Stack, error) {
	cfg := newBufferConfig(opts)
	s := &Stack{word: cfg.ts.MachineWord()}
	switch b := init.(type) {
	case nil:
	case []byte:
		s.data = append([]byte(nil), b...)
	case string:
		s.data = []byte(b)
	default:
		return nil, types.MissingConfig("memory: stack contents must be []byte or string", init)
	}
	if len(s.data)%s.word.Size() != 0 {
		return nil, types.Errorf(types.ErrKindMissingConfig, len(s.data),
			"memory: stack of %d bytes is not a whole number of %d-byte words",
			len(s.data), s.word.Size())
	}
	return s, nil
}

// Word returns the machine word type.
func (s *Stack) Word() ctype.Type { return s.word }

// Len returns the number of words.
func (s *Stack) Len() int { return len(s.data) / s.word.Size() }

// Size returns the number of bytes.
func (s *Stack) Size() int { return len(s.data) }

// Bytes returns the stack contents, aliased until the next Push.
func (s *Stack) Bytes() []byte { return s.data }

// Push appends v encoded as one machine word.
func (s *Stack) Push(v any) error {
	raw, err := s.word.Pack(v)
	if err != nil {
		return err
	}
	s.data = append(s.data, raw...)
	return nil
}

// Pop removes and returns the top word.
func (s *Stack) Pop() (any, error) {
	v, err := s.Peek()
	if err != nil {
		return nil, err
	}
	s.data = s.data[:len(s.data)-s.word.Size()]
	return v, nil
}

// Peek returns the top word without removing it.
func (s *Stack) Peek() (any, error) {
	if len(s.data) == 0 {
		return nil, types.Errorf(types.ErrKindUnderflow, nil, "pop from an empty stack")
	}
	return s.word.Unpack(s.data[len(s.data)-s.word.Size():])
}

// index resolves a word index; negative indices count from the top.
func (s *Stack) index(i int) (int, error) {
	n := s.Len()
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, types.IndexOutOfBounds(i, n)
	}
	return j * s.word.Size(), nil
}

// At returns word i counted from the bottom, or from the top when negative.
func (s *Stack) At(i int) (any, error) {
	off, err := s.index(i)
	if err != nil {
		return nil, err
	}
	return s.word.Unpack(s.data[off:])
}

// Set overwrites word i.
func (s *Stack) Set(i int, v any) error {
	off, err := s.index(i)
	if err != nil {
		return err
	}
	raw, err := s.word.Pack(v)
	if err != nil {
		return err
	}
	copy(s.data[off:], raw)
	return nil
}
