package memory

import (
	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// Array is a fixed-length typed view addressed by element index. Composite
// elements are live objects cached per index.
type Array struct {
	*Memory
	typ    *ArrayObjectType
	length int
}

// NewArray returns an array of sig elements. lengthOrBytes is either an
// element count, allocating zeroed storage, or storage accepted by
// NewBuffer, in which case the array covers every whole element.
func NewArray(sig any, lengthOrBytes any, opts ...Option) (*Array, error) {
	cfg := newBufferConfig(opts)
	r := NewResolver(cfg.ts)
	elem, err := r.Resolve(sig)
	if err != nil {
		return nil, err
	}
	es, err := elemSize(elem)
	if err != nil {
		return nil, err
	}
	if es == 0 {
		return nil, types.Errorf(types.ErrKindInvalidSignature, elem.String(),
			"array element %s has zero size", elem)
	}

	var data *byteslice.ByteSlice
	if n, ok := lengthOrBytes.(int); ok {
		if n < 0 {
			return nil, types.MissingConfig("memory: array length must not be negative", n)
		}
		data = byteslice.Make(n * es)
	} else {
		if data, err = asByteSlice(lengthOrBytes); err != nil {
			return nil, err
		}
	}
	n := data.Len() / es
	at, err := ctype.NewArrayType(elem, n)
	if err != nil {
		return nil, err
	}
	window, err := data.Subslice(0, n*es)
	if err != nil {
		return nil, err
	}
	return newArray(window, newArrayObjectType(at, cfg.ts), n), nil
}

func newArray(data *byteslice.ByteSlice, typ *ArrayObjectType, n int) *Array {
	return &Array{Memory: newMemory(data, typ.TypeSystem()), typ: typ, length: n}
}

// ObjectType returns the array's type.
func (a *Array) ObjectType() ObjectType { return a.typ }

// Elem returns the element type.
func (a *Array) Elem() ctype.Type { return a.typ.Elem() }

// Len returns the element count.
func (a *Array) Len() int { return a.length }

// At returns element i.
func (a *Array) At(i int) (any, error) {
	if i < 0 || i >= a.length {
		return nil, types.IndexOutOfBounds(i, a.length)
	}
	elem := a.Elem()
	return a.getType(elem, i*elem.Size())
}

// Set encodes v into element i.
func (a *Array) Set(i int, v any) error {
	if i < 0 || i >= a.length {
		return types.IndexOutOfBounds(i, a.length)
	}
	elem := a.Elem()
	return a.putType(elem, i*elem.Size(), v)
}

// Values returns every element as a plain value.
func (a *Array) Values() ([]any, error) {
	out := make([]any, a.length)
	for i := range out {
		v, err := a.At(i)
		if err != nil {
			return nil, err
		}
		if out[i], err = plain(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Value implements Object.
func (a *Array) Value() (any, error) { return a.Values() }

// Each calls fn with every element in order, stopping at the first error.
func (a *Array) Each(fn func(i int, v any) error) error {
	for i := 0; i < a.length; i++ {
		v, err := a.At(i)
		if err != nil {
			return err
		}
		if err := fn(i, v); err != nil {
			return err
		}
	}
	return nil
}
