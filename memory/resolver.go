package memory

import (
	"strings"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// Resolver turns signatures into types for one platform table. It holds no
// state beyond the table, so resolving is deterministic.
type Resolver struct {
	ts *ctype.TypeSystem
}

// NewResolver returns a resolver over ts, or over ctype.Native when ts is nil.
func NewResolver(ts *ctype.TypeSystem) *Resolver {
	if ts == nil {
		ts = ctype.Native
	}
	return &Resolver{ts: ts}
}

// TypeSystem returns the table names are looked up in.
func (r *Resolver) TypeSystem() *ctype.TypeSystem { return r.ts }

// Resolve returns the type sig describes:
//
//   - a name is looked up in the table (ErrUnknownType when absent);
//     declarator suffixes are parsed first
//   - a ctype.Type is returned as-is
//   - ArraySig resolves to an *ArrayObjectType
//   - RangeSig resolves to a *ctype.UnboundedArrayType
//   - a *Schema resolves to its struct or union object type, with every
//     member resolved against this resolver's table
//
// Anything else fails with ErrInvalidSignature.
func (r *Resolver) Resolve(sig any) (ctype.Type, error) {
	switch s := sig.(type) {
	case string:
		if strings.ContainsAny(s, "[]") {
			parsed, err := ParseSignature(s)
			if err != nil {
				return nil, err
			}
			return r.Resolve(parsed)
		}
		return r.ts.Lookup(s)
	case *Schema:
		if s == nil {
			return nil, types.InvalidSignature(sig)
		}
		return s.resolve(r)
	case ctype.Type:
		return s, nil
	case ArraySig:
		elem, err := r.Resolve(s.Elem)
		if err != nil {
			return nil, err
		}
		at, err := ctype.NewArrayType(elem, s.Len)
		if err != nil {
			return nil, err
		}
		return newArrayObjectType(at, r.ts), nil
	case RangeSig:
		elem, err := r.Resolve(s.Elem)
		if err != nil {
			return nil, err
		}
		return ctype.NewUnboundedArrayType(elem)
	default:
		return nil, types.InvalidSignature(sig)
	}
}

// resolveMember resolves a struct or union member. An open-ended array of
// objects is wrapped so the member reads back as a live *Array.
func (r *Resolver) resolveMember(sig any) (ctype.Type, error) {
	t, err := r.Resolve(sig)
	if err != nil {
		return nil, err
	}
	if ut, ok := t.(*ctype.UnboundedArrayType); ok {
		if _, isObject := ut.Elem().(ObjectType); isObject {
			return newArrayObjectType(ut, r.ts), nil
		}
	}
	return t, nil
}
