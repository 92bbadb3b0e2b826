package memory

import (
	"fmt"

	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/internal/logger"
	"github.com/joshuapare/memkit/pkg/types"
)

// Kind distinguishes struct schemas from union schemas.
type Kind int

const (
	KindStruct Kind = iota
	KindUnion
)

func (k Kind) String() string {
	if k == KindUnion {
		return "union"
	}
	return "struct"
}

// SchemaMember is a declared member: a name and an unresolved signature.
type SchemaMember struct {
	Name string
	Sig  any
}

type schemaConfig struct {
	members []SchemaMember
	ts      *ctype.TypeSystem
	align   int
	padding bool
}

// Schema is an immutable struct or union definition. Its type is resolved
// when the schema is defined; Extend derives a new schema and resolves it
// afresh, so a changed platform, alignment or padding never reuses the
// parent's layout.
type Schema struct {
	name   string
	kind   Kind
	cfg    schemaConfig
	parent *Schema
	typ    ObjectType
}

// DefineStruct defines a struct schema.
//
//	point, err := memory.DefineStruct("point",
//	    memory.Member("x", "int32"),
//	    memory.Member("y", "int32"),
//	)
func DefineStruct(name string, opts ...SchemaOption) (*Schema, error) {
	return define(name, KindStruct, nil, schemaConfig{ts: ctype.Native, padding: true}, opts)
}

// DefineUnion defines a union schema.
func DefineUnion(name string, opts ...SchemaOption) (*Schema, error) {
	return define(name, KindUnion, nil, schemaConfig{ts: ctype.Native, padding: true}, opts)
}

// Must panics if err is non-nil. It is meant for package-level schemas.
func Must(s *Schema, err error) *Schema {
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a schema of the same kind. Members, platform, alignment
// and padding are inherited; opts append members and override the rest.
func (s *Schema) Extend(name string, opts ...SchemaOption) (*Schema, error) {
	cfg := s.cfg
	cfg.members = append([]SchemaMember(nil), s.cfg.members...)
	return define(name, s.kind, s, cfg, opts)
}

func define(name string, kind Kind, parent *Schema, cfg schemaConfig, opts []SchemaOption) (*Schema, error) {
	if name == "" {
		return nil, types.MissingConfig("memory: schema needs a name", name)
	}
	for _, o := range opts {
		if o != nil {
			o.applySchema(&cfg)
		}
	}
	s := &Schema{name: name, kind: kind, cfg: cfg, parent: parent}
	typ, err := s.build(NewResolver(cfg.ts))
	if err != nil {
		return nil, err
	}
	s.typ = typ
	return s, nil
}

// resolve returns the schema's type for r's table, reusing the type
// resolved at definition when the tables match.
func (s *Schema) resolve(r *Resolver) (ObjectType, error) {
	if s.typ != nil && r.ts == s.cfg.ts {
		return s.typ, nil
	}
	return s.build(r)
}

func (s *Schema) build(r *Resolver) (ObjectType, error) {
	fields := make([]ctype.Field, len(s.cfg.members))
	for i, m := range s.cfg.members {
		t, err := r.resolveMember(m.Sig)
		if err != nil {
			return nil, fmt.Errorf("%s %s: member %q: %w", s.kind, s.name, m.Name, err)
		}
		fields[i] = ctype.Field{Name: m.Name, Type: t}
	}
	opts := ctype.LayoutOptions{Alignment: s.cfg.align, Packed: !s.cfg.padding}

	var typ ObjectType
	switch s.kind {
	case KindUnion:
		ut, err := ctype.NewUnionType(fields, opts)
		if err != nil {
			return nil, fmt.Errorf("union %s: %w", s.name, err)
		}
		typ = newUnionObjectType(s, ut, r.ts)
	default:
		st, err := ctype.NewStructType(fields, opts)
		if err != nil {
			return nil, fmt.Errorf("struct %s: %w", s.name, err)
		}
		typ = newStructObjectType(s, st, r.ts)
	}
	logger.Debug("schema resolved",
		"kind", s.kind.String(),
		"name", s.name,
		"platform", r.ts.Name(),
		"size", typ.Size(),
		"align", typ.Alignment(),
	)
	return typ, nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Kind reports whether the schema is a struct or a union.
func (s *Schema) Kind() Kind { return s.kind }

// Parent returns the schema s was extended from, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// Members returns the declared members, inherited ones first.
func (s *Schema) Members() []SchemaMember {
	return append([]SchemaMember(nil), s.cfg.members...)
}

// Platform returns the platform of the schema's type table.
func (s *Schema) Platform() types.Platform { return s.cfg.ts.Platform() }

// TypeSystem returns the schema's type table.
func (s *Schema) TypeSystem() *ctype.TypeSystem { return s.cfg.ts }

// Align returns the alignment override, or 0 when none is set.
func (s *Schema) Align() int { return s.cfg.align }

// Alignment returns the resolved alignment.
func (s *Schema) Alignment() int { return s.typ.Alignment() }

// Padding reports whether members are padded to their alignment.
func (s *Schema) Padding() bool { return s.cfg.padding }

// Type returns the resolved object type.
func (s *Schema) Type() ObjectType { return s.typ }

// Size returns the resolved size, or ctype.Unsized.
func (s *Schema) Size() int { return s.typ.Size() }

// Layout returns the laid-out members.
func (s *Schema) Layout() []ctype.Member {
	switch t := s.typ.(type) {
	case *StructObjectType:
		return t.st.Members()
	case *UnionObjectType:
		return t.ut.Members()
	default:
		return nil
	}
}

// Offset returns the byte offset of the named member.
func (s *Schema) Offset(name string) (int, error) {
	for _, m := range s.Layout() {
		if m.Name == name {
			return m.Offset, nil
		}
	}
	return 0, types.Errorf(types.ErrKindNotFound, name, "%s %s has no member %q", s.kind, s.name, name)
}

func (s *Schema) String() string { return s.kind.String() + " " + s.name }

// minSize is the storage a new record needs: the full size, or the fixed
// prefix of an unsized struct.
func (s *Schema) minSize() int {
	if size := s.Size(); size != ctype.Unsized {
		return size
	}
	layout := s.Layout()
	return layout[len(layout)-1].Offset
}

// New returns a zeroed record over fresh storage.
func (s *Schema) New() (Record, error) {
	return s.wrap(byteslice.Make(s.minSize()))
}

// From returns a record over src, which may be a []byte or *ByteSlice
// (aliased) or a string (copied).
func (s *Schema) From(src any) (Record, error) {
	data, err := asByteSlice(src)
	if err != nil {
		return nil, err
	}
	return s.wrap(data)
}

// FromValues packs values into fresh storage and returns a record over it.
func (s *Schema) FromValues(values map[string]any) (Record, error) {
	raw, err := s.typ.Pack(values)
	if err != nil {
		return nil, err
	}
	return s.wrap(byteslice.Of(raw))
}

func (s *Schema) wrap(data *byteslice.ByteSlice) (Record, error) {
	obj, err := s.typ.Wrap(data)
	if err != nil {
		return nil, err
	}
	return obj.(Record), nil
}
