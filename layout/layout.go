package layout

import (
	"fmt"
	"strings"

	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/internal/logger"
	"github.com/joshuapare/memkit/memory"
	"github.com/joshuapare/memkit/pkg/types"
)

// Layout is a compiled layout file: named schemas in declaration order.
type Layout struct {
	ts      *ctype.TypeSystem
	names   []string
	schemas map[string]*memory.Schema
}

// Compile turns a decoded file into schemas. Types may only refer to types
// declared before them.
func Compile(file *File) (*Layout, error) {
	p, err := file.Platform.parse()
	if err != nil {
		return nil, fmt.Errorf("layout: platform: %w", err)
	}
	l := &Layout{
		ts:      ctype.ForPlatform(p),
		schemas: make(map[string]*memory.Schema, len(file.Types)),
	}
	padding := file.Padding == nil || *file.Padding
	for i := range file.Types {
		spec := &file.Types[i]
		s, err := l.compile(spec, padding, file.Align)
		if err != nil {
			return nil, fmt.Errorf("layout: type %q: %w", spec.Name, err)
		}
		l.schemas[spec.Name] = s
		l.names = append(l.names, spec.Name)
	}
	logger.Debug("layout compiled", "platform", l.ts.Name(), "types", len(l.names))
	return l, nil
}

func (l *Layout) compile(spec *TypeSpec, padding bool, align int) (*memory.Schema, error) {
	if spec.Name == "" {
		return nil, types.MissingConfig("layout: type needs a name", spec.Name)
	}
	if _, dup := l.schemas[spec.Name]; dup {
		return nil, types.Errorf(types.ErrKindInvalidSignature, spec.Name, "type %q declared twice", spec.Name)
	}
	kind, err := parseKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	var opts []memory.SchemaOption
	if spec.Platform != nil {
		p, err := spec.Platform.parse()
		if err != nil {
			return nil, err
		}
		opts = append(opts, memory.WithPlatform(p))
	}
	if spec.Padding != nil {
		opts = append(opts, memory.Padding(*spec.Padding))
	}
	if spec.Align != nil {
		opts = append(opts, memory.Align(*spec.Align))
	}
	for _, m := range spec.Members {
		sig, err := l.signature(m.Type)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Name, err)
		}
		opts = append(opts, memory.Member(m.Name, sig))
	}

	if spec.Extends != "" {
		parent, err := l.Schema(spec.Extends)
		if err != nil {
			return nil, err
		}
		if spec.Kind != "" && kind != parent.Kind() {
			return nil, types.Errorf(types.ErrKindInvalidSignature, spec.Kind,
				"%s cannot extend %s", kind, parent)
		}
		return parent.Extend(spec.Name, opts...)
	}

	base := []memory.SchemaOption{
		memory.WithTypeSystem(l.ts),
		memory.Padding(padding),
		memory.Align(align),
	}
	opts = append(base, opts...)
	if kind == memory.KindUnion {
		return memory.DefineUnion(spec.Name, opts...)
	}
	return memory.DefineStruct(spec.Name, opts...)
}

func parseKind(s string) (memory.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "struct":
		return memory.KindStruct, nil
	case "union":
		return memory.KindUnion, nil
	default:
		return 0, types.Errorf(types.ErrKindInvalidSignature, s, "unknown kind %q", s)
	}
}

// signature parses a member type string and binds every name declared in
// the layout to its schema.
func (l *Layout) signature(s string) (any, error) {
	sig, err := memory.ParseSignature(s)
	if err != nil {
		return nil, err
	}
	return l.bind(sig), nil
}

func (l *Layout) bind(sig any) any {
	switch s := sig.(type) {
	case string:
		if schema, ok := l.schemas[s]; ok {
			return schema
		}
		return s
	case memory.ArraySig:
		return memory.ArrayOf(l.bind(s.Elem), s.Len)
	case memory.RangeSig:
		return memory.Unbounded(l.bind(s.Elem))
	default:
		return sig
	}
}

// Schema returns the named type.
func (l *Layout) Schema(name string) (*memory.Schema, error) {
	s, ok := l.schemas[name]
	if !ok {
		return nil, types.Errorf(types.ErrKindNotFound, name, "layout has no type %q", name)
	}
	return s, nil
}

// Names returns the type names in declaration order.
func (l *Layout) Names() []string { return append([]string(nil), l.names...) }

// TypeSystem returns the file-level platform table.
func (l *Layout) TypeSystem() *ctype.TypeSystem { return l.ts }

// Signature parses s against the layout, so "point[2]" names an array of
// the layout's point records. Other names pass through to the type table.
func (l *Layout) Signature(s string) (any, error) { return l.signature(s) }
