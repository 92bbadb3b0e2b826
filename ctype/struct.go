package ctype

import (
	"fmt"
	"strings"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/pkg/types"
)

// Field names one member in declaration order.
type Field struct {
	Name string
	Type Type
}

// Member is a laid-out field.
type Member struct {
	Name   string
	Type   Type
	Offset int
}

// LayoutOptions tune struct and union layout. The zero value lays members
// out the way a C compiler does by default.
type LayoutOptions struct {
	// Alignment overrides the computed alignment when positive.
	Alignment int
	// Packed removes alignment padding between members and at the tail.
	Packed bool
}

// layout is the state StructType and UnionType share.
type layout struct {
	members []Member
	index   map[string]int
	size    int
	align   int
	packed  bool
}

func newLayout(fields []Field, opts LayoutOptions) (layout, error) {
	l := layout{
		members: make([]Member, len(fields)),
		index:   make(map[string]int, len(fields)),
		packed:  opts.Packed,
	}
	for i, f := range fields {
		if f.Name == "" {
			return l, types.Errorf(types.ErrKindInvalidSignature, i, "member %d has no name", i)
		}
		if f.Type == nil {
			return l, types.Errorf(types.ErrKindInvalidSignature, f.Name, "member %q has no type", f.Name)
		}
		if _, dup := l.index[f.Name]; dup {
			return l, types.Errorf(types.ErrKindInvalidSignature, f.Name, "duplicate member %q", f.Name)
		}
		l.index[f.Name] = i
		l.members[i] = Member{Name: f.Name, Type: f.Type}
	}
	if opts.Alignment < 0 {
		return l, types.Errorf(types.ErrKindInvalidSignature, opts.Alignment,
			"alignment %d is negative", opts.Alignment)
	}
	l.align = opts.Alignment
	if l.align == 0 {
		l.align = 1
		for _, m := range l.members {
			if a := m.Type.Alignment(); a > l.align {
				l.align = a
			}
		}
	}
	return l, nil
}

func (l *layout) Alignment() int       { return l.align }
func (l *layout) Size() int            { return l.size }
func (l *layout) Endian() types.Endian { return types.EndianNone }
func (l *layout) Signed() bool         { return false }

// Packed reports whether padding is disabled.
func (l *layout) Packed() bool { return l.packed }

// Members returns the laid-out members in declaration order.
func (l *layout) Members() []Member {
	out := make([]Member, len(l.members))
	copy(out, l.members)
	return out
}

// Member looks up a member by name.
func (l *layout) Member(name string) (Member, bool) {
	i, ok := l.index[name]
	if !ok {
		return Member{}, false
	}
	return l.members[i], true
}

// Offset returns the byte offset of the named member.
func (l *layout) Offset(name string) (int, error) {
	m, ok := l.Member(name)
	if !ok {
		return 0, notMember(name)
	}
	return m.Offset, nil
}

// fields renders the member list for String.
func (l *layout) fields() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range l.members {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s %s", m.Name, m.Type)
	}
	sb.WriteByte('}')
	return sb.String()
}

// checkKeys rejects values naming members that do not exist.
func (l *layout) checkKeys(m map[string]any) error {
	for _, k := range sortedKeys(m) {
		if _, ok := l.index[k]; !ok {
			return notMember(k)
		}
	}
	return nil
}

func notMember(name string) error {
	return types.Errorf(types.ErrKindNotFound, name, "no member named %q", name)
}

// StructType lays members out one after another, aligning each to its own
// boundary unless packed, and rounds the total up to the struct alignment.
type StructType struct {
	layout
}

// NewStructType computes offsets, size and alignment for fields. Only the
// last field may be unsized; the struct is then unsized too.
func NewStructType(fields []Field, opts LayoutOptions) (*StructType, error) {
	l, err := newLayout(fields, opts)
	if err != nil {
		return nil, err
	}
	end := 0
	for i := range l.members {
		m := &l.members[i]
		if !Sized(m.Type) && i != len(l.members)-1 {
			return nil, types.Errorf(types.ErrKindInvalidSignature, m.Name,
				"member %q has no fixed size and is not the last member", m.Name)
		}
		if !l.packed {
			end = format.AlignUp(end, m.Type.Alignment())
		}
		m.Offset = end
		if !Sized(m.Type) {
			end = Unsized
			break
		}
		end += m.Type.Size()
	}
	switch {
	case end == Unsized:
		l.size = Unsized
	case l.packed:
		l.size = end
	default:
		l.size = format.AlignUp(end, l.align)
	}
	return &StructType{layout: l}, nil
}

func (t *StructType) String() string { return "struct" + t.fields() }

func (t *StructType) Pack(v any) ([]byte, error) { return pack(t, v) }

func (t *StructType) Unpack(b []byte) (any, error) { return unpack(t, b) }

// EnqueueValue flattens a map of member values in declaration order.
// Absent members pack as zero.
func (t *StructType) EnqueueValue(values []any, v any) ([]any, error) {
	var m map[string]any
	if v != nil {
		var ok bool
		if m, ok = record(v); !ok {
			return values, types.TypeMismatch(v, t.String())
		}
		if err := t.checkKeys(m); err != nil {
			return values, err
		}
	}
	for _, mem := range t.members {
		var err error
		if values, err = mem.Type.EnqueueValue(values, m[mem.Name]); err != nil {
			return values, err
		}
	}
	return values, nil
}

func (t *StructType) DequeueValue(values []any) (any, []any, error) {
	out := make(map[string]any, len(t.members))
	for _, mem := range t.members {
		var (
			v   any
			err error
		)
		if v, values, err = mem.Type.DequeueValue(values); err != nil {
			return nil, values, err
		}
		out[mem.Name] = v
	}
	return out, values, nil
}

func (t *StructType) PackValues(dst []byte, values []any) ([]byte, []any, error) {
	start := len(dst)
	for _, mem := range t.members {
		dst = padTo(dst, start+mem.Offset)
		var err error
		if dst, values, err = mem.Type.PackValues(dst, values); err != nil {
			return dst, values, err
		}
	}
	if t.size != Unsized {
		dst = padTo(dst, start+t.size)
	}
	return dst, values, nil
}

func (t *StructType) UnpackValues(src []byte, values []any) ([]any, error) {
	if err := shortRead(t, src); err != nil {
		return values, err
	}
	for _, mem := range t.members {
		if mem.Offset > len(src) {
			return values, types.OutOfBounds(mem.Offset, 0, len(src))
		}
		window := src[mem.Offset:]
		if Sized(mem.Type) {
			window = window[:mem.Type.Size()]
		}
		var err error
		if values, err = mem.Type.UnpackValues(window, values); err != nil {
			return values, err
		}
	}
	return values, nil
}
