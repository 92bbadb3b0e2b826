package memory

import (
	"github.com/mitchellh/mapstructure"

	"github.com/joshuapare/memkit/byteslice"
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// Record is a live struct or union.
type Record interface {
	Object
	Schema() *Schema
	// Field returns a member value; composite members are live objects.
	Field(name string) (any, error)
	// SetField encodes v into a member.
	SetField(name string, v any) error
	// Values returns every member as a plain value.
	Values() (map[string]any, error)
	// Decode copies the member values into the Go value out points to.
	Decode(out any) error
}

// members is implemented by *ctype.StructType and *ctype.UnionType.
type members interface {
	Member(name string) (ctype.Member, bool)
	Members() []ctype.Member
}

// record is the state Struct and Union share. Its Memory covers exactly
// the record's bytes.
type record struct {
	*Memory
	typ    ObjectType
	schema *Schema
	layout members
}

func newRecord(data *byteslice.ByteSlice, typ ObjectType, s *Schema, layout members) record {
	return record{Memory: newMemory(data, typ.TypeSystem()), typ: typ, schema: s, layout: layout}
}

// ObjectType returns the record's resolved type.
func (r *record) ObjectType() ObjectType { return r.typ }

// Schema returns the schema the record was built from.
func (r *record) Schema() *Schema { return r.schema }

func (r *record) member(name string) (ctype.Member, error) {
	m, ok := r.layout.Member(name)
	if !ok {
		return m, types.Errorf(types.ErrKindNotFound, name,
			"%s has no member %q", r.typ, name)
	}
	return m, nil
}

func (r *record) Field(name string) (any, error) {
	m, err := r.member(name)
	if err != nil {
		return nil, err
	}
	return r.getType(m.Type, m.Offset)
}

func (r *record) SetField(name string, v any) error {
	m, err := r.member(name)
	if err != nil {
		return err
	}
	return r.putType(m.Type, m.Offset, v)
}

func (r *record) Values() (map[string]any, error) {
	all := r.layout.Members()
	out := make(map[string]any, len(all))
	for _, m := range all {
		v, err := r.getType(m.Type, m.Offset)
		if err != nil {
			return nil, err
		}
		if out[m.Name], err = plain(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *record) Value() (any, error) { return r.Values() }

// Decode maps the member values onto out with mapstructure. Go fields
// match member names case-insensitively or through a `mem` tag.
func (r *record) Decode(out any) error {
	values, err := r.Values()
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mem",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

// Struct is a live struct record.
type Struct struct {
	record
}

// Union is a live union record. Every member reads the same bytes.
type Union struct {
	record
}

var (
	_ Record = (*Struct)(nil)
	_ Record = (*Union)(nil)
)
