package memory

import (
	"github.com/joshuapare/memkit/ctype"
	"github.com/joshuapare/memkit/pkg/types"
)

// Option configures a Buffer, Array, Stack, Stream or mapped file.
type Option interface {
	applyBuffer(*bufferConfig)
}

// SchemaOption configures a schema in DefineStruct, DefineUnion or Extend.
type SchemaOption interface {
	applySchema(*schemaConfig)
}

// bufferConfig defaults to the native type table.
type bufferConfig struct {
	ts *ctype.TypeSystem
}

func newBufferConfig(opts []Option) bufferConfig {
	cfg := bufferConfig{ts: ctype.Native}
	for _, o := range opts {
		if o != nil {
			o.applyBuffer(&cfg)
		}
	}
	return cfg
}

// SharedOption is both an Option and a SchemaOption.
type SharedOption interface {
	Option
	SchemaOption
}

type platformOption types.Platform

// WithPlatform selects the type table for types.Platform p. It applies to
// buffers and schemas alike; in a schema it is inherited by Extend.
func WithPlatform(p types.Platform) SharedOption {
	return platformOption(p)
}

func (o platformOption) applyBuffer(c *bufferConfig) { c.ts = ctype.ForPlatform(types.Platform(o)) }
func (o platformOption) applySchema(c *schemaConfig) { c.ts = ctype.ForPlatform(types.Platform(o)) }

type typeSystemOption struct{ ts *ctype.TypeSystem }

// WithTypeSystem selects a type table directly.
func WithTypeSystem(ts *ctype.TypeSystem) SharedOption {
	return typeSystemOption{ts: ts}
}

func (o typeSystemOption) applyBuffer(c *bufferConfig) {
	if o.ts != nil {
		c.ts = o.ts
	}
}

func (o typeSystemOption) applySchema(c *schemaConfig) {
	if o.ts != nil {
		c.ts = o.ts
	}
}

type schemaOptionFunc func(*schemaConfig)

func (f schemaOptionFunc) applySchema(c *schemaConfig) { f(c) }

// Member appends a member. sig is any signature Resolve accepts.
func Member(name string, sig any) SchemaOption {
	return schemaOptionFunc(func(c *schemaConfig) {
		c.members = append(c.members, SchemaMember{Name: name, Sig: sig})
	})
}

// Align overrides the computed alignment. Zero restores the natural one.
func Align(n int) SchemaOption {
	return schemaOptionFunc(func(c *schemaConfig) { c.align = n })
}

// Padding enables or disables alignment padding. Padding is on by default.
func Padding(on bool) SchemaOption {
	return schemaOptionFunc(func(c *schemaConfig) { c.padding = on })
}
