// Package memory reads and writes C data layouts in byte storage.
//
// Types are named by signatures: a type name from a platform table
// ("uint32", "char[16]", "uint8[]"), ArrayOf and Unbounded, a *Schema, or
// a ctype.Type. A Resolver turns signatures into types.
//
// Schemas declare structs and unions:
//
//	header := memory.Must(memory.DefineStruct("header",
//	    memory.Member("magic", "char[4]"),
//	    memory.Member("count", "uint16"),
//	    memory.WithPlatform(types.Platform{Endian: types.EndianBig}),
//	))
//
// Buffer, Array and the Struct and Union records share one access layer,
// Memory. Offsets are validated before anything is written, and composite
// values come back as live objects that alias the storage:
//
//	buf, _ := memory.NewBuffer(64)
//	obj, _ := buf.GetObject(header, 8)
//	rec := obj.(*memory.Struct)
//	rec.SetField("count", 3) // visible through buf.Bytes()[12:14]
//
// Stack is a machine-word LIFO; Stream applies the same typed reads and
// writes to an io.Reader and io.Writer; MapFile maps a file as a Buffer.
//
// Nothing in this package is safe for concurrent mutation.
package memory
