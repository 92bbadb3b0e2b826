package ctype

import (
	"fmt"
	"sort"
	"sync"

	"github.com/joshuapare/memkit/pkg/types"
)

// TypeSystem is an immutable table from C type names to types for one
// platform. Tables are shared process-wide; obtain them with ForPlatform.
type TypeSystem struct {
	platform types.Platform
	model    dataModel
	table    map[string]Type
}

var (
	// Native uses the byte order and word size of the running process.
	Native = ForPlatform(types.Platform{})
	// LittleEndian is the native table with little-endian multi-byte types.
	LittleEndian = ForPlatform(types.Platform{Endian: types.EndianLittle})
	// BigEndian is the native table with big-endian multi-byte types.
	BigEndian = ForPlatform(types.Platform{Endian: types.EndianBig})
	// Network is BigEndian.
	Network = BigEndian
)

var systems sync.Map // types.Platform -> *TypeSystem

// ForPlatform returns the table for p, building it on first use.
func ForPlatform(p types.Platform) *TypeSystem {
	if ts, ok := systems.Load(p); ok {
		return ts.(*TypeSystem)
	}
	ts, _ := systems.LoadOrStore(p, buildTypeSystem(p))
	return ts.(*TypeSystem)
}

func buildTypeSystem(p types.Platform) *TypeSystem {
	ts := &TypeSystem{platform: p, model: modelFor(p), table: make(map[string]Type, 128)}
	ts.addScalars()
	for _, overlay := range osOverlays[p.OS] {
		for _, td := range overlay {
			target, ok := ts.table[td.target]
			if !ok {
				panic(fmt.Sprintf("ctype: typedef %s refers to unknown type %s", td.name, td.target))
			}
			ts.table[td.name] = target
		}
	}
	return ts
}

func (ts *TypeSystem) addScalars() {
	m := ts.model
	for _, size := range []int{1, 2, 4, 8} {
		for suffix, endian := range map[string]types.Endian{
			"":    m.endian,
			"_ne": m.endian,
			"_le": types.EndianLittle,
			"_be": types.EndianBig,
		} {
			var (
				s IntType = *NewInt(size, endian)
				u IntType = *NewUInt(size, endian)
			)
			if size == 8 {
				s.align, u.align = m.align8, m.align8
			}
			ts.table[fmt.Sprintf("int%d%s", size*8, suffix)] = &s
			ts.table[fmt.Sprintf("uint%d%s", size*8, suffix)] = &u
			switch size {
			case 4:
				ts.table["float32"+suffix] = NewFloat(4, endian)
			case 8:
				ts.table["float64"+suffix] = NewFloat(8, endian).WithAlignment(m.align8)
			}
		}
	}

	ts.table["char"] = NewChar(true)
	ts.table["uchar"] = NewChar(false)
	ts.table["string"] = CString

	for _, alias := range []typedef{
		{"byte", "uint8"},
		{"short", "int16"},
		{"ushort", "uint16"},
		{"int", "int32"},
		{"uint", "uint32"},
		{"long", fmt.Sprintf("int%d", m.long*8)},
		{"ulong", fmt.Sprintf("uint%d", m.long*8)},
		{"long_long", "int64"},
		{"ulong_long", "uint64"},
		{"float", "float32"},
		{"double", "float64"},
		{"intptr", fmt.Sprintf("int%d", m.word*8)},
		{"uintptr", fmt.Sprintf("uint%d", m.word*8)},
		{"pointer", fmt.Sprintf("uint%d", m.word*8)},
		{"machine_word", fmt.Sprintf("uint%d", m.word*8)},
	} {
		ts.table[alias.name] = ts.table[alias.target]
	}
}

// Lookup returns the type registered under name.
func (ts *TypeSystem) Lookup(name string) (Type, error) {
	t, ok := ts.table[name]
	if !ok {
		return nil, types.UnknownType(name)
	}
	return t, nil
}

// Names returns every registered name, sorted.
func (ts *TypeSystem) Names() []string {
	names := make([]string, 0, len(ts.table))
	for n := range ts.table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MachineWord is the unsigned pointer-sized integer.
func (ts *TypeSystem) MachineWord() Type { return ts.table["machine_word"] }

// Platform returns the platform the table was built for.
func (ts *TypeSystem) Platform() types.Platform { return ts.platform }

// Endian is the default byte order of multi-byte types.
func (ts *TypeSystem) Endian() types.Endian { return ts.model.endian }

// WideCharSize is the size of wchar_t: 2 on windows, 4 elsewhere.
func (ts *TypeSystem) WideCharSize() int {
	if ts.platform.OS == types.OSWindows {
		return 2
	}
	return 4
}

// Name describes the table, e.g. "little", "x86_64/linux" or "mips/big".
func (ts *TypeSystem) Name() string {
	p := ts.platform
	if p.Arch == types.ArchNone {
		name := "native"
		if p.Endian != types.EndianNone {
			name = p.Endian.String()
		}
		if p.OS != types.OSNone {
			name += "/" + p.OS.String()
		}
		return name
	}
	name := p.Arch.String()
	if p.OS != types.OSNone {
		name += "/" + p.OS.String()
	}
	if p.Endian != types.EndianNone && p.Endian != archModels[p.Arch].endian {
		name += "/" + p.Endian.String()
	}
	return name
}

func (ts *TypeSystem) String() string { return ts.Name() }
