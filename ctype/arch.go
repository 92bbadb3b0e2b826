package ctype

import (
	"runtime"
	"strconv"

	"golang.org/x/sys/cpu"

	"github.com/joshuapare/memkit/pkg/types"
)

// dataModel is what an architecture decides about scalar layout.
type dataModel struct {
	endian types.Endian
	word   int // pointer and machine word size
	long   int // C long size before OS overlays
	align8 int // alignment of 8-byte scalars
}

var archModels = map[types.Arch]dataModel{
	types.ArchX86:    {endian: types.EndianLittle, word: 4, long: 4, align8: 4},
	types.ArchX86_64: {endian: types.EndianLittle, word: 8, long: 8, align8: 8},
	types.ArchPPC:    {endian: types.EndianBig, word: 4, long: 4, align8: 8},
	types.ArchPPC64:  {endian: types.EndianBig, word: 8, long: 8, align8: 8},
	types.ArchMIPS:   {endian: types.EndianBig, word: 4, long: 4, align8: 8},
	types.ArchMIPS64: {endian: types.EndianBig, word: 8, long: 8, align8: 8},
	types.ArchARM:    {endian: types.EndianLittle, word: 4, long: 4, align8: 8},
	types.ArchARM64:  {endian: types.EndianLittle, word: 8, long: 8, align8: 8},
}

// NativeEndian is the byte order of the running process.
func NativeEndian() types.Endian {
	if cpu.IsBigEndian {
		return types.EndianBig
	}
	return types.EndianLittle
}

// nativeModel describes the running process without naming an architecture.
func nativeModel() dataModel {
	word := strconv.IntSize / 8
	m := dataModel{endian: NativeEndian(), word: word, long: word, align8: 8}
	if runtime.GOARCH == "386" {
		m.align8 = 4
	}
	return m
}

// modelFor picks the data model for p, applying its endian override.
func modelFor(p types.Platform) dataModel {
	m, ok := archModels[p.Arch]
	if !ok {
		m = nativeModel()
	}
	if p.Endian != types.EndianNone {
		m.endian = p.Endian
	}
	return m
}
