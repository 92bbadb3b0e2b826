// Package buf contains bounds arithmetic and byte-order aware integer codecs
// shared by the type and memory layers.
package buf

import (
	"encoding/binary"

	"github.com/joshuapare/memkit/pkg/types"
)

// Order maps an endian to its encoding/binary implementation. EndianNone is
// treated as little-endian; it only occurs on single-byte types, where the
// order is irrelevant.
func Order(e types.Endian) binary.ByteOrder {
	if e == types.EndianBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// PutUint writes the low size bytes of v into b using order.
// size must be 1, 2, 4 or 8 and len(b) >= size.
func PutUint(b []byte, size int, order binary.ByteOrder, v uint64) {
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		order.PutUint16(b, uint16(v))
	case 4:
		order.PutUint32(b, uint32(v))
	case 8:
		order.PutUint64(b, v)
	default:
		putUintN(b[:size], order, v)
	}
}

// Uint reads a size-byte unsigned integer from b using order.
// Returns 0 when b is too short.
func Uint(b []byte, size int, order binary.ByteOrder) uint64 {
	if len(b) < size {
		return 0
	}
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	default:
		return uintN(b[:size], order)
	}
}

// Int reads a size-byte two's complement integer and sign-extends it.
func Int(b []byte, size int, order binary.ByteOrder) int64 {
	shift := uint(64 - 8*size)
	return int64(Uint(b, size, order)<<shift) >> shift
}

// odd widths (3, 5, 6, 7 bytes) appear in packed OS typedefs only.
func putUintN(b []byte, order binary.ByteOrder, v uint64) {
	n := len(b)
	for i := 0; i < n; i++ {
		if order == binary.BigEndian {
			b[n-1-i] = byte(v >> (8 * i))
		} else {
			b[i] = byte(v >> (8 * i))
		}
	}
}

func uintN(b []byte, order binary.ByteOrder) uint64 {
	var v uint64
	n := len(b)
	for i := 0; i < n; i++ {
		if order == binary.BigEndian {
			v |= uint64(b[n-1-i]) << (8 * i)
		} else {
			v |= uint64(b[i]) << (8 * i)
		}
	}
	return v
}
