package buf

import (
	"encoding/binary"
	"testing"

	"github.com/joshuapare/memkit/pkg/types"
)

func TestUintRoundTrip(t *testing.T) {
	for _, e := range []types.Endian{types.EndianLittle, types.EndianBig} {
		order := Order(e)
		for _, size := range []int{1, 2, 3, 4, 6, 8} {
			b := make([]byte, size)
			want := uint64(0x0102030405060708) & (1<<(8*uint(size)) - 1)
			if size == 8 {
				want = 0x0102030405060708
			}
			PutUint(b, size, order, want)
			if got := Uint(b, size, order); got != want {
				t.Fatalf("%s size %d: got 0x%x want 0x%x", e, size, got, want)
			}
		}
	}
}

func TestEndianLayout(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := Uint(data, 2, binary.LittleEndian); got != 0x2301 {
		t.Fatalf("LE16 = 0x%x, want 0x2301", got)
	}
	if got := Uint(data, 4, binary.BigEndian); got != 0x01234567 {
		t.Fatalf("BE32 = 0x%x, want 0x01234567", got)
	}
	if got := Uint(data, 3, binary.BigEndian); got != 0x012345 {
		t.Fatalf("BE24 = 0x%x, want 0x012345", got)
	}
	if got := Uint(data[:1], 4, binary.LittleEndian); got != 0 {
		t.Fatalf("short read should be 0, got 0x%x", got)
	}
}

func TestIntSignExtends(t *testing.T) {
	if got := Int([]byte{0xff, 0xff}, 2, binary.LittleEndian); got != -1 {
		t.Fatalf("Int16(ffff) = %d, want -1", got)
	}
	if got := Int([]byte{0x80}, 1, binary.LittleEndian); got != -128 {
		t.Fatalf("Int8(80) = %d, want -128", got)
	}
	if got := Int([]byte{0x7f, 0xff, 0xff, 0xff}, 4, binary.BigEndian); got != 0x7fffffff {
		t.Fatalf("Int32 max = %d", got)
	}
}

func TestOrderDefaultsToLittle(t *testing.T) {
	if Order(types.EndianNone) != binary.LittleEndian {
		t.Fatalf("EndianNone should map to little-endian")
	}
}
