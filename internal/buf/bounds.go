package buf

import (
	"math"

	"github.com/joshuapare/memkit/pkg/types"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckRange validates that [off, off+n) lies within a region of bufLen bytes.
// The returned error is a types.ErrKindOutOfBounds carrying the offending offset.
func CheckRange(bufLen, off, n int) error {
	if off < 0 || n < 0 {
		return types.OutOfBounds(off, n, bufLen)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > bufLen {
		return types.OutOfBounds(off, n, bufLen)
	}
	return nil
}

// CheckListBounds validates that count elements of elementSize bytes fit in a
// region of bufLen bytes starting at offset, and returns the end offset.
//
//	end, err := buf.CheckListBounds(len(data), off, count, elemSize)
//	if err != nil {
//	    return fmt.Errorf("array: %w", err)
//	}
func CheckListBounds(bufLen, offset, count, elementSize int) (int, error) {
	if count < 0 || elementSize < 0 {
		return 0, types.Errorf(types.ErrKindOutOfBounds, count,
			"negative count %d or element size %d", count, elementSize)
	}
	total, ok := MulOverflowSafe(count, elementSize)
	if !ok {
		return 0, types.Errorf(types.ErrKindOutOfBounds, count,
			"overflow: count=%d * elemSize=%d", count, elementSize)
	}
	if err := CheckRange(bufLen, offset, total); err != nil {
		return 0, err
	}
	return offset + total, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if CheckRange(len(b), off, n) != nil {
		return nil, false
	}
	return b[off : off+n : off+n], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	return CheckRange(len(b), off, n) == nil
}
