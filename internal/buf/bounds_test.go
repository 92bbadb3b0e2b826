package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/pkg/types"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	got, ok := MulOverflowSafe(4, 3)
	require.True(t, ok)
	require.Equal(t, 12, got)

	_, ok = MulOverflowSafe(math.MaxInt/2, 3)
	require.False(t, ok)

	_, ok = MulOverflowSafe(-1, 3)
	require.False(t, ok)
}

func TestCheckRange(t *testing.T) {
	require.NoError(t, CheckRange(8, 4, 4))
	require.NoError(t, CheckRange(8, 8, 0))

	for _, tc := range []struct{ off, n int }{{-1, 1}, {5, 4}, {0, 9}, {math.MaxInt, 1}} {
		err := CheckRange(8, tc.off, tc.n)
		require.ErrorIs(t, err, types.ErrOutOfBounds, "off=%d n=%d", tc.off, tc.n)
	}
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(16, 4, 3, 4)
	require.NoError(t, err)
	require.Equal(t, 16, end)

	_, err = CheckListBounds(16, 4, 4, 4)
	require.ErrorIs(t, err, types.ErrOutOfBounds)

	_, err = CheckListBounds(16, 0, math.MaxInt, 2)
	require.ErrorIs(t, err, types.ErrOutOfBounds)
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
}
