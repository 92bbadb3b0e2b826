package format

import "testing"

func TestAlignUp(t *testing.T) {
	tests := []struct{ n, a, want int }{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{9, 8, 16},
		{7, 1, 7},
		{7, 0, 7},
		{5, 6, 6},
		{13, 6, 18},
	}
	for _, tt := range tests {
		if got := AlignUp(tt.n, tt.a); got != tt.want {
			t.Fatalf("AlignUp(%d, %d) = %d, want %d", tt.n, tt.a, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, a := range []int{1, 2, 4, 8, 4096} {
		if !IsPowerOfTwo(a) {
			t.Fatalf("%d should be a power of two", a)
		}
	}
	for _, a := range []int{0, -4, 3, 6, 12} {
		if IsPowerOfTwo(a) {
			t.Fatalf("%d should not be a power of two", a)
		}
	}
}

func TestPadding(t *testing.T) {
	if got := Padding(1, 4); got != 3 {
		t.Fatalf("Padding(1,4) = %d, want 3", got)
	}
	if got := Padding(8, 4); got != 0 {
		t.Fatalf("Padding(8,4) = %d, want 0", got)
	}
}
