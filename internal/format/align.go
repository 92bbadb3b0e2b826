// Package format holds the layout arithmetic shared by struct, union and
// array types.
package format

// AlignUp returns n rounded up to the next multiple of a.
// An alignment of 0 or 1 leaves n unchanged.
//
// Example:
//
//	AlignUp(1, 4)  = 4
//	AlignUp(4, 4)  = 4
//	AlignUp(5, 8)  = 8
//	AlignUp(7, 1)  = 7
//	AlignUp(5, 6)  = 6
func AlignUp(n, a int) int {
	if a <= 1 {
		return n
	}
	if IsPowerOfTwo(a) {
		return (n + a - 1) &^ (a - 1)
	}
	if r := n % a; r != 0 {
		return n + a - r
	}
	return n
}

// IsPowerOfTwo reports whether a is a positive power of two.
func IsPowerOfTwo(a int) bool {
	return a > 0 && a&(a-1) == 0
}

// Padding returns the number of filler bytes needed to bring n to alignment a.
func Padding(n, a int) int {
	return AlignUp(n, a) - n
}
