// Package types defines the public, dependency-free vocabulary shared by the
// memkit packages: the typed error taxonomy and the platform selection enums
// (endianness, CPU architecture, operating system).
//
// Errors carry a stable ErrKind so callers can branch on intent rather than
// on message text:
//
//	_, err := buf.Get("uint32", 12)
//	if errors.Is(err, types.ErrOutOfBounds) {
//	    // offset 12 does not leave room for four bytes
//	}
//
// This package has no dependencies beyond the standard library.
package types
