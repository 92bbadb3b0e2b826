package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindUnknownType      ErrKind = iota // type name absent from the platform table
	ErrKindInvalidSignature                // malformed type signature
	ErrKindOutOfRange                      // value not representable in the type's size
	ErrKindOutOfBounds                     // offset/index/length outside the addressable region
	ErrKindUnderflow                       // pop on an empty stack
	ErrKindMissingConfig                   // construction argument absent or of the wrong kind
	ErrKindNotFound                        // missing member or pattern
	ErrKindTypeMismatch                    // Go value of the wrong kind for a type
)

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	switch k {
	case ErrKindUnknownType:
		return "unknown type"
	case ErrKindInvalidSignature:
		return "invalid signature"
	case ErrKindOutOfRange:
		return "out of range"
	case ErrKindOutOfBounds:
		return "out of bounds"
	case ErrKindUnderflow:
		return "underflow"
	case ErrKindMissingConfig:
		return "missing configuration"
	case ErrKindNotFound:
		return "not found"
	case ErrKindTypeMismatch:
		return "type mismatch"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional offending value and underlying cause.
type Error struct {
	Kind  ErrKind
	Msg   string
	Value any   // offending value, if any
	Err   error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, types.ErrOutOfBounds) matches every bounds failure.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnknownType      = &Error{Kind: ErrKindUnknownType, Msg: "unknown type"}
	ErrInvalidSignature = &Error{Kind: ErrKindInvalidSignature, Msg: "invalid type signature"}
	ErrOutOfRange       = &Error{Kind: ErrKindOutOfRange, Msg: "value out of range"}
	ErrOutOfBounds      = &Error{Kind: ErrKindOutOfBounds, Msg: "out of bounds"}
	ErrUnderflow        = &Error{Kind: ErrKindUnderflow, Msg: "stack underflow"}
	ErrMissingConfig    = &Error{Kind: ErrKindMissingConfig, Msg: "missing configuration"}
	ErrNotFound         = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	ErrTypeMismatch     = &Error{Kind: ErrKindTypeMismatch, Msg: "type mismatch"}
)

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrKind, value any, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Value: value}
}

// UnknownType reports a type name that the active platform table lacks.
func UnknownType(name string) *Error {
	return Errorf(ErrKindUnknownType, name, "unknown type: %q", name)
}

// InvalidSignature reports a signature that is not a name, array, range, schema or type.
func InvalidSignature(sig any) *Error {
	return Errorf(ErrKindInvalidSignature, sig, "invalid type signature: %#v", sig)
}

// OutOfRange reports a value that cannot be represented by a type.
func OutOfRange(value any, typ string) *Error {
	return Errorf(ErrKindOutOfRange, value, "value %v out of range for %s", value, typ)
}

// OutOfBounds reports an offset+length that does not fit in limit bytes.
func OutOfBounds(offset, length, limit int) *Error {
	return Errorf(ErrKindOutOfBounds, offset,
		"offset %d with length %d is out of bounds: 0...%d", offset, length, limit)
}

// IndexOutOfBounds reports an element index outside [0, length).
func IndexOutOfBounds(index, length int) *Error {
	return Errorf(ErrKindOutOfBounds, index, "index %d is out of bounds: 0...%d", index, length)
}

// TypeMismatch reports a Go value of a kind the type cannot pack.
func TypeMismatch(value any, typ string) *Error {
	return Errorf(ErrKindTypeMismatch, value, "cannot pack %T into %s", value, typ)
}

// MissingConfig reports an absent or wrongly typed construction argument.
func MissingConfig(what string, got any) *Error {
	return Errorf(ErrKindMissingConfig, got, "%s: got %T", what, got)
}
