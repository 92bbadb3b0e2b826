package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := OutOfBounds(12, 4, 8)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.NotErrorIs(t, err, ErrOutOfRange)

	wrapped := fmt.Errorf("get uint32: %w", err)
	require.ErrorIs(t, wrapped, ErrOutOfBounds)

	var te *Error
	require.True(t, errors.As(wrapped, &te))
	require.Equal(t, ErrKindOutOfBounds, te.Kind)
	require.Equal(t, 12, te.Value)
}

func TestErrorMessagesNameTheOffender(t *testing.T) {
	require.Contains(t, UnknownType("uint128").Error(), `"uint128"`)
	require.Contains(t, OutOfRange(300, "uint8").Error(), "300")
	require.Contains(t, OutOfBounds(5, 10, 8).Error(), "0...8")
	require.Contains(t, InvalidSignature(3.5).Error(), "3.5")
	require.Contains(t, TypeMismatch("x", "int32").Error(), "string")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("short read")
	err := &Error{Kind: ErrKindOutOfBounds, Msg: "read uint32", Err: cause}
	require.ErrorIs(t, err, cause)
	require.Equal(t, "read uint32: short read", err.Error())

	var nilErr *Error
	require.Equal(t, "<nil>", nilErr.Error())
}

func TestErrKindString(t *testing.T) {
	require.Equal(t, "underflow", ErrKindUnderflow.String())
	require.Equal(t, "ErrKind(99)", ErrKind(99).String())
}
