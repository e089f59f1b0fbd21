package tqe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := E(Invalid, "no such column %q", "x")
	require.EqualError(t, err, `invalid request: no such column "x"`)
	require.True(t, IsInvalid(err))
	require.False(t, IsSchema(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, `no such column "x"`, e.Message())
}

func TestWrapping(t *testing.T) {
	sentinel := errors.New("length mismatch")
	err := E(Schema, fmt.Errorf("%w: 3 != 4", sentinel))
	require.ErrorIs(t, err, sentinel)
	require.True(t, IsSchema(fmt.Errorf("reading table: %w", err)))
	require.Equal(t, Other, KindOf(sentinel))
}

func TestBareKind(t *testing.T) {
	require.EqualError(t, E(NotFound), "item does not exist")
	require.EqualError(t, E(Other), "no error")
}
