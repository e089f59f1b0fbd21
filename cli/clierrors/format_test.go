package clierrors

import (
	"errors"
	"testing"

	"github.com/brimdata/tabq/filterexpr"
	"github.com/stretchr/testify/require"
)

func TestFormatSyntaxError(t *testing.T) {
	src := `c1 > 2 c2`
	_, err := filterexpr.Parse(src)
	require.Error(t, err)
	expected := "unexpected \"c2\" (column 8):\nc1 > 2 c2\n   === ^ ==="
	require.EqualError(t, Format(src, err), expected)
}

func TestFormatPassesOtherErrors(t *testing.T) {
	err := errors.New("boom")
	require.Equal(t, err, Format("x", err))
	require.NoError(t, Format("x", nil))
}
