package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidthFallback(t *testing.T) {
	if IsTerminalFile(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	t.Setenv("COLUMNS", "132")
	require.Equal(t, 132, Width())
	t.Setenv("COLUMNS", "")
	require.Equal(t, defaultWidth, Width())
}

func TestRegularFileIsNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, IsTerminalFile(f))
}
