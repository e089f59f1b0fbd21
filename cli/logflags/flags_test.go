package logflags

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlags(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-log.level", "debug", "-log.path", "/dev/null", "-log.maxsize", "64MiB"}))
	require.NoError(t, f.Init())
	require.Equal(t, 64, f.Config.MaxSize)
	l, err := f.Open()
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))

	require.NoError(t, fs.Parse([]string{"-log.maxsize", "100KB"}))
	require.NoError(t, f.Init())
	require.Equal(t, 1, f.Config.MaxSize)

	require.NoError(t, fs.Parse([]string{"-log.maxsize", "lots"}))
	require.Error(t, f.Init())
}
