package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFileModeSet(t *testing.T) {
	var m FileMode
	require.NoError(t, m.Set("rotate"))
	require.Equal(t, FileModeRotate, m)
	require.NoError(t, m.Set(""))
	require.Equal(t, FileModeTruncate, m)
	require.Error(t, m.Set("sideways"))
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabq.log")
	l, err := New(Config{Level: zapcore.InfoLevel, Mode: FileModeTruncate, Path: path})
	require.NoError(t, err)
	l.Debug("dropped")
	l.Info("kept", zap.Int("rows", 3))
	require.NoError(t, l.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"kept"`)
	require.Contains(t, string(b), `"rows":3`)
	require.NotContains(t, string(b), "dropped")
}

func TestAppendAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabq.log")
	write := func(mode FileMode, msg string) {
		l, err := New(Config{Level: zapcore.InfoLevel, Mode: mode, Path: path})
		require.NoError(t, err)
		l.Info(msg)
		require.NoError(t, l.Sync())
	}
	write(FileModeTruncate, "one")
	write(FileModeAppend, "two")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "one")
	require.Contains(t, string(b), "two")
	write(FileModeTruncate, "three")
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(b), "one")
}

func TestRotateNeedsDirectory(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing", "tabq.log"), FileModeRotate)
	require.Error(t, err)
}
