package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type FileMode string

const (
	// FileModeAppend appends to an existing log file.
	FileModeAppend FileMode = "append"
	// FileModeTruncate truncates an existing log file.
	FileModeTruncate FileMode = "truncate"
	// FileModeRotate rotates the log file once it grows past a few
	// megabytes.
	FileModeRotate FileMode = "rotate"
)

func (m *FileMode) Set(s string) error {
	switch FileMode(s) {
	case FileModeAppend, FileModeTruncate, FileModeRotate:
		*m = FileMode(s)
	case "":
		*m = FileModeTruncate
	default:
		return fmt.Errorf("invalid file mode: %q", s)
	}
	return nil
}

func (m FileMode) String() string {
	return string(m)
}

// OpenFile opens the log destination at path.  The names stdout and
// stderr refer to the standard streams.
func OpenFile(path string, mode FileMode) (zapcore.WriteSyncer, error) {
	return openFile(path, mode, 0)
}

func openFile(path string, mode FileMode, maxSize int) (zapcore.WriteSyncer, error) {
	switch path {
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "stderr", "":
		return zapcore.Lock(os.Stderr), nil
	case "/dev/null":
		return zapcore.AddSync(io.Discard), nil
	}
	switch mode {
	case FileModeRotate:
		if _, err := os.Stat(filepath.Dir(path)); err != nil {
			return nil, err
		}
		if maxSize <= 0 {
			maxSize = 5
		}
		// lumberjack.Logger serializes its own writes.
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSize, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}), nil
	case FileModeTruncate:
		return openLocked(path, os.O_TRUNC)
	default:
		return openLocked(path, os.O_APPEND)
	}
}

func openLocked(path string, flag int) (zapcore.WriteSyncer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|flag, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.Lock(f), nil
}
