// Package logflags binds the -log.* flags shared by every tabq command.
package logflags

import (
	"flag"
	"fmt"

	"github.com/alecthomas/units"
	"github.com/brimdata/tabq/pkg/logger"
	"go.uber.org/zap"
)

const defaultMaxSize = "5MiB"

type Flags struct {
	Config  logger.Config
	maxSize string
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	f.Config.Level = zap.WarnLevel
	f.Config.Mode = logger.FileModeTruncate
	fs.Var(&f.Config.Level, "log.level", "minimum level logged (debug, info, warn, error)")
	fs.StringVar(&f.Config.Path, "log.path", "stderr", "log destination: stderr, stdout, or a file")
	fs.Var(&f.Config.Mode, "log.filemode", "how a log file is opened: append, truncate, or rotate")
	fs.StringVar(&f.maxSize, "log.maxsize", defaultMaxSize, "with -log.filemode rotate, size at which the log file rotates (e.g. 500KB, 1GiB)")
	fs.BoolVar(&f.Config.DevMode, "log.devmode", false, "human-readable log lines; dpanic-level entries panic")
}

// Init checks -log.maxsize and converts it to whole megabytes, rounding
// up to one.
func (f *Flags) Init() error {
	if f.maxSize == "" {
		f.maxSize = defaultMaxSize
	}
	n, err := units.ParseStrictBytes(f.maxSize)
	if err != nil {
		return fmt.Errorf("-log.maxsize: %w", err)
	}
	f.Config.MaxSize = int(n >> 20)
	if f.Config.MaxSize < 1 {
		f.Config.MaxSize = 1
	}
	return nil
}

// Open returns the configured logger.  Init must be called first.
func (f *Flags) Open() (*zap.Logger, error) {
	return logger.New(f.Config)
}
