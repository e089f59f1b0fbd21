// Package logger builds zap loggers from command-line configuration.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// DevMode writes human-readable logs and panics on DPanic.
	DevMode bool
	Level   zapcore.Level
	Mode    FileMode
	Path    string
	// MaxSize is the size in megabytes at which a rotated log file is
	// rotated.  Zero means 5.
	MaxSize int
}

func New(conf Config) (*zap.Logger, error) {
	ws, err := openFile(conf.Path, conf.Mode, conf.MaxSize)
	if err != nil {
		return nil, err
	}
	return zap.New(NewCore(conf, ws), options(conf)...), nil
}

// NewCore returns a core that writes entries at or above conf.Level to ws,
// as JSON unless conf.DevMode is set.
func NewCore(conf Config, ws zapcore.WriteSyncer) zapcore.Core {
	var enc zapcore.Encoder
	if conf.DevMode {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	}
	return zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(conf.Level))
}

func options(conf Config) []zap.Option {
	opts := []zap.Option{zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if conf.DevMode {
		opts = append(opts, zap.Development(), zap.AddCaller())
	}
	return opts
}
