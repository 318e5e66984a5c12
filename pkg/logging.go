package yeyo

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelDebug logs every transition, file write and git invocation.
	LogLevelDebug = "debug"
	// LogLevelInfo logs progress.
	LogLevelInfo = "info"
	// LogLevelWarn logs only problems. It is the CLI default.
	LogLevelWarn = "warn"
	// LogLevelNone disables logging.
	LogLevelNone = "none"
)

// NewLogger returns a console zap logger writing to stderr at level.
func NewLogger(level string) (*zap.Logger, error) {
	if level == LogLevelNone || level == "" {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = lvl > zapcore.DebugLevel
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

// MustNewLogger is like NewLogger but panics on error.
func MustNewLogger(level string) *zap.Logger {
	l, err := NewLogger(level)
	if err != nil {
		panic(err)
	}
	return l
}
