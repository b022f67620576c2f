// Package testutil provides the small helpers shared by package tests.
package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSimpleLogger returns a console logger for tests: short timestamps,
// debug output gated by the flag, stacktraces only on fatal.
func NewSimpleLogger(debug bool) *zap.SugaredLogger {
	return NewNamedLogger("", debug)
}

// NewNamedLogger is NewSimpleLogger with a logger name prefix.
func NewNamedLogger(name string, debug bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("04:05.000")
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		panic(err)
	}
	if name != "" {
		log = log.Named(name)
	}
	return log.Sugar()
}
