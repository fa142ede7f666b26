// Package log builds the zap loggers used across swarmsend components.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// NewWithLevel creates a named logger with a shared level and an optional set of hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// NewEncoder returns the encoder with the given name, console or json.
func NewEncoder(name string) zapcore.Encoder {
	if name == JSONEncoder {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}

const (
	ConsoleEncoder = "console"
	JSONEncoder    = "json"
)

// ParseLevel converts a level name to an atomic level. Empty string means info.
func ParseLevel(lvl string) (zap.AtomicLevel, error) {
	if lvl == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	return zap.ParseAtomicLevel(lvl)
}
