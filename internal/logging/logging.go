// Package logging builds the zap loggers used throughout winctl.
package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps the CLI quiet unless something goes wrong.
const DefaultLevel = "warn"

// Options configures New.
type Options struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string
	// File, when set, receives the log in addition to stderr.
	File string
}

// New returns a sugared logger writing human-readable lines to stderr, and
// the atomic level controlling it so it can be changed at runtime.
func New(opts Options) (*zap.SugaredLogger, zap.AtomicLevel, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	atom := zap.NewAtomicLevelAt(level)

	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.Level = atom
	loggerConfig.DisableCaller = true
	loggerConfig.DisableStacktrace = true
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if opts.File != "" {
		// Color codes would end up in the file.
		loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		loggerConfig.OutputPaths = append(loggerConfig.OutputPaths, opts.File)
	}
	loggerConfig.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	loggerConfig.EncoderConfig.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(fmt.Sprintf("%-12s", name))
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.Sugar(), atom, nil
}

// ParseLevel converts a level name to a zapcore.Level. The empty string
// selects DefaultLevel.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultLevel
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", s)
	}
	return level, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
