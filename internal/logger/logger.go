// Package logger provides the process-wide structured logger used by the
// viewport-sync packages. It is backed by zap and exposes printf-style and
// key/value helpers so call sites read like logger.Infof(...).
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	current atomic.Pointer[zap.SugaredLogger]
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	current.Store(newLogger(level, false))
}

// ParseLevel converts a level name to a zap level using zap's own names, plus
// the "warning" alias. Names are case insensitive and empty selects info.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return lvl, nil
}

// Initialize replaces the process logger.
// JSON output is used unless development is set, in which case a console encoder is used.
func Initialize(lvl zapcore.Level, development bool) {
	level.SetLevel(lvl)
	current.Store(newLogger(level, development))
}

// SetLevel changes the level of the process logger
func SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}

// Get returns the process logger
func Get() *zap.SugaredLogger {
	return current.Load()
}

// Named returns a child of the process logger with the given name
func Named(name string) *zap.SugaredLogger {
	return Get().Named(name)
}

func newLogger(lvl zap.AtomicLevel, development bool) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if development {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	// stderr keeps stdout clean for commands that print data
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// Debugf logs a formatted message at debug level
func Debugf(msg string, args ...any) {
	Get().Debugf(msg, args...)
}

// Infof logs a formatted message at info level
func Infof(msg string, args ...any) {
	Get().Infof(msg, args...)
}

// Warnf logs a formatted message at warn level
func Warnf(msg string, args ...any) {
	Get().Warnf(msg, args...)
}

// Errorf logs a formatted message at error level
func Errorf(msg string, args ...any) {
	Get().Errorf(msg, args...)
}

// Fatalf logs a formatted message and exits the process
func Fatalf(msg string, args ...any) {
	Get().Fatalf(msg, args...)
}

// Debugw logs a message with key/value pairs at debug level
func Debugw(msg string, keysAndValues ...any) {
	Get().Debugw(msg, keysAndValues...)
}

// Infow logs a message with key/value pairs at info level
func Infow(msg string, keysAndValues ...any) {
	Get().Infow(msg, keysAndValues...)
}

// Warnw logs a message with key/value pairs at warn level
func Warnw(msg string, keysAndValues ...any) {
	Get().Warnw(msg, keysAndValues...)
}

// Errorw logs a message with key/value pairs at error level
func Errorw(msg string, keysAndValues ...any) {
	Get().Errorw(msg, keysAndValues...)
}
