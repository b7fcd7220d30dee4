// Package logger provides verbose logging for the schemadiff CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow parsing, flattening and
// model calls. Messages are written through zap.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	leveled *zap.SugaredLogger
	plain   *zap.Logger
)

func init() {
	build(output)
}

// build creates the zap loggers for w. Callers must hold mu or be init.
func build(w io.Writer) {
	sink := zapcore.Lock(zapcore.AddSync(w))

	leveledEnc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	})
	plainEnc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})

	leveled = zap.New(zapcore.NewCore(leveledEnc, sink, zapcore.DebugLevel)).Sugar()
	plain = zap.New(zapcore.NewCore(plainEnc, sink, zapcore.DebugLevel))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	build(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		leveled.Debugf(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		plain.Info(fmt.Sprintf("\n=== %s ===", name))
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		leveled.Infof(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		leveled.Warnf(format, args...)
	}
}

// Sync flushes buffered log output.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = leveled.Sync()
	_ = plain.Sync()
}
