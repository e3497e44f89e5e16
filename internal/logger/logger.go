// Package logger provides structured logging for claude-hooks backed by zap.
//
// Hooks run inside the host's tool lifecycle, so the logger only writes to
// stderr and is quiet unless verbose mode is enabled.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Options configures the logger.
type Options struct {
	// Verbose enables debug-level logging
	Verbose bool
	// Output is the writer for log output (defaults to os.Stderr)
	Output io.Writer
	// JSON enables JSON-formatted output
	JSON bool
}

// Init initializes the global logger with the given options.
// It is safe to call multiple times; only the first call takes effect.
func Init(opts Options) {
	once.Do(func() {
		output := opts.Output
		if output == nil {
			output = os.Stderr
		}

		level := zapcore.ErrorLevel
		if opts.Verbose {
			level = zapcore.DebugLevel
		}

		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = ""

		var encoder zapcore.Encoder
		if opts.JSON {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		core := zapcore.NewCore(encoder, zapcore.AddSync(output), zap.NewAtomicLevelAt(level))
		log = zap.New(core).Named("claude-hooks").Sugar()
	})
}

// Reset resets the logger for testing purposes.
func Reset() {
	if log != nil {
		_ = log.Sync()
	}
	once = sync.Once{}
	log = nil
}

// Debug logs at debug level.
func Debug(msg string, keysAndValues ...any) {
	if log != nil {
		log.Debugw(msg, keysAndValues...)
	}
}

// Info logs at info level.
func Info(msg string, keysAndValues ...any) {
	if log != nil {
		log.Infow(msg, keysAndValues...)
	}
}

// Warn logs at warn level.
func Warn(msg string, keysAndValues ...any) {
	if log != nil {
		log.Warnw(msg, keysAndValues...)
	}
}

// Error logs at error level.
func Error(msg string, keysAndValues ...any) {
	if log != nil {
		log.Errorw(msg, keysAndValues...)
	}
}

// With returns a logger with additional context attributes.
func With(keysAndValues ...any) *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log.With(keysAndValues...)
}
