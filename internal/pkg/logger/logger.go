package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap.Logger to ports.Logger.
type ZapLogger struct {
	base *zap.Logger
}

// New builds a development console logger on stderr when verbose is set and
// a no-op logger otherwise, so library code can log unconditionally.
func New(verbose bool) *ZapLogger {
	if !verbose {
		return &ZapLogger{base: zap.NewNop()}
	}
	return build(zapcore.DebugLevel, "stderr")
}

// NewService always logs at info (debug when verbose). Used by `wai serve`.
func NewService(verbose bool) *ZapLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return build(level, "stderr")
}

// NewFile writes to path instead of the terminal; the TUI owns the screen.
func NewFile(verbose bool, path string) *ZapLogger {
	if !verbose || path == "" {
		return &ZapLogger{base: zap.NewNop()}
	}
	return build(zapcore.DebugLevel, path)
}

func build(level zapcore.Level, output string) *ZapLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.DisableStacktrace = level > zapcore.DebugLevel
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	base, err := cfg.Build()
	if err != nil {
		return &ZapLogger{base: zap.NewNop()}
	}
	return &ZapLogger{base: base}
}

// NewWithCore wraps an existing zap core; used by tests with zaptest/observer.
func NewWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{base: zap.New(core)}
}

// Zap exposes the underlying logger for HTTP middleware.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.base
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.base.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.base.Error(msg, append(toFields(fields), zap.Error(err))...)
}

func toFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}
