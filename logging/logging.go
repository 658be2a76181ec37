// Package logging contains the structured logger used throughout robotsim.
package logging

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewLogger("robotsim")
)

// Logger is the logging interface handed to every long-lived robotsim type.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<this name>.<subname>" sharing this logger's appenders.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	AddAppender(appender Appender)
	AsZap() *zap.SugaredLogger
	Sync() error
}

// ReplaceGlobal replaces the global loggers.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the global logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewZapLoggerConfig returns the zap config matching the console output of robotsim loggers.
func NewZapLoggerConfig() zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func newUTCLogger(name string, level Level, appenders ...Appender) Logger {
	return &impl{name: name, level: level, inUTC: true, appenders: appenders}
}

// NewLogger returns a logger writing Info and above to stdout, with UTC timestamps.
func NewLogger(name string) Logger {
	return newUTCLogger(name, INFO, NewStdoutAppender())
}

// NewDebugLogger is NewLogger at Debug level.
func NewDebugLogger(name string) Logger {
	return newUTCLogger(name, DEBUG, NewStdoutAppender())
}

// NewBlankLogger returns a Debug level logger with no outputs; add them with AddAppender.
func NewBlankLogger(name string) Logger {
	return newUTCLogger(name, DEBUG)
}

// NewTestLogger returns a Debug level logger that writes through tb.Log.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is NewTestLogger that also records every entry for assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger := &impl{level: DEBUG, appenders: []Appender{NewTestAppender(tb), core}}
	return logger, logs
}
