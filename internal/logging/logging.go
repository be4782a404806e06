// Package logging builds the zap logger shared by the command-line tools.
//
// Logs always go to the diagnostic stream (stderr in production). The default
// level is warn, so a successful run writes nothing there besides the tool's
// own output.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "GET_TEXT_LOG_LEVEL"

// Log level names accepted by ParseLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// DefaultLevel is used when neither a flag nor the environment sets one.
const DefaultLevel = LevelWarn

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// ParseLevel maps a level name to a zap level. Unknown names fall back to
// DefaultLevel and ok is false.
func ParseLevel(name string) (level zapcore.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return zapcore.DebugLevel, true
	case LevelInfo:
		return zapcore.InfoLevel, true
	case LevelWarn, "warning":
		return zapcore.WarnLevel, true
	case LevelError:
		return zapcore.ErrorLevel, true
	}
	return zapcore.WarnLevel, false
}

// LevelFromEnv returns the level named by EnvLevel, or DefaultLevel.
func LevelFromEnv() string {
	if v := os.Getenv(EnvLevel); v != "" {
		return v
	}
	return DefaultLevel
}

// New returns a console logger writing to w at the named level. Unknown
// names get DefaultLevel; callers validate with ParseLevel first.
func New(w io.Writer, level string) *zap.SugaredLogger {
	lvl, _ := ParseLevel(level)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core, zap.AddCaller()).Sugar()
}
