package logger

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/omfj/appwash-cli/pkg/env"
)

var globalLogger *zap.Logger

// Init initializes the global logger. Output goes to stderr so it never
// mixes with the shell's stdout.
func Init() {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(env.LogLevel.Get())); err == nil {
		config.Level = zap.NewAtomicLevelAt(level)
	}

	if env.Environment.Get() == "development" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	globalLogger, err = config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// Get returns the global logger instance
func Get() *zap.Logger {
	if globalLogger == nil {
		Init()
	}
	return globalLogger
}

// Logr returns the global logger behind a logr.Logger, for packages that
// take a logr sink.
func Logr() logr.Logger {
	return zapr.NewLogger(Get())
}

// LogCommand records a dispatched shell command. Arguments are never logged
// because login takes a password positionally.
func LogCommand(runID, command string, argc int) {
	Get().Debug("dispatching command",
		zap.String("run_id", runID),
		zap.String("command", command),
		zap.Int("argc", argc),
	)
}

// LogCommandError records a handler failure that was rendered to the user.
func LogCommandError(runID, command string, err error) {
	Get().Warn("command failed",
		zap.String("run_id", runID),
		zap.String("command", command),
		zap.Error(err),
	)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
