package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "TMCATCHER_LOG_LEVEL"

// Initialize creates a new logger with the specified level writing to path.
// If level is empty, it checks TMCATCHER_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
// An empty path writes to stderr; the TUI always passes a file because it
// owns the terminal.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := "stderr"
	colored := true
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		output = path
		colored = false
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if colored {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// ParseLevel maps a level name onto a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger so library code never writes to a
		// terminal owned by the TUI
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAPIRequest logs an outgoing API request
func LogAPIRequest(op, method, url, requestID string) {
	Debug("API request",
		zap.String("operation", op),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("request_id", requestID),
	)
}

// LogAPIResponse logs a response received from the API
func LogAPIResponse(op string, statusCode int, duration time.Duration, requestID string) {
	Info("API response",
		zap.String("operation", op),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
		zap.String("request_id", requestID),
	)
}

// LogAPIFailure logs an operation that did not produce a successful response
func LogAPIFailure(op string, err error, requestID string) {
	Warn("API request failed",
		zap.String("operation", op),
		zap.String("request_id", requestID),
		zap.Error(err),
	)
}

// LogStateTransition logs a wizard or screen state change
func LogStateTransition(component, from, to string) {
	Debug("State transition",
		zap.String("component", component),
		zap.String("from", from),
		zap.String("to", to),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
