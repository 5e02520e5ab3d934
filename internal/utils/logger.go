package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvironmentVariable selects the logger level, for example "debug".
const LogLevelEnvironmentVariable = EnvironmentPrefix + "_LOG_LEVEL"

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// Only the message is printed; the level defaults to info and can be lowered through
// LogLevelEnvironmentVariable.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.Sampling = nil
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	if requestedLevel := strings.TrimSpace(os.Getenv(LogLevelEnvironmentVariable)); requestedLevel != EmptyString {
		level, parseError := zapcore.ParseLevel(requestedLevel)
		if parseError != nil {
			return nil, parseError
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}
	return config.Build()
}
