package logger

import (
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts zap to the core logging port. Level filtering happens
// here so the threshold can change at runtime without rebuilding zap.
type ZapLogger struct {
	logger *zap.Logger
	level  core.LogLevel
}

// NewZapLogger builds a zap-backed logger. Production gets JSON output
// with ISO 8601 timestamps; development gets a colored console encoder.
func NewZapLogger(isProduction bool) core.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if isProduction {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"

	zapLogger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return &ZapLogger{logger: zapLogger, level: core.LogLevelInfo}
}

// NewDefaultLogger creates the development-mode logger
func NewDefaultLogger() core.Logger {
	return NewZapLogger(false)
}

// SetLevel sets the minimum severity that will be emitted
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level = level
}

// GetLevel returns the current severity threshold
func (l *ZapLogger) GetLevel() core.LogLevel {
	return l.level
}

func (l *ZapLogger) Debug(message string, fields map[string]any) {
	l.emit(core.LogLevelDebug, message, fields)
}

func (l *ZapLogger) Info(message string, fields map[string]any) {
	l.emit(core.LogLevelInfo, message, fields)
}

func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.emit(core.LogLevelWarn, message, fields)
}

func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.emit(core.LogLevelError, message, fields)
}

// Flush writes out any buffered entries
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}

func (l *ZapLogger) emit(level core.LogLevel, message string, fields map[string]any) {
	if level < l.level {
		return
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}

	switch level {
	case core.LogLevelDebug:
		l.logger.Debug(message, zapFields...)
	case core.LogLevelInfo:
		l.logger.Info(message, zapFields...)
	case core.LogLevelWarn:
		l.logger.Warn(message, zapFields...)
	case core.LogLevelError:
		l.logger.Error(message, zapFields...)
	}
}
