package logger

import "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"

// NoopLogger discards everything. Used by tests and by components that
// run before the real logger is configured.
type NoopLogger struct {
	level core.LogLevel
}

// NewNoopLogger creates a logger that drops all output
func NewNoopLogger() core.Logger {
	return &NoopLogger{level: core.LogLevelInfo}
}

func (l *NoopLogger) SetLevel(level core.LogLevel) { l.level = level }

func (l *NoopLogger) GetLevel() core.LogLevel { return l.level }

func (l *NoopLogger) Debug(string, map[string]any) {}

func (l *NoopLogger) Info(string, map[string]any) {}

func (l *NoopLogger) Warn(string, map[string]any) {}

func (l *NoopLogger) Error(string, map[string]any) {}

func (l *NoopLogger) Flush() error { return nil }
