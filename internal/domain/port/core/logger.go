package core

// LogLevel is the severity threshold of a logger
type LogLevel int

// Severity levels, from most to least verbose
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger is the structured logging port. Fields carry request and entity
// identifiers alongside the message; implementations decide the encoding.
type Logger interface {
	// SetLevel sets the minimum severity that will be emitted
	SetLevel(level LogLevel)
	// GetLevel returns the current severity threshold
	GetLevel() LogLevel
	Debug(message string, fields map[string]any)
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, fields map[string]any)
	// Flush writes out any buffered entries
	Flush() error
}
