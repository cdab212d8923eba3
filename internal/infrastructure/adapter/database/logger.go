package database

import (
	"context"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold is the latency above which a query logs as slow
const slowQueryThreshold = 200 * time.Millisecond

var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// DatabaseLogger bridges gorm's logger interface onto the core logger so
// SQL tracing shares the service's structured output
type DatabaseLogger struct {
	coreLogger   coreport.Logger
	logLevel     logger.LogLevel
	timeProvider coreport.TimeProvider
}

// NewDatabaseLogger creates a gorm logger at the named level; unknown
// levels fall back to info
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string) logger.Interface {
	logLevel, ok := gormLevels[strings.ToLower(level)]
	if !ok {
		logLevel = logger.Info
	}
	return &DatabaseLogger{
		coreLogger:   coreLogger,
		logLevel:     logLevel,
		timeProvider: timeProvider,
	}
}

// LogMode returns a copy of the logger at the given level
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	copied := *l
	copied.logLevel = level
	return &copied
}

func (l *DatabaseLogger) Info(_ context.Context, msg string, _ ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(msg, map[string]any{"source": "database"})
	}
}

func (l *DatabaseLogger) Warn(_ context.Context, msg string, _ ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(msg, map[string]any{"source": "database"})
	}
}

func (l *DatabaseLogger) Error(_ context.Context, msg string, _ ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(msg, map[string]any{"source": "database"})
	}
}

// Trace logs each SQL statement: failures at error level, slow queries at
// warn, the rest at debug to keep routine traffic quiet
func (l *DatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := l.timeProvider.Since(begin)
	sql, rows := fc()

	fields := map[string]any{
		"source":  "database",
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
	}
	if statement, table := summarizeStatement(sql); statement != "" {
		fields["type"] = statement
		if table != "" {
			fields["table"] = table
		}
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	switch {
	case err != nil && l.logLevel >= logger.Error:
		l.coreLogger.Error("SQL Error", fields)
	case elapsed > slowQueryThreshold:
		l.coreLogger.Warn("Slow SQL Query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL Query", fields)
	}
}

// summarizeStatement extracts the verb and, on a best-effort basis, the
// target table from a SQL statement
func summarizeStatement(sql string) (statement, table string) {
	upper := strings.ToUpper(strings.TrimSpace(sql))

	var tableMarker string
	switch {
	case strings.HasPrefix(upper, "SELECT"):
		statement, tableMarker = "SELECT", " FROM "
	case strings.HasPrefix(upper, "INSERT"):
		statement, tableMarker = "INSERT", " INTO "
	case strings.HasPrefix(upper, "UPDATE"):
		statement, tableMarker = "UPDATE", "UPDATE "
	case strings.HasPrefix(upper, "DELETE"):
		statement, tableMarker = "DELETE", " FROM "
	default:
		return "", ""
	}

	markerIndex := strings.Index(upper, tableMarker)
	if markerIndex == -1 {
		return statement, ""
	}
	remainder := upper[markerIndex+len(tableMarker):]
	if end := strings.IndexByte(remainder, ' '); end != -1 {
		remainder = remainder[:end]
	}
	return statement, strings.Trim(remainder, `"`)
}
