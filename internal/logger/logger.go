package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. Only the first call's arguments
// are used.
func Get(level, format string) *Logger {
	once.Do(func() {
		globalLogger = New(level, format)
	})
	return globalLogger
}

// New builds a standalone stdout logger, bypassing the singleton.
func New(level, format string) *Logger {
	return newZapLogger(normalize(level), normalize(format), stdout())
}

// Nop discards all output. Used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
