// Package log provides structured debug logging for membrane.
// Logging is off by default and enabled either programmatically via Init or
// through the MEMBRANE_DEBUG environment variable (set to a file path, or
// "stderr").
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatComponent Category = "component" // Interface map mutations
	CatName      Category = "name"      // Rename validation and commits
	CatScope     Category = "scope"     // Containment tree mutations
	CatLife      Category = "lifecycle" // Start/stop cascades
	CatBinding   Category = "binding"   // Bind/unbind operations
	CatBuilder   Category = "builder"   // Component wiring
)

// Logger writes structured entries to a single writer.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var defaultLogger = &Logger{minLevel: LevelDebug}

func init() {
	target := os.Getenv("MEMBRANE_DEBUG")
	if target == "" {
		return
	}
	if target == "stderr" {
		InitWithWriter(os.Stderr)
		return
	}
	// Best effort: a bad path leaves logging disabled.
	_, _ = Init(target)
}

// Init enables logging to the file at path, appending if it exists.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	defaultLogger.mu.Lock()
	defaultLogger.file = f
	defaultLogger.writer = f
	defaultLogger.enabled = true
	defaultLogger.mu.Unlock()

	return func() { _ = f.Close() }, nil
}

// InitWithWriter enables logging to an arbitrary writer. Useful for tests.
func InitWithWriter(w io.Writer) {
	defaultLogger.mu.Lock()
	defaultLogger.file = nil
	defaultLogger.writer = w
	defaultLogger.enabled = true
	defaultLogger.mu.Unlock()
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	defaultLogger.mu.Lock()
	defaultLogger.enabled = enabled
	defaultLogger.mu.Unlock()
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	defaultLogger.mu.Lock()
	defaultLogger.minLevel = level
	defaultLogger.mu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	logEntry(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	logEntry(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	logEntry(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	logEntry(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value attached as a field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	logEntry(LevelError, cat, msg, fields...)
}

func logEntry(level Level, cat Category, msg string, fields ...any) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if !defaultLogger.enabled || defaultLogger.writer == nil {
		return
	}
	if level < defaultLogger.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [ERROR] [scope] message key=value
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=", fields[len(fields)-1])
	}

	fmt.Fprintln(defaultLogger.writer, entry)
}
