// Package debug provides logging for the routing framework.
//
// Nothing in this package may be called from the audio thread: formatting
// allocates and the logger serializes writers with a mutex.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelFatal is for configuration errors that abort with a panic.
	LogLevelFatal
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO", "":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "FATAL":
		return LogLevelFatal, nil
	case "OFF":
		return LogLevelOff, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // Include timestamp
	FlagShortFile             // Include short file name and line number
	FlagLevel                 // Include log level
	FlagPrefix                // Include prefix
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagLevel | FlagPrefix

// Logger writes leveled messages with key/value fields:
//
//	2024-05-01 10:00:00.000 [INFO] [pins] channel counts changed in=2 out=2
type Logger struct {
	mu      sync.Mutex
	output  io.Writer
	level   LogLevel
	prefix  string
	flags   int
	enabled bool
	fields  []any
}

var defaultLogger = New(os.Stderr, "", DefaultFlags)

// New creates a new logger at LogLevelInfo.
func New(output io.Writer, prefix string, flags int) *Logger {
	return &Logger{
		output:  output,
		prefix:  prefix,
		flags:   flags,
		level:   LogLevelInfo,
		enabled: true,
	}
}

// NewFileLogger creates a logger that appends to a file.
func NewFileLogger(filename, prefix string, flags int) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(file, prefix, flags), file, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	l := New(io.Discard, "", 0)
	l.level = LogLevelOff
	return l
}

// With returns a child logger sharing output and level settings at the
// time of the call, that adds kv to every message.
func (l *Logger) With(kv ...any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	fields := make([]any, 0, len(l.fields)+len(kv))
	fields = append(fields, l.fields...)
	fields = append(fields, kv...)
	return &Logger{
		output:  l.output,
		level:   l.level,
		prefix:  l.prefix,
		flags:   l.flags,
		enabled: l.enabled,
		fields:  fields,
	}
}

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetPrefix sets the logger prefix.
func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

// SetEnabled enables or disables the logger.
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *Logger) log(level LogLevel, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.level || l.level == LogLevelOff {
		return
	}

	var sb strings.Builder
	if l.flags&FlagTime != 0 {
		sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	}
	if l.flags&FlagLevel != 0 {
		fmt.Fprintf(&sb, "[%s] ", level)
	}
	if l.flags&FlagPrefix != 0 && l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	if l.flags&FlagShortFile != 0 {
		// Skip log() and the exported level method
		if _, file, line, ok := runtime.Caller(2); ok {
			fmt.Fprintf(&sb, "%s:%d: ", filepath.Base(file), line)
		}
	}
	sb.WriteString(msg)
	writeFields(&sb, l.fields)
	writeFields(&sb, kv)
	sb.WriteByte('\n')

	_, _ = io.WriteString(l.output, sb.String())
}

func writeFields(sb *strings.Builder, kv []any) {
	for i := 0; i < len(kv); i += 2 {
		sb.WriteByte(' ')
		if i+1 == len(kv) {
			fmt.Fprintf(sb, "!BADKEY=%v", kv[i])
			return
		}
		fmt.Fprintf(sb, "%v=%v", kv[i], kv[i+1])
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) {
	l.log(LogLevelDebug, msg, kv)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, kv ...any) {
	l.log(LogLevelInfo, msg, kv)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) {
	l.log(LogLevelWarn, msg, kv)
}

// Error logs an error message.
func (l *Logger) Error(msg string, kv ...any) {
	l.log(LogLevelError, msg, kv)
}

// Fatal logs a configuration error and panics. It is reserved for
// programming errors such as a host channel count above the supported
// maximum, which indicate an inconsistency rather than bad user input.
func (l *Logger) Fatal(msg string, kv ...any) {
	l.log(LogLevelFatal, msg, kv)
	var sb strings.Builder
	sb.WriteString(msg)
	writeFields(&sb, kv)
	panic(sb.String())
}

// Default returns the package level logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, kv ...any) {
	defaultLogger.log(LogLevelDebug, msg, kv)
}

// Info logs an informational message using the default logger.
func Info(msg string, kv ...any) {
	defaultLogger.log(LogLevelInfo, msg, kv)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, kv ...any) {
	defaultLogger.log(LogLevelWarn, msg, kv)
}

// Error logs an error message using the default logger.
func Error(msg string, kv ...any) {
	defaultLogger.log(LogLevelError, msg, kv)
}
