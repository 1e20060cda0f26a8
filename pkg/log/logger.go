package log

import (
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name such as "debug" or "INFO".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel, nil
	case "info", "INFO", "":
		return InfoLevel, nil
	case "warn", "WARN", "warning":
		return WarnLevel, nil
	case "error", "ERROR":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger defines the logging interface for wx-storage components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that attaches fields to every message.
	With(fields ...Field) Logger

	// SetLevel sets the minimum log level.
	SetLevel(level Level)

	// GetLevel returns the current minimum log level.
	GetLevel() Level
}

// LoggerOption is a function that configures a logger.
type LoggerOption func(*BaseLogger)

// BaseLogger implements the Logger interface over slog.
type BaseLogger struct {
	level  *slog.LevelVar
	format Format
	out    io.Writer
	slog   *slog.Logger
}

// NewLogger creates a new logger with the given options. Defaults: info
// level, text format, stderr output.
func NewLogger(options ...LoggerOption) Logger {
	l := &BaseLogger{
		level:  new(slog.LevelVar),
		format: FormatText,
		out:    os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	for _, option := range options {
		option(l)
	}

	hopts := &slog.HandlerOptions{Level: l.level}
	var h slog.Handler
	if l.format == FormatJSON {
		h = slog.NewJSONHandler(l.out, hopts)
	} else {
		h = slog.NewTextHandler(l.out, hopts)
	}
	l.slog = slog.New(h)
	return l
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(l *BaseLogger) {
		l.level.Set(toSlogLevel(level))
	}
}

// WithFormat selects text or JSON output.
func WithFormat(format Format) LoggerOption {
	return func(l *BaseLogger) {
		l.format = format
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *BaseLogger) {
		l.out = w
	}
}

func (l *BaseLogger) Debug(msg string, fields ...Field) { l.slog.Debug(msg, attrs(fields)...) }
func (l *BaseLogger) Info(msg string, fields ...Field)  { l.slog.Info(msg, attrs(fields)...) }
func (l *BaseLogger) Warn(msg string, fields ...Field)  { l.slog.Warn(msg, attrs(fields)...) }
func (l *BaseLogger) Error(msg string, fields ...Field) { l.slog.Error(msg, attrs(fields)...) }

// With returns a logger that attaches fields to every message.
func (l *BaseLogger) With(fields ...Field) Logger {
	nl := *l
	nl.slog = l.slog.With(attrs(fields)...)
	return &nl
}

// SetLevel sets the minimum log level.
func (l *BaseLogger) SetLevel(level Level) { l.level.Set(toSlogLevel(level)) }

// GetLevel returns the current minimum log level.
func (l *BaseLogger) GetLevel() Level { return fromSlogLevel(l.level.Level()) }

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level <= slog.LevelDebug:
		return DebugLevel
	case level == slog.LevelInfo:
		return InfoLevel
	case level == slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

// RedirectStdLog routes standard library log output through the logger at
// info level. The storage engine logs through stdlib log by default.
func RedirectStdLog(l Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdWriter{l})
}

type stdWriter struct{ l Logger }

func (w stdWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.l.Info(msg)
	return len(p), nil
}
