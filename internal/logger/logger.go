package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the application logger. It embeds slog.Logger, so the usual
// leveled methods are available directly.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing text records to stdout at the given level.
func New(level int) *Logger {
	return NewWithOutput(os.Stdout, level)
}

// NewWithOutput creates a Logger writing to w at the given level.
func NewWithOutput(w io.Writer, level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
