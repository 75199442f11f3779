package logger

import (
	"io"
	"log"
	"os"
)

// Logger wraps the standard log.Logger. Command output goes to stdout;
// warnings are advisory and never alter control flow.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to stdout.
func New() *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", 0),
	}
}

// NewWriter creates a logger writing to the provided writer.
func NewWriter(w io.Writer) *Logger {
	return &Logger{
		Logger: log.New(w, "", 0),
	}
}

// Warnf logs an advisory warning.
func (l *Logger) Warnf(format string, v ...any) {
	l.Printf("WARNING: "+format, v...)
}
