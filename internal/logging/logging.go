// Package logging writes one JSON object per line, matching the request log format.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger emits structured JSON log lines with a timestamp in a fixed location.
// It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{enc: json.NewEncoder(w), loc: loc}
}

// Stdout returns a Logger writing to standard output.
func Stdout(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, time.UTC)
}

// Info logs an informational event.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.write("info", msg, nil, fields)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(msg string, fields map[string]any) {
	l.write("warn", msg, nil, fields)
}

// Error logs a failure; err may be nil.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	l.write("error", msg, err, fields)
}

func (l *Logger) write(level, msg string, err error, fields map[string]any) {
	if l == nil {
		return
	}
	entry := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(entry)
}
