// Package logging provides the append-only run log used by the tree engine.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink is the single-method logging contract consumed by engine components.
// AppendLine never fails from the caller's perspective.
type Sink interface {
	AppendLine(message string)
}

// NopSink discards every line.
type NopSink struct{}

// AppendLine implements Sink.
func (NopSink) AppendLine(string) {}

// RunLog writes timestamped lines to a file with thread-safe access.
// A RunLog with no file is a no-op.
type RunLog struct {
	mu   sync.Mutex
	file *os.File
}

// NewRunLog creates a run log writing to the specified path.
// If the path is empty, returns a no-op log.
// Creates parent directories if they don't exist.
func NewRunLog(logPath string) (*RunLog, error) {
	if logPath == "" {
		return &RunLog{}, nil
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &RunLog{file: f}, nil
}

// AppendLine writes one timestamped line. Write failures are swallowed; the
// run log must never take down a caller.
func (l *RunLog) AppendLine(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, message)
}

// Close closes the underlying file, if any.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
