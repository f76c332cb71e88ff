package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/user/framedump/pkg/ports"
)

// fileCore is the shared state behind every component clone of a FileLogger.
// One mutex and one handle per file keeps concurrent writers from
// interleaving partial lines.
type fileCore struct {
	mu sync.Mutex
	f  *os.File
}

// FileLogger appends log lines to a file in the layout
// "2006-01-02 15:04:05 - LEVEL - message". Messages are written
// untranslated so log files read the same regardless of locale.
type FileLogger struct {
	core      *fileCore
	level     ports.LogLevel
	component string
}

// NewFile creates a logger appending to the file at path, creating it if
// necessary. The caller owns the logger and must Close it.
func NewFile(path string, level ports.LogLevel) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileLogger{
		core:  &fileCore{f: f},
		level: level,
	}, nil
}

// Debug logs a debug message.
func (l *FileLogger) Debug(msg string, args ...interface{}) {
	if l.level > ports.LevelDebug {
		return
	}
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *FileLogger) Info(msg string, args ...interface{}) {
	if l.level > ports.LevelInfo {
		return
	}
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *FileLogger) Warn(msg string, args ...interface{}) {
	if l.level > ports.LevelWarn {
		return
	}
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *FileLogger) Error(msg string, args ...interface{}) {
	if l.level > ports.LevelError {
		return
	}
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a new logger with the specified component name.
// The clone shares the underlying file handle.
func (l *FileLogger) WithComponent(component string) ports.Logger {
	return &FileLogger{
		core:      l.core,
		level:     l.level,
		component: component,
	}
}

// Close closes the underlying file. Messages logged after Close are
// silently dropped, so component clones stay safe to use.
func (l *FileLogger) Close() error {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()

	if l.core.f == nil {
		return nil
	}
	err := l.core.f.Close()
	l.core.f = nil
	return err
}

// log writes a single formatted line under the shared lock.
func (l *FileLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	if l.component != "" {
		formatted = fmt.Sprintf("[%s] %s", l.component, formatted)
	}
	line := fmt.Sprintf("%s - %s - %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		strings.ToUpper(level.String()),
		formatted,
	)

	l.core.mu.Lock()
	defer l.core.mu.Unlock()

	if l.core.f == nil {
		return
	}
	l.core.f.WriteString(line)
}

// Ensure FileLogger implements ports.Logger
var _ ports.Logger = (*FileLogger)(nil)
