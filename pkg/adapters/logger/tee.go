package logger

import "github.com/user/framedump/pkg/ports"

// TeeLogger fans every message out to multiple loggers. It is used to
// combine console output with the run log file.
type TeeLogger struct {
	loggers []ports.Logger
}

// NewTee creates a logger that forwards to all given loggers.
func NewTee(loggers ...ports.Logger) *TeeLogger {
	return &TeeLogger{loggers: loggers}
}

// Debug forwards a debug message to all loggers.
func (l *TeeLogger) Debug(msg string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Debug(msg, args...)
	}
}

// Info forwards an informational message to all loggers.
func (l *TeeLogger) Info(msg string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Info(msg, args...)
	}
}

// Warn forwards a warning message to all loggers.
func (l *TeeLogger) Warn(msg string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Warn(msg, args...)
	}
}

// Error forwards an error message to all loggers.
func (l *TeeLogger) Error(msg string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Error(msg, args...)
	}
}

// WithComponent returns a tee of the component clones of all loggers.
func (l *TeeLogger) WithComponent(component string) ports.Logger {
	clones := make([]ports.Logger, len(l.loggers))
	for i, lg := range l.loggers {
		clones[i] = lg.WithComponent(component)
	}
	return &TeeLogger{loggers: clones}
}

// Ensure TeeLogger implements ports.Logger
var _ ports.Logger = (*TeeLogger)(nil)
