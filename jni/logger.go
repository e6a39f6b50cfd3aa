package jni

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the bridge's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger replaces the bridge's logger. Call before any other bridge
// operation. Reference promotion and release log at debug level; runtime
// lifecycle events log at info.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}
