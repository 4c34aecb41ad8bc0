// Package logging holds the zap logger used by instance resources. This is in an independent package to avoid
// dependency cycles.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   = zap.NewNop()
	loggerMu sync.RWMutex
)

// Logger returns the process default logger. It is a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the process default logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// OrDefault returns l, or Logger when l is nil.
func OrDefault(l *zap.Logger) *zap.Logger {
	if l == nil {
		return Logger()
	}
	return l
}

// Handle is the field name for a registry handle.
func Handle(h uint32) zap.Field {
	return zap.Uint32("handle", h)
}

// Max is a field for an optional maximum, omitted when unbounded.
func Max(max *uint32) zap.Field {
	if max == nil {
		return zap.Skip()
	}
	return zap.Uint32("max", *max)
}
