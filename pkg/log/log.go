// Package log provides the structured logger used across panelforecast.
//
// The package wraps zerolog behind a tiny provider API so that library code
// can emit structured events (series ids, row counts, horizons) without
// owning logger configuration. The default logger writes to stderr at warn
// level; applications can replace it or change the level at startup.
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

// SetLogger replaces the library-wide root logger.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = l
}

// SetLevel sets the minimum level emitted by the root logger.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(level)
}

// GetLogger returns the root logger.
func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// GetLoggerWithName returns a logger tagged with a component name,
// e.g. "forecaster" or "autoreg".
func GetLoggerWithName(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", name).Logger()
}
