package gui

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// guiLogLevel controls the log level for the rendering core.
// Default is LevelInfo, which suppresses Debug messages.
var guiLogLevel = new(slog.LevelVar)

// loggerPtr stores the active logger. Swapped atomically by SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel})))
}

// SetVerbose enables or disables debug logging (cache evictions, texture
// uploads, flushes). Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}

// SetLogger replaces the logger used by the package and by backends that
// call Logger. Pass nil to restore the default stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel}))
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func guiVerbose() bool {
	return guiLogLevel.Level() <= slog.LevelDebug
}
