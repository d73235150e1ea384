// Package logging wraps zap to give the phpray CLI one process-wide
// structured logger, configured once in the root command's
// PersistentPreRunE and flushed in PersistentPostRun.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap.Logger; verbose raises the level to debug.
// Output is always structured (JSON) so CI consumers can parse it
// alongside the diagnostic JSON output (spec §6.2).
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// Sync flushes logger's buffered entries. Safe to call with a nil logger.
func Sync(logger *zap.Logger) {
	if logger == nil {
		return
	}
	_ = logger.Sync()
}
