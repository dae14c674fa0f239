// =============================================================================
// EPOS Data Generator - Logging
// =============================================================================
//
// Structured logging via zap. The logger is built once from the resolved
// configuration (level and optional log file) and installed as the global,
// so pipeline components log through zap.L() children.
//
// =============================================================================

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eposforge/epos-datagen/pkg/utils"
)

var logger *zap.Logger

// Init builds and installs the global logger. An empty logFile logs to
// stderr only; verbose forces debug level regardless of the configured one.
func Init(level, logFile string, verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	cfg.OutputPaths = []string{"stderr"}
	if logFile != "" {
		if err := utils.EnsureParentDir(logFile); err != nil {
			return err
		}
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}

	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
