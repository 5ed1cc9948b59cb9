// Package logging provides config-driven categorized logging for fixtures.
// Every category is a named child of one zap logger; categories switched off
// in the config get a no-op logger. Logs never go to stdout, which carries
// program output.
package logging

import (
	"fmt"
	"sync"

	"javafixtures/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config loading
	CategoryRun     Category = "run"     // Program execution
	CategoryVerify  Category = "verify"  // Golden and idempotence checks
	CategoryStore   Category = "store"   // Run history database
	CategoryGolden  Category = "golden"  // Golden file writes
	CategoryCommand Category = "command" // CLI dispatch
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	current config.LoggingConfig
	loggers = make(map[Category]*zap.Logger)
)

// Build constructs a zap logger from the logging config. verbose forces the
// debug level, as does debug_mode.
func Build(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch lc.Format {
	case "", "text", "console":
		zc.Encoding = "console"
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format %q", lc.Format)
	}

	level := zapcore.InfoLevel
	if lc.Level != "" {
		l, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = l
	}
	if verbose || lc.DebugMode {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Initialize builds the process logger and resets the category cache.
// Should be called once at startup.
func Initialize(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	logger, err := Build(lc, verbose)
	if err != nil {
		return nil, err
	}
	SetBase(logger, lc)
	Get(CategoryBoot).Debug("logging initialized",
		zap.String("level", logger.Level().String()),
		zap.String("format", lc.Format),
		zap.Bool("debug_mode", lc.DebugMode),
	)
	return logger, nil
}

// SetBase replaces the process logger. Tests use it to install an observer.
func SetBase(logger *zap.Logger, lc config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()
	base = logger
	current = lc
	loggers = make(map[Category]*zap.Logger)
}

// Get returns (or creates) the logger for a category.
func Get(category Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	l := zap.NewNop()
	if current.IsCategoryEnabled(string(category)) {
		l = base.Named(string(category))
	}
	loggers[category] = l
	return l
}

// Sync flushes the process logger.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}
