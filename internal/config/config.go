package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"javafixtures/internal/programs"
	"javafixtures/internal/samples"

	"gopkg.in/yaml.v3"
)

// Config holds all fixtures configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Per-program overrides of the bounds hardcoded in each entry point
	Programs ProgramsConfig `yaml:"programs"`

	// Golden-file verification
	Verify VerifyConfig `yaml:"verify"`

	// Run history database
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProgramsConfig configures how the fixture programs run.
type ProgramsConfig struct {
	// Bounds keyed by program name (case-insensitive). Missing entries use
	// the program's own defaults.
	Bounds map[string]programs.Bounds `yaml:"bounds,omitempty"`

	// PrimesMode selects the primality strategy: trial or parity.
	PrimesMode string `yaml:"primes_mode"`
}

// VerifyConfig configures golden-file verification.
type VerifyConfig struct {
	GoldenDir   string `yaml:"golden_dir"`
	Parallelism int    `yaml:"parallelism"`
	Timeout     string `yaml:"timeout"`
}

// HistoryConfig configures the SQLite run history.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// DefaultDir is the per-workspace directory holding config and state.
const DefaultDir = ".fixtures"

// DefaultPath returns the config file location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DefaultDir, "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "fixtures",
		Version: "0.3.0",

		Programs: ProgramsConfig{
			PrimesMode: string(samples.ModeTrial),
		},

		Verify: VerifyConfig{
			GoldenDir:   filepath.Join(DefaultDir, "golden"),
			Parallelism: 4,
			Timeout:     "30s",
		},

		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(DefaultDir, "history.db"),
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("FIXTURES_PRIMES_MODE"); mode != "" {
		c.Programs.PrimesMode = mode
	}
	if dir := os.Getenv("FIXTURES_GOLDEN_DIR"); dir != "" {
		c.Verify.GoldenDir = dir
	}
	if path := os.Getenv("FIXTURES_HISTORY_DB"); path != "" {
		c.History.DatabasePath = path
	}
	if level := os.Getenv("FIXTURES_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("FIXTURES_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// Validate checks the configuration for values no command can run with.
func (c *Config) Validate() error {
	if _, err := samples.ParseMode(c.Programs.PrimesMode); err != nil {
		return err
	}
	for name := range c.Programs.Bounds {
		if _, err := programs.Lookup(name); err != nil {
			return fmt.Errorf("programs.bounds: %w", err)
		}
	}
	if c.Verify.Parallelism < 1 {
		return fmt.Errorf("verify.parallelism must be at least 1, got %d", c.Verify.Parallelism)
	}
	if _, err := time.ParseDuration(c.Verify.Timeout); c.Verify.Timeout != "" && err != nil {
		return fmt.Errorf("invalid verify.timeout %q: %w", c.Verify.Timeout, err)
	}
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, validLevels)
	}
	return nil
}

// PrimesMode returns the parsed primality strategy, falling back to trial
// division when the configured value is invalid.
func (c *Config) PrimesMode() samples.Mode {
	m, err := samples.ParseMode(c.Programs.PrimesMode)
	if err != nil {
		return samples.ModeTrial
	}
	return m
}

// BoundsFor returns the configured bounds for a program, if any.
func (c *Config) BoundsFor(name string) (programs.Bounds, bool) {
	for k, b := range c.Programs.Bounds {
		if strings.EqualFold(k, name) {
			return b, true
		}
	}
	return programs.Bounds{}, false
}

// GetVerifyTimeout returns the verification timeout as a duration.
// Zero means no timeout.
func (c *Config) GetVerifyTimeout() time.Duration {
	if c.Verify.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Verify.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Resolve makes relative paths absolute against workspace.
func (c *Config) Resolve(workspace string) {
	if c.Verify.GoldenDir != "" && !filepath.IsAbs(c.Verify.GoldenDir) {
		c.Verify.GoldenDir = filepath.Join(workspace, c.Verify.GoldenDir)
	}
	if c.History.DatabasePath != "" && !filepath.IsAbs(c.History.DatabasePath) {
		c.History.DatabasePath = filepath.Join(workspace, c.History.DatabasePath)
	}
	if c.Logging.File != "" && !filepath.IsAbs(c.Logging.File) {
		c.Logging.File = filepath.Join(workspace, c.Logging.File)
	}
}
