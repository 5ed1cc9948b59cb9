package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, text
	File       string          `yaml:"file" json:"file,omitempty"`             // empty = stderr
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"` // forces debug level, enables category filter
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // Per-category toggles
}

var validLevels = []string{"debug", "info", "warn", "error"}

func validLevel(level string) bool {
	if level == "" {
		return true
	}
	for _, l := range validLevels {
		if level == l {
			return true
		}
	}
	return false
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Categories not listed are enabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
