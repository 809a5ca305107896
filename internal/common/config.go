package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Logging     LoggingConfig     `toml:"logging"`
	Claude      ClaudeConfig      `toml:"claude"`
	Reports     ReportsConfig     `toml:"reports"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for report generation (default: "claude-sonnet-4-20250514")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "5m")
	RateLimit   string  `toml:"rate_limit"`  // Minimum time between API calls (default: "1s")
	Temperature float32 `toml:"temperature"` // Default completion temperature (default: 0.3)
}

// ReportsConfig tunes the report generation pipeline
type ReportsConfig struct {
	SectionConcurrency   int     `toml:"section_concurrency"`    // Max simultaneous generation calls (default: 5)
	ChartTopN            int     `toml:"chart_top_n"`            // Impact categories charted in PDF exports (default: 6)
	ChartHighThreshold   float64 `toml:"chart_high_threshold"`   // Normalized magnitude for "high" severity (default: 0.75)
	ChartMediumThreshold float64 `toml:"chart_medium_threshold"` // Normalized magnitude for "medium" severity (default: 0.40)
}

// MaintenanceConfig controls background storage maintenance
type MaintenanceConfig struct {
	Enabled    bool   `toml:"enabled"`     // Run Badger value-log GC on a schedule
	GCSchedule string `toml:"gc_schedule"` // Cron schedule (default: "@every 30m")
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in verdant.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (config or ANTHROPIC_API_KEY)
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   8192,
			Timeout:     "5m",
			RateLimit:   "1s",
			Temperature: 0.3,
		},
		Reports: ReportsConfig{
			SectionConcurrency:   5,
			ChartTopN:            6,
			ChartHighThreshold:   0.75,
			ChartMediumThreshold: 0.40,
		},
		Maintenance: MaintenanceConfig{
			Enabled:    true,
			GCSchedule: "@every 30m",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VERDANT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("VERDANT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VERDANT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("VERDANT_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("VERDANT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Anthropic API key: VERDANT_CLAUDE_API_KEY wins, ANTHROPIC_API_KEY is
	// the conventional fallback.
	if key := os.Getenv("VERDANT_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("VERDANT_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}

	if concurrency := os.Getenv("VERDANT_SECTION_CONCURRENCY"); concurrency != "" {
		if c, err := strconv.Atoi(concurrency); err == nil && c > 0 {
			config.Reports.SectionConcurrency = c
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
