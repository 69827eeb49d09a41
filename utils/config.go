package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for a simulation run
type Config struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
	Wrap     bool     `json:"wrap" yaml:"wrap"`
	Steps    int      `json:"steps" yaml:"steps"`
	// FrameRate is a duration string in YAML ("150ms") but integer nanoseconds in JSON (150000000)
	FrameRate   time.Duration `json:"frame_rate" yaml:"frame_rate"`
	Render      bool          `json:"render" yaml:"render"`
	StopOnCycle bool          `json:"stop_on_cycle" yaml:"stop_on_cycle"`
	HistorySize int           `json:"history_size" yaml:"history_size"`
	StatsDir    string        `json:"stats_dir" yaml:"stats_dir"`
	LogLevel    string        `json:"log_level" yaml:"log_level"`
	LogFormat   string        `json:"log_format" yaml:"log_format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Steps:       100,
		FrameRate:   150 * time.Millisecond,
		HistorySize: 16, // long enough for period-15 oscillators
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// LoadConfig loads configuration from a YAML (.yaml, .yml) or JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}
	return config, nil
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	if c.Steps < 0 {
		return errors.Wrapf(ErrInvalidConfig, "steps must be non-negative, got %d", c.Steps)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must be non-negative, got %s", c.FrameRate)
	}
	if c.HistorySize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "history_size must be at least 1, got %d", c.HistorySize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log_format %q", c.LogFormat)
	}
	return nil
}
