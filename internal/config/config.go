package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultRoot     = "."
	DefaultMarker   = "txt"
	DefaultLogLevel = "warn"
	DefaultDebounce = 500 * time.Millisecond
)

// Config is the top-level bwlat configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ScanConfig controls discovery and the empty-file policy.
type ScanConfig struct {
	// Root is the directory tree to scan.
	Root string `yaml:"root"`

	// Marker is the substring a file name must contain to be scanned.
	Marker string `yaml:"marker"`

	// Exclude lists doublestar patterns, relative to Root, of files to skip.
	Exclude []string `yaml:"exclude"`

	// SkipEmpty reports nothing for a file that yields no values instead of
	// failing the run.
	SkipEmpty bool `yaml:"skip_empty"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
}

// SlogLevel maps Level to a slog.Level. Unknown values map to warn;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// MetricsConfig controls the run metrics textfile.
type MetricsConfig struct {
	// Textfile is the path the Prometheus text exposition is written to after
	// each run. Empty disables run metrics.
	Textfile string `yaml:"textfile"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long the tree must stay quiet after a change before
	// the scan re-runs.
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Root:   DefaultRoot,
			Marker: DefaultMarker,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and structural constraints. It is
// exported so callers can re-check a Config after applying flag overrides.
func (cfg *Config) Validate() error {
	if cfg.Scan.Root == "" {
		return fmt.Errorf("config: scan.root is required")
	}
	if cfg.Scan.Marker == "" {
		return fmt.Errorf("config: scan.marker must not be empty")
	}
	for i, pat := range cfg.Scan.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("config: scan.exclude[%d] %q: %w", i, pat, doublestar.ErrBadPattern)
		}
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q unknown: want debug|info|warn|error", cfg.Log.Level)
	}
	if cfg.Watch.Debounce <= 0 {
		return fmt.Errorf("config: watch.debounce must be positive")
	}
	return nil
}
