// Package config provides configuration loading and structs for the Platoo server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Gazetteer GazetteerConfig `yaml:"gazetteer"`
	Storage   StorageConfig   `yaml:"storage"`
	Matching  MatchingConfig  `yaml:"matching"`
	Suggest   SuggestConfig   `yaml:"suggest"`
	Remote    RemoteConfig    `yaml:"remote"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GazetteerConfig holds the gazetteer source file and reload behavior.
type GazetteerConfig struct {
	Path  string `yaml:"path"`
	Watch *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to hot-reload the gazetteer file; defaults
// to true when unset.
func (g *GazetteerConfig) WatchOrDefault() bool {
	if g.Watch != nil {
		return *g.Watch
	}
	return true
}

// StorageConfig holds the place database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// MatchingConfig holds fuzzy matching and resolution tunables.
type MatchingConfig struct {
	MaxDistance       int     `yaml:"max_distance"`
	SequenceWeight    float64 `yaml:"sequence_weight"`
	ContainmentWeight float64 `yaml:"containment_weight"`
	LongThreshold     float64 `yaml:"long_threshold"`
	ShortThreshold    float64 `yaml:"short_threshold"`
	LongTokenRunes    int     `yaml:"long_token_runes"`
	GuardLead         float64 `yaml:"guard_lead"`
	PopularityWeight  float64 `yaml:"popularity_weight"`
}

// SuggestConfig holds autocomplete settings.
type SuggestConfig struct {
	DebounceMs      int `yaml:"debounce_ms"`
	RemoteTimeoutMs int `yaml:"remote_timeout_ms"`
	DefaultLimit    int `yaml:"default_limit"`
	MaxLimit        int `yaml:"max_limit"`
}

// RemoteConfig holds the upstream place directory settings. An empty BaseURL
// disables remote lookup entirely.
type RemoteConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Gazetteer.Path = expandPath(cfg.Gazetteer.Path, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
