// Package config handles the kiosk configuration file and its overrides.
// Precedence, lowest to highest: built-in defaults, ~/.kiosk/config.json,
// .env file, KIOSK_* environment variables, command-line flags.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the persistent application configuration
type Config struct {
	// FeedURL is the address of the published feed document.
	FeedURL string `json:"feed_url"`

	// DataDir holds the read-state database and log file.
	// Empty means the config directory.
	DataDir string `json:"data_dir,omitempty"`

	// TimeoutSeconds bounds a single feed fetch.
	TimeoutSeconds int `json:"timeout_seconds"`

	// DefaultFilter is the filter mode selected on startup.
	DefaultFilter string `json:"default_filter"`

	// DefaultSort is the sort order selected on startup.
	DefaultSort string `json:"default_sort"`

	// SidebarSources caps the per-type source list in the sidebar.
	SidebarSources int `json:"sidebar_sources"`

	// SidebarCategories caps the category list in the sidebar.
	SidebarCategories int `json:"sidebar_categories"`

	// LogLevel sets the logrus level (debug, info, warn, error).
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		FeedURL:           "https://kiosk.abelbrown.com/feed.json",
		TimeoutSeconds:    30,
		DefaultFilter:     "today",
		DefaultSort:       "date",
		SidebarSources:    8,
		SidebarCategories: 8,
		LogLevel:          "info",
	}
}

// ConfigDir returns the kiosk configuration directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kiosk"
	}
	return filepath.Join(home, ".kiosk")
}

// ConfigPath returns the path of the configuration file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads the configuration from the default location.
// A missing or unreadable file yields the defaults rather than an error.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		// A corrupt file should not keep the app from starting.
		cfg = DefaultConfig()
		cfg.applyEnv()
		return cfg, nil
	}

	cfg.fillZero()
	cfg.applyEnv()
	return cfg, nil
}

// fillZero restores defaults for fields the file left empty.
func (c *Config) fillZero() {
	def := DefaultConfig()
	if c.FeedURL == "" {
		c.FeedURL = def.FeedURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if c.DefaultSort == "" {
		c.DefaultSort = def.DefaultSort
	}
	if c.SidebarSources <= 0 {
		c.SidebarSources = def.SidebarSources
	}
	if c.SidebarCategories <= 0 {
		c.SidebarCategories = def.SidebarCategories
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// applyEnv overlays KIOSK_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("KIOSK_FEED_URL"); v != "" {
		c.FeedURL = v
	}
	if v := os.Getenv("KIOSK_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("KIOSK_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("KIOSK_FILTER"); v != "" {
		c.DefaultFilter = v
	}
	if v := os.Getenv("KIOSK_SORT"); v != "" {
		c.DefaultSort = v
	}
	if v := os.Getenv("KIOSK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolvedDataDir returns the directory for mutable state.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return ConfigDir()
}

// DBPath returns the location of the read-state database.
func (c *Config) DBPath() string {
	return filepath.Join(c.ResolvedDataDir(), "kiosk.db")
}

// LogPath returns the location of the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.ResolvedDataDir(), "kiosk.log")
}
