// Package config loads the local configuration file for the admin client.
// Settings here are durable defaults; per-invocation flags and environment
// variables take precedence over anything in the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production backend endpoint used when no override
// is configured.
const DefaultBaseURL = "https://api.nomanion.com"

// Config is the on-disk configuration (~/.nomadmin/config.yaml).
type Config struct {
	// BaseURL overrides the backend API endpoint.
	BaseURL string `yaml:"base_url,omitempty"`
	// DataDir holds the token store. Defaults to the config directory.
	DataDir string `yaml:"data_dir,omitempty"`
	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string `yaml:"log_file,omitempty"`
	// LogMaxSizeMB caps the log file size before rotation.
	LogMaxSizeMB int `yaml:"log_max_size_mb,omitempty"`
	// CacheDir enables the on-disk HTTP cache for read-only endpoints.
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// DefaultDir returns the default configuration directory (~/.nomadmin).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".nomadmin"), nil
}

// Load reads the configuration file at path. If path is empty the default
// location is used. A missing file is not an error; it yields an empty
// config so the compiled-in defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ResolveBaseURL picks the backend endpoint: explicit override (flag or
// environment) first, then the config file, then the production default.
func (c *Config) ResolveBaseURL(override string) string {
	if override != "" {
		return override
	}
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

// ResolveDataDir picks the token store directory, falling back to the
// default config directory.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return DefaultDir()
}
