package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.tgrab/config.toml.
type Config struct {
	DefaultSession string `toml:"default_session"`
	APIID          int    `toml:"api_id"`
	APIHash        string `toml:"api_hash"`
	Phone          string `toml:"phone"`
	OutputDir      string `toml:"output_dir"`
	DBPath         string `toml:"db_path"`
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// ApplyEnv overlays TELEGRAM_API_ID, TELEGRAM_API_HASH and TELEGRAM_PHONE
// onto cfg. Environment values win over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TELEGRAM_API_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			c.APIID = id
		}
	}
	if v := os.Getenv("TELEGRAM_API_HASH"); v != "" {
		c.APIHash = v
	}
	if v := os.Getenv("TELEGRAM_PHONE"); v != "" {
		c.Phone = v
	}
}

// HasCredentials reports whether enough credentials are present to connect.
func (c *Config) HasCredentials() bool {
	return c.APIID != 0 && c.APIHash != "" && c.Phone != ""
}
