// Package config provides configuration management for the Pinterest
// Ads CLI. Non-secret defaults (base URL, default ad account) may live
// in a config file; tokens and secrets come from the environment only
// and are never written to disk.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the configuration directory
	DirName = "pinterest-ads-cli"
	// ConfigFile is the name of the configuration file
	ConfigFile = "config.json"
)

// File and directory permission constants for consistent security settings.
const (
	// DirPerm is the permission for config directories (owner read/write/execute only)
	DirPerm = 0700
	// FilePerm is the permission for config files (owner read/write only)
	FilePerm = 0600
)

// Config is the configuration snapshot for one invocation. Only
// BaseURL and AdAccountID are ever persisted; the token and secret
// fields are sourced from the environment each run.
type Config struct {
	// BaseURL is the API base URL override.
	BaseURL string `json:"base_url,omitempty"`
	// AdAccountID is the default ad account for {ad_account_id} paths.
	AdAccountID string `json:"ad_account_id,omitempty"`

	// AccessToken is the OAuth bearer token.
	AccessToken string `json:"-"`
	// ConversionToken is the Conversions API token.
	ConversionToken string `json:"-"`
	// ClientID is the OAuth app id.
	ClientID string `json:"-"`
	// ClientSecret is the OAuth app secret.
	ClientSecret string `json:"-"`
}

// GetConfigDir returns the configuration directory path, creating it if needed.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/pinterest-ads-cli
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	configDir := filepath.Join(configHome, DirName)

	if err := os.MkdirAll(configDir, DirPerm); err != nil {
		return "", err
	}

	return configDir, nil
}

// GetConfigPath returns the full path to config.json
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load loads the configuration from config.json with environment
// variable overrides. Secrets are read from the environment only.
func Load() (*Config, error) {
	cfg := &Config{}

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// File doesn't exist, continue with empty config
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PINTEREST_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PINTEREST_AD_ACCOUNT_ID"); v != "" {
		cfg.AdAccountID = v
	}
	cfg.AccessToken = os.Getenv("PINTEREST_ACCESS_TOKEN")
	cfg.ConversionToken = os.Getenv("PINTEREST_CONVERSION_TOKEN")
	cfg.ClientID = os.Getenv("PINTEREST_CLIENT_ID")
	cfg.ClientSecret = os.Getenv("PINTEREST_CLIENT_SECRET")

	return cfg, nil
}

// Save saves the non-secret configuration fields to config.json.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, FilePerm)
}

// Clear removes the configuration file
func Clear() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
