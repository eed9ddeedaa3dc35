package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".brandpulse"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .brandpulse configuration file.
type File struct {
	// Endpoint overrides the backend base URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// StorageSecret keys the encryption of locally stored credentials.
	StorageSecret string `yaml:"storageSecret,omitempty"`

	// Timeout overrides the per-request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// PollInterval overrides how often the analysis timeline re-checks
	// backend readiness.
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`

	// ReadinessTimeout overrides how long the timeline polls before
	// advancing with a fallback message. Zero polls without bound.
	ReadinessTimeout time.Duration `yaml:"readinessTimeout,omitempty"`

	// DataDir overrides the local state directory.
	DataDir string `yaml:"dataDir,omitempty"`

	// SessionDir overrides the session-lifetime state directory.
	SessionDir string `yaml:"sessionDir,omitempty"`
}

// LoadConfigFile loads client settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply copies every non-zero file setting onto cfg.
// Flag values already on cfg win only when the file leaves them unset, so
// callers should apply the file before overriding from flags.
func (cf *File) Apply(cfg *Config) {
	if cf.Endpoint != "" {
		cfg.APIEndpoint = cf.Endpoint
	}
	if cf.StorageSecret != "" {
		cfg.StorageSecret = cf.StorageSecret
	}
	if cf.Timeout > 0 {
		cfg.Timeout = cf.Timeout
	}
	if cf.PollInterval > 0 {
		cfg.PollInterval = cf.PollInterval
	}
	if cf.ReadinessTimeout > 0 {
		cfg.ReadinessTimeout = cf.ReadinessTimeout
	}
	if cf.DataDir != "" {
		cfg.DataDir = cf.DataDir
	}
	if cf.SessionDir != "" {
		cfg.SessionDir = cf.SessionDir
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .brandpulse in the current directory
// 3. Look for .brandpulse in the XDG config directory
// 4. Look for .brandpulse in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
