package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfigFile writes content to a temp config file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestLoadConfigFile tests YAML config parsing.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("parses every field", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
endpoint: https://staging.brandpulse.dev
storageSecret: file-secret
timeout: 45s
pollInterval: 500ms
readinessTimeout: 5m
dataDir: /tmp/brandpulse-test
sessionDir: /tmp/brandpulse-session
`)

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if cf.Endpoint != "https://staging.brandpulse.dev" {
			t.Errorf("Endpoint = %q", cf.Endpoint)
		}
		if cf.StorageSecret != "file-secret" {
			t.Errorf("StorageSecret = %q", cf.StorageSecret)
		}
		if cf.Timeout != 45*time.Second {
			t.Errorf("Timeout = %v", cf.Timeout)
		}
		if cf.PollInterval != 500*time.Millisecond {
			t.Errorf("PollInterval = %v", cf.PollInterval)
		}
		if cf.ReadinessTimeout != 5*time.Minute {
			t.Errorf("ReadinessTimeout = %v", cf.ReadinessTimeout)
		}
		if cf.DataDir != "/tmp/brandpulse-test" {
			t.Errorf("DataDir = %q", cf.DataDir)
		}
		if cf.SessionDir != "/tmp/brandpulse-session" {
			t.Errorf("SessionDir = %q", cf.SessionDir)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("got %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml returns an error", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "endpoint: [not, closed")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

// TestFileApply tests merging file settings onto a config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-zero settings override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cf := &File{
			Endpoint:      "https://staging.brandpulse.dev",
			StorageSecret: "file-secret",
			Timeout:       time.Minute,
		}
		cf.Apply(cfg)

		if cfg.APIEndpoint != "https://staging.brandpulse.dev" {
			t.Errorf("APIEndpoint = %q", cfg.APIEndpoint)
		}
		if cfg.StorageSecret != "file-secret" {
			t.Errorf("StorageSecret = %q", cfg.StorageSecret)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
	})

	t.Run("unset settings leave the config alone", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.StorageSecret = "flag-secret"
		(&File{}).Apply(cfg)

		if cfg.APIEndpoint != DefaultAPIEndpoint {
			t.Errorf("APIEndpoint = %q, want default", cfg.APIEndpoint)
		}
		if cfg.StorageSecret != "flag-secret" {
			t.Errorf("StorageSecret = %q, want flag-secret", cfg.StorageSecret)
		}
		if cfg.PollInterval != DefaultPollInterval {
			t.Errorf("PollInterval = %v, want default", cfg.PollInterval)
		}
	})
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins when it exists", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "endpoint: https://example.com")
		if got := FindConfigFile(path); got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}
