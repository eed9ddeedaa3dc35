package config

import (
	"errors"
	"testing"
	"time"
)

// validConfig returns a Config that passes validation.
func validConfig() *Config {
	cfg := NewConfig()
	cfg.StorageSecret = "test-secret"
	return cfg
}

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.APIEndpoint != DefaultAPIEndpoint {
		t.Errorf("APIEndpoint = %q, want %q", cfg.APIEndpoint, DefaultAPIEndpoint)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if cfg.ReadinessTimeout != DefaultReadinessTimeout {
		t.Errorf("ReadinessTimeout = %v, want %v", cfg.ReadinessTimeout, DefaultReadinessTimeout)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default to the XDG data directory")
	}
	if cfg.SessionDir == "" {
		t.Error("SessionDir should default to the XDG runtime directory")
	}
	if cfg.DataDir == cfg.SessionDir {
		t.Error("session state must not share the persistent data directory")
	}
}

// TestConfigValidate tests validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults with a secret are valid", func(t *testing.T) {
		t.Parallel()

		if err := validConfig().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty endpoint",
			mutate:  func(c *Config) { c.APIEndpoint = "" },
			wantErr: ErrNoEndpoint,
		},
		{
			name:    "missing storage secret",
			mutate:  func(c *Config) { c.StorageSecret = "" },
			wantErr: ErrNoStorageSecret,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative poll interval",
			mutate:  func(c *Config) { c.PollInterval = -time.Second },
			wantErr: ErrInvalidPollInterval,
		},
		{
			name:    "negative readiness timeout",
			mutate:  func(c *Config) { c.ReadinessTimeout = -time.Minute },
			wantErr: ErrInvalidReadinessTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("zero readiness timeout is allowed", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.ReadinessTimeout = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}
