package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultAPIEndpoint is the production analytics backend.
	DefaultAPIEndpoint = "https://api.brandpulse.dev"

	// DefaultTimeout is the per-request timeout against the backend.
	// Analytics payloads are small; 30 seconds covers slow links without
	// hanging the client on a dead connection.
	DefaultTimeout = 30 * time.Second

	// DefaultPollInterval is how often the analysis timeline re-checks
	// whether the backend job has finished. 300ms keeps the gated stage
	// feeling live without hammering the status endpoint.
	DefaultPollInterval = 300 * time.Millisecond

	// DefaultReadinessTimeout bounds how long the timeline polls before
	// advancing with a fallback message. Brand analyses typically finish
	// within a couple of minutes; ten minutes means something is wrong
	// upstream and the user should not wait indefinitely.
	DefaultReadinessTimeout = 10 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "brandpulse"
)

// Config holds all configuration options for the BrandPulse client.
// It is populated from CLI flags and the optional config file, then passed
// through the application via dependency injection rather than global state.
type Config struct {
	// APIEndpoint is the analytics backend base URL.
	APIEndpoint string

	// StorageSecret keys the encryption of locally stored credentials.
	// It must be non-empty: without it the vault cannot be constructed
	// and nothing credential-bearing can be persisted.
	StorageSecret string

	// Timeout is the per-request timeout for backend calls.
	Timeout time.Duration

	// PollInterval is how often the analysis timeline re-checks readiness.
	PollInterval time.Duration

	// ReadinessTimeout bounds how long the timeline polls before advancing
	// with a fallback message. Zero preserves unbounded polling.
	ReadinessTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the default
	// Markdown format.
	JSONReport bool

	// ReportFile is the output file path for the dashboard report.
	// When set, the report is mirrored to this file alongside stdout.
	ReportFile string

	// DataDir is the directory holding the local state database.
	// Defaults to the XDG data directory.
	DataDir string

	// SessionDir is the directory holding the session-lifetime database.
	// Unlike DataDir it lives under the runtime directory, which the OS
	// clears at the end of the login session, so bearer credentials stored
	// there never outlive the session. Defaults to the XDG runtime
	// directory, falling back to the cache directory where no runtime
	// directory exists.
	SessionDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .brandpulse in the current directory
	// and then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; users override specific
// values via flags or the config file after creation.
func NewConfig() *Config {
	return &Config{
		APIEndpoint:      DefaultAPIEndpoint,
		Timeout:          DefaultTimeout,
		PollInterval:     DefaultPollInterval,
		ReadinessTimeout: DefaultReadinessTimeout,
		DataDir:          XDGDataDir(),
		SessionDir:       XDGSessionDir(),
	}
}

// XDGSessionDir returns the directory for session-lifetime state.
// The XDG runtime directory is preferred because the OS clears it when the
// login session ends; platforms without one fall back to the cache
// directory, which at least never enters backups.
func XDGSessionDir() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, AppName)
	}
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGDataDir returns the XDG data directory for BrandPulse.
// On Linux: ~/.local/share/brandpulse
// On macOS: ~/Library/Application Support/brandpulse
// On Windows: %LOCALAPPDATA%\brandpulse
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for BrandPulse.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid; the
// first problem found is returned because fixing one error often makes
// the others irrelevant.
func (c *Config) Validate() error {
	if c.APIEndpoint == "" {
		return ErrNoEndpoint
	}

	if c.StorageSecret == "" {
		return ErrNoStorageSecret
	}

	// Zero timeout would cause immediate request failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}

	// Zero is allowed: it means poll without bound
	if c.ReadinessTimeout < 0 {
		return ErrInvalidReadinessTimeout
	}

	return nil
}
