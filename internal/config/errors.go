package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoEndpoint is returned when the backend endpoint is empty.
	ErrNoEndpoint = errors.New("no API endpoint configured: set endpoint in the config file or --endpoint")

	// ErrNoStorageSecret is returned when no storage secret is configured.
	// Without a secret the credential vault cannot encrypt anything.
	ErrNoStorageSecret = errors.New("no storage secret configured: set storageSecret in the config file")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidPollInterval is returned when the poll interval is not
	// positive. The analysis timeline needs a real interval to re-check
	// backend readiness.
	ErrInvalidPollInterval = errors.New("invalid poll interval: must be positive")

	// ErrInvalidReadinessTimeout is returned when the readiness timeout is
	// negative. Use 0 to poll without bound.
	ErrInvalidReadinessTimeout = errors.New("invalid readiness timeout: must be non-negative")
)
