package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized is the classification for an expired or invalid
// credential. Callers match it with errors.Is and react by clearing the
// local credential state and redirecting to login.
var ErrUnauthorized = errors.New("api: unauthorized")

// unauthorizedMessages are server error-message fragments that mean the
// credential is no longer valid even when the status code is not 401.
// Older backend versions returned some of these with a 400 or 500 status.
// Matching is case-insensitive.
var unauthorizedMessages = []string{
	"unauthorized",
	"invalid token",
	"token expired",
	"token has expired",
	"session expired",
	"not authenticated",
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the backend's error message, if it sent one.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: backend returned status %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrUnauthorized) succeed for 401 responses and
// for responses whose message matches a known credential-expiry fragment.
func (e *StatusError) Is(target error) bool {
	if target != ErrUnauthorized {
		return false
	}
	if e.StatusCode == http.StatusUnauthorized {
		return true
	}
	msg := strings.ToLower(e.Message)
	for _, fragment := range unauthorizedMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

// IsUnauthorized reports whether err classifies as a credential failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
