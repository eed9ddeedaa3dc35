// Package api is the HTTP client for the BrandPulse analytics backend.
//
// The backend does all analytics computation; this client only triggers
// analysis runs, polls their readiness, and fetches the precomputed
// dashboard payloads. Expired or invalid credentials are classified into
// ErrUnauthorized so callers can clear local credential state and
// re-authenticate instead of surfacing a raw HTTP failure.
package api
