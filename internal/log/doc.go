// Package log provides a slog handler that masks credential-bearing
// attributes before they reach any output. The BrandPulse client handles
// bearer tokens and session identifiers on nearly every request, so
// sanitization lives in the logging layer instead of at each call site.
package log
