// Package config provides configuration structures and utilities for the
// BrandPulse client. It defines the backend endpoint, local storage
// settings, analysis timeline pacing, and report generation preferences.
package config
