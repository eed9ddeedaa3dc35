// Package model defines the analytics payloads the BrandPulse backend
// returns: visibility scores, competitor comparisons, sentiment breakdowns,
// and source citations. All analytics are precomputed server-side; the
// client only maps these fields onto reports.
package model
