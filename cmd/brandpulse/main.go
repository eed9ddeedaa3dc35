// Package main provides the entry point for the BrandPulse CLI.
//
// BrandPulse reports how visibly a brand appears in AI model responses.
// The heavy lifting happens server-side; this client manages the local
// session, triggers and tracks analysis runs, and renders the precomputed
// dashboard analytics.
//
// Usage:
//
//	brandpulse login --email you@example.com
//	brandpulse analyze <product-id>
//	brandpulse dashboard
//
// See --help for all available options.
package main

// main is the entry point for BrandPulse.
func main() {
	Execute()
}
