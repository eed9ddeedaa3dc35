// Package report renders the precomputed dashboard analytics into
// shareable output formats. Markdown is the default, JSON exists for tool
// integration. Writers only map already-computed fields onto layout; no
// analytics are calculated here.
package report
