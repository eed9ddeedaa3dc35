// Package analysis tracks the lifecycle of the long-running brand analysis
// job: whether a run is in flight, when it was triggered, and for which
// product. The store is the single source of truth shared by every surface
// of the client and is observable through a subscribe/snapshot interface.
//
// State is persisted per user through scoped keys, so a run that is still
// in flight survives a logout/login cycle on the same machine, while a
// different account logging in sees only its own (usually idle) record.
package analysis
