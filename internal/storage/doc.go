// Package storage provides the local key-value layer that backs all
// BrandPulse client state.
//
// Two Medium implementations exist: a SQLite-backed medium for durable
// state and an in-memory medium for ephemeral or test use. The client
// opens two SQLite media with different lifetimes: one under the XDG data
// directory that survives restarts (identity fields, analysis lifecycle
// records) and one under the XDG runtime directory that the OS clears when
// the login session ends (short-lived bearer credentials).
//
// Because a single machine profile may be used by several accounts, all
// per-user records are written under scoped keys derived by Scope: the base
// key plus the owning user id. Data written while scoped to one user is
// invisible once the client is re-scoped to another.
package storage
