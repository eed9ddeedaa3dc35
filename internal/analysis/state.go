package analysis

import (
	"encoding/json"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// State is one snapshot of the analysis lifecycle.
//
// Invariant: IsAnalyzing is true exactly when TriggeredAt is non-nil, and
// ResourceID is set and cleared together with TriggeredAt. Snapshots are
// treated as immutable: the store hands out the same pointer until the next
// mutation, so consumers can detect change by comparing references.
type State struct {
	// IsAnalyzing is true from trigger until completion or explicit clear.
	IsAnalyzing bool `json:"isAnalyzing"`

	// TriggeredAt is the epoch-milliseconds timestamp of the current run's
	// trigger; nil when idle.
	TriggeredAt *int64 `json:"triggeredAt"`

	// ResourceID identifies the product being analyzed; nil when idle.
	ResourceID *string `json:"resourceId"`
}

// idleState returns a fresh idle snapshot.
func idleState() *State {
	return &State{}
}

// activeState returns a fresh active snapshot for resourceID triggered at t.
func activeState(resourceID string, t time.Time) *State {
	ms := t.UnixMilli()
	id := resourceID
	return &State{
		IsAnalyzing: true,
		TriggeredAt: &ms,
		ResourceID:  &id,
	}
}

// valid reports whether the snapshot honors the idle/active invariant.
// Records written by older client versions may violate it; such records are
// replaced with the idle state rather than trusted.
func (s *State) valid() bool {
	if s.IsAnalyzing != (s.TriggeredAt != nil) {
		return false
	}
	return (s.TriggeredAt != nil) == (s.ResourceID != nil)
}

// marshalState serializes a snapshot for persistence.
func marshalState(s *State) (string, bool) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// unmarshalState parses a persisted record, substituting the idle state for
// anything malformed: bad JSON, wrong field types, or an invariant-breaking
// shape from a previous client version. Never fails.
func unmarshalState(raw string) *State {
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return idleState()
	}
	if !s.valid() {
		return idleState()
	}
	return &s
}
