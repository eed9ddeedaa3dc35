package storage

import "sync"

// Medium is the minimal key-value surface every storage backend provides.
// All operations are best-effort: a backend that cannot complete a write
// (disk full, database closed) drops the write silently rather than failing
// the caller. Callers treat a missing value as "absent", never as an error.
//
// Design decision: We deliberately exclude error returns from this interface.
// Every consumer of local state (credential reads, lifecycle records) must
// degrade to its default value when storage misbehaves; surfacing errors here
// would force dead error-handling branches into every call site.
type Medium interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)

	// Keys returns all keys currently present, in unspecified order.
	Keys() []string
}

// MemoryMedium is a process-lifetime Medium backed by a map.
// Everything stored here vanishes when the process exits. Used for
// embedding the client in-process and throughout the tests.
// Safe for concurrent use.
type MemoryMedium struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryMedium creates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{entries: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryMedium) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryMedium) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Delete removes key.
func (m *MemoryMedium) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Keys returns all keys currently present.
func (m *MemoryMedium) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}
