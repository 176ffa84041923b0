// Package page provides the request/session collaborator side of the merge
// phase: the per-render Context that accumulates request-scoped state and
// produces a merge.Config, and the store that published page scripts are
// served from.
package page

import (
	"context"
	"sync"
	"time"
)

// ScriptStore persists published page scripts keyed by render version.
// Implementations must be safe for concurrent use.
type ScriptStore interface {
	// Put stores the script for a render version, overwriting any
	// previous payload under the same version.
	Put(ctx context.Context, version string, script []byte) error

	// Get retrieves a stored script. Returns ScriptNotFoundError if the
	// version was never published or has been pruned.
	Get(ctx context.Context, version string) ([]byte, error)

	// Delete removes a stored script. Deleting an unknown version is not
	// an error.
	Delete(ctx context.Context, version string) error
}

// ScriptNotFoundError is returned by Get for unknown render versions.
type ScriptNotFoundError struct {
	Version string
}

func (e ScriptNotFoundError) Error() string {
	return "page script not found: " + e.Version
}

type memoryEntry struct {
	script    []byte
	createdAt time.Time
}

// MemoryStore keeps published scripts in process memory. Suitable for
// single-node deployments; clustered deployments should use S3Store so any
// node can serve a script published by another.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory script store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Put implements ScriptStore.
func (s *MemoryStore) Put(_ context.Context, version string, script []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[version] = memoryEntry{script: append([]byte(nil), script...), createdAt: time.Now()}
	return nil
}

// Get implements ScriptStore.
func (s *MemoryStore) Get(_ context.Context, version string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[version]
	if !ok {
		return nil, ScriptNotFoundError{Version: version}
	}
	return e.script, nil
}

// Delete implements ScriptStore.
func (s *MemoryStore) Delete(_ context.Context, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, version)
	return nil
}

// Prune drops scripts older than maxAge and returns how many were removed.
// Page-level GC calls this once abandoned render versions expire.
func (s *MemoryStore) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for version, e := range s.entries {
		if e.createdAt.Before(cutoff) {
			delete(s.entries, version)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored scripts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
