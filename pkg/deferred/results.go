// Package deferred tracks page fragments computed concurrently with the
// main render. Snippet producers complete or fail entries while the merge
// blocks on Resolve; unresolved entries degrade to placeholder content
// after a bounded wait instead of failing the page.
package deferred

import (
	"sync"
	"time"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

// State is the lifecycle state of one deferred fragment.
type State uint8

const (
	StatePending State = iota
	StateReady
	StateFailed
)

type entry struct {
	state State
	nodes []*dom.Node
	err   error
}

// Results is a keyed map of deferred fragment results. Producers mutate it
// from their own goroutines; the merge only reads it through Resolve.
// The zero value is not usable; use NewResults.
type Results struct {
	mu      sync.Mutex
	entries map[string]entry
	// updated is closed and replaced on every mutation so waiters can
	// re-check the completion predicate without missed wakeups.
	updated chan struct{}
}

// NewResults creates an empty result map.
func NewResults() *Results {
	return &Results{
		entries: make(map[string]entry),
		updated: make(chan struct{}),
	}
}

// Register records that a fragment with the given key is being computed.
func (r *Results) Register(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; !exists {
		r.entries[key] = entry{state: StatePending}
	}
}

// Complete stores the finished fragment for key and wakes waiters.
func (r *Results) Complete(key string, nodes []*dom.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = entry{state: StateReady, nodes: nodes}
	r.notifyLocked()
}

// Fail records a producer failure for key and wakes waiters.
func (r *Results) Fail(key string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = entry{state: StateFailed, err: err}
	r.notifyLocked()
}

// Len returns the number of registered fragments.
func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Results) notifyLocked() {
	close(r.updated)
	r.updated = make(chan struct{})
}

func (r *Results) settledLocked() bool {
	for _, e := range r.entries {
		if e.state == StatePending {
			return false
		}
	}
	return true
}

// Resolve blocks until every entry has left StatePending or the deadline
// passes, then returns the resolved fragment per key. Failed entries render
// through onFailure, entries still pending at the deadline through
// onTimeout; a nil renderer yields an empty fragment. Resolve never
// returns an error: timeouts degrade to placeholder content.
func (r *Results) Resolve(deadline time.Time, onTimeout func() []*dom.Node, onFailure func(error) []*dom.Node) map[string][]*dom.Node {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for {
		r.mu.Lock()
		if r.settledLocked() {
			resolved := r.snapshotLocked(onTimeout, onFailure)
			r.mu.Unlock()
			return resolved
		}
		updated := r.updated
		r.mu.Unlock()

		select {
		case <-updated:
		case <-timer.C:
			r.mu.Lock()
			resolved := r.snapshotLocked(onTimeout, onFailure)
			r.mu.Unlock()
			return resolved
		}
	}
}

func (r *Results) snapshotLocked(onTimeout func() []*dom.Node, onFailure func(error) []*dom.Node) map[string][]*dom.Node {
	resolved := make(map[string][]*dom.Node, len(r.entries))
	for key, e := range r.entries {
		switch e.state {
		case StateReady:
			resolved[key] = e.nodes
		case StateFailed:
			if onFailure != nil {
				resolved[key] = onFailure(e.err)
			}
		default:
			if onTimeout != nil {
				resolved[key] = onTimeout()
			}
		}
	}
	return resolved
}
