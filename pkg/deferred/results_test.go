package deferred

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

func TestResolveAllReady(t *testing.T) {
	r := NewResults()
	r.Register("a")
	r.Register("b")
	r.Complete("a", []*dom.Node{dom.Text("one")})
	r.Complete("b", []*dom.Node{dom.Text("two")})

	resolved := r.Resolve(time.Now().Add(time.Second), nil, nil)
	if len(resolved) != 2 {
		t.Fatalf("resolved %d entries, want 2", len(resolved))
	}
	if got := resolved["a"]; len(got) != 1 || got[0].Text != "one" {
		t.Errorf("resolved[a] = %v", got)
	}
	if got := resolved["b"]; len(got) != 1 || got[0].Text != "two" {
		t.Errorf("resolved[b] = %v", got)
	}
}

func TestResolveWaitsForLateProducer(t *testing.T) {
	r := NewResults()
	r.Register("slow")

	go func() {
		time.Sleep(30 * time.Millisecond)
		r.Complete("slow", []*dom.Node{dom.Elem("b", nil, dom.Text("done"))})
	}()

	resolved := r.Resolve(time.Now().Add(2*time.Second), nil, nil)
	got, ok := resolved["slow"]
	if !ok || len(got) != 1 || !got[0].IsElement("b") {
		t.Fatalf("resolved[slow] = %v, %v", got, ok)
	}
}

func TestResolveTimeout(t *testing.T) {
	r := NewResults()
	r.Register("never")

	timeout := 50 * time.Millisecond
	start := time.Now()
	resolved := r.Resolve(start.Add(timeout), func() []*dom.Node {
		return []*dom.Node{dom.Text("timed out")}
	}, nil)
	elapsed := time.Since(start)

	if elapsed < timeout {
		t.Errorf("Resolve returned after %v, want at least %v", elapsed, timeout)
	}
	if got := resolved["never"]; len(got) != 1 || got[0].Text != "timed out" {
		t.Errorf("resolved[never] = %v, want timeout placeholder", got)
	}
}

func TestResolveTimeoutNilRenderer(t *testing.T) {
	r := NewResults()
	r.Register("never")

	resolved := r.Resolve(time.Now().Add(10*time.Millisecond), nil, nil)
	if got, ok := resolved["never"]; ok {
		t.Errorf("resolved[never] = %v, want no entry with nil renderer", got)
	}
}

func TestResolveFailure(t *testing.T) {
	r := NewResults()
	r.Register("bad")
	r.Fail("bad", errors.New("boom"))

	var seen error
	resolved := r.Resolve(time.Now().Add(time.Second), nil, func(err error) []*dom.Node {
		seen = err
		return []*dom.Node{dom.Text("failed")}
	})

	if seen == nil || seen.Error() != "boom" {
		t.Errorf("failure renderer saw %v, want boom", seen)
	}
	if got := resolved["bad"]; len(got) != 1 || got[0].Text != "failed" {
		t.Errorf("resolved[bad] = %v, want failure placeholder", got)
	}
}

func TestConcurrentProducers(t *testing.T) {
	r := NewResults()
	const n = 32
	keys := make([]string, n)
	for i := range keys {
		keys[i] = string(rune('a' + i%26)) + "-" + string(rune('0'+i/26))
		r.Register(keys[i])
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Complete(key, []*dom.Node{dom.Text(key)})
		}()
	}

	resolved := r.Resolve(time.Now().Add(5*time.Second), nil, nil)
	wg.Wait()

	if len(resolved) != n {
		t.Fatalf("resolved %d entries, want %d", len(resolved), n)
	}
	for _, key := range keys {
		if got := resolved[key]; len(got) != 1 || got[0].Text != key {
			t.Errorf("resolved[%s] = %v", key, got)
		}
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := NewResults()
	r.Register("k")
	r.Complete("k", []*dom.Node{dom.Text("v")})
	r.Register("k")

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	resolved := r.Resolve(time.Now().Add(time.Second), nil, nil)
	if got := resolved["k"]; len(got) != 1 || got[0].Text != "v" {
		t.Errorf("re-registering must not discard a completed result: %v", got)
	}
}
