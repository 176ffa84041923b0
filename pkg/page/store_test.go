package page

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "v1", []byte("go();")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "go();" {
		t.Errorf("Get = %q, want go();", got)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")

	var notFound ScriptNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get error = %v, want ScriptNotFoundError", err)
	}
	if notFound.Version != "nope" {
		t.Errorf("error version = %q, want nope", notFound.Version)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Put(ctx, "v1", []byte("old();"))
	s.Put(ctx, "v1", []byte("new();"))

	got, err := s.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "new();" {
		t.Errorf("Get = %q, want new();", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Put(ctx, "v1", []byte("x"))

	if err := s.Delete(ctx, "v1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "v1"); err == nil {
		t.Error("Get after Delete should fail")
	}
	if err := s.Delete(ctx, "v1"); err != nil {
		t.Errorf("deleting an unknown version should not fail: %v", err)
	}
}

func TestMemoryStorePutCopiesScript(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	src := []byte("go();")
	s.Put(ctx, "v1", src)
	src[0] = 'X'

	got, _ := s.Get(ctx, "v1")
	if string(got) != "go();" {
		t.Errorf("stored script aliased the caller's buffer: %q", got)
	}
}

func TestMemoryStorePrune(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Put(ctx, "old", []byte("a"))
	s.entries["old"] = memoryEntry{script: []byte("a"), createdAt: time.Now().Add(-time.Hour)}
	s.Put(ctx, "fresh", []byte("b"))

	if removed := s.Prune(10 * time.Minute); removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if _, err := s.Get(ctx, "old"); err == nil {
		t.Error("old entry should be pruned")
	}
	if _, err := s.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh entry must survive: %v", err)
	}
}
