// ABOUTME: Tests for the optimistic message store and the busy tracker

package state

import (
	"testing"

	"github.com/marigold-ai/atelier/internal/prompt"
)

func msg(dir, session, id string) OptimisticMessage {
	return OptimisticMessage{
		Directory: dir,
		SessionID: session,
		MessageID: id,
		Parts:     []prompt.Part{prompt.TextPart{Content: "hello"}},
	}
}

func TestMemoryStoreAddRemove(t *testing.T) {
	s := NewMemoryStore()
	s.Add(msg("/repo", "s1", "m1"))
	s.Add(msg("/repo", "s1", "m2"))

	if got := len(s.Messages()); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
	s.Remove("/repo", "s1", "m1")
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].MessageID != "m2" {
		t.Errorf("messages = %+v, want only m2", msgs)
	}
}

func TestMemoryStoreRemoveRequiresAllKeys(t *testing.T) {
	s := NewMemoryStore()
	s.Add(msg("/repo", "s1", "m1"))

	s.Remove("/other", "s1", "m1")
	s.Remove("/repo", "s2", "m1")
	s.Remove("/repo", "s1", "mX")
	if got := len(s.Messages()); got != 1 {
		t.Errorf("len = %d, want 1 after mismatched removes", got)
	}
}

func TestMemoryStoreRemoveMissingIsNoop(t *testing.T) {
	s := NewMemoryStore()
	s.Remove("/repo", "s1", "m1")
	if got := len(s.Messages()); got != 0 {
		t.Errorf("len = %d, want 0", got)
	}
}

func TestMemoryStoreSnapshotIsolated(t *testing.T) {
	s := NewMemoryStore()
	s.Add(msg("/repo", "s1", "m1"))
	snap := s.Messages()
	snap[0].MessageID = "mutated"
	if got := s.Messages()[0].MessageID; got != "m1" {
		t.Errorf("store leaked its backing slice: %q", got)
	}
}

func TestBusy(t *testing.T) {
	b := NewBusy()
	if b.Get("/repo") {
		t.Error("new tracker reports busy")
	}
	b.Set("/repo", true)
	if !b.Get("/repo") {
		t.Error("Get = false after Set(true)")
	}
	if b.Get("/other") {
		t.Error("busy leaked across directories")
	}
	b.Set("/repo", false)
	if b.Get("/repo") {
		t.Error("Get = true after Set(false)")
	}
}
