// ABOUTME: Optimistic sync store: locally inserted messages awaiting server echo
// ABOUTME: Add is visible to the caller's own subsequent Remove; no other atomicity promised

package state

import (
	"sync"

	"github.com/marigold-ai/atelier/internal/prompt"
)

// OptimisticMessage is a locally inserted message row.
type OptimisticMessage struct {
	Directory string
	SessionID string
	MessageID string
	Parts     []prompt.Part
}

// OptimisticStore is the shared view-state boundary for optimistic
// message insertion and rollback.
type OptimisticStore interface {
	Add(msg OptimisticMessage)
	Remove(directory, sessionID, messageID string)
}

// MemoryStore is the in-process OptimisticStore used by the app and
// tests.
type MemoryStore struct {
	mu       sync.Mutex
	messages []OptimisticMessage
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add inserts an optimistic message.
func (s *MemoryStore) Add(msg OptimisticMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Remove deletes the message matching all three keys, if present.
func (s *MemoryStore) Remove(directory, sessionID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.messages {
		if m.Directory == directory && m.SessionID == sessionID && m.MessageID == messageID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

// Messages returns a snapshot of the stored messages.
func (s *MemoryStore) Messages() []OptimisticMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OptimisticMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy tracks a per-directory busy indicator for the active session.
type Busy struct {
	mu   sync.Mutex
	dirs map[string]bool
}

// NewBusy creates an idle tracker.
func NewBusy() *Busy {
	return &Busy{dirs: make(map[string]bool)}
}

// Set marks a directory busy or idle.
func (b *Busy) Set(directory string, busy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirs[directory] = busy
}

// Get reports whether a directory is busy.
func (b *Busy) Get(directory string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirs[directory]
}
