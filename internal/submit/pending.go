// ABOUTME: Per-session registry of pending prompt submissions awaiting a worktree
// ABOUTME: At most one entry per session id; abort must be reachable from unrelated UI code

package submit

import "sync"

// Wait is the handle for one registered pending submission.
type Wait struct {
	abort   chan struct{}
	cleanup func()
}

// Abort returns the channel closed when this wait is cancelled.
func (w *Wait) Abort() <-chan struct{} { return w.abort }

// Pending tracks in-flight worktree waits keyed by session id. It is
// injected rather than package-global so UI code decoupled from the
// submission call stack can abort a wait, and tests can reset it.
type Pending struct {
	mu      sync.Mutex
	entries map[string]*Wait
}

// NewPending creates an empty registry.
func NewPending() *Pending {
	return &Pending{entries: make(map[string]*Wait)}
}

// Begin registers a wait for the session and returns its handle. An
// existing wait for the same session is cancelled and replaced, never
// run concurrently.
func (p *Pending) Begin(sessionID string, cleanup func()) *Wait {
	p.mu.Lock()
	prev, ok := p.entries[sessionID]
	w := &Wait{abort: make(chan struct{}), cleanup: cleanup}
	p.entries[sessionID] = w
	p.mu.Unlock()

	if ok {
		close(prev.abort)
		if prev.cleanup != nil {
			prev.cleanup()
		}
	}
	return w
}

// Cancel aborts the session's wait if one is registered. Returns true
// when a wait existed (the caller must then skip the network abort).
func (p *Pending) Cancel(sessionID string) bool {
	p.mu.Lock()
	e, ok := p.entries[sessionID]
	if ok {
		delete(p.entries, sessionID)
	}
	p.mu.Unlock()

	if !ok {
		return false
	}
	close(e.abort)
	if e.cleanup != nil {
		e.cleanup()
	}
	return true
}

// Remove drops the session's entry without signaling, but only while
// it is still w: a superseded wait must not delete its replacement.
func (p *Pending) Remove(sessionID string, w *Wait) {
	p.mu.Lock()
	if p.entries[sessionID] == w {
		delete(p.entries, sessionID)
	}
	p.mu.Unlock()
}

// Len returns the number of outstanding waits.
func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
