// ABOUTME: Shared worktree status registry with awaitable ready/failed transitions
// ABOUTME: Waiters get the terminal status; pending directories gate prompt submission

package state

import (
	"context"
	"sync"
)

// WorktreeStatus is the lifecycle state of a worktree directory.
type WorktreeStatus string

const (
	WorktreeUnknown WorktreeStatus = ""
	WorktreePending WorktreeStatus = "pending"
	WorktreeReady   WorktreeStatus = "ready"
	WorktreeFailed  WorktreeStatus = "failed"
)

// WorktreeResult is the terminal outcome delivered to waiters.
type WorktreeResult struct {
	Status  WorktreeStatus
	Message string
}

type worktreeEntry struct {
	status  WorktreeStatus
	message string
	waiters []chan WorktreeResult
}

// WorktreeStates tracks per-directory worktree status and lets callers
// await the pending -> ready/failed transition.
type WorktreeStates struct {
	mu      sync.Mutex
	entries map[string]*worktreeEntry
}

// NewWorktreeStates creates an empty registry.
func NewWorktreeStates() *WorktreeStates {
	return &WorktreeStates{entries: make(map[string]*worktreeEntry)}
}

// Pending marks a directory's worktree as being prepared.
func (w *WorktreeStates) Pending(directory string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[directory] = &worktreeEntry{status: WorktreePending}
}

// Ready marks a directory's worktree usable and releases waiters.
func (w *WorktreeStates) Ready(directory string) {
	w.settle(directory, WorktreeResult{Status: WorktreeReady})
}

// Failed marks a directory's worktree failed and releases waiters.
func (w *WorktreeStates) Failed(directory, message string) {
	w.settle(directory, WorktreeResult{Status: WorktreeFailed, Message: message})
}

// Get returns the current status for a directory.
func (w *WorktreeStates) Get(directory string) WorktreeStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entries[directory]; ok {
		return e.status
	}
	return WorktreeUnknown
}

// Wait blocks until the directory reaches ready or failed, or ctx is
// done. A directory not in the registry counts as ready.
func (w *WorktreeStates) Wait(ctx context.Context, directory string) (WorktreeResult, error) {
	w.mu.Lock()
	e, ok := w.entries[directory]
	if !ok || e.status == WorktreeReady {
		w.mu.Unlock()
		return WorktreeResult{Status: WorktreeReady}, nil
	}
	if e.status == WorktreeFailed {
		w.mu.Unlock()
		return WorktreeResult{Status: WorktreeFailed, Message: e.message}, nil
	}
	ch := make(chan WorktreeResult, 1)
	e.waiters = append(e.waiters, ch)
	w.mu.Unlock()

	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return WorktreeResult{}, ctx.Err()
	}
}

func (w *WorktreeStates) settle(directory string, res WorktreeResult) {
	w.mu.Lock()
	e, ok := w.entries[directory]
	if !ok {
		e = &worktreeEntry{}
		w.entries[directory] = e
	}
	e.status = res.Status
	e.message = res.Message
	waiters := e.waiters
	e.waiters = nil
	w.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}
