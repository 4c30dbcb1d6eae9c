// ABOUTME: All custom tea.Msg types for the workspace TUI
// ABOUTME: Autocomplete results, submission outcomes, worktree events, toasts

package tui

import (
	"github.com/marigold-ai/atelier/internal/pathresolve"
	"github.com/marigold-ai/atelier/internal/state"
	"github.com/marigold-ai/atelier/internal/submit"
)

// --- Path autocomplete ---

// MentionRowsMsg carries resolved autocomplete rows. Gen identifies the
// resolve call; stale generations are dropped.
type MentionRowsMsg struct {
	Gen  int64
	Rows []pathresolve.Row
}

// MentionSelectMsg is sent when the user picks a row.
type MentionSelectMsg struct{ Path string }

// MentionDismissMsg is sent when the user dismisses the mention list.
type MentionDismissMsg struct{}

// --- Submission ---

// SubmitDoneMsg reports a finished submission attempt.
type SubmitDoneMsg struct{ Err error }

// ToastMsg shows a transient notice.
type ToastMsg struct{ Text string }

// ToastClearMsg hides the toast after its display period.
type ToastClearMsg struct{}

// --- Worktree lifecycle (sent by the server event stream) ---

// WorktreeStatusMsg reports a worktree transition for a directory.
type WorktreeStatusMsg struct {
	Directory string
	Status    state.WorktreeStatus
	Message   string
}

// WorktreeChoiceMsg carries the user's new-session worktree decision.
type WorktreeChoiceMsg struct{ Choice submit.WorktreeChoice }

// DismissOverlayMsg closes whatever overlay is on top.
type DismissOverlayMsg struct{}

// --- Review pane ---

// StatusTextMsg replaces the review pane's markdown body.
type StatusTextMsg struct{ Markdown string }

// statusFlushMsg fires when the debounce window elapses.
type statusFlushMsg struct{ seq int }
