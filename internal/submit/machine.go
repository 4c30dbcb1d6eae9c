// ABOUTME: Prompt-submission state machine: validation, worktree gate, optimistic insert
// ABOUTME: Races worktree-ready against abort and timeout; rolls back in reverse order

package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marigold-ai/atelier/internal/log"
	"github.com/marigold-ai/atelier/internal/prompt"
	"github.com/marigold-ai/atelier/internal/rpc"
	"github.com/marigold-ai/atelier/internal/state"
)

// DefaultWaitTimeout bounds the worktree-ready wait.
const DefaultWaitTimeout = 5 * time.Minute

// ErrWaitFailed is returned when the worktree gate settles as failed
// or times out; the optimistic state has been rolled back.
var ErrWaitFailed = errors.New("submit: worktree wait failed")

// WorktreeChoice selects worktree handling for a new session.
type WorktreeChoice string

const (
	WorktreeNone   WorktreeChoice = "none"
	WorktreeCreate WorktreeChoice = "create"
)

// SessionRPC is the directory-bound slice of the server boundary the
// machine calls. *rpc.Client satisfies it.
type SessionRPC interface {
	Directory() string
	CreateSession(ctx context.Context) (rpc.SessionCreateResult, error)
	Shell(ctx context.Context, sessionID, command string) error
	Command(ctx context.Context, sessionID, name, arguments string) error
	PromptAsync(ctx context.Context, params rpc.PromptParams) error
	Abort(ctx context.Context, sessionID string) error
	CreateWorktree(ctx context.Context, directory string) (string, error)
}

// ClientFactory builds a client bound to a working directory. The
// machine calls it again whenever submission redirects to a new
// worktree directory, so every call after the redirect uses a client
// scoped to that directory.
type ClientFactory func(directory string) SessionRPC

// EditorSnapshot captures editor state for exact restoration.
type EditorSnapshot struct {
	Parts        []prompt.Part
	Text         string
	Mode         prompt.Mode
	CursorOffset int
}

// EditorPort is the machine's view of the prompt editor.
type EditorPort interface {
	Snapshot() EditorSnapshot
	Clear()
	Restore(EditorSnapshot)
}

// CommentItem is a pending review-comment context item attached to the
// next submission.
type CommentItem struct {
	ID   string
	File string
	Line int
	Text string
}

// CommentContext manages pending comment items around a submission.
type CommentContext interface {
	Items() []CommentItem
	Remove(items []CommentItem)
	Restore(items []CommentItem)
}

// BuildInput feeds the external request-part builder.
type BuildInput struct {
	Parts     []prompt.Part
	Comments  []CommentItem
	Images    []prompt.ImageAttachmentPart
	Text      string
	SessionID string
	MessageID string
	Directory string
}

// PartBuilder turns editor state into wire parts plus the optimistic
// local parts. Opaque to the machine.
type PartBuilder func(in BuildInput) (request []rpc.PromptPart, optimistic []prompt.Part)

// Hooks are UI side effects the machine triggers at fixed points.
type Hooks struct {
	ResetPopovers func()
	RegisterTab   func(sessionID string)
	Navigate      func(sessionID string)
}

// Input is one submission's parameters. NewSessionWorktree is an
// accessor, read at submit time, so consecutive submissions observe
// their own worktree choice rather than a stale capture.
type Input struct {
	Directory          string
	ActiveDirectory    string
	SessionID          string
	Model              string
	Agent              string
	ShellMode          bool
	Working            bool
	Commands           []string
	NewSessionWorktree func() WorktreeChoice
}

// Machine orchestrates prompt submission.
type Machine struct {
	clients   ClientFactory
	worktrees *state.WorktreeStates
	store     state.OptimisticStore
	busy      *state.Busy
	pending   *Pending
	editor    EditorPort
	comments  CommentContext
	history   *prompt.History
	build     PartBuilder
	notify    func(message string)
	hooks     Hooks

	// WaitTimeout bounds the worktree gate; defaults to
	// DefaultWaitTimeout.
	WaitTimeout time.Duration
}

// Config wires a Machine.
type Config struct {
	Clients   ClientFactory
	Worktrees *state.WorktreeStates
	Store     state.OptimisticStore
	Busy      *state.Busy
	Pending   *Pending
	Editor    EditorPort
	Comments  CommentContext
	History   *prompt.History
	Build     PartBuilder
	Notify    func(message string)
	Hooks     Hooks
}

// NewMachine creates a submission machine.
func NewMachine(cfg Config) *Machine {
	m := &Machine{
		clients:     cfg.Clients,
		worktrees:   cfg.Worktrees,
		store:       cfg.Store,
		busy:        cfg.Busy,
		pending:     cfg.Pending,
		editor:      cfg.Editor,
		comments:    cfg.Comments,
		history:     cfg.History,
		build:       cfg.Build,
		notify:      cfg.Notify,
		hooks:       cfg.Hooks,
		WaitTimeout: DefaultWaitTimeout,
	}
	if m.notify == nil {
		m.notify = func(string) {}
	}
	if m.pending == nil {
		m.pending = NewPending()
	}
	return m
}

// Abort cancels the session's submission. A pending worktree wait is
// resolved locally; otherwise a network abort is issued, whose own
// failure is swallowed.
func (m *Machine) Abort(ctx context.Context, directory, sessionID string) {
	if m.pending.Cancel(sessionID) {
		return
	}
	client := m.clients(directory)
	if err := client.Abort(ctx, sessionID); err != nil {
		log.Debug("abort rpc failed for session %s: %v", sessionID, err)
	}
}

// Submit runs one submission end to end. Side effects are strictly
// ordered: history and popover reset before any network call,
// optimistic insertion before the send it represents, rollback in
// reverse order of application.
func (m *Machine) Submit(ctx context.Context, in Input) error {
	snap := m.editor.Snapshot()
	text := strings.TrimSpace(snap.Text)
	images := prompt.Images(snap.Parts)
	var comments []CommentItem
	if m.comments != nil {
		comments = m.comments.Items()
	}

	if text == "" && len(images) == 0 && len(comments) == 0 {
		if in.Working {
			m.Abort(ctx, in.ActiveDirectory, in.SessionID)
		}
		return nil
	}
	if in.Model == "" {
		m.notify(msgMissingModel)
		return nil
	}
	if in.Agent == "" {
		m.notify(msgMissingAgent)
		return nil
	}

	if m.history != nil {
		mode := prompt.ModeNormal
		if in.ShellMode {
			mode = prompt.ModeShell
		}
		m.history.SetMode(mode)
		m.history.Record(prompt.Snapshot{Parts: snap.Parts, Text: snap.Text})
	}
	if m.hooks.ResetPopovers != nil {
		m.hooks.ResetPopovers()
	}

	directory := in.Directory
	client := m.clients(directory)

	sessionID := in.SessionID
	if sessionID == "" {
		choice := WorktreeNone
		if in.NewSessionWorktree != nil {
			choice = in.NewSessionWorktree()
		}
		if choice == WorktreeCreate {
			wtDir, err := client.CreateWorktree(ctx, directory)
			if err != nil {
				m.notify(rpc.UserMessage(err, msgWorktreeCreateFailed))
				return err
			}
			m.worktrees.Pending(wtDir)
			directory = wtDir
			client = m.clients(directory)
		}

		res, err := client.CreateSession(ctx)
		if err != nil {
			m.notify(rpc.UserMessage(err, msgSessionCreateFailed))
			return err
		}
		sessionID = res.SessionID
		if m.hooks.RegisterTab != nil {
			m.hooks.RegisterTab(sessionID)
		}
		if m.hooks.Navigate != nil {
			m.hooks.Navigate(sessionID)
		}
	}

	if name, args, ok := splitCommand(text); ok && containsName(in.Commands, name) {
		m.editor.Clear()
		if err := client.Command(ctx, sessionID, name, args); err != nil {
			m.notify(rpc.UserMessage(err, msgCommandFailed))
			return err
		}
		return nil
	}

	if in.ShellMode {
		m.editor.Clear()
		if err := client.Shell(ctx, sessionID, text); err != nil {
			m.editor.Restore(snap)
			m.notify(rpc.UserMessage(err, msgShellFailed))
			return err
		}
		return nil
	}

	messageID := uuid.NewString()
	request, optimistic := m.build(BuildInput{
		Parts:     snap.Parts,
		Comments:  comments,
		Images:    images,
		Text:      text,
		SessionID: sessionID,
		MessageID: messageID,
		Directory: directory,
	})

	if m.comments != nil {
		m.comments.Remove(comments)
	}
	m.editor.Clear()
	m.store.Add(state.OptimisticMessage{
		Directory: directory,
		SessionID: sessionID,
		MessageID: messageID,
		Parts:     optimistic,
	})

	rollback := func() {
		m.store.Remove(directory, sessionID, messageID)
		if m.comments != nil {
			m.comments.Restore(comments)
		}
		restored := snap
		restored.CursorOffset = prompt.VisibleLength(snap.Parts)
		m.editor.Restore(restored)
	}

	if m.worktrees.Get(directory) == state.WorktreePending {
		outcome, res := m.waitForWorktree(ctx, directory, sessionID)
		switch outcome {
		case waitAborted:
			// User abort: clean up without a failure toast.
			rollback()
			return nil
		case waitTimedOut:
			rollback()
			m.notify(msgStillPreparing)
			return ErrWaitFailed
		case waitFailed:
			rollback()
			msg := res.Message
			if msg == "" {
				msg = msgWorktreeFailed
			}
			m.notify(msg)
			return ErrWaitFailed
		}
	}

	if err := client.PromptAsync(ctx, rpc.PromptParams{
		SessionID: sessionID,
		MessageID: messageID,
		Model:     in.Model,
		Agent:     in.Agent,
		Parts:     request,
	}); err != nil {
		rollback()
		if m.busy != nil && directory == in.ActiveDirectory {
			m.busy.Set(in.ActiveDirectory, false)
		}
		m.notify(rpc.UserMessage(err, msgSendFailed))
		return fmt.Errorf("sending prompt: %w", err)
	}

	if m.busy != nil {
		m.busy.Set(directory, true)
	}
	return nil
}

type waitOutcome int

const (
	waitReady waitOutcome = iota
	waitFailed
	waitAborted
	waitTimedOut
)

// waitForWorktree races worktree settlement, a per-session abort, and
// the timeout. Exactly one pending entry exists for the session while
// the race is outstanding.
func (m *Machine) waitForWorktree(ctx context.Context, directory, sessionID string) (waitOutcome, state.WorktreeResult) {
	wait := m.pending.Begin(sessionID, nil)
	defer m.pending.Remove(sessionID, wait)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan state.WorktreeResult, 1)
	go func() {
		res, err := m.worktrees.Wait(wctx, directory)
		if err != nil {
			return
		}
		resCh <- res
	}()

	timeout := m.WaitTimeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resCh:
		if res.Status == state.WorktreeFailed {
			return waitFailed, res
		}
		return waitReady, res
	case <-wait.Abort():
		return waitAborted, state.WorktreeResult{}
	case <-timer.C:
		return waitTimedOut, state.WorktreeResult{}
	}
}

// splitCommand extracts a leading "/name" token and its arguments.
func splitCommand(text string) (name, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	rest := strings.TrimPrefix(text, "/")
	if rest == "" {
		return "", "", false
	}
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		return rest[:i], strings.TrimSpace(rest[i+1:]), true
	}
	return rest, "", true
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
