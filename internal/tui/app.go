// ABOUTME: Root Bubble Tea model wiring editor, autocomplete, submission, and panes
// ABOUTME: Owns key routing; async work runs in tea.Cmd goroutines and reports via msgs

package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/config"
	"github.com/marigold-ai/atelier/internal/editor"
	"github.com/marigold-ai/atelier/internal/log"
	"github.com/marigold-ai/atelier/internal/pathresolve"
	"github.com/marigold-ai/atelier/internal/prompt"
	"github.com/marigold-ai/atelier/internal/state"
	"github.com/marigold-ai/atelier/internal/submit"
)

const toastDuration = 3 * time.Second

// AppDeps provides all external dependencies for the TUI.
type AppDeps struct {
	Directory   string
	Home        string
	Settings    *config.Settings
	Clients     submit.ClientFactory
	Resolver    *pathresolve.Resolver
	Worktrees   *state.WorktreeStates
	Store       *state.MemoryStore
	Busy        *state.Busy
	Commands    []string
	HistoryFile string
}

// appShared holds the program reference so machine hooks running in
// tea.Cmd goroutines can send messages back into the update loop.
type appShared struct {
	mu      sync.Mutex
	program *tea.Program
}

func (sh *appShared) send(msg tea.Msg) {
	sh.mu.Lock()
	p := sh.program
	sh.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// SessionCreatedMsg is sent by the submission machine when a new
// session exists.
type SessionCreatedMsg struct{ SessionID string }

var _ tea.Model = AppModel{}

// AppModel is the root model.
type AppModel struct {
	deps    AppDeps
	sh      *appShared
	machine *submit.Machine
	bridge  *editorBridge
	history *prompt.History

	editor  EditorModel
	mention MentionModel
	review  ReviewPaneModel
	footer  FooterModel
	dialog  *WorktreeDialogModel

	comments  *commentStore
	sessionID string
	activeDir string
	toast     string
	width     int
	height    int
}

// NewAppModel assembles the app from its dependencies.
func NewAppModel(deps AppDeps) AppModel {
	sh := &appShared{}
	history := prompt.NewHistory(deps.Settings.HistoryLimit)
	if deps.HistoryFile != "" {
		if err := history.LoadFromFile(deps.HistoryFile); err != nil {
			log.Warn("loading prompt history: %v", err)
		}
	}
	ed := NewEditorModel(deps.Settings.Placeholder, history)
	comments := newCommentStore()

	bridge := &editorBridge{core: ed.Core(), guard: ed.Guard()}
	machine := submit.NewMachine(submit.Config{
		Clients:   deps.Clients,
		Worktrees: deps.Worktrees,
		Store:     deps.Store,
		Busy:      deps.Busy,
		Pending:   submit.NewPending(),
		Editor:    bridge,
		Comments:  comments,
		History:   history,
		Build:     submit.BuildParts,
		Notify:    func(msg string) { sh.send(ToastMsg{Text: msg}) },
		Hooks: submit.Hooks{
			RegisterTab: func(id string) { sh.send(SessionCreatedMsg{SessionID: id}) },
		},
	})
	machine.WaitTimeout = deps.Settings.WorktreeTimeout.Std()

	return AppModel{
		deps:      deps,
		sh:        sh,
		machine:   machine,
		bridge:    bridge,
		history:   history,
		editor:    ed,
		mention:   NewMentionModel(deps.Home),
		review:    NewReviewPaneModel(deps.Settings.StatusDebounce.Std()),
		footer:    NewFooterModel().WithDirectory(deps.Directory).WithModel(deps.Settings.Model).WithAgent(deps.Settings.Agent),
		comments:  comments,
		activeDir: deps.Directory,
	}
}

// Init returns nil; the app waits for input.
func (m AppModel) Init() tea.Cmd { return nil }

// Update routes messages to the focused component.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor = m.editor.SetWidth(msg.Width)
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.mention, cmd = m.mention.Update(msg)
		cmds = append(cmds, cmd)
		m.review, cmd = m.review.Update(msg)
		cmds = append(cmds, cmd)
		m.footer, cmd = m.footer.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MentionRowsMsg:
		var cmd tea.Cmd
		m.mention, cmd = m.mention.Update(msg)
		return m, cmd

	case MentionSelectMsg:
		m.editor = m.editor.AcceptMention(editor.MentionFile, pathresolve.TildeForm(msg.Path, m.deps.Home))
		m.mention = m.mention.Reset()
		return m, nil

	case MentionDismissMsg:
		m.editor = m.editor.DismissMention()
		m.mention = m.mention.Reset()
		return m, nil

	case WorktreeChoiceMsg:
		m.dialog = nil
		return m.startSubmit(msg.Choice)

	case DismissOverlayMsg:
		m.dialog = nil
		return m, nil

	case SessionCreatedMsg:
		m.sessionID = msg.SessionID
		return m, nil

	case SubmitDoneMsg:
		m.footer = m.footer.WithBusy(m.deps.Busy.Get(m.activeDir))
		// A rollback may have restored the pre-submit mode on the bridge.
		m.editor = m.editor.SetShellMode(m.bridge.shellActive())
		if msg.Err == nil && m.deps.HistoryFile != "" {
			if err := m.history.SaveToFile(m.deps.HistoryFile); err != nil {
				log.Warn("saving prompt history: %v", err)
			}
		}
		return m, nil

	case WorktreeStatusMsg:
		switch msg.Status {
		case state.WorktreeReady:
			m.deps.Worktrees.Ready(msg.Directory)
		case state.WorktreeFailed:
			m.deps.Worktrees.Failed(msg.Directory, msg.Message)
		}
		m.footer = m.footer.WithWorktree(m.deps.Worktrees.Get(m.activeDir))
		return m, nil

	case StatusTextMsg, statusFlushMsg:
		var cmd tea.Cmd
		m.review, cmd = m.review.Update(msg)
		m.footer = m.footer.WithBusy(m.deps.Busy.Get(m.activeDir))
		return m, cmd

	case ToastMsg:
		m.toast = msg.Text
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return ToastClearMsg{} })

	case ToastClearMsg:
		m.toast = ""
		return m, nil
	}
	return m, nil
}

func (m AppModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.dialog != nil {
		d, cmd := m.dialog.Update(key)
		m.dialog = &d
		return m, cmd
	}

	if m.editor.MentionActive() {
		switch key.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyEnter, tea.KeyTab, tea.KeyEsc:
			var cmd tea.Cmd
			m.mention, cmd = m.mention.Update(key)
			return m, cmd
		}
	}

	switch key.Type {
	case tea.KeyEnter:
		return m.submitOrPrompt()
	case tea.KeyEsc:
		if m.editor.ShellMode() {
			m.editor = m.editor.ExitShellMode()
			m.bridge.setShell(false)
			return m, nil
		}
		if m.deps.Busy.Get(m.activeDir) && m.sessionID != "" {
			return m, m.abortCmd()
		}
		return m, nil
	}

	wasActive := m.editor.MentionActive()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(key)
	m.bridge.setShell(m.editor.ShellMode())

	if m.editor.MentionActive() {
		if !wasActive {
			m.mention = m.mention.SetLoading(true)
		}
		return m, tea.Batch(cmd, m.resolveCmd(m.editor.MentionQuery()))
	}
	if wasActive {
		m.mention = m.mention.Reset()
	}
	return m, cmd
}

// submitOrPrompt opens the worktree dialog for a brand new session and
// otherwise kicks off submission.
func (m AppModel) submitOrPrompt() (tea.Model, tea.Cmd) {
	if m.sessionID == "" && !m.editor.ShellMode() {
		d := NewWorktreeDialogModel(m.deps.Directory, m.width)
		m.dialog = &d
		return m, nil
	}
	return m.startSubmit(submit.WorktreeNone)
}

// startSubmit snapshots the choice for this submission only, so a later
// submission cannot observe it.
func (m AppModel) startSubmit(choice submit.WorktreeChoice) (tea.Model, tea.Cmd) {
	in := submit.Input{
		Directory:          m.deps.Directory,
		ActiveDirectory:    m.activeDir,
		SessionID:          m.sessionID,
		Model:              m.deps.Settings.Model,
		Agent:              m.deps.Settings.Agent,
		ShellMode:          m.editor.ShellMode(),
		Working:            m.deps.Busy.Get(m.activeDir),
		Commands:           m.deps.Commands,
		NewSessionWorktree: func() submit.WorktreeChoice { return choice },
	}
	machine := m.machine
	return m, func() tea.Msg {
		err := machine.Submit(context.Background(), in)
		return SubmitDoneMsg{Err: err}
	}
}

func (m AppModel) abortCmd() tea.Cmd {
	machine := m.machine
	dir, id := m.activeDir, m.sessionID
	return func() tea.Msg {
		machine.Abort(context.Background(), dir, id)
		return nil
	}
}

// resolveCmd runs one autocomplete resolution. Superseded calls return
// no message; the resolver's own generation counter drops their work.
func (m AppModel) resolveCmd(query string) tea.Cmd {
	resolver := m.deps.Resolver
	return func() tea.Msg {
		rows, gen, err := resolver.ResolveGen(context.Background(), query)
		if err != nil {
			if errors.Is(err, pathresolve.ErrSuperseded) {
				return nil
			}
			return MentionRowsMsg{Gen: gen, Rows: nil}
		}
		return MentionRowsMsg{Gen: gen, Rows: rows}
	}
}

// View composes the panes top to bottom.
func (m AppModel) View() string {
	s := Styles()
	var out string

	out += m.review.View()
	out += "\n\n"

	if m.dialog != nil {
		out += m.dialog.View()
		return out
	}

	out += m.editor.View()
	if m.editor.MentionActive() {
		out += "\n" + m.mention.View()
	}
	if m.toast != "" {
		out += "\n" + s.Toast.Render(" "+m.toast+" ")
	}
	out += "\n" + m.footer.View()
	return out
}

// editorBridge adapts the shared node tree to the submission machine.
type editorBridge struct {
	core  *editor.Editor
	guard *editor.EchoGuard

	mu    sync.Mutex
	shell bool
}

func (b *editorBridge) setShell(v bool) {
	b.mu.Lock()
	b.shell = v
	b.mu.Unlock()
}

func (b *editorBridge) shellActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shell
}

func (b *editorBridge) Snapshot() submit.EditorSnapshot {
	parts := editor.ParseTree(b.core.Root)
	mode := prompt.ModeNormal
	b.mu.Lock()
	if b.shell {
		mode = prompt.ModeShell
	}
	b.mu.Unlock()
	return submit.EditorSnapshot{
		Parts:        parts,
		Text:         prompt.Flatten(parts),
		Mode:         mode,
		CursorOffset: editor.CursorOffset(b.core),
	}
}

func (b *editorBridge) Clear() {
	b.guard.Arm()
	b.core.Root = editor.NewElement()
	b.core.PlaceCursor(0)
}

func (b *editorBridge) Restore(s submit.EditorSnapshot) {
	b.guard.Arm()
	b.core.Root = editor.NewElement(editor.RenderParts(s.Parts)...)
	b.core.PlaceCursor(s.CursorOffset)
	b.setShell(s.Mode == prompt.ModeShell)
}

// commentStore is the in-memory pending review-comment context.
type commentStore struct {
	mu    sync.Mutex
	items []submit.CommentItem
}

func newCommentStore() *commentStore {
	return &commentStore{}
}

// Add queues a comment for the next submission.
func (c *commentStore) Add(item submit.CommentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

func (c *commentStore) Items() []submit.CommentItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]submit.CommentItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *commentStore) Remove(items []submit.CommentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	drop := make(map[string]bool, len(items))
	for _, it := range items {
		drop[it.ID] = true
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if !drop[it.ID] {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *commentStore) Restore(items []submit.CommentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, items...)
}
