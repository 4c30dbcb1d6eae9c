// ABOUTME: Prompt editor component over the reconciled node tree
// ABOUTME: Typing, pill-atomic cursor movement, @ mention tracking, history recall

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/editor"
	"github.com/marigold-ai/atelier/internal/prompt"
	"github.com/marigold-ai/atelier/internal/textwidth"
)

// EditorModel is the prompt input. The node tree is shared by pointer so
// submission code can snapshot and restore it; the model value only
// carries view state.
type EditorModel struct {
	core    *editor.Editor
	guard   *editor.EchoGuard
	history *prompt.History

	placeholder string
	width       int
	shellMode   bool

	mentionActive bool
	mentionStart  int
}

// NewEditorModel creates an empty editor.
func NewEditorModel(placeholder string, history *prompt.History) EditorModel {
	return EditorModel{
		core:        editor.New(),
		guard:       &editor.EchoGuard{},
		history:     history,
		placeholder: placeholder,
	}
}

// Core returns the shared node tree for snapshot and restore.
func (m EditorModel) Core() *editor.Editor { return m.core }

// Guard returns the echo guard armed around programmatic rebuilds.
func (m EditorModel) Guard() *editor.EchoGuard { return m.guard }

// ShellMode reports whether the editor is in shell-command mode.
func (m EditorModel) ShellMode() bool { return m.shellMode }

// MentionActive reports whether an @ mention is being composed.
func (m EditorModel) MentionActive() bool { return m.mentionActive }

// MentionQuery returns the text typed since the trigger "@".
func (m EditorModel) MentionQuery() string {
	if !m.mentionActive {
		return ""
	}
	runes := []rune(m.core.Text())
	cur := editor.CursorOffset(m.core)
	if m.mentionStart >= cur || cur > len(runes) {
		return ""
	}
	return string(runes[m.mentionStart:cur])
}

// Init returns nil; no startup commands needed.
func (m EditorModel) Init() tea.Cmd { return nil }

// Update handles editing keys. Mention list navigation and submission
// are routed by the app, not here.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyRunes, tea.KeySpace:
		text := string(key.Runes)
		if key.Type == tea.KeySpace {
			text = " "
		}
		return m.insert(text), nil

	case tea.KeyBackspace:
		cur := editor.CursorOffset(m.core)
		m.core.DeleteBackward(cur)
		if m.mentionActive && editor.CursorOffset(m.core) <= m.mentionStart {
			m.mentionActive = false
		}
		return m, nil

	case tea.KeyLeft:
		if cur := editor.CursorOffset(m.core); cur > 0 {
			m.core.PlaceCursor(cur - 1)
		}
		if m.mentionActive && editor.CursorOffset(m.core) < m.mentionStart {
			m.mentionActive = false
		}
		return m, nil

	case tea.KeyRight:
		cur := editor.CursorOffset(m.core)
		if cur < editor.ContentLength(m.core.Root) {
			m.core.PlaceCursor(cur + 1)
		}
		return m, nil

	case tea.KeyUp:
		return m.historyUp(), nil

	case tea.KeyDown:
		return m.historyDown(), nil

	case tea.KeyCtrlJ:
		return m.insert("\n"), nil

	case tea.KeyCtrlU:
		m.Clear()
		return m, nil
	}
	return m, nil
}

func (m EditorModel) insert(text string) EditorModel {
	cur := editor.CursorOffset(m.core)
	m.core.InsertTextAt(cur, text)

	if text == "@" && !m.mentionActive {
		m.mentionActive = true
		m.mentionStart = editor.CursorOffset(m.core)
	}
	if m.mentionActive && strings.ContainsAny(text, " \n") {
		m.mentionActive = false
	}
	if m.shellMode || m.mentionActive {
		return m
	}
	// "!" at the start of an empty prompt enters shell mode.
	if text == "!" && m.core.Text() == "!" {
		m.core.DeleteBackward(editor.CursorOffset(m.core))
		m.shellMode = true
	}
	return m
}

// AcceptMention replaces the active "@query" run with a mention pill.
func (m EditorModel) AcceptMention(kind editor.MentionType, ref string) EditorModel {
	if !m.mentionActive {
		return m
	}
	cur := editor.CursorOffset(m.core)
	for cur > m.mentionStart-1 && cur > 0 {
		cur = m.core.DeleteBackward(cur)
	}
	m.core.InsertMentionAt(cur, kind, ref)
	m.core.InsertTextAt(editor.CursorOffset(m.core), " ")
	m.mentionActive = false
	return m
}

// DismissMention leaves the typed text in place.
func (m EditorModel) DismissMention() EditorModel {
	m.mentionActive = false
	return m
}

// ExitShellMode returns to normal prompt mode.
func (m EditorModel) ExitShellMode() EditorModel {
	m.shellMode = false
	return m
}

// SetShellMode forces the mode flag, used when a rollback restored a
// pre-submit snapshot outside the key-handling path.
func (m EditorModel) SetShellMode(v bool) EditorModel {
	m.shellMode = v
	return m
}

func (m EditorModel) historyUp() EditorModel {
	if m.history == nil {
		return m
	}
	line, _ := m.core.LineOf(editor.CursorOffset(m.core))
	snap, ok := m.history.Up(m.snapshot(), line == 0)
	if !ok {
		return m
	}
	m.load(snap)
	return m
}

func (m EditorModel) historyDown() EditorModel {
	if m.history == nil {
		return m
	}
	line, total := m.core.LineOf(editor.CursorOffset(m.core))
	snap, ok := m.history.Down(line == total-1)
	if !ok {
		return m
	}
	m.load(snap)
	return m
}

func (m EditorModel) snapshot() prompt.Snapshot {
	parts := editor.ParseTree(m.core.Root)
	return prompt.Snapshot{Parts: parts, Text: prompt.Flatten(parts)}
}

func (m EditorModel) load(snap prompt.Snapshot) {
	m.guard.Arm()
	m.core.Root = editor.NewElement(editor.RenderParts(snap.Parts)...)
	m.core.PlaceCursor(prompt.VisibleLength(snap.Parts))
}

// Clear empties the editor.
func (m EditorModel) Clear() {
	m.guard.Arm()
	m.core.Root = editor.NewElement()
	m.core.PlaceCursor(0)
}

// SetWidth updates the render width.
func (m EditorModel) SetWidth(w int) EditorModel {
	m.width = w
	return m
}

// View renders the prompt with pills highlighted.
func (m EditorModel) View() string {
	s := Styles()
	parts := editor.ParseTree(m.core.Root)

	prefix := "> "
	if m.shellMode {
		prefix = s.Warning.Render("! ")
	}

	if prompt.Empty(parts) && len(prompt.Images(parts)) == 0 {
		return prefix + s.Dim.Render(m.placeholder)
	}

	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		switch p := p.(type) {
		case prompt.TextPart:
			b.WriteString(p.Content)
		case prompt.FileAttachmentPart:
			b.WriteString(s.Pill.Render(p.Content))
		case prompt.AgentPart:
			b.WriteString(s.Pill.Render(p.Content))
		}
	}
	for _, img := range prompt.Images(parts) {
		b.WriteString(" " + s.Info.Render("["+img.Filename+"]"))
	}

	out := b.String()
	if m.width > 0 {
		lines := textwidth.Wrap(out, m.width)
		out = strings.Join(lines, "\n")
	}
	return out
}
