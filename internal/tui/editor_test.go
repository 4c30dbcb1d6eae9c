// ABOUTME: Tests for the prompt editor model: typing, mention tracking, shell mode, history

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/editor"
	"github.com/marigold-ai/atelier/internal/prompt"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m EditorModel, text string) EditorModel {
	for _, r := range text {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestEditorTyping(t *testing.T) {
	m := NewEditorModel("type here", nil)
	m = typeText(m, "hello world")
	if got := m.Core().Text(); got != "hello world" {
		t.Errorf("Text = %q", got)
	}
	if got := editor.CursorOffset(m.Core()); got != 11 {
		t.Errorf("cursor = %d, want 11", got)
	}
}

func TestEditorMentionTracking(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "see @sr")
	if !m.MentionActive() {
		t.Fatal("mention not active after @")
	}
	if got := m.MentionQuery(); got != "sr" {
		t.Errorf("MentionQuery = %q, want sr", got)
	}

	m = typeText(m, " next")
	if m.MentionActive() {
		t.Error("mention still active after space")
	}
	if got := m.MentionQuery(); got != "" {
		t.Errorf("MentionQuery = %q, want empty when inactive", got)
	}
}

func TestEditorMentionDeactivatesOnBackspacePastTrigger(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "@a")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if !m.MentionActive() {
		t.Fatal("mention dropped while query still open")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.MentionActive() {
		t.Error("mention still active after deleting the trigger")
	}
}

func TestEditorAcceptMention(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "see @sr")
	m = m.AcceptMention(editor.MentionFile, "src/app.go")

	if got := m.Core().Text(); got != "see @src/app.go " {
		t.Errorf("Text = %q", got)
	}
	if m.MentionActive() {
		t.Error("mention still active after accept")
	}
	parts := editor.ParseTree(m.Core().Root)
	var foundMention bool
	for _, p := range parts {
		if fp, ok := p.(prompt.FileAttachmentPart); ok {
			foundMention = true
			if fp.Path != "src/app.go" {
				t.Errorf("mention path = %q", fp.Path)
			}
		}
	}
	if !foundMention {
		t.Error("no mention part after accept")
	}
}

func TestEditorDismissMentionKeepsText(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "@partial")
	m = m.DismissMention()
	if m.MentionActive() {
		t.Error("mention still active")
	}
	if got := m.Core().Text(); got != "@partial" {
		t.Errorf("Text = %q, want typed text preserved", got)
	}
}

func TestEditorShellModeOnBangAtStart(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "!")
	if !m.ShellMode() {
		t.Fatal("shell mode not entered")
	}
	if got := m.Core().Text(); got != "" {
		t.Errorf("Text = %q, want the bang consumed", got)
	}

	m = typeText(m, "ls -la")
	if got := m.Core().Text(); got != "ls -la" {
		t.Errorf("Text = %q", got)
	}
	m = m.ExitShellMode()
	if m.ShellMode() {
		t.Error("shell mode still set after exit")
	}
}

func TestEditorBangMidTextIsLiteral(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "hey!")
	if m.ShellMode() {
		t.Error("shell mode entered mid-text")
	}
	if got := m.Core().Text(); got != "hey!" {
		t.Errorf("Text = %q", got)
	}
}

func TestEditorHistoryRecall(t *testing.T) {
	h := prompt.NewHistory(10)
	h.Record(prompt.Snapshot{
		Parts: []prompt.Part{prompt.TextPart{Content: "old prompt"}},
		Text:  "old prompt",
	})
	m := NewEditorModel("", h)
	m = typeText(m, "draft")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.Core().Text(); got != "old prompt" {
		t.Fatalf("Text after up = %q", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.Core().Text(); got != "draft" {
		t.Errorf("Text after down = %q, want the draft back", got)
	}
}

func TestEditorArrowsStayInMultilineText(t *testing.T) {
	h := prompt.NewHistory(10)
	h.Record(prompt.Snapshot{Text: "entry", Parts: []prompt.Part{prompt.TextPart{Content: "entry"}}})
	m := NewEditorModel("", h)
	m = typeText(m, "line1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	m = typeText(m, "line2")

	// Cursor is on the second line; up must not trigger history.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.Core().Text(); got != "line1\nline2" {
		t.Errorf("Text = %q, history hijacked arrow key", got)
	}
}

func TestEditorCtrlUClears(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "something")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if got := m.Core().Text(); got != "" {
		t.Errorf("Text = %q, want empty", got)
	}
	if !m.Guard().Consume() {
		t.Error("clear did not arm the echo guard")
	}
}

func TestEditorCursorMovementIsPillAtomic(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "ab")
	m = typeText(m, "@x")
	m = m.AcceptMention(editor.MentionFile, "some/file.go")
	// Content: "ab" + pill + " "; cursor at end (4).
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := editor.CursorOffset(m.Core()); got != 2 {
		t.Errorf("cursor = %d, want 2 (pill crossed in one step)", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := editor.CursorOffset(m.Core()); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
}

func TestEditorViewPlaceholder(t *testing.T) {
	m := NewEditorModel("Describe a task", nil)
	if got := m.View(); !strings.Contains(got, "Describe a task") {
		t.Errorf("View = %q, want placeholder", got)
	}
	m = typeText(m, "x")
	if got := m.View(); strings.Contains(got, "Describe a task") {
		t.Errorf("View = %q, placeholder shown with content", got)
	}
}

func TestEditorViewShellPrefix(t *testing.T) {
	m := NewEditorModel("", nil)
	m = typeText(m, "!")
	if got := m.View(); !strings.Contains(got, "! ") {
		t.Errorf("View = %q, want shell prefix", got)
	}
}
