// ABOUTME: Tests for the mention selector: generation gating, filtering, navigation

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/pathresolve"
)

func row(abs string) pathresolve.Row {
	return pathresolve.Row{Absolute: abs, Search: abs}
}

func TestMentionRowsGenerationGating(t *testing.T) {
	m := NewMentionModel("/home/me")
	m, _ = m.Update(MentionRowsMsg{Gen: 2, Rows: []pathresolve.Row{row("/repo/new")}})
	if got := m.SelectedPath(); got != "/repo/new" {
		t.Fatalf("SelectedPath = %q", got)
	}

	// A stale result from an older resolve must not replace newer rows.
	m, _ = m.Update(MentionRowsMsg{Gen: 1, Rows: []pathresolve.Row{row("/repo/stale")}})
	if got := m.SelectedPath(); got != "/repo/new" {
		t.Errorf("SelectedPath = %q, stale rows applied", got)
	}
	if got := m.Generation(); got != 2 {
		t.Errorf("Generation = %d, want 2", got)
	}

	m, _ = m.Update(MentionRowsMsg{Gen: 3, Rows: []pathresolve.Row{row("/repo/newest")}})
	if got := m.SelectedPath(); got != "/repo/newest" {
		t.Errorf("SelectedPath = %q, newer rows rejected", got)
	}
}

func TestMentionNavigation(t *testing.T) {
	m := NewMentionModel("")
	m = m.SetRows([]pathresolve.Row{row("/a"), row("/b"), row("/c")})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.SelectedPath(); got != "/c" {
		t.Errorf("SelectedPath = %q, want /c", got)
	}
	// Moving past the last row stays put.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.SelectedPath(); got != "/c" {
		t.Errorf("SelectedPath = %q after overrun", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.SelectedPath(); got != "/b" {
		t.Errorf("SelectedPath = %q, want /b", got)
	}
}

func TestMentionEnterEmitsSelection(t *testing.T) {
	m := NewMentionModel("")
	m = m.SetRows([]pathresolve.Row{row("/repo/src")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(MentionSelectMsg)
	if !ok || msg.Path != "/repo/src" {
		t.Errorf("cmd() = %#v, want MentionSelectMsg{/repo/src}", cmd())
	}
}

func TestMentionEnterOnEmptyListIsNoop(t *testing.T) {
	m := NewMentionModel("")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on empty list produced a command")
	}
}

func TestMentionEscEmitsDismiss(t *testing.T) {
	m := NewMentionModel("")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(MentionDismissMsg); !ok {
		t.Errorf("cmd() = %#v, want MentionDismissMsg", cmd())
	}
}

func TestMentionFilterMatchesAliases(t *testing.T) {
	m := NewMentionModel("/home/me")
	m = m.SetRows([]pathresolve.Row{
		{Absolute: "/home/me/docs", Search: "/home/me/docs\n~/docs\ndocs"},
		{Absolute: "/etc/hosts", Search: "/etc/hosts\nhosts"},
	})
	m = m.SetFilter("~/do")
	if m.Count() != 1 || m.SelectedPath() != "/home/me/docs" {
		t.Errorf("filtered = %d rows, selected %q", m.Count(), m.SelectedPath())
	}

	m = m.SetFilter("")
	if m.Count() != 2 {
		t.Errorf("Count = %d after clearing filter, want 2", m.Count())
	}
}

func TestMentionScrollFollowsSelection(t *testing.T) {
	m := NewMentionModel("")
	var rows []pathresolve.Row
	for _, c := range "abcdefghijklmno" {
		rows = append(rows, row("/"+string(c)))
	}
	m = m.SetRows(rows)
	for i := 0; i < 12; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.selected != 12 {
		t.Fatalf("selected = %d, want 12", m.selected)
	}
	if m.scrollOff != 3 {
		t.Errorf("scrollOff = %d, want 3", m.scrollOff)
	}
	view := m.View()
	if !strings.Contains(view, "/m") {
		t.Errorf("view does not include the selected row:\n%s", view)
	}
	if strings.Contains(view, "/a\n") {
		t.Errorf("view still shows rows scrolled out:\n%s", view)
	}
}

func TestMentionViewTildeDisplay(t *testing.T) {
	m := NewMentionModel("/home/me")
	m = m.SetRows([]pathresolve.Row{row("/home/me/docs"), row("/etc")})
	view := m.View()
	if !strings.Contains(view, "~/docs") {
		t.Errorf("view missing tilde form:\n%s", view)
	}
	if !strings.Contains(view, "/etc") {
		t.Errorf("view missing absolute fallback:\n%s", view)
	}
}

func TestMentionLoadingAndEmptyStates(t *testing.T) {
	m := NewMentionModel("")
	m = m.SetLoading(true)
	if view := m.View(); !strings.Contains(view, "Resolving") {
		t.Errorf("loading view = %q", view)
	}
	m = m.SetRows(nil)
	if view := m.View(); !strings.Contains(view, "No matching paths") {
		t.Errorf("empty view = %q", view)
	}
}

func TestMentionReset(t *testing.T) {
	m := NewMentionModel("")
	m = m.SetRows([]pathresolve.Row{row("/a")})
	m = m.SetFilter("a")
	m = m.Reset()
	if m.Count() != 0 || m.SelectedPath() != "" {
		t.Errorf("Count = %d, SelectedPath = %q after reset", m.Count(), m.SelectedPath())
	}
}
