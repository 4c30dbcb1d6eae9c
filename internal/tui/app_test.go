// ABOUTME: Tests for the editor bridge and root-model rollback behavior
// ABOUTME: Snapshot/restore must round-trip content, cursor, and mode exactly

package tui

import (
	"testing"

	"github.com/marigold-ai/atelier/internal/config"
	"github.com/marigold-ai/atelier/internal/prompt"
	"github.com/marigold-ai/atelier/internal/state"
)

func newBridge(t *testing.T, text string) (*editorBridge, EditorModel) {
	t.Helper()
	m := NewEditorModel("", nil)
	m = typeText(m, text)
	return &editorBridge{core: m.Core(), guard: m.Guard()}, m
}

func TestBridgeSnapshotCarriesShellMode(t *testing.T) {
	b, _ := newBridge(t, "ls -la")
	if got := b.Snapshot().Mode; got != prompt.ModeNormal {
		t.Errorf("Mode = %v, want %v", got, prompt.ModeNormal)
	}
	b.setShell(true)
	if got := b.Snapshot().Mode; got != prompt.ModeShell {
		t.Errorf("Mode = %v, want %v", got, prompt.ModeShell)
	}
}

func TestBridgeRestoreRecoversNormalMode(t *testing.T) {
	b, _ := newBridge(t, "deploy it")
	snap := b.Snapshot()

	// The mode changed while the submission was in flight; a rollback
	// must put the pre-submit mode back, not keep the current one.
	b.Clear()
	b.setShell(true)
	b.Restore(snap)

	got := b.Snapshot()
	if got.Mode != prompt.ModeNormal {
		t.Errorf("post-rollback Mode = %v, want %v", got.Mode, prompt.ModeNormal)
	}
	if got.Text != "deploy it" {
		t.Errorf("post-rollback Text = %q, want %q", got.Text, "deploy it")
	}
	if got.CursorOffset != snap.CursorOffset {
		t.Errorf("post-rollback cursor = %d, want %d", got.CursorOffset, snap.CursorOffset)
	}
}

func TestBridgeRestoreRecoversShellMode(t *testing.T) {
	b, _ := newBridge(t, "make test")
	b.setShell(true)
	snap := b.Snapshot()

	b.Clear()
	b.setShell(false)
	b.Restore(snap)

	if got := b.Snapshot().Mode; got != prompt.ModeShell {
		t.Errorf("post-rollback Mode = %v, want %v", got, prompt.ModeShell)
	}
}

func TestAppSubmitDoneResyncsEditorMode(t *testing.T) {
	m := NewAppModel(AppDeps{
		Settings: &config.Settings{},
		Busy:     state.NewBusy(),
	})
	m.editor = m.editor.SetShellMode(true)
	m.bridge.setShell(false)

	next, _ := m.Update(SubmitDoneMsg{})
	am := next.(AppModel)
	if am.editor.ShellMode() {
		t.Error("editor still in shell mode after rollback restored normal mode")
	}

	am.bridge.setShell(true)
	next, _ = am.Update(SubmitDoneMsg{})
	am = next.(AppModel)
	if !am.editor.ShellMode() {
		t.Error("editor not in shell mode after rollback restored shell mode")
	}
}
