// ABOUTME: Tests for the review pane debounce: coalescing, stale timer rejection

package tui

import (
	"strings"
	"testing"
	"time"
)

func TestReviewPaneImmediateWithoutDebounce(t *testing.T) {
	m := NewReviewPaneModel(0)
	m, cmd := m.Update(StatusTextMsg{Markdown: "# Status"})
	if cmd != nil {
		t.Error("zero debounce scheduled a flush timer")
	}
	if got := m.Current(); got != "# Status" {
		t.Errorf("Current = %q", got)
	}
}

func TestReviewPaneDebounceCoalesces(t *testing.T) {
	m := NewReviewPaneModel(50 * time.Millisecond)

	m, cmd := m.Update(StatusTextMsg{Markdown: "first"})
	if cmd == nil {
		t.Fatal("no flush timer scheduled")
	}
	if got := m.Current(); got != "" {
		t.Fatalf("Current = %q before the quiet period", got)
	}

	m, _ = m.Update(StatusTextMsg{Markdown: "second"})

	// The first timer fires with a stale sequence and must not flush.
	m, _ = m.Update(statusFlushMsg{seq: 1})
	if got := m.Current(); got != "" {
		t.Errorf("Current = %q, stale timer flushed", got)
	}

	m, _ = m.Update(statusFlushMsg{seq: 2})
	if got := m.Current(); got != "second" {
		t.Errorf("Current = %q, want the newest text", got)
	}
}

func TestReviewPaneFlushCommandCarriesSequence(t *testing.T) {
	m := NewReviewPaneModel(time.Millisecond)
	_, cmd := m.Update(StatusTextMsg{Markdown: "x"})
	if cmd == nil {
		t.Fatal("no flush timer scheduled")
	}
	msg, ok := cmd().(statusFlushMsg)
	if !ok {
		t.Fatalf("cmd() = %#v, want statusFlushMsg", cmd())
	}
	if msg.seq != 1 {
		t.Errorf("seq = %d, want 1", msg.seq)
	}
}

func TestReviewPaneViewEmpty(t *testing.T) {
	m := NewReviewPaneModel(0)
	if view := m.View(); !strings.Contains(view, "No activity yet") {
		t.Errorf("empty view = %q", view)
	}
}

func TestReviewPaneViewRendersMarkdown(t *testing.T) {
	m := NewReviewPaneModel(0)
	m, _ = m.Update(StatusTextMsg{Markdown: "working on **tests**"})
	if view := m.View(); !strings.Contains(view, "tests") {
		t.Errorf("view = %q, markdown content missing", view)
	}
}
