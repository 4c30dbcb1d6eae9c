// ABOUTME: Review pane showing session status markdown via glamour
// ABOUTME: Incoming status text is debounced so streaming updates do not thrash

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ReviewPaneModel renders the session's status markdown. Rapid updates
// are coalesced: only the newest text after a quiet period is rendered.
type ReviewPaneModel struct {
	md       *MarkdownRenderer
	current  string
	pending  string
	seq      int
	debounce time.Duration
	width    int
	height   int
}

// NewReviewPaneModel creates an empty pane with the given debounce window.
func NewReviewPaneModel(debounce time.Duration) ReviewPaneModel {
	return ReviewPaneModel{
		md:       NewMarkdownRenderer(),
		debounce: debounce,
	}
}

// Init returns nil; no startup commands needed.
func (m ReviewPaneModel) Init() tea.Cmd { return nil }

// Update handles status text and flush timing.
func (m ReviewPaneModel) Update(msg tea.Msg) (ReviewPaneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusTextMsg:
		m.pending = msg.Markdown
		m.seq++
		seq := m.seq
		if m.debounce <= 0 {
			m.current = m.pending
			return m, nil
		}
		return m, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return statusFlushMsg{seq: seq}
		})

	case statusFlushMsg:
		// Only the newest timer may flush; earlier ones are stale.
		if msg.seq == m.seq {
			m.current = m.pending
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// Current returns the last flushed markdown source.
func (m ReviewPaneModel) Current() string { return m.current }

// View renders the flushed markdown.
func (m ReviewPaneModel) View() string {
	if m.current == "" {
		return Styles().Dim.Render("No activity yet")
	}
	w := m.width
	if w <= 0 {
		w = 80
	}
	return m.md.Render(m.current, w)
}
