// ABOUTME: FooterModel is a Bubble Tea leaf that renders a one-line status bar
// ABOUTME: Shows directory, model, agent, worktree state, and busy indicator

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/state"
	"github.com/marigold-ai/atelier/internal/textwidth"
)

// FooterModel renders the status bar at the bottom of the terminal.
type FooterModel struct {
	directory string
	model     string
	agent     string
	worktree  state.WorktreeStatus
	busy      bool
	width     int
}

// NewFooterModel creates an empty FooterModel.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// Init returns nil; no commands needed for a leaf model.
func (m FooterModel) Init() tea.Cmd { return nil }

// Update handles messages relevant to the footer.
func (m FooterModel) Update(msg tea.Msg) (FooterModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
	}
	return m, nil
}

// WithDirectory returns a FooterModel with the directory set.
func (m FooterModel) WithDirectory(d string) FooterModel {
	m.directory = d
	return m
}

// WithModel returns a FooterModel with the model name set.
func (m FooterModel) WithModel(name string) FooterModel {
	m.model = name
	return m
}

// WithAgent returns a FooterModel with the agent name set.
func (m FooterModel) WithAgent(name string) FooterModel {
	m.agent = name
	return m
}

// WithWorktree returns a FooterModel with the worktree status set.
func (m FooterModel) WithWorktree(s state.WorktreeStatus) FooterModel {
	m.worktree = s
	return m
}

// WithBusy returns a FooterModel with the busy indicator set.
func (m FooterModel) WithBusy(v bool) FooterModel {
	m.busy = v
	return m
}

// View renders the footer line.
func (m FooterModel) View() string {
	s := Styles()
	var segs []string

	if m.directory != "" {
		segs = append(segs, s.FooterPath.Render(m.directory))
	}
	if m.model != "" {
		segs = append(segs, s.FooterModel.Render(m.model))
	}
	if m.agent != "" {
		segs = append(segs, s.Secondary.Render("@"+m.agent))
	}
	switch m.worktree {
	case state.WorktreePending:
		segs = append(segs, s.Warning.Render("worktree: preparing"))
	case state.WorktreeFailed:
		segs = append(segs, s.Error.Render("worktree: failed"))
	}
	if m.busy {
		segs = append(segs, s.FooterBusy.Render("working..."))
	}

	line := strings.Join(segs, s.Muted.Render("  |  "))
	if m.width > 0 {
		line = textwidth.Truncate(line, m.width)
	}
	return line
}
