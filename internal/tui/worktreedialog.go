// ABOUTME: WorktreeDialogModel is a Bubble Tea overlay for the new-session worktree choice
// ABOUTME: Presents Worktree/Current-directory options; sends WorktreeChoiceMsg on selection

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/submit"
	"github.com/marigold-ai/atelier/internal/textwidth"
)

// WorktreeDialogModel renders a centered dialog asking whether the new
// session should run in an isolated worktree.
type WorktreeDialogModel struct {
	directory string
	width     int
}

// NewWorktreeDialogModel creates the dialog for the given base directory.
func NewWorktreeDialogModel(directory string, w int) WorktreeDialogModel {
	return WorktreeDialogModel{directory: directory, width: w}
}

// Init returns nil; no startup commands needed.
func (m WorktreeDialogModel) Init() tea.Cmd { return nil }

// Update handles key events for the worktree choice.
func (m WorktreeDialogModel) Update(msg tea.Msg) (WorktreeDialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "w", "enter":
			return m, func() tea.Msg { return WorktreeChoiceMsg{Choice: submit.WorktreeCreate} }
		case "c":
			return m, func() tea.Msg { return WorktreeChoiceMsg{Choice: submit.WorktreeNone} }
		case "esc":
			return m, func() tea.Msg { return DismissOverlayMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the dialog box.
func (m WorktreeDialogModel) View() string {
	s := Styles()

	const (
		dash    = "─"
		vBorder = "│"
		tl      = "╭"
		tr      = "╮"
		bl      = "╰"
		br      = "╯"
	)

	boxWidth := 48
	if boxWidth > m.width-4 {
		boxWidth = max(m.width-4, 40)
	}
	innerWidth := max(boxWidth-2, 0)
	contentWidth := max(boxWidth-4, 20)
	border := s.Border.Render(vBorder)

	var b strings.Builder

	title := s.Bold.Render(" New Session ")
	titleLen := len(" New Session ")
	dashesLeft := max((innerWidth-titleLen)/2, 0)
	dashesRight := max(innerWidth-titleLen-dashesLeft, 0)
	b.WriteString(s.Border.Render(tl))
	b.WriteString(s.Border.Render(strings.Repeat(dash, dashesLeft)))
	b.WriteString(title)
	b.WriteString(s.Border.Render(strings.Repeat(dash, dashesRight)))
	b.WriteString(s.Border.Render(tr))
	b.WriteByte('\n')

	writeBoxLine(&b, border, s.Dim.Render("In: "+m.directory), contentWidth)
	writeBoxLine(&b, border, "", contentWidth)
	writeBoxLine(&b, border, s.Success.Render("[w]")+" Isolated worktree", contentWidth)
	writeBoxLine(&b, border, s.Info.Render("[c]")+" Current directory", contentWidth)
	writeBoxLine(&b, border, "", contentWidth)
	writeBoxLine(&b, border, s.Muted.Render("esc: cancel"), contentWidth)

	b.WriteString(s.Border.Render(bl))
	b.WriteString(s.Border.Render(strings.Repeat(dash, innerWidth)))
	b.WriteString(s.Border.Render(br))

	return b.String()
}

// writeBoxLine writes one bordered content line, padded to width.
func writeBoxLine(b *strings.Builder, border, content string, width int) {
	b.WriteString(border)
	b.WriteString(" ")
	b.WriteString(content)
	pad := width - textwidth.Visible(content)
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(" ")
	b.WriteString(border)
	b.WriteByte('\n')
}
