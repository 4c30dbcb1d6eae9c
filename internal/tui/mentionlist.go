// ABOUTME: MentionModel is a Bubble Tea leaf for directory path autocomplete
// ABOUTME: Rows come from the path resolver; fuzzy filter runs on alias search text

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marigold-ai/atelier/internal/fuzzy"
	"github.com/marigold-ai/atelier/internal/pathresolve"
	"github.com/marigold-ai/atelier/internal/textwidth"
)

// MentionModel is a selector for @path mentions. No filesystem I/O;
// rows are provided externally via SetRows.
type MentionModel struct {
	rows      []pathresolve.Row
	visible   []pathresolve.Row
	selected  int
	scrollOff int
	maxHeight int
	filter    string
	gen       int64
	width     int
	loading   bool
	home      string
}

// NewMentionModel creates an empty mention model.
func NewMentionModel(home string) MentionModel {
	return MentionModel{maxHeight: 10, home: home}
}

// Init returns nil; no commands needed at startup.
func (m MentionModel) Init() tea.Cmd { return nil }

// Update handles navigation and selection keys.
func (m MentionModel) Update(msg tea.Msg) (MentionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			m.moveUp()
		case tea.KeyDown:
			m.moveDown()
		case tea.KeyEnter, tea.KeyTab:
			if abs := m.SelectedPath(); abs != "" {
				return m, func() tea.Msg { return MentionSelectMsg{Path: abs} }
			}
		case tea.KeyEsc:
			return m, func() tea.Msg { return MentionDismissMsg{} }
		}
	case MentionRowsMsg:
		if msg.Gen >= m.gen {
			m.gen = msg.Gen
			m = m.SetRows(msg.Rows)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the row list with a header and selection highlight.
func (m MentionModel) View() string {
	s := Styles()
	var b strings.Builder

	header := "  Paths"
	if m.filter != "" {
		header += " matching " + m.filter
	}
	b.WriteString(s.Dim.Render(header))

	if m.loading && len(m.rows) == 0 {
		b.WriteString("\n" + s.Dim.Render("  Resolving..."))
		return b.String()
	}
	if len(m.visible) == 0 {
		b.WriteString("\n" + s.Dim.Render("  No matching paths"))
		return b.String()
	}

	end := min(m.scrollOff+m.maxHeight, len(m.visible))
	for i := m.scrollOff; i < end; i++ {
		row := m.visible[i]
		display := pathresolve.TildeForm(row.Absolute, m.home)
		if display == "" {
			display = row.Absolute
		}
		line := "  " + display
		if m.width > 0 {
			line = textwidth.Truncate(line, m.width)
		}
		if i == m.selected {
			line = s.Bold.Render(s.Selection.Render(line))
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

// SetRows replaces the row list and resets selection.
func (m MentionModel) SetRows(rows []pathresolve.Row) MentionModel {
	m.rows = rows
	m.selected = 0
	m.scrollOff = 0
	m.loading = false
	m.applyFilter()
	return m
}

// SetFilter sets the fuzzy filter and refilters.
func (m MentionModel) SetFilter(f string) MentionModel {
	m.filter = f
	m.selected = 0
	m.scrollOff = 0
	m.applyFilter()
	return m
}

// SetLoading toggles the resolving placeholder.
func (m MentionModel) SetLoading(v bool) MentionModel {
	m.loading = v
	return m
}

// Generation returns the newest row generation applied.
func (m MentionModel) Generation() int64 { return m.gen }

// SelectedPath returns the absolute path of the selected row.
func (m MentionModel) SelectedPath() string {
	if len(m.visible) == 0 {
		return ""
	}
	return m.visible[m.selected].Absolute
}

// Count returns the number of visible rows.
func (m MentionModel) Count() int { return len(m.visible) }

// Reset clears rows, filter, and selection.
func (m MentionModel) Reset() MentionModel {
	m.rows = nil
	m.visible = nil
	m.filter = ""
	m.selected = 0
	m.scrollOff = 0
	return m
}

func (m *MentionModel) moveUp() {
	if m.selected > 0 {
		m.selected--
		m.adjustScroll()
	}
}

func (m *MentionModel) moveDown() {
	if m.selected < len(m.visible)-1 {
		m.selected++
		m.adjustScroll()
	}
}

func (m *MentionModel) adjustScroll() {
	if m.selected < m.scrollOff {
		m.scrollOff = m.selected
	}
	if m.selected >= m.scrollOff+m.maxHeight {
		m.scrollOff = m.selected - m.maxHeight + 1
	}
}

func (m *MentionModel) applyFilter() {
	if m.filter == "" {
		m.visible = make([]pathresolve.Row, len(m.rows))
		copy(m.visible, m.rows)
		return
	}
	search := make([]string, len(m.rows))
	for i, row := range m.rows {
		search[i] = row.Search
	}
	matches := fuzzy.Find(m.filter, search)
	m.visible = make([]pathresolve.Row, len(matches))
	for i, match := range matches {
		m.visible[i] = m.rows[match.Index]
	}
}
