// ABOUTME: Lipgloss style palette for the workspace TUI
// ABOUTME: Styles() returns the shared palette; built once

package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the pre-built lipgloss styles used across views.
type Palette struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Border    lipgloss.Style
	Selection lipgloss.Style
	Pill      lipgloss.Style
	Toast     lipgloss.Style

	FooterPath  lipgloss.Style
	FooterModel lipgloss.Style
	FooterBusy  lipgloss.Style

	Bold lipgloss.Style
	Dim  lipgloss.Style
}

var (
	stylesOnce sync.Once
	styles     Palette
)

// Styles returns the shared palette, building it on first use.
func Styles() Palette {
	stylesOnce.Do(func() {
		styles = Palette{
			Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

			Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Selection: lipgloss.NewStyle().Background(lipgloss.Color("236")),
			Pill:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")),

			FooterPath:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			FooterModel: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
			FooterBusy:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

			Bold: lipgloss.NewStyle().Bold(true),
			Dim:  lipgloss.NewStyle().Faint(true),
		}
	})
	return styles
}
