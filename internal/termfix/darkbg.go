// ABOUTME: Pins lipgloss to a dark background before bubbletea can probe the terminal
// ABOUTME: Import with _ from the entry point; must not import bubbletea itself

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background set, the sync.Once inside
	// lipgloss.HasDarkBackground never fires its OSC 10/11 query, so
	// bubbletea's init cannot leave stray query replies on stdin.
	// This package must not import bubbletea, directly or transitively,
	// or init order would no longer guarantee this runs first.
	lipgloss.SetHasDarkBackground(true)
}
