// ABOUTME: Entry point for the Bubble Tea workspace TUI
// ABOUTME: Creates the tea.Program, injects the program reference, blocks until exit

package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive app. Blocks until the user exits.
func Run(deps AppDeps) error {
	m := NewAppModel(deps)

	p := tea.NewProgram(
		m,
		tea.WithOutput(os.Stderr),
	)

	// NewAppModel allocates sh as a pointer; tea.NewProgram copies the
	// model value but shares the pointer, so hooks see the program.
	m.sh.mu.Lock()
	m.sh.program = p
	m.sh.mu.Unlock()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
