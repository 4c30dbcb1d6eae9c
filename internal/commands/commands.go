// ABOUTME: Slash command registry: names the workspace server will accept
// ABOUTME: Commands execute server-side; the client only recognizes and describes them

package commands

import (
	"sort"
	"strings"
)

// Command is one recognized slash command. Execution happens on the
// workspace server via session.command; the client keeps the name for
// dispatch recognition and the description for display.
type Command struct {
	Name        string
	Description string
}

// Registry holds the recognized slash commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry with the built-in commands plus any
// extra names (typically from settings). Extras may carry an inline
// description after a colon, "name: description".
func NewRegistry(extras ...string) *Registry {
	r := &Registry{commands: make(map[string]Command)}
	for _, c := range builtins {
		r.commands[c.Name] = c
	}
	for _, raw := range extras {
		name, desc, _ := strings.Cut(raw, ":")
		name = strings.TrimSpace(strings.TrimPrefix(name, "/"))
		if name == "" {
			continue
		}
		r.commands[name] = Command{Name: name, Description: strings.TrimSpace(desc)}
	}
	return r
}

// Get returns a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Names returns all command names sorted for deterministic dispatch
// checks and display.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all commands sorted by name.
func (r *Registry) List() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, name := range r.Names() {
		out = append(out, r.commands[name])
	}
	return out
}

// IsCommand reports whether input is shaped like a slash command.
func IsCommand(input string) bool {
	input = strings.TrimSpace(input)
	return len(input) > 1 && input[0] == '/' && input[1] != '/'
}

var builtins = []Command{
	{Name: "clear", Description: "Clear the session conversation"},
	{Name: "compact", Description: "Compact the conversation into a summary"},
	{Name: "export", Description: "Export the conversation to a file"},
	{Name: "help", Description: "Show available commands"},
	{Name: "init", Description: "Initialize project instructions"},
	{Name: "model", Description: "Show or change the active model"},
	{Name: "rename", Description: "Rename the current session"},
	{Name: "resume", Description: "Resume a previous session"},
	{Name: "status", Description: "Show session status"},
}
