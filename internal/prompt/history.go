// ABOUTME: Bounded prompt history with cursor-aware up/down navigation
// ABOUTME: Separate lists per input mode; index -1 snapshots the in-progress draft

package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects which history list a prompt is recorded under.
type Mode int

const (
	ModeNormal Mode = iota
	ModeShell
)

// DefaultHistoryLimit caps the number of retained prompts per mode.
const DefaultHistoryLimit = 100

// Snapshot is a recorded prompt state: its parts and flattened text.
type Snapshot struct {
	Parts []Part
	Text  string
}

// History is an append-only bounded prompt history. Navigation position
// -1 means "at the draft"; 0 is the most recent entry.
type History struct {
	limit   int
	entries map[Mode][]Snapshot
	mode    Mode
	pos     int
	draft   *Snapshot
}

// NewHistory creates an empty history with the given per-mode cap.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		limit:   limit,
		entries: make(map[Mode][]Snapshot),
		pos:     -1,
	}
}

// SetMode switches the active history list and resets navigation.
func (h *History) SetMode(m Mode) {
	if h.mode != m {
		h.mode = m
		h.Reset()
	}
}

// Mode returns the active history mode.
func (h *History) Mode() Mode { return h.mode }

// Len returns the number of entries in the active list.
func (h *History) Len() int { return len(h.entries[h.mode]) }

// Record appends a submitted prompt to the active list, evicting the
// oldest entry past the cap, and resets navigation.
func (h *History) Record(s Snapshot) {
	if s.Text == "" && len(s.Parts) == 0 {
		return
	}
	list := append(h.entries[h.mode], s)
	if len(list) > h.limit {
		list = list[len(list)-h.limit:]
	}
	h.entries[h.mode] = list
	h.Reset()
}

// Reset returns navigation to the draft position and clears the saved draft.
func (h *History) Reset() {
	h.pos = -1
	h.draft = nil
}

// Up moves to the next-older entry. atTopLine must reflect whether the
// editor cursor sits on the first line; navigation is refused otherwise
// so plain arrow-key editing is not hijacked. Leaving the draft
// position snapshots current so it can be restored later.
func (h *History) Up(current Snapshot, atTopLine bool) (Snapshot, bool) {
	if !atTopLine {
		return Snapshot{}, false
	}
	list := h.entries[h.mode]
	if h.pos+1 >= len(list) {
		return Snapshot{}, false
	}
	if h.pos == -1 {
		c := current
		h.draft = &c
	}
	h.pos++
	return list[len(list)-1-h.pos], true
}

// Down moves to the next-newer entry, or back to the saved draft when
// navigating past the most recent entry. atBottomLine must reflect
// whether the editor cursor sits on the last line.
func (h *History) Down(atBottomLine bool) (Snapshot, bool) {
	if !atBottomLine || h.pos < 0 {
		return Snapshot{}, false
	}
	h.pos--
	if h.pos == -1 {
		if h.draft != nil {
			d := *h.draft
			h.draft = nil
			return d, true
		}
		return Snapshot{}, true
	}
	list := h.entries[h.mode]
	return list[len(list)-1-h.pos], true
}

// SaveToFile persists the normal-mode prompt texts, one entry per line.
// Embedded newlines are escaped so multi-line prompts survive.
func (h *History) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	var b strings.Builder
	for _, s := range h.entries[ModeNormal] {
		if s.Text == "" {
			continue
		}
		b.WriteString(escapeEntry(s.Text))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// LoadFromFile seeds the normal-mode list from a persisted history
// file. A missing file is a fresh start, not an error. Loaded entries
// carry plain text parts; mentions do not survive restarts.
func (h *History) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading history file: %w", err)
	}

	var list []Snapshot
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		text := unescapeEntry(line)
		list = append(list, Snapshot{
			Text:  text,
			Parts: Reindex([]Part{TextPart{Content: text}}),
		})
	}
	if len(list) > h.limit {
		list = list[len(list)-h.limit:]
	}
	h.entries[ModeNormal] = list
	h.Reset()
	return nil
}

func escapeEntry(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func unescapeEntry(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			if s[i] == 'n' {
				b.WriteByte('\n')
				continue
			}
			b.WriteByte(s[i])
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
