// ABOUTME: Editing operations expressed as parse -> splice parts -> re-render
// ABOUTME: Deletion removes a whole pill as a unit; offsets are in cursor space

package editor

import (
	"strings"

	"github.com/marigold-ai/atelier/internal/prompt"
)

// cursorWidth is a part's width in cursor space: mentions are 1.
func cursorWidth(p prompt.Part) int {
	if tp, ok := p.(prompt.TextPart); ok {
		return len([]rune(tp.Content))
	}
	if _, ok := p.(prompt.ImageAttachmentPart); ok {
		return 0
	}
	return 1
}

// InsertTextAt splices plain text at the given cursor offset and
// places the cursor after it. Text containing newlines becomes text
// nodes joined by breaks on re-render.
func (e *Editor) InsertTextAt(offset int, s string) {
	if s == "" {
		return
	}
	parts := ParseTree(e.Root)
	parts = spliceText(parts, offset, s)
	e.Root.Children = RenderParts(prompt.Reindex(parts))
	e.PlaceCursor(offset + len([]rune(s)))
}

// InsertMentionAt splices an atomic mention at the given cursor offset
// and places the cursor immediately after it.
func (e *Editor) InsertMentionAt(offset int, mention MentionType, ref string) {
	var part prompt.Part
	if mention == MentionAgent {
		part = prompt.NewAgentMention(ref)
	} else {
		part = prompt.NewFileMention(ref)
	}
	parts := ParseTree(e.Root)
	parts = splicePart(parts, offset, part)
	e.Root.Children = RenderParts(prompt.Reindex(parts))
	e.PlaceCursor(offset + 1)
}

// DeleteBackward removes the unit before the cursor offset: one
// character of text, or a whole pill. Returns the new cursor offset,
// which it also applies.
func (e *Editor) DeleteBackward(offset int) int {
	if offset <= 0 {
		return 0
	}
	parts := ParseTree(e.Root)
	parts = deleteUnit(parts, offset-1)
	e.Root.Children = RenderParts(prompt.Reindex(parts))
	e.PlaceCursor(offset - 1)
	return offset - 1
}

// spliceText inserts s into the part list at a cursor offset, merging
// into an existing text part when the offset lands in or beside one.
func spliceText(parts []prompt.Part, offset int, s string) []prompt.Part {
	acc := 0
	for i, p := range parts {
		w := cursorWidth(p)
		if tp, ok := p.(prompt.TextPart); ok && offset <= acc+w {
			at := runeSplit(tp.Content, offset-acc)
			tp.Content = tp.Content[:at] + s + tp.Content[at:]
			parts[i] = tp
			return parts
		}
		if offset <= acc {
			return insertPart(parts, i, prompt.TextPart{Content: s})
		}
		acc += w
	}
	return append(parts, prompt.TextPart{Content: s})
}

// splicePart inserts a non-text part at a cursor offset, splitting a
// text part when the offset lands inside one.
func splicePart(parts []prompt.Part, offset int, part prompt.Part) []prompt.Part {
	acc := 0
	for i, p := range parts {
		w := cursorWidth(p)
		if offset == acc {
			return insertPart(parts, i, part)
		}
		if tp, ok := p.(prompt.TextPart); ok && offset < acc+w {
			at := runeSplit(tp.Content, offset-acc)
			head := prompt.TextPart{Content: tp.Content[:at]}
			tail := prompt.TextPart{Content: tp.Content[at:]}
			out := make([]prompt.Part, 0, len(parts)+2)
			out = append(out, parts[:i]...)
			out = append(out, head, part, tail)
			return append(out, parts[i+1:]...)
		}
		acc += w
	}
	return append(parts, part)
}

// deleteUnit removes the single cursor-space unit at offset.
func deleteUnit(parts []prompt.Part, offset int) []prompt.Part {
	acc := 0
	for i, p := range parts {
		w := cursorWidth(p)
		if offset >= acc+w {
			acc += w
			continue
		}
		tp, ok := p.(prompt.TextPart)
		if !ok {
			// A pill deletes as a unit.
			return removePart(parts, i)
		}
		at := runeSplit(tp.Content, offset-acc)
		next := runeSplit(tp.Content, offset-acc+1)
		tp.Content = tp.Content[:at] + tp.Content[next:]
		if tp.Content == "" {
			return removePart(parts, i)
		}
		parts[i] = tp
		return parts
	}
	return parts
}

func insertPart(parts []prompt.Part, i int, p prompt.Part) []prompt.Part {
	out := make([]prompt.Part, 0, len(parts)+1)
	out = append(out, parts[:i]...)
	out = append(out, p)
	return append(out, parts[i:]...)
}

func removePart(parts []prompt.Part, i int) []prompt.Part {
	return append(parts[:i], parts[i+1:]...)
}

// runeSplit converts a rune offset into a byte index of s.
func runeSplit(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == runes {
			return i
		}
		count++
	}
	return len(s)
}

// Text returns the flattened logical text of the tree.
func (e *Editor) Text() string {
	return prompt.Flatten(ParseTree(e.Root))
}

// LineOf returns the zero-based line index of a cursor offset and the
// total number of lines, both derived from the flattened text with
// pills counted as single characters.
func (e *Editor) LineOf(offset int) (line, total int) {
	text := cursorText(e.Root)
	runes := []rune(text)
	if offset > len(runes) {
		offset = len(runes)
	}
	line = strings.Count(string(runes[:offset]), "\n")
	total = strings.Count(text, "\n") + 1
	return line, total
}

// cursorText renders the tree in cursor space: pills collapse to a
// single placeholder rune so offsets line up with cursor arithmetic.
func cursorText(root *Node) string {
	var b strings.Builder
	var walk func(children []*Node)
	walk = func(children []*Node) {
		for _, c := range children {
			switch c.Kind {
			case KindText:
				b.WriteString(stripZeroWidth(c.Text))
			case KindBreak:
				b.WriteString("\n")
			case KindMention:
				b.WriteString("\ufffc")
			case KindElement:
				walk(c.Children)
			}
		}
	}
	if root != nil {
		walk(root.Children)
	}
	return b.String()
}
