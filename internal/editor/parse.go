// ABOUTME: Parses the editable tree back into an ordered prompt part sequence
// ABOUTME: Full re-derivation on every edit; no incremental patching

package editor

import (
	"strings"

	"github.com/marigold-ai/atelier/internal/prompt"
)

// ParseTree walks the root's children in order and derives the
// structured prompt. Runs of plain text and breaks accumulate into a
// buffer that is flushed as a TextPart whenever a pill is reached or
// the walk ends. Zero-width markers are stripped and CR/CRLF are
// normalized to "\n" during flush. Sibling element containers imply an
// inter-element newline when not last. An empty walk yields a single
// empty TextPart.
func ParseTree(root *Node) []prompt.Part {
	var (
		parts []prompt.Part
		buf   strings.Builder
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		text := normalizeText(buf.String())
		buf.Reset()
		if text != "" {
			parts = append(parts, prompt.TextPart{Content: text})
		}
	}

	var walk func(children []*Node)
	walk = func(children []*Node) {
		for i, c := range children {
			switch c.Kind {
			case KindText:
				buf.WriteString(c.Text)
			case KindBreak:
				buf.WriteString("\n")
			case KindMention:
				flush()
				label := normalizeText(c.Text)
				if c.Mention == MentionAgent {
					parts = append(parts, prompt.AgentPart{Name: c.Ref, Content: label})
				} else {
					parts = append(parts, prompt.FileAttachmentPart{Path: c.Ref, Content: label})
				}
			case KindElement:
				walk(c.Children)
				if i < len(children)-1 {
					buf.WriteString("\n")
				}
			}
		}
	}

	if root != nil {
		walk(root.Children)
	}
	flush()

	if len(parts) == 0 {
		parts = append(parts, prompt.TextPart{})
	}
	return prompt.Reindex(parts)
}

func normalizeText(s string) string {
	s = stripZeroWidth(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
