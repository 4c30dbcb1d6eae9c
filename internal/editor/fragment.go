// ABOUTME: Builds editable-tree fragments from text and renders prompt parts to nodes
// ABOUTME: One text node per non-empty line segment, break nodes between segments

package editor

import (
	"strings"

	"github.com/marigold-ai/atelier/internal/prompt"
)

// BuildFragment converts text into an ordered node list: text is split
// on "\n", each non-empty segment becomes a text node, and a break
// node sits between every pair of segments. Consecutive newlines
// therefore produce consecutive breaks, and a trailing newline
// produces a trailing break with no empty text node after it.
func BuildFragment(text string) []*Node {
	if text == "" {
		return nil
	}
	segments := strings.Split(text, "\n")
	nodes := make([]*Node, 0, 2*len(segments))
	for i, seg := range segments {
		if seg != "" {
			nodes = append(nodes, NewText(seg))
		}
		if i < len(segments)-1 {
			nodes = append(nodes, NewBreak())
		}
	}
	return nodes
}

// RenderParts converts structured prompt parts into editable-tree
// children. Image attachments are excluded from rendering.
func RenderParts(parts []prompt.Part) []*Node {
	var nodes []*Node
	for _, p := range parts {
		switch p := p.(type) {
		case prompt.TextPart:
			nodes = append(nodes, BuildFragment(p.Content)...)
		case prompt.FileAttachmentPart:
			nodes = append(nodes, NewFileMention(p.Path))
		case prompt.AgentPart:
			nodes = append(nodes, NewAgentMention(p.Name))
		}
	}
	return nodes
}
