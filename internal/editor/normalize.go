// ABOUTME: Canonical-shape predicate and reconciliation for the editable tree
// ABOUTME: Rebuilds only when the shape or content diverges from the prompt model

package editor

import (
	"strings"

	"github.com/marigold-ai/atelier/internal/prompt"
)

// IsNormalized reports whether the tree already matches the canonical
// editor shape: direct children are only non-empty text nodes, breaks,
// and mentions; text nodes embed no newlines; and at most one lone
// zero-width marker is allowed, as the trailing child right after a
// trailing break. Host-driven mutation that violates this shape forces
// a full rebuild.
func IsNormalized(root *Node) bool {
	if root == nil {
		return false
	}
	children := root.Children
	for i, c := range children {
		switch c.Kind {
		case KindBreak, KindMention:
		case KindText:
			if c.Text == "" || strings.ContainsAny(c.Text, "\n\r") {
				return false
			}
			if strings.Contains(c.Text, ZeroWidth) {
				last := i == len(children)-1
				afterBreak := i > 0 && children[i-1].Kind == KindBreak
				if c.Text != ZeroWidth || !last || !afterBreak {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

// EchoGuard is the one-shot mirror flag that suppresses the render
// pass triggered by the editor's own structured-state write. Arm it
// immediately before a self-triggered write; the next reactive pass
// consumes it instead of re-rendering.
type EchoGuard struct {
	armed bool
}

// Arm marks the next state-change pass as self-triggered.
func (g *EchoGuard) Arm() { g.armed = true }

// Consume reports and clears the armed flag.
func (g *EchoGuard) Consume() bool {
	was := g.armed
	g.armed = false
	return was
}

// Reconcile makes the tree reflect parts, rebuilding only when the
// current tree is not normalized or its parsed text diverges. The
// cursor offset is preserved across a rebuild, clamped to the new
// content length. Returns true when a rebuild happened.
func Reconcile(e *Editor, parts []prompt.Part) bool {
	want := prompt.Flatten(parts)
	if IsNormalized(e.Root) && prompt.Flatten(ParseTree(e.Root)) == want {
		return false
	}
	offset := CursorOffset(e)
	e.Root.Children = RenderParts(parts)
	if n := ContentLength(e.Root); offset > n {
		offset = n
	}
	e.PlaceCursor(offset)
	return true
}
