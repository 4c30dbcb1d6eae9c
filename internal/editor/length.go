// ABOUTME: Text-offset model: logical character lengths over the editable tree
// ABOUTME: Breaks count 1, zero-width markers count 0; the cursor layer pins pills to 1

package editor

// NodeLength returns the logical character length of a single node: 1
// for a break, otherwise the node's text content with zero-width
// markers stripped. An element's text content is the concatenation of
// its descendants' text.
func NodeLength(n *Node) int {
	if n == nil {
		return 0
	}
	if n.Kind == KindBreak {
		return 1
	}
	return len([]rune(stripZeroWidth(textContent(n))))
}

// TreeLength recursively sums node lengths over a subtree: a text node
// contributes its stripped length, a break contributes 1, and any
// other node contributes the sum of its children. Mentions contribute
// their visible label length at this layer; only the cursor layer
// counts them as a single character.
func TreeLength(n *Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindText:
		return len([]rune(stripZeroWidth(n.Text)))
	case KindBreak:
		return 1
	case KindMention:
		return len([]rune(stripZeroWidth(n.Text)))
	default:
		sum := 0
		for _, c := range n.Children {
			sum += TreeLength(c)
		}
		return sum
	}
}

// cursorLen is the length used for cursor-offset arithmetic: an atomic
// mention is exactly one character regardless of its rendered label.
func cursorLen(n *Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindText:
		return len([]rune(stripZeroWidth(n.Text)))
	case KindBreak, KindMention:
		return 1
	default:
		sum := 0
		for _, c := range n.Children {
			sum += cursorLen(c)
		}
		return sum
	}
}

// ContentLength returns the logical length of the editor content with
// mentions counted as single characters.
func ContentLength(root *Node) int {
	return cursorLen(root)
}

func textContent(n *Node) string {
	switch n.Kind {
	case KindText, KindMention:
		return n.Text
	case KindBreak:
		return ""
	default:
		out := ""
		for _, c := range n.Children {
			out += textContent(c)
		}
		return out
	}
}
