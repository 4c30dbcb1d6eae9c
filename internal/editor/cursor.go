// ABOUTME: Cursor translation between linear offsets and tree positions
// ABOUTME: Pills are atomic: the cursor lands before or after, never inside

package editor

// CursorOffset returns the linear offset of the selection start, or 0
// when there is no active selection. Mentions count as one character.
func CursorOffset(e *Editor) int {
	if e == nil || e.sel == nil {
		return 0
	}
	off, ok := offsetOf(e.Root, e.sel.Start)
	if !ok {
		return 0
	}
	return off
}

// PlaceCursor collapses the selection to the position addressed by the
// linear offset. Placing at a pill boundary lands immediately before
// (remaining 0) or immediately after it; placing past a break lands at
// the start of a following text node when there is one. An offset past
// the end falls back to the end of the last text node, or to the end
// of all content when the last child is not text.
func (e *Editor) PlaceCursor(offset int) {
	pos := positionAt(e.Root, offset)
	e.sel = &Range{Start: pos, End: pos}
}

// SetRangeEdge moves one edge of r to the position addressed by the
// linear offset, using the same walk as PlaceCursor, without touching
// the editor selection.
func SetRangeEdge(root *Node, r *Range, edge Edge, offset int) {
	pos := positionAt(root, offset)
	if edge == EdgeStart {
		r.Start = pos
	} else {
		r.End = pos
	}
}

func positionAt(root *Node, offset int) Position {
	remaining := offset
	children := root.Children
	for i, c := range children {
		l := cursorLen(c)
		if l < remaining {
			remaining -= l
			continue
		}
		switch c.Kind {
		case KindText:
			return Position{Node: c, Offset: runeIndexFor(c.Text, remaining)}
		case KindMention:
			if remaining == 0 {
				return Position{Node: root, Offset: i}
			}
			return Position{Node: root, Offset: i + 1}
		case KindBreak:
			if remaining == 0 {
				return Position{Node: root, Offset: i}
			}
			if i+1 < len(children) && children[i+1].Kind == KindText {
				return Position{Node: children[i+1], Offset: 0}
			}
			return Position{Node: root, Offset: i + 1}
		case KindElement:
			return positionAt(c, remaining)
		}
	}

	// Offset overflow: end of the last text node if any.
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Kind == KindText {
			return Position{Node: children[i], Offset: len([]rune(children[i].Text))}
		}
	}
	return Position{Node: root, Offset: len(children)}
}

// offsetOf resolves a tree position back to a linear offset. Returns
// false when pos does not address a node under n.
func offsetOf(n *Node, pos Position) (int, bool) {
	if n == pos.Node {
		switch n.Kind {
		case KindText:
			runes := []rune(n.Text)
			k := pos.Offset
			if k > len(runes) {
				k = len(runes)
			}
			return len([]rune(stripZeroWidth(string(runes[:k])))), true
		case KindElement:
			sum := 0
			for i := 0; i < pos.Offset && i < len(n.Children); i++ {
				sum += cursorLen(n.Children[i])
			}
			return sum, true
		default:
			return 0, true
		}
	}
	if n.Kind == KindElement {
		acc := 0
		for _, c := range n.Children {
			if off, ok := offsetOf(c, pos); ok {
				return acc + off, true
			}
			acc += cursorLen(c)
		}
	}
	return 0, false
}

// runeIndexFor maps a logical offset (zero-width markers excluded) to
// a rune index within text.
func runeIndexFor(text string, logical int) int {
	runes := []rune(text)
	count := 0
	for i, r := range runes {
		if count == logical {
			return i
		}
		if r != zeroWidthRune {
			count++
		}
	}
	return len(runes)
}
