// ABOUTME: Editable node tree for the prompt editor: text, break, mention, element
// ABOUTME: Mentions are atomic pills; zero-width markers hold otherwise-empty lines

package editor

import "strings"

// ZeroWidth is the marker character used to hold an otherwise-empty
// line in the editable tree. It never counts toward logical length.
const ZeroWidth = "\u200b"

const zeroWidthRune = '\u200b'

// Kind discriminates node variants in the editable tree.
type Kind int

const (
	// KindText is a run of characters. May contain ZeroWidth markers.
	KindText Kind = iota
	// KindBreak is a line break. Counts as exactly one character.
	KindBreak
	// KindMention is an atomic pill (file or agent reference). The
	// cursor layer treats it as exactly one character.
	KindMention
	// KindElement is a generic container of child nodes.
	KindElement
)

// MentionType distinguishes pill flavors.
type MentionType string

const (
	MentionFile  MentionType = "file"
	MentionAgent MentionType = "agent"
)

// Node is one node of the editable tree.
type Node struct {
	Kind     Kind
	Text     string      // KindText content; KindMention display label
	Mention  MentionType // KindMention only
	Ref      string      // KindMention: file path or agent name
	Children []*Node     // KindElement only
}

// NewText creates a text node.
func NewText(s string) *Node { return &Node{Kind: KindText, Text: s} }

// NewBreak creates a line-break node.
func NewBreak() *Node { return &Node{Kind: KindBreak} }

// NewFileMention creates an atomic file pill labeled "@" + path.
func NewFileMention(path string) *Node {
	return &Node{Kind: KindMention, Mention: MentionFile, Ref: path, Text: "@" + path}
}

// NewAgentMention creates an atomic agent pill labeled "@" + name.
func NewAgentMention(name string) *Node {
	return &Node{Kind: KindMention, Mention: MentionAgent, Ref: name, Text: "@" + name}
}

// NewElement creates a container node with the given children.
func NewElement(children ...*Node) *Node {
	return &Node{Kind: KindElement, Children: children}
}

// Position addresses a point in the tree. For a text node, Offset is a
// rune index into Text (markers included). For an element, Offset is a
// child index: the point sits before Children[Offset].
type Position struct {
	Node   *Node
	Offset int
}

// Range is a pair of positions.
type Range struct {
	Start Position
	End   Position
}

// Edge selects which end of a Range an operation applies to.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Editor holds the editable tree root and the active selection.
type Editor struct {
	Root *Node
	sel  *Range
}

// New creates an editor with an empty element root and no selection.
func New() *Editor {
	return &Editor{Root: NewElement()}
}

// Selection returns the active range, or nil when there is none.
func (e *Editor) Selection() *Range { return e.sel }

// SetSelection replaces the active range.
func (e *Editor) SetSelection(r *Range) { e.sel = r }

// ClearSelection drops the active range.
func (e *Editor) ClearSelection() { e.sel = nil }

func stripZeroWidth(s string) string {
	return strings.ReplaceAll(s, ZeroWidth, "")
}
