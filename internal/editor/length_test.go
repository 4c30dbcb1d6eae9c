// ABOUTME: Tests for the two length layers: label-length trees, pill-as-one cursor space

package editor

import "testing"

func TestNodeLength(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{"nil", nil, 0},
		{"break", NewBreak(), 1},
		{"text", NewText("abc"), 3},
		{"text with marker", NewText("a" + ZeroWidth + "b"), 2},
		{"mention label", NewFileMention("src"), 4},
		{"element", NewElement(NewText("ab"), NewText("c")), 3},
	}
	for _, tt := range tests {
		if got := NodeLength(tt.node); got != tt.want {
			t.Errorf("%s: NodeLength = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTreeLengthCountsMentionLabels(t *testing.T) {
	root := NewElement(
		NewText("ab"),
		NewBreak(),
		NewFileMention("x/y"),
	)
	// 2 + 1 + len("@x/y")
	if got := TreeLength(root); got != 7 {
		t.Errorf("TreeLength = %d, want 7", got)
	}
}

func TestContentLengthCountsMentionsAsOne(t *testing.T) {
	root := NewElement(
		NewText("ab"),
		NewBreak(),
		NewFileMention("x/y"),
	)
	if got := ContentLength(root); got != 4 {
		t.Errorf("ContentLength = %d, want 4", got)
	}
}

func TestLengthsIgnoreZeroWidth(t *testing.T) {
	root := NewElement(NewText("ab"), NewBreak(), NewText(ZeroWidth))
	if got := TreeLength(root); got != 3 {
		t.Errorf("TreeLength = %d, want 3", got)
	}
	if got := ContentLength(root); got != 3 {
		t.Errorf("ContentLength = %d, want 3", got)
	}
}
