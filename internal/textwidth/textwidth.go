// ABOUTME: Display-width measurement and fitting for prompt and list rendering
// ABOUTME: Grapheme-aware; wide characters and emoji count their real cell width

package textwidth

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Visible returns the display width of s in terminal cells. ANSI escape
// sequences contribute zero width; East Asian characters and emoji may
// occupy more than one cell.
func Visible(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	s = StripANSI(s)
	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
		s = rest
		state = newState
	}
	return w
}

// Truncate fits s into at most max cells, replacing the tail with an
// ellipsis when it does not fit. ANSI sequences are preserved and do
// not count toward width.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Visible(s) <= max {
		return s
	}
	var b strings.Builder
	w := 0
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			end := skipANSI(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := clusterWidth(cluster)
		if w+cw > max-1 {
			break
		}
		b.WriteString(cluster)
		w += cw
		i += len(s[i:]) - len(rest)
	}
	b.WriteRune('…')
	return b.String()
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			i = skipANSI(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipANSI returns the index just past the escape sequence starting at i.
func skipANSI(s string, i int) int {
	j := i + 1
	if j < len(s) && s[j] == '[' {
		j++
		for j < len(s) {
			c := s[j]
			j++
			if c >= 0x40 && c <= 0x7E {
				break
			}
		}
		return j
	}
	if j < len(s) {
		j++
	}
	return j
}

// Wrap breaks s into lines of at most max cells. Existing newlines are
// respected; a grapheme wider than the limit gets its own line.
func Wrap(s string, max int) []string {
	if max <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	w := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		w = 0
	}

	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		s = rest
		state = newState

		if cluster == "\n" {
			flush()
			continue
		}
		cw := clusterWidth(cluster)
		if w+cw > max && w > 0 {
			flush()
		}
		line.WriteString(cluster)
		w += cw
	}
	flush()
	return lines
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
