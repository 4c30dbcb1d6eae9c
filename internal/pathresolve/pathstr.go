// ABOUTME: Shared path-string primitives: normalization, roots, tilde, display form
// ABOUTME: Handles POSIX, UNC double-slash, and drive-letter roots uniformly

package pathresolve

import (
	"strings"
	"unicode"
)

// PathKind classifies how a raw user-typed path fragment is anchored.
type PathKind int

const (
	// KindRelative resolves against the base directory.
	KindRelative PathKind = iota
	// KindAbsolute begins with a recognized root: "/", "//", or "X:/".
	KindAbsolute
	// KindTilde begins with "~".
	KindTilde
)

// Clean reduces raw input to its usable core: first line only, control
// characters stripped, surrounding whitespace trimmed.
func Clean(raw string) string {
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(raw)
}

// Classify determines the anchor kind of a cleaned path fragment.
func Classify(p string) PathKind {
	switch {
	case hasDrivePrefix(p), strings.HasPrefix(p, "/"):
		return KindAbsolute
	case strings.HasPrefix(p, "~"):
		return KindTilde
	default:
		return KindRelative
	}
}

// Normalize canonicalizes a path string: backslashes become forward
// slashes, slash runs collapse to one (a UNC double-leading slash is
// preserved as exactly two), a bare drive letter is completed to a
// drive root, and trailing slashes are stripped except on the bare
// roots "/", "//", and "X:/".
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	unc := strings.HasPrefix(p, "//")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if unc {
		p = "/" + p
	}
	if hasDrivePrefix(p) && len(p) == 2 {
		p += "/"
	}
	for !IsRoot(p) && len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// IsRoot reports whether p is one of the bare roots: "/", "//", or a
// drive root like "C:/".
func IsRoot(p string) bool {
	if p == "/" || p == "//" {
		return true
	}
	return len(p) == 3 && hasDrivePrefix(p) && p[2] == '/'
}

// Parent returns the parent directory of p. The parent of a root is
// the root itself; the parent of a drive root is the drive root.
func Parent(p string) string {
	p = Normalize(p)
	if IsRoot(p) {
		return p
	}
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return p
	}
	if strings.HasPrefix(p, "//") && i <= 1 {
		return "//"
	}
	if i == 0 {
		return "/"
	}
	return Normalize(p[:i])
}

// Root returns the recognized root prefix of an absolute path and the
// remainder after it.
func Root(p string) (root, rest string) {
	switch {
	case hasDrivePrefix(p):
		root = Normalize(p[:2])
		rest = strings.TrimPrefix(p[2:], "/")
	case strings.HasPrefix(p, "//"):
		root = "//"
		rest = strings.TrimLeft(p, "/")
	default:
		root = "/"
		rest = strings.TrimPrefix(p, "/")
	}
	return root, rest
}

// ExpandTilde substitutes home for a leading tilde. Expansion only
// applies when p is exactly "~" or starts with "~/".
func ExpandTilde(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return Normalize(home + "/" + p[2:])
	}
	return p
}

// TildeForm rewrites an absolute path under home into its "~" form.
// Returns "" when abs is not under home.
func TildeForm(abs, home string) string {
	if home == "" {
		return ""
	}
	home = Normalize(home)
	if abs == home {
		return "~"
	}
	if strings.HasPrefix(abs, home+"/") {
		return "~" + abs[len(home):]
	}
	return ""
}

// DisplayPath renders a candidate for presentation: tilde-anchored
// input shows the "~" form when the candidate sits under home.
func DisplayPath(abs string, kind PathKind, home string) string {
	if kind == KindTilde {
		if t := TildeForm(Normalize(abs), home); t != "" {
			return t
		}
	}
	return abs
}

// Join appends a relative fragment onto a directory.
func Join(dir, rel string) string {
	dir = Normalize(dir)
	if rel == "" {
		return dir
	}
	// Roots already end in a slash; inserting another would read as a
	// UNC prefix.
	if strings.HasSuffix(dir, "/") {
		return Normalize(dir + rel)
	}
	return Normalize(dir + "/" + rel)
}

// BaseName returns the final path segment of a normalized path.
func BaseName(p string) string {
	p = Normalize(p)
	if IsRoot(p) {
		return p
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func hasDrivePrefix(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	if !ok {
		return false
	}
	return len(p) == 2 || p[2] == '/' || p[2] == '\\'
}
