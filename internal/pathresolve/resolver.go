// ABOUTME: Directory/path autocomplete resolver with segment-by-segment fuzzy narrowing
// ABOUTME: Generation counter discards stale async results; listings memoized per directory

package pathresolve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/marigold-ai/atelier/internal/fuzzy"
)

const (
	// branchFactor limits how many fuzzy matches each frontier member
	// contributes per head segment.
	branchFactor = 4
	// frontierCap bounds the candidate-directory frontier.
	frontierCap = 12
	// resultCap bounds every returned candidate list.
	resultCap = 50
)

// ErrSuperseded is returned when a newer query was issued while this
// resolution was in flight. Callers discard the (nil) result.
var ErrSuperseded = errors.New("pathresolve: superseded by newer query")

// EntryDir is the directory entry type used by the listing boundary.
const EntryDir = "directory"

// Entry is one row from the directory-listing boundary.
type Entry struct {
	Name     string
	Type     string
	Absolute string
}

// Lister lists the entries of a directory. Failures must resolve to an
// empty list at this boundary's caller; the resolver never surfaces
// them.
type Lister interface {
	List(ctx context.Context, directory, path string) ([]Entry, error)
}

// Finder is the fuzzy file/directory find boundary.
type Finder interface {
	Find(ctx context.Context, directory, query, entryType string, limit int) ([]string, error)
}

// Row is one resolved candidate. Search is a newline-joined set of
// matchable aliases: absolute, absolute with trailing slash, tilde
// form, tilde form with trailing slash, and bare filename, deduped.
type Row struct {
	Absolute string
	Search   string
}

// Resolver turns raw user-typed path fragments into candidate lists.
// One Resolver serves one autocomplete session; its listing cache
// lives as long as it does.
type Resolver struct {
	base   string
	home   string
	lister Lister
	finder Finder

	gen atomic.Int64

	mu       sync.Mutex
	listings map[string][]Entry
}

// NewResolver creates a resolver scoped to base, with home used for
// tilde anchoring. An empty home falls back to base.
func NewResolver(base, home string, lister Lister, finder Finder) *Resolver {
	return &Resolver{
		base:     Normalize(base),
		home:     Normalize(home),
		lister:   lister,
		finder:   finder,
		listings: make(map[string][]Entry),
	}
}

// Generation returns the sequence number of the newest Resolve call.
func (r *Resolver) Generation() int64 {
	return r.gen.Load()
}

// Resolve resolves a raw filter string into a deduplicated,
// length-capped candidate list. Issuing a new Resolve supersedes any
// in-flight one: the older call returns ErrSuperseded once it notices,
// and its results are never applied.
func (r *Resolver) Resolve(ctx context.Context, raw string) ([]Row, error) {
	rows, _, err := r.ResolveGen(ctx, raw)
	return rows, err
}

// ResolveGen is Resolve plus the generation number this query was
// assigned when it was issued. Async callers tag results with it, so a
// query finishing late can never carry a newer generation than its own.
func (r *Resolver) ResolveGen(ctx context.Context, raw string) ([]Row, int64, error) {
	gen := r.gen.Add(1)

	cleaned := Clean(raw)
	kind := Classify(cleaned)
	dir, rest := r.scope(cleaned, kind)
	endsSlash := strings.HasSuffix(cleaned, "/")

	// Pure name query: no separator, not rooted, not tilde-anchored.
	if kind == KindRelative && !strings.Contains(rest, "/") {
		names, err := r.finder.Find(ctx, dir, rest, EntryDir, resultCap)
		if err != nil {
			names = nil
		}
		if !r.live(gen) {
			return nil, gen, ErrSuperseded
		}
		rows := make([]Row, 0, len(names))
		for _, name := range names {
			rows = append(rows, r.row(Join(dir, name)))
		}
		return capRows(dedupeRows(rows)), gen, nil
	}

	head, tail := splitSegments(rest)

	frontier := []string{dir}
	for _, seg := range head {
		var err error
		frontier, err = r.narrow(ctx, gen, frontier, seg)
		if err != nil {
			return nil, gen, err
		}
		if len(frontier) == 0 {
			return []Row{}, gen, nil
		}
	}

	candidates, err := r.matchTail(ctx, gen, frontier, tail)
	if err != nil {
		return nil, gen, err
	}

	if endsSlash && tail != "" {
		candidates, err = r.drillDown(ctx, gen, candidates, tail)
		if err != nil {
			return nil, gen, err
		}
	} else if kind == KindTilde {
		// Synthetic top entry: the tilde-origin directory itself.
		candidates = append([]string{dir}, candidates...)
	}

	rows := make([]Row, 0, len(candidates))
	for _, abs := range candidates {
		rows = append(rows, r.row(abs))
	}
	return capRows(dedupeRows(rows)), gen, nil
}

// scope computes the {directory, path} pair a cleaned input resolves
// against: absolute inputs anchor at their root, tilde inputs at home
// (or base when home is unknown), relative inputs at base.
func (r *Resolver) scope(cleaned string, kind PathKind) (dir, rest string) {
	switch kind {
	case KindAbsolute:
		return Root(cleaned)
	case KindTilde:
		home := r.home
		if home == "" || home == "." {
			home = r.base
		}
		rest = strings.TrimPrefix(cleaned, "~")
		rest = strings.TrimPrefix(rest, "/")
		return home, rest
	default:
		return r.base, cleaned
	}
}

// narrow advances the frontier across one head segment: ".." pops each
// member to its parent, anything else fuzzy-matches against each
// member's directory entries with the branch factor applied, and the
// union is deduplicated and capped.
func (r *Resolver) narrow(ctx context.Context, gen int64, frontier []string, seg string) ([]string, error) {
	if seg == ".." {
		var next []string
		for _, dir := range frontier {
			next = append(next, Parent(dir))
		}
		return capStrings(dedupeStrings(next), frontierCap), nil
	}

	branches := make([][]string, len(frontier))
	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range frontier {
		g.Go(func() error {
			entries := r.listing(gctx, dir)
			matches := matchEntries(entries, seg, branchFactor, true)
			for _, e := range matches {
				branches[i] = append(branches[i], e.Absolute)
			}
			return nil
		})
	}
	// All branches complete before narrowing further.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !r.live(gen) {
		return nil, ErrSuperseded
	}

	var next []string
	for _, b := range branches {
		next = append(next, b...)
	}
	return capStrings(dedupeStrings(next), frontierCap), nil
}

// matchTail fuzzy-matches the final (possibly partial) segment against
// every surviving frontier directory, flattening the per-directory
// results.
func (r *Resolver) matchTail(ctx context.Context, gen int64, frontier []string, tail string) ([]string, error) {
	branches := make([][]string, len(frontier))
	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range frontier {
		g.Go(func() error {
			entries := r.listing(gctx, dir)
			matches := matchEntries(entries, tail, resultCap, false)
			for _, e := range matches {
				branches[i] = append(branches[i], e.Absolute)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !r.live(gen) {
		return nil, ErrSuperseded
	}

	var out []string
	for _, b := range branches {
		out = append(out, b...)
	}
	return dedupeStrings(out), nil
}

// drillDown expands one level past a trailing slash, but only when
// exactly one candidate's filename case-insensitively equals the tail.
// Multiple matches are an ambiguous drill target and skip expansion.
func (r *Resolver) drillDown(ctx context.Context, gen int64, candidates []string, tail string) ([]string, error) {
	var exact []string
	for _, abs := range candidates {
		if strings.EqualFold(BaseName(abs), tail) {
			exact = append(exact, abs)
		}
	}
	if len(exact) != 1 {
		return candidates, nil
	}
	children := r.listing(ctx, exact[0])
	if !r.live(gen) {
		return nil, ErrSuperseded
	}
	out := candidates
	for _, c := range children {
		out = append(out, c.Absolute)
	}
	return dedupeStrings(out), nil
}

// listing returns the memoized entry list for a directory, fetching it
// once per resolver lifetime. A listing failure memoizes as empty.
func (r *Resolver) listing(ctx context.Context, dir string) []Entry {
	key := Normalize(dir)
	r.mu.Lock()
	if cached, ok := r.listings[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	entries, err := r.lister.List(ctx, r.base, key)
	if err != nil {
		entries = nil
	}
	for i := range entries {
		if entries[i].Absolute == "" {
			entries[i].Absolute = Join(key, entries[i].Name)
		}
	}

	r.mu.Lock()
	if cached, ok := r.listings[key]; ok {
		entries = cached
	} else {
		r.listings[key] = entries
	}
	r.mu.Unlock()
	return entries
}

// live reports whether gen is still the newest issued generation.
func (r *Resolver) live(gen int64) bool {
	return r.gen.Load() == gen
}

// row builds the candidate row with its matchable alias set.
func (r *Resolver) row(abs string) Row {
	abs = Normalize(abs)
	aliases := []string{abs, abs + "/"}
	if t := TildeForm(abs, r.home); t != "" {
		aliases = append(aliases, t, t+"/")
	}
	aliases = append(aliases, BaseName(abs))
	return Row{Absolute: abs, Search: strings.Join(dedupeStrings(aliases), "\n")}
}

// splitSegments separates a scope remainder into intermediate head
// segments and the final tail. "." segments are dropped; a trailing
// slash leaves the last real segment as the tail.
func splitSegments(rest string) (head []string, tail string) {
	var segs []string
	for _, s := range strings.Split(strings.TrimSuffix(rest, "/"), "/") {
		if s == "" || s == "." {
			continue
		}
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return nil, ""
	}
	return segs[:len(segs)-1], segs[len(segs)-1]
}

// matchEntries scores pattern against entry names. dirsOnly restricts
// matching to directory entries (used for head segments).
func matchEntries(entries []Entry, pattern string, limit int, dirsOnly bool) []Entry {
	pool := entries
	if dirsOnly {
		pool = nil
		for _, e := range entries {
			if e.Type == EntryDir {
				pool = append(pool, e)
			}
		}
	}
	names := make([]string, len(pool))
	for i, e := range pool {
		names[i] = e.Name
	}
	matches := fuzzy.Find(pattern, names)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = pool[m.Index]
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func dedupeRows(in []Row) []Row {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, r := range in {
		if _, ok := seen[r.Absolute]; ok {
			continue
		}
		seen[r.Absolute] = struct{}{}
		out = append(out, r)
	}
	return out
}

func capStrings(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capRows(in []Row) []Row {
	if len(in) > resultCap {
		return in[:resultCap]
	}
	return in
}
