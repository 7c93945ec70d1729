package navigator

import (
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"
)

// globChars mark a query as a glob pattern rather than a fuzzy query.
const globChars = "*?["

// Matcher reports whether an entry name passes a filter query.
type Matcher func(name string) bool

// NewMatcher compiles query into a Matcher. Queries containing glob
// metacharacters are matched as case-insensitive globs against the whole
// name; anything else is a fuzzy subsequence match. An empty query matches
// everything.
func NewMatcher(query string) (Matcher, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return func(string) bool { return true }, nil
	}
	if strings.ContainsAny(query, globChars) {
		g, err := glob.Compile(strings.ToLower(query))
		if err != nil {
			return nil, err
		}
		return func(name string) bool { return g.Match(strings.ToLower(name)) }, nil
	}
	return func(name string) bool {
		return len(fuzzy.Find(query, []string{name})) > 0
	}, nil
}

// Filter returns the entries whose names match query, in their current
// order. An invalid glob matches nothing.
func Filter(entries []Entry, query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	if strings.ContainsAny(query, globChars) {
		match, err := NewMatcher(query)
		if err != nil {
			return nil
		}
		out := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if match(e.Name) {
				out = append(out, e)
			}
		}
		return out
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(query, names)

	// fuzzy ranks by score; keep the caller's sort order instead.
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)

	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out
}
