package prompt

import (
	"sort"
	"strings"
)

// Matches reports whether term occurs in the entry's canonical path,
// ignoring case. An empty term matches everything.
func Matches(entry FileEntry, term string) bool {
	return MatchesPath(entry.CanonicalPath, term)
}

// MatchesPath is Matches on a bare canonical path.
func MatchesPath(path, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(term))
}

// Matcher returns a predicate for the bulk registry operations.
func Matcher(term string) func(path string) bool {
	return func(path string) bool {
		return MatchesPath(path, term)
	}
}

// View returns the entries matching term sorted by canonical path.
// The registry is not modified.
func View(r *Registry, term string) []FileEntry {
	var view []FileEntry
	for _, e := range r.Entries() {
		if Matches(e, term) {
			view = append(view, e)
		}
	}
	sort.Slice(view, func(i, j int) bool {
		return view[i].CanonicalPath < view[j].CanonicalPath
	})
	return view
}
