package prompt

import (
	"path/filepath"
	"sort"
	"strings"
)

// Whitelist is a set of lowercase extensions without the leading dot.
// An empty whitelist allows every file.
type Whitelist map[string]struct{}

// ParseWhitelist parses comma-separated extension text such as "py, .Go,txt".
// Tokens that are empty after trimming are dropped.
func ParseWhitelist(text string) Whitelist {
	wl := Whitelist{}
	for _, token := range strings.Split(text, ",") {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "."))
		if ext == "" {
			continue
		}
		wl[ext] = struct{}{}
	}
	return wl
}

// Allows reports whether the extension of path is permitted.
func (wl Whitelist) Allows(path string) bool {
	if len(wl) == 0 {
		return true
	}
	_, ok := wl[Extension(path)]
	return ok
}

// Extensions returns the whitelisted extensions in sorted order.
func (wl Whitelist) Extensions() []string {
	exts := make([]string, 0, len(wl))
	for ext := range wl {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extension returns the lowercase extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
