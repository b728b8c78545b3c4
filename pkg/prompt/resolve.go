package prompt

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolved is a raw path that exists on the filesystem.
type Resolved struct {
	Path  string // Canonical absolute path.
	IsDir bool
}

// Resolve strips one layer of matching surrounding quotes from raw,
// normalizes it to an absolute clean path and checks that it exists.
// The boolean is false when the path is empty or does not exist.
func Resolve(raw string) (Resolved, bool) {
	p := stripQuotes(strings.TrimSpace(raw))
	if p == "" {
		return Resolved{}, false
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return Resolved{}, false
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Resolved{}, false
	}
	return Resolved{Path: abs, IsDir: info.IsDir()}, true
}

// stripQuotes removes a single pair of matching " or ' quotes.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// DisplayPath splits path on the OS separator and, when marker occurs
// before the final segment, replaces the segment that follows it with
// placeholder. Otherwise path is returned unchanged.
func DisplayPath(path, marker, placeholder string) string {
	sep := string(os.PathSeparator)
	segments := strings.Split(path, sep)
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == marker {
			segments[i+1] = placeholder
			return strings.Join(segments, sep)
		}
	}
	return path
}
