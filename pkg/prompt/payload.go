package prompt

import (
	"regexp"
	"strings"
)

var bracedPathPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// ParseDropPayload splits a drag-and-drop payload into raw paths. When the
// payload contains both braces, every {...} span is one path; otherwise the
// payload is split on whitespace.
func ParseDropPayload(payload string) []string {
	if !strings.Contains(payload, "{") || !strings.Contains(payload, "}") {
		return strings.Fields(payload)
	}

	var paths []string
	for _, m := range bracedPathPattern.FindAllStringSubmatch(payload, -1) {
		p := strings.TrimSpace(m[1])
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
