package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// IgnorePattern is one compiled glob together with its origin.
type IgnorePattern struct {
	Glob     glob.Glob // Compiled pattern, '/' is the separator.
	Negate   bool      // Pattern started with '!'.
	Anchored bool      // Pattern contains a '/', so it matches the whole relative path.
	Line     string    // Original pattern line.
	LineNo   int       // 1-based position across all compiled lines.
}

// Matcher holds ordered ignore patterns. Later patterns override earlier
// ones, and a negated pattern re-includes a path.
type Matcher struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// New returns an empty Matcher.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load builds a Matcher from inline patterns followed by the lines of each
// ignore file. Missing files are skipped.
func Load(patterns []string, files []string, logger *zap.Logger) (*Matcher, error) {
	m := New(logger)
	if err := m.CompileIgnoreLines(patterns...); err != nil {
		return nil, err
	}
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := m.CompileIgnoreFile(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				m.logger.Debug("Ignore file not found", zap.String("file", file))
				continue
			}
			return nil, err
		}
		m.logger.Debug("Loaded ignore file", zap.String("file", file))
	}
	return m, nil
}

// CompileIgnoreFile compiles every pattern line of the file at path.
func (m *Matcher) CompileIgnoreFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}
	return m.CompileIgnoreLines(lines...)
}

// CompileIgnoreLines compiles pattern lines. Blank lines and '#' comments are skipped.
func (m *Matcher) CompileIgnoreLines(lines ...string) error {
	for _, line := range lines {
		p, err := m.compile(line)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		m.Patterns = append(m.Patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("line", p.Line),
			zap.Bool("negate", p.Negate))
	}
	return nil
}

func (m *Matcher) compile(line string) (*IgnorePattern, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	p := &IgnorePattern{Line: line, LineNo: len(m.Patterns) + 1}
	if strings.HasPrefix(trimmed, "!") {
		p.Negate = true
		trimmed = trimmed[1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "/"), "/")
	if trimmed == "" {
		return nil, nil
	}
	p.Anchored = strings.Contains(trimmed, "/")

	g, err := glob.Compile(trimmed, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern %q: %w", line, err)
	}
	p.Glob = g
	return p, nil
}

// MatchesPath reports whether the slash-separated relative path is ignored.
func (m *Matcher) MatchesPath(relPath string) bool {
	matched, _ := m.MatchesPathWithPattern(relPath)
	return matched
}

// MatchesPathWithPattern is MatchesPath that also returns the deciding pattern.
func (m *Matcher) MatchesPathWithPattern(relPath string) (bool, *IgnorePattern) {
	relPath = strings.TrimPrefix(relPath, "./")
	base := path.Base(relPath)

	matched := false
	var decided *IgnorePattern
	for _, p := range m.Patterns {
		subject := base
		if p.Anchored {
			subject = relPath
		}
		if p.Glob.Match(subject) {
			matched = !p.Negate
			decided = p
		}
	}
	return matched, decided
}
