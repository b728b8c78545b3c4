// File: pkg/prompt/assemble.go
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// AssembleOptions controls how selected files are read.
type AssembleOptions struct {
	MaxFileSizeKB int // 0 disables the limit.
}

// Assemble builds the prompt from query and the selected entries of r in
// insertion order. Selected files that no longer exist are listed in
// Result.Pruned and skipped; files that cannot be read as text are reported
// in Result.Warnings and skipped. The registry is not modified; callers
// remove the pruned paths themselves.
func Assemble(query string, r *Registry, opts AssembleOptions, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	var res Result
	var b strings.Builder
	b.WriteString(query)
	b.WriteString("\n\n")

	for _, e := range r.Entries() {
		if !e.Selected {
			continue
		}

		info, err := os.Stat(e.CanonicalPath)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Selected file no longer exists", zap.String("path", e.CanonicalPath))
			res.Pruned = append(res.Pruned, e.CanonicalPath)
			continue
		}
		if err == nil && opts.MaxFileSizeKB > 0 && info.Size() > int64(opts.MaxFileSizeKB)*1024 {
			err = fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
		}

		var content string
		if err == nil {
			content, err = readText(e.CanonicalPath)
		}
		if err != nil {
			logger.Warn("Failed to read selected file", zap.String("path", e.CanonicalPath), zap.Error(err))
			res.Warnings = append(res.Warnings, Warning{Path: e.CanonicalPath, Err: err})
			continue
		}

		fmt.Fprintf(&b, "CONTENTS OF %s:\n\n%s\n\n", e.DisplayPath, content)
		logger.Debug("Appended file content",
			zap.String("path", e.CanonicalPath),
			zap.Int("contentSizeBytes", len(content)))
	}

	res.Text = b.String()
	res.Stats = ComputeStats(res.Text)
	return res
}

// readText reads a whole file and rejects binary or non UTF-8 content.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	if isBinary(data) || !utf8.Valid(data) {
		return "", fmt.Errorf("error decoding file %s: %w", path, ErrNotText)
	}
	return string(data), nil
}

// isBinary looks for NUL bytes in the leading 8000 bytes, the same window git uses.
func isBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	for _, c := range data {
		if c == 0 {
			return true
		}
	}
	return false
}

// ComputeStats counts code points and whitespace-delimited words in text.
func ComputeStats(text string) Stats {
	return Stats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
}
