// File: pkg/prompt/traversal.go
package prompt

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// IgnoreParser matches slash-separated paths relative to a traversal root.
type IgnoreParser interface {
	MatchesPath(relPath string) bool
}

// ExpandOptions controls directory expansion.
type ExpandOptions struct {
	Whitelist Whitelist
	Recursive bool
	Ignore    IgnoreParser // Optional.
}

// Expand returns the whitelisted files under root. Without Recursive only the
// direct file children of root are returned. Directories are never returned.
// Order follows the filesystem walk and is not guaranteed.
func Expand(root string, opts ExpandOptions, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Expanding directory", zap.String("root", root), zap.Bool("recursive", opts.Recursive))

	if !opts.Recursive {
		return expandFlat(root, opts, logger)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == root {
			return nil
		}

		ignored := isIgnored(root, path, opts.Ignore)
		if d.IsDir() {
			if ignored {
				logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}
		if ignored {
			logger.Debug("Skipping ignored file", zap.String("path", path))
			return nil
		}
		if accept(path, d, opts.Whitelist, logger) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Directory traversal stopped early", zap.String("root", root), zap.Error(err))
	}

	logger.Debug("Completed directory expansion", zap.String("root", root), zap.Int("files", len(files)))
	return files
}

func expandFlat(root string, opts ExpandOptions, logger *zap.Logger) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("Failed to read directory", zap.String("root", root), zap.Error(err))
		return nil
	}

	var files []string
	for _, d := range entries {
		if d.IsDir() {
			continue
		}
		path := filepath.Join(root, d.Name())
		if isIgnored(root, path, opts.Ignore) {
			logger.Debug("Skipping ignored file", zap.String("path", path))
			continue
		}
		if accept(path, d, opts.Whitelist, logger) {
			files = append(files, path)
		}
	}
	return files
}

// accept reports whether a non-directory walk entry is a whitelisted regular
// file. Symlinks are followed so links to directories are dropped.
func accept(path string, d fs.DirEntry, wl Whitelist, logger *zap.Logger) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logger.Debug("Skipping symlink that is not a regular file", zap.String("path", path))
			return false
		}
	} else if !d.Type().IsRegular() {
		return false
	}

	if !wl.Allows(path) {
		logger.Debug("Skipping file outside whitelist", zap.String("path", path), zap.String("extension", Extension(path)))
		return false
	}
	return true
}

func isIgnored(root, path string, gi IgnoreParser) bool {
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}
