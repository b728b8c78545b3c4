// File: pkg/prompt/registry.go
package prompt

import (
	"go.uber.org/zap"
)

// AddOptions carries the configuration that applies at add time. Whitelist
// edits made later never re-filter entries that are already registered.
type AddOptions struct {
	Whitelist Whitelist
	Recursive bool
	Ignore    IgnoreParser
}

// Registry is an insertion-ordered set of file entries keyed by canonical path.
// It is not safe for concurrent use.
type Registry struct {
	order   []string
	entries map[string]*FileEntry
	censor  Censor
	logger  *zap.Logger
}

// NewRegistry creates an empty registry whose display paths use censor.
func NewRegistry(censor Censor, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[string]*FileEntry),
		censor:  censor,
		logger:  logger,
	}
}

// Add resolves raw and registers it. A directory is expanded and each yielded
// file is registered; a regular file is registered when the whitelist allows
// it. Paths that do not exist are dropped silently. It returns the number of
// new entries.
func (r *Registry) Add(raw string, opts AddOptions) int {
	res, ok := Resolve(raw)
	if !ok {
		r.logger.Debug("Dropping path that does not exist", zap.String("path", raw))
		return 0
	}

	if res.IsDir {
		added := 0
		files := Expand(res.Path, ExpandOptions{
			Whitelist: opts.Whitelist,
			Recursive: opts.Recursive,
			Ignore:    opts.Ignore,
		}, r.logger)
		for _, file := range files {
			if r.insert(file) {
				added++
			}
		}
		r.logger.Debug("Added directory", zap.String("directory", res.Path), zap.Int("added", added))
		return added
	}

	if !opts.Whitelist.Allows(res.Path) {
		r.logger.Debug("Skipping file outside whitelist", zap.String("path", res.Path))
		return 0
	}
	if r.insert(res.Path) {
		return 1
	}
	return 0
}

// insert registers an already canonical path. Existing paths are left alone.
func (r *Registry) insert(path string) bool {
	if _, ok := r.entries[path]; ok {
		return false
	}
	r.entries[path] = &FileEntry{
		CanonicalPath: path,
		DisplayPath:   DisplayPath(path, r.censor.Marker, r.censor.Placeholder),
	}
	r.order = append(r.order, path)
	r.logger.Debug("Registered file", zap.String("path", path))
	return true
}

// Get returns a copy of the entry for path.
func (r *Registry) Get(path string) (FileEntry, bool) {
	e, ok := r.entries[path]
	if !ok {
		return FileEntry{}, false
	}
	return *e, true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.order)
}

// Entries returns copies of all entries in insertion order.
func (r *Registry) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(r.order))
	for _, path := range r.order {
		out = append(out, *r.entries[path])
	}
	return out
}

// SetSelected sets the selection flag of path. It reports whether path is registered.
func (r *Registry) SetSelected(path string, selected bool) bool {
	e, ok := r.entries[path]
	if !ok {
		return false
	}
	e.Selected = selected
	return true
}

// Toggle flips the selection flag of path. It reports whether path is registered.
func (r *Registry) Toggle(path string) bool {
	e, ok := r.entries[path]
	if !ok {
		return false
	}
	e.Selected = !e.Selected
	return true
}

// Remove deletes the given paths and returns how many were registered.
func (r *Registry) Remove(paths ...string) int {
	drop := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if _, ok := r.entries[path]; ok {
			drop[path] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := r.order[:0]
	for _, path := range r.order {
		if _, ok := drop[path]; ok {
			delete(r.entries, path)
			continue
		}
		kept = append(kept, path)
	}
	r.order = kept
	return len(drop)
}

// RemoveAllMatching deletes every entry whose canonical path satisfies match.
func (r *Registry) RemoveAllMatching(match func(path string) bool) int {
	var paths []string
	for _, path := range r.order {
		if match(path) {
			paths = append(paths, path)
		}
	}
	return r.Remove(paths...)
}

// SelectAllMatching selects every entry whose canonical path satisfies match.
func (r *Registry) SelectAllMatching(match func(path string) bool) int {
	return r.setAllMatching(match, true)
}

// DeselectAllMatching deselects every entry whose canonical path satisfies match.
func (r *Registry) DeselectAllMatching(match func(path string) bool) int {
	return r.setAllMatching(match, false)
}

func (r *Registry) setAllMatching(match func(path string) bool, selected bool) int {
	n := 0
	for _, path := range r.order {
		if match(path) {
			r.entries[path].Selected = selected
			n++
		}
	}
	return n
}

// SelectedCount counts the selected entries.
func (r *Registry) SelectedCount() int {
	n := 0
	for _, e := range r.entries {
		if e.Selected {
			n++
		}
	}
	return n
}
