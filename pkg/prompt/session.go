// File: pkg/prompt/session.go
package prompt

import (
	"go.uber.org/zap"
)

// SessionOptions seeds a new Session.
type SessionOptions struct {
	Whitelist     string // Raw comma-separated extension text.
	Recursive     bool
	Ignore        IgnoreParser
	Censor        Censor
	MaxFileSizeKB int
}

// Session owns one registry together with the view and build parameters a
// presentation layer edits. Every operation runs synchronously.
type Session struct {
	registry  *Registry
	whitelist string
	recursive bool
	ignore    IgnoreParser
	search    string
	query     string
	assemble  AssembleOptions
	last      Result
	logger    *zap.Logger
}

// NewSession creates an empty session.
func NewSession(opts SessionOptions, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	censor := opts.Censor
	if censor.Marker == "" {
		censor = DefaultCensor()
	}
	return &Session{
		registry:  NewRegistry(censor, logger),
		whitelist: opts.Whitelist,
		recursive: opts.Recursive,
		ignore:    opts.Ignore,
		assemble:  AssembleOptions{MaxFileSizeKB: opts.MaxFileSizeKB},
		logger:    logger,
	}
}

// Registry exposes the underlying registry.
func (s *Session) Registry() *Registry { return s.registry }

// SetWhitelist replaces the raw whitelist text. Registered entries are unaffected.
func (s *Session) SetWhitelist(text string) { s.whitelist = text }

// Whitelist returns the raw whitelist text.
func (s *Session) Whitelist() string { return s.whitelist }

func (s *Session) SetRecursive(recursive bool) { s.recursive = recursive }

func (s *Session) Recursive() bool { return s.recursive }

func (s *Session) SetSearch(term string) { s.search = term }

func (s *Session) Search() string { return s.search }

func (s *Session) SetQuery(query string) { s.query = query }

func (s *Session) Query() string { return s.query }

// AddPath registers one raw path string, re-parsing the whitelist first.
func (s *Session) AddPath(raw string) int {
	return s.registry.Add(raw, s.addOptions())
}

// Drop registers every path encoded in a drag-and-drop payload.
func (s *Session) Drop(payload string) int {
	opts := s.addOptions()
	added := 0
	for _, raw := range ParseDropPayload(payload) {
		added += s.registry.Add(raw, opts)
	}
	s.logger.Debug("Processed drop payload", zap.Int("added", added))
	return added
}

func (s *Session) addOptions() AddOptions {
	return AddOptions{
		Whitelist: ParseWhitelist(s.whitelist),
		Recursive: s.recursive,
		Ignore:    s.ignore,
	}
}

// View returns the entries matching the current search term, sorted.
func (s *Session) View() []FileEntry {
	return View(s.registry, s.search)
}

func (s *Session) Toggle(path string) bool { return s.registry.Toggle(path) }

func (s *Session) SetSelected(path string, selected bool) bool {
	return s.registry.SetSelected(path, selected)
}

// SelectVisible selects every entry in the current view.
func (s *Session) SelectVisible() int {
	return s.registry.SelectAllMatching(Matcher(s.search))
}

// DeselectVisible deselects every entry in the current view.
func (s *Session) DeselectVisible() int {
	return s.registry.DeselectAllMatching(Matcher(s.search))
}

// RemoveVisible removes every entry in the current view.
func (s *Session) RemoveVisible() int {
	return s.registry.RemoveAllMatching(Matcher(s.search))
}

func (s *Session) Remove(paths ...string) int { return s.registry.Remove(paths...) }

func (s *Session) SelectedCount() int { return s.registry.SelectedCount() }

// Build assembles the prompt, removes pruned entries from the registry and
// records the result.
func (s *Session) Build() Result {
	res := Assemble(s.query, s.registry, s.assemble, s.logger)
	if len(res.Pruned) > 0 {
		s.registry.Remove(res.Pruned...)
	}
	s.last = res
	s.logger.Info("Assembled prompt",
		zap.Int("chars", res.Stats.Chars),
		zap.Int("words", res.Stats.Words),
		zap.Int("pruned", len(res.Pruned)),
		zap.Int("warnings", len(res.Warnings)))
	return res
}

// Last returns the result of the most recent Build.
func (s *Session) Last() Result { return s.last }
