package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSessionDropBracedPayload(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a b/c.txt": "c", "d.txt": "d"})
	s := NewSession(SessionOptions{}, zaptest.NewLogger(t))

	payload := "{" + filepath.Join(dir, "a b", "c.txt") + "} {" + filepath.Join(dir, "d.txt") + "} {" + filepath.Join(dir, "missing.txt") + "}"
	assert.Equal(t, 2, s.Drop(payload))
	assert.Equal(t, abs(dir, "a b/c.txt", "d.txt"), paths(s.Registry().Entries()))
}

func TestSessionWhitelistReparsedOnEveryAdd(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.py": "", "b.go": "", "c.md": ""})
	s := NewSession(SessionOptions{Whitelist: "py"}, nil)

	assert.Equal(t, 1, s.AddPath(dir))
	s.SetWhitelist("go, md")
	assert.Equal(t, 2, s.AddPath(dir))
	assert.Equal(t, "go, md", s.Whitelist())
	assert.Equal(t, 3, s.Registry().Len())
}

func TestSessionRecursiveFlag(t *testing.T) {
	root := fixtureTree(t)
	s := NewSession(SessionOptions{}, nil)

	assert.Equal(t, 2, s.AddPath(root))
	s.SetRecursive(true)
	assert.True(t, s.Recursive())
	assert.Equal(t, 4, s.AddPath(root))
}

func TestSessionVisibleOperations(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"api/handler.go": "", "api/handler_test.go": "", "docs/guide.md": ""})
	s := NewSession(SessionOptions{Recursive: true}, zaptest.NewLogger(t))
	require.Equal(t, 3, s.AddPath(dir))

	s.SetSearch("API")
	assert.Equal(t, "API", s.Search())
	assert.Len(t, s.View(), 2)
	assert.Equal(t, 2, s.SelectVisible())
	assert.Equal(t, 2, s.SelectedCount())

	s.SetSearch("guide")
	assert.Equal(t, 1, s.SelectVisible())
	assert.Equal(t, 3, s.SelectedCount())
	assert.Equal(t, 1, s.DeselectVisible())
	assert.Equal(t, 2, s.SelectedCount())

	s.SetSearch("_test")
	assert.Equal(t, 1, s.RemoveVisible())
	assert.Empty(t, s.View())

	s.SetSearch("")
	assert.Equal(t, abs(dir, "api/handler.go", "docs/guide.md"), paths(s.View()))
	assert.Equal(t, 1, s.SelectedCount())
}

func TestSessionBuildRemovesPruned(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "alpha", "b.txt": "beta"})
	s := NewSession(SessionOptions{}, zaptest.NewLogger(t))
	s.AddPath(filepath.Join(dir, "a.txt"))
	s.AddPath(filepath.Join(dir, "b.txt"))
	s.SetQuery("Explain")
	assert.Equal(t, "Explain", s.Query())

	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	assert.True(t, s.Toggle(a))
	assert.True(t, s.SetSelected(b, true))
	require.NoError(t, os.Remove(b))

	res := s.Build()
	assert.Equal(t, []string{b}, res.Pruned)
	assert.Contains(t, res.Text, "alpha")
	assert.NotContains(t, res.Text, "beta")
	assert.Equal(t, res, s.Last())

	_, ok := s.Registry().Get(b)
	assert.False(t, ok)
	assert.Equal(t, 1, s.SelectedCount())

	assert.Equal(t, 1, s.Remove(a))
	assert.Equal(t, "Explain\n\n", s.Build().Text)
}

func TestSessionDefaultsCensor(t *testing.T) {
	s := NewSession(SessionOptions{}, nil)
	assert.Equal(t, DefaultCensor(), s.Registry().censor)
}
