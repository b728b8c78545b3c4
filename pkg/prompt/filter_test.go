package prompt

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	e := FileEntry{CanonicalPath: "/src/Handlers/Auth.go"}

	assert.True(t, Matches(e, ""))
	assert.True(t, Matches(e, "auth"))
	assert.True(t, Matches(e, "HANDLERS/a"))
	assert.False(t, Matches(e, "session"))
}

func TestView(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"zeta.go":       "",
		"Alpha.go":      "",
		"beta/Parse.go": "",
		"beta/notes.md": "",
	})
	r := newTestRegistry(t)
	for _, rel := range []string{"zeta.go", "beta/notes.md", "Alpha.go", "beta/Parse.go"} {
		r.Add(filepath.Join(dir, filepath.FromSlash(rel)), AddOptions{})
	}
	r.SetSelected(filepath.Join(dir, "zeta.go"), true)

	all := View(r, "")
	want := abs(dir, "Alpha.go", "beta/Parse.go", "beta/notes.md", "zeta.go")
	if diff := cmp.Diff(want, paths(all)); diff != "" {
		t.Errorf("View(\"\") mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, all[3].Selected)

	parse := View(r, "PARSE")
	if diff := cmp.Diff(abs(dir, "beta/Parse.go"), paths(parse)); diff != "" {
		t.Errorf("View(PARSE) mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, View(r, "nothing-matches-this"))

	// Views never reorder the registry itself.
	assert.Equal(t, abs(dir, "zeta.go", "beta/notes.md", "Alpha.go", "beta/Parse.go"), paths(r.Entries()))
}

func TestViewReturnsCopies(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": ""})
	r := newTestRegistry(t)
	r.Add(filepath.Join(dir, "a.go"), AddOptions{})

	view := View(r, "")
	view[0].Selected = true

	assert.Equal(t, 0, r.SelectedCount())
}
