package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"promptbuilder/pkg/prompt"
)

func TestShellSession(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.go": "package a", "b.md": "# b", "sub/c.go": "package c"})
	a, b, c := filepath.Join(dir, "a.go"), filepath.Join(dir, "b.md"), filepath.Join(dir, "sub", "c.go")

	script := strings.Join([]string{
		"help",
		"ext go",
		`add "` + dir + `"`,
		"recursive on",
		"ext",
		"add " + dir,
		"search .GO",
		"select-all",
		"search",
		"toggle 2",
		"query Explain this",
		"build",
		"show",
		"rm 3",
		"stats",
		"bogus",
		"quit",
		"add " + dir,
	}, "\n")

	out, _, err := executeCmd(t, script, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "whitelist: go\n")
	assert.Contains(t, out, "added 1 file(s)\n")
	assert.Contains(t, out, "recursive: true\n")
	assert.Contains(t, out, "whitelist cleared")
	assert.Contains(t, out, "added 2 file(s)\n")
	assert.Contains(t, out, "2 shown, 0 selected\n")
	assert.Contains(t, out, "selected 2 file(s)\n")
	assert.Contains(t, out, "  2 [x] "+prompt.DisplayPath(b, prompt.DefaultMarker, prompt.DefaultPlaceholder)+"\n")
	assert.Contains(t, out, "3 shown, 3 selected\n")
	assert.Contains(t, out, "Explain this\n\n"+block(a, "package a")+block(b, "# b")+block(c, "package c"))
	assert.Contains(t, out, "removed 1 file(s)\n")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.NotContains(t, out, "added 0 file(s)")
}

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	logger := zaptest.NewLogger(t)
	return &shell{
		sess:   prompt.NewSession(prompt.SessionOptions{}, logger),
		out:    &out,
		copy:   func(string) error { return nil },
		logger: logger,
	}, &out
}

func TestShellReportsPrunedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"gone.txt": "bye"})
	gone := filepath.Join(dir, "gone.txt")
	sh, out := newTestShell(t)

	sh.exec("add " + gone)
	sh.exec("select-all")
	require.NoError(t, os.Remove(gone))
	sh.exec("build")

	assert.Contains(t, out.String(), "removed missing file: "+gone)
	assert.Equal(t, 0, sh.sess.Registry().Len())
}

func TestShellTargetsAndCopy(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a", "b.txt": "b"})
	sh, out := newTestShell(t)
	var copied string
	sh.copy = func(text string) error {
		copied = text
		return nil
	}

	sh.exec("add " + dir)
	sh.exec("toggle " + filepath.Join(dir, "b.txt"))
	sh.exec("toggle 9")
	assert.Equal(t, 1, sh.sess.SelectedCount())
	assert.Contains(t, out.String(), "no entry 9")

	sh.exec(`add "unterminated`)
	assert.Contains(t, out.String(), "cannot parse arguments")

	sh.exec("build")
	sh.exec("copy")
	assert.Equal(t, sh.sess.Last().Text, copied)
	assert.Contains(t, out.String(), "copied prompt to clipboard")

	sh.exec("search a.txt")
	sh.exec("remove-all")
	sh.exec("search")
	assert.Contains(t, out.String(), "1 shown, 1 selected\n")

	assert.True(t, sh.exec("exit"))
	assert.False(t, sh.exec("   "))
}

func TestShellDrop(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x y/z.txt": "z"})
	sh, out := newTestShell(t)

	sh.exec("drop {" + filepath.Join(dir, "x y", "z.txt") + "}")
	assert.Contains(t, out.String(), "added 1 file(s)")

	sh.exec("recursive maybe")
	assert.Contains(t, out.String(), "usage: recursive on|off")
	assert.Contains(t, out.String(), "recursive: false")
}
