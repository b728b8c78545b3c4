package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMatchesPath(t *testing.T) {
	m := New(zaptest.NewLogger(t))
	require.NoError(t, m.CompileIgnoreLines(
		"# comment",
		"",
		"*.log",
		"node_modules",
		"build/**",
		"!keep.log",
	))

	tests := []struct {
		path string
		want bool
	}{
		{"app.log", true},
		{"src/deep/app.log", true},
		{"keep.log", false},
		{"node_modules", true},
		{"web/node_modules", true},
		{"build/out/main.o", true},
		{"src/build/main.o", false},
		{"main.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchesPath(tt.path))
		})
	}
}

func TestMatchesPathWithPatternReturnsDecidingLine(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.CompileIgnoreLines("*.tmp", "!a.tmp"))

	matched, p := m.MatchesPathWithPattern("a.tmp")
	assert.False(t, matched)
	require.NotNil(t, p)
	assert.Equal(t, "!a.tmp", p.Line)
	assert.Equal(t, 2, p.LineNo)

	matched, p = m.MatchesPathWithPattern("README.md")
	assert.False(t, matched)
	assert.Nil(t, p)
}

func TestEmptyMatcherIgnoresNothing(t *testing.T) {
	m := New(nil)
	assert.False(t, m.MatchesPath("anything/at/all.txt"))
}

func TestLoadCombinesPatternsAndFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".promptignore")
	require.NoError(t, os.WriteFile(file, []byte("# generated\n*.pb.go\nvendor/\n"), 0o644))

	m, err := Load([]string{"*.lock"}, []string{file, filepath.Join(dir, "missing")}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, m.Patterns, 3)

	assert.True(t, m.MatchesPath("go.lock"))
	assert.True(t, m.MatchesPath("api/types.pb.go"))
	assert.True(t, m.MatchesPath("vendor"))
	assert.False(t, m.MatchesPath("api/types.go"))
}
