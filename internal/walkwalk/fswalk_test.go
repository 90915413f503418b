package walkwalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func relPaths(fs []FileInfo) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.RelPath)
	}
	return out
}

func TestCollectFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hello.java":            "//DEPS a:b:1",
		"scripts/b.jsh":         "//JAVA 21",
		"scripts/a.kt":          "fun main() {}",
		"README.md":             "# readme",
		"target/classes/X.java": "class X {}",
		"ignored/Skip.java":     "class Skip {}",
		"big/Large.groovy":      "println 'this file is larger than the cap'",
		".gitignore":            "ignored/\n",
		"keep/Main.JAVA":        "class Main {}",
	})

	files, err := Collect(root, Options{
		Exclude:      DefaultExclude,
		UseGitignore: true,
		MaxFileBytes: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello.java", "keep/Main.JAVA", "scripts/a.kt", "scripts/b.jsh"}, relPaths(files))
	assert.Equal(t, ".java", files[1].Ext)
	assert.Len(t, files[0].SHA256Hex, 64)
}

func TestCollectCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.java": "", "b.groovy": ""})
	files, err := Collect(root, Options{Extensions: []string{"groovy"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.groovy"}, relPaths(files))
}

func TestCollectSingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "//DEPS a:b:1"})
	files, err := Collect(filepath.Join(root, "notes.txt"), Options{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "notes.txt", files[0].RelPath)
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestMatchGitignore(t *testing.T) {
	pats := []gitPattern{
		{rx: compileGitGlob("*.log", false)},
		{rx: compileGitGlob("build", true), dirOnly: true},
		{rx: compileGitGlob("keep.log", false), neg: true},
	}
	assert.True(t, matchGitignore(pats, "a/b/x.log", false))
	assert.False(t, matchGitignore(pats, "a/keep.log", false))
	assert.True(t, matchGitignore(pats, "build", true))
	assert.False(t, matchGitignore(pats, "build", false))
	assert.False(t, matchGitignore(pats, "sub/build", true))
}
