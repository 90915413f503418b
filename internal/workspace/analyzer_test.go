package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jbang-lens/internal/anchor"
	"jbang-lens/internal/walkwalk"
)

const hello = "///usr/bin/env jbang \"$0\" \"$@\" ; exit $?\r\n" +
	"//DEPS info.picocli:picocli:4.7.5\r\n" +
	"\r\n" +
	"public class Hello {\r\n" +
	"    public static void main(String[] args) {\r\n" +
	"    }\r\n" +
	"}\r\n"

func collect(t *testing.T, files map[string]string) []walkwalk.FileInfo {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(body), 0o644))
	}
	fs, err := walkwalk.Collect(root, walkwalk.Options{})
	require.NoError(t, err)
	return fs
}

func TestAnalyzeFilesKeepsInputOrder(t *testing.T) {
	files := collect(t, map[string]string{
		"a.java":   hello,
		"b.java":   "public class Plain {}\n",
		"c.kt":     "//DEPS org.jetbrains:kotlin:1.9\nfun main() {}\n",
		"d.jbang":  "",
		"e.groovy": "//GROOVY 4\nprintln 'hi'\n",
	})
	res, err := New(2, nil).AnalyzeFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, res, len(files))
	for i := range files {
		assert.Equal(t, files[i].RelPath, res[i].Path)
	}

	a := res[0]
	assert.Equal(t, "java", a.Language)
	require.True(t, a.Applicable)
	require.NotNil(t, a.Anchors.Type)
	require.NotNil(t, a.Anchors.Main)
	assert.Equal(t, 3, a.Anchors.Type.StartLine)
	assert.Equal(t, 4, a.Anchors.Main.StartLine)
	assert.Equal(t, 4, a.Anchors.Main.StartChar)

	assert.False(t, res[1].Applicable)
	assert.Equal(t, "kotlin", res[2].Language)
	assert.True(t, res[2].Applicable)
	assert.True(t, res[3].Applicable, "jbang documents always apply")
	assert.Equal(t, "groovy", res[4].Language)
}

func TestAnalyzeFilesUsesCache(t *testing.T) {
	files := collect(t, map[string]string{"a.java": hello, "copy.java": hello})
	c, err := lru.New[string, anchor.Result](16)
	require.NoError(t, err)
	an := New(1, c)

	first, err := an.AnalyzeFiles(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len(), "identical content shares one entry")
	assert.False(t, first[0].Cached)
	assert.True(t, first[1].Cached)

	// cached results survive the file disappearing
	require.NoError(t, os.Remove(files[0].AbsPath))
	again, err := an.AnalyzeFiles(context.Background(), files[:1])
	require.NoError(t, err)
	assert.True(t, again[0].Cached)
	assert.Empty(t, again[0].Err)
	assert.True(t, again[0].Applicable)
}

func TestAnalyzeFilesReportsReadErrors(t *testing.T) {
	files := collect(t, map[string]string{"a.java": hello})
	require.NoError(t, os.Remove(files[0].AbsPath))
	res, err := New(1, nil).AnalyzeFiles(context.Background(), files)
	require.NoError(t, err)
	assert.NotEmpty(t, res[0].Err)
	assert.False(t, res[0].Applicable)
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	files := collect(t, map[string]string{"a.java": hello})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(1, nil).AnalyzeFiles(ctx, files)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotRoundTrip(t *testing.T) {
	files := collect(t, map[string]string{"a.java": hello})
	c, _ := lru.New[string, anchor.Result](4)
	an := New(1, c)
	_, err := an.AnalyzeFiles(context.Background(), files)
	require.NoError(t, err)

	snap := an.Snapshot("/root")
	assert.Len(t, snap.Entries, 1)

	c2, _ := lru.New[string, anchor.Result](4)
	warm := New(1, c2)
	warm.Load(snap)
	assert.Equal(t, 1, c2.Len())
}

func TestLanguageID(t *testing.T) {
	for ext, want := range map[string]string{
		".java":   "java",
		".kt":     "kotlin",
		".groovy": "groovy",
		".jsh":    "jshell",
		".jbang":  "jbang",
		".txt":    "plaintext",
	} {
		assert.Equal(t, want, LanguageID(ext), ext)
	}
}
