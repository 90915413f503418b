// Package workspace analyses a set of collected scripts concurrently.
package workspace

import (
	"context"
	"os"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"jbang-lens/internal/anchor"
	"jbang-lens/internal/cache"
	"jbang-lens/internal/logging"
	"jbang-lens/internal/textutil"
	"jbang-lens/internal/walkwalk"
)

// FileResult is the analysis of one file. Err is set, and the Result left
// empty, when the file could not be read.
type FileResult struct {
	Path     string `json:"path" toml:"path"`
	Language string `json:"language" toml:"language"`
	Hash     string `json:"sha256" toml:"sha256"`
	Err      string `json:"error,omitempty" toml:"error,omitempty"`
	Cached   bool   `json:"-" toml:"-"`
	anchor.Result
}

// Analyzer runs anchor.Analyze over files with bounded concurrency. Results
// are cached by content hash and language id.
type Analyzer struct {
	jobs  int
	cache *lru.Cache[string, anchor.Result]
}

// New returns an Analyzer running at most jobs files at once (GOMAXPROCS
// when jobs <= 0). A nil cache disables caching.
func New(jobs int, c *lru.Cache[string, anchor.Result]) *Analyzer {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{jobs: jobs, cache: c}
}

// LanguageID maps a lowercase file extension to an editor language id.
func LanguageID(ext string) string {
	switch ext {
	case ".java":
		return "java"
	case ".kt":
		return "kotlin"
	case ".groovy":
		return "groovy"
	case ".jsh":
		return "jshell"
	case ".jbang":
		return "jbang"
	}
	return "plaintext"
}

// AnalyzeFiles analyses files and returns one result per file, in input
// order. Only context cancellation aborts the run; unreadable files are
// reported through FileResult.Err.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, files []walkwalk.FileInfo) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(a.jobs, len(files)))
	for i, f := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// each goroutine owns results[i]
			results[i] = a.analyze(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Analyzer) analyze(f walkwalk.FileInfo) FileResult {
	lang := LanguageID(f.Ext)
	out := FileResult{Path: f.RelPath, Language: lang, Hash: f.SHA256Hex}
	key := cache.Key(f.SHA256Hex, lang)
	if a.cache != nil {
		if r, ok := a.cache.Get(key); ok {
			out.Result, out.Cached = r, true
			return out
		}
	}
	b, err := os.ReadFile(f.AbsPath)
	if err != nil {
		logging.Warn("read failed", "path", f.RelPath, "error", err)
		out.Err = err.Error()
		return out
	}
	out.Result = AnalyzeText(b, lang)
	if a.cache != nil {
		a.cache.Add(key, out.Result)
	}
	return out
}

// AnalyzeText normalises raw file contents and analyses them as languageID.
func AnalyzeText(b []byte, languageID string) anchor.Result {
	return anchor.Analyze(textutil.Lines(b), languageID)
}

// Load seeds the cache from a persisted snapshot.
func (a *Analyzer) Load(s *cache.Snapshot) {
	if a.cache == nil || s == nil {
		return
	}
	for k, r := range s.Entries {
		a.cache.Add(k, r)
	}
}

// Snapshot exports the cache contents for persistence.
func (a *Analyzer) Snapshot(root string) *cache.Snapshot {
	s := cache.NewSnapshot(root)
	if a.cache == nil {
		return s
	}
	for _, k := range a.cache.Keys() {
		if r, ok := a.cache.Peek(k); ok {
			s.Entries[k] = r
		}
	}
	return s
}
