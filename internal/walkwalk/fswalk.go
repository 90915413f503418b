// Package walkwalk provides a deterministic, filterable filesystem walker
// that gathers candidate JBang scripts below a root directory.
package walkwalk

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultExtensions are the script types JBang runs.
var DefaultExtensions = []string{".java", ".jsh", ".kt", ".groovy", ".jbang"}

// DefaultExclude skips build output and VCS metadata.
var DefaultExclude = []string{".git", "node_modules", "build", "target", "out", ".idea", ".vscode", ".gradle"}

// FileInfo is a minimal, deterministic descriptor of a collected file.
type FileInfo struct {
	RelPath   string // root-relative path with forward slashes
	AbsPath   string // absolute filesystem path
	Size      int64  // size in bytes
	SHA256Hex string // lowercase hex sha256 of the file contents
	Ext       string // lowercase extension including dot (e.g., ".java")
}

// Options filters the walk. Zero values mean: DefaultExtensions, no
// excludes, no size cap, no .gitignore, symlinked files skipped.
type Options struct {
	Extensions     []string
	Exclude        []string // base-name prefixes of dirs/files to skip
	MaxFileBytes   int64
	UseGitignore   bool
	FollowSymlinks bool
}

type walkState struct {
	opt      Options
	exts     map[string]struct{}
	root     string
	patterns []gitPattern
	files    []FileInfo
}

// Collect walks root and returns matching files sorted by RelPath. When
// root is a regular file it is returned on its own, unfiltered.
func Collect(root string, opt Options) ([]FileInfo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		fi, err := describe(abs, filepath.Base(abs), st.Size())
		if err != nil {
			return nil, err
		}
		return []FileInfo{fi}, nil
	}

	ws := &walkState{opt: opt, exts: extSet(opt.Extensions), root: abs}
	if opt.UseGitignore {
		// a missing .gitignore is not an error
		ws.patterns, _ = parseGitignore(filepath.Join(abs, ".gitignore"))
	}
	if err := filepath.WalkDir(abs, ws.visit); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(ws.files, func(i, j int) bool { return ws.files[i].RelPath < ws.files[j].RelPath })
	return ws.files, nil
}

func extSet(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = struct{}{}
	}
	return m
}

func (ws *walkState) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return nil
	}
	rel, ok := ws.relative(path)
	if !ok || rel == "." {
		return nil
	}
	if ws.shouldSkip(rel, d) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		return nil
	}
	return ws.handleFile(path, rel, d)
}

func (ws *walkState) relative(path string) (string, bool) {
	rel, err := filepath.Rel(ws.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return "", false
	}
	return rel, true
}

func (ws *walkState) shouldSkip(rel string, d fs.DirEntry) bool {
	base := filepath.Base(rel)
	for _, ex := range ws.opt.Exclude {
		if ex != "" && strings.HasPrefix(base, ex) {
			return true
		}
	}
	return ws.opt.UseGitignore && matchGitignore(ws.patterns, rel, d.IsDir())
}

func (ws *walkState) handleFile(path, rel string, d fs.DirEntry) error {
	if _, ok := ws.exts[strings.ToLower(filepath.Ext(path))]; !ok {
		return nil
	}
	info, err := d.Info()
	if isSymlink(d) {
		if !ws.opt.FollowSymlinks {
			return nil
		}
		// WalkDir does not descend into links; only linked files are read
		info, err = os.Stat(path)
	}
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	if ws.opt.MaxFileBytes > 0 && info.Size() > ws.opt.MaxFileBytes {
		return nil
	}
	fi, err := describe(path, rel, info.Size())
	if err != nil {
		return nil
	}
	ws.files = append(ws.files, fi)
	return nil
}

func describe(path, rel string, size int64) (FileInfo, error) {
	sum, err := sha256File(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		RelPath:   rel,
		AbsPath:   path,
		Size:      size,
		SHA256Hex: sum,
		Ext:       strings.ToLower(filepath.Ext(path)),
	}, nil
}

// isSymlink reports whether the DirEntry is a symlink (file or directory).
func isSymlink(d fs.DirEntry) bool {
	return d.Type()&fs.ModeSymlink != 0
}

// sha256File computes a hex-encoded sha256 for the file at path.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ---------------- .gitignore support ----------------

type gitPattern struct {
	neg     bool // pattern starts with '!'
	dirOnly bool // pattern ends with '/'
	rx      *regexp.Regexp
}

// parseGitignore reads a .gitignore file. Minimal support:
//   - '#' comments, blank lines ignored
//   - '!' negation
//   - leading '/' anchors to the root
//   - trailing '/' restricts to directories
//   - '**' matches across directories, '*' and '?' do not cross '/'
func parseGitignore(path string) ([]gitPattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var res []gitPattern
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var p gitPattern
		if rest, ok := strings.CutPrefix(line, "!"); ok {
			p.neg = true
			line = strings.TrimSpace(rest)
			if line == "" {
				continue
			}
		}
		line, p.dirOnly = strings.CutSuffix(line, "/")
		line, anchored := strings.CutPrefix(line, "/")
		p.rx = compileGitGlob(line, anchored)
		res = append(res, p)
	}
	return res, s.Err()
}

func compileGitGlob(glob string, anchored bool) *regexp.Regexp {
	esc := regexp.QuoteMeta(glob)
	esc = strings.ReplaceAll(esc, `\*\*`, "\x00")
	esc = strings.ReplaceAll(esc, `\*`, "[^/]*")
	esc = strings.ReplaceAll(esc, `\?`, "[^/]")
	esc = strings.ReplaceAll(esc, "\x00", ".*")
	if anchored {
		return regexp.MustCompile("^" + esc + "$")
	}
	return regexp.MustCompile("(^|.*/)" + esc + "$")
}

func matchGitignore(pats []gitPattern, rel string, isDir bool) bool {
	ignored := false
	for _, p := range pats {
		if p.dirOnly && !isDir {
			continue
		}
		if p.rx.MatchString(rel) {
			ignored = !p.neg
		}
	}
	return ignored
}
