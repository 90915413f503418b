package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"

	"jbang-lens/internal/anchor"
	"jbang-lens/internal/cache"
	"jbang-lens/internal/directive"
	"jbang-lens/internal/logging"
	"jbang-lens/internal/report"
	"jbang-lens/internal/textutil"
	"jbang-lens/internal/walkwalk"
	"jbang-lens/internal/workspace"
)

func newScanCmd(a *app) *cobra.Command {
	var all, fresh bool
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Find JBang scripts and the lines their run/debug lenses attach to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return a.scan(cmd.Context(), cmd.OutOrStdout(), args, all, fresh)
		},
	}
	f := cmd.Flags()
	f.String("format", "", "output format: text, json or toml (default text)")
	f.Int("jobs", 0, "files analysed concurrently (default GOMAXPROCS)")
	f.Int("cache-size", 0, "in-memory result cache entries, 0 disables it (default 1024)")
	f.String("cache-dir", "", "persist results below this directory between runs")
	f.Int64("max-file-bytes", 0, "skip files larger than this (default 2000000)")
	f.StringSlice("exclude", nil, "dir/file name prefixes to skip")
	f.StringSlice("ext", nil, "file extensions to scan (default .java,.jsh,.kt,.groovy,.jbang)")
	f.Bool("use-gitignore", true, "honour .gitignore patterns")
	f.BoolVar(&all, "all", false, "also list files that are not JBang scripts")
	f.BoolVar(&fresh, "new", false, "discard the persisted cache before scanning")
	return cmd
}

func (a *app) scan(ctx context.Context, w io.Writer, paths []string, all, fresh bool) error {
	var c *lru.Cache[string, anchor.Result]
	if a.cfg.CacheSize > 0 {
		var err error
		if c, err = lru.New[string, anchor.Result](a.cfg.CacheSize); err != nil {
			return fmt.Errorf("create cache: %w", err)
		}
	}
	an := workspace.New(a.cfg.Jobs, c)

	var results []workspace.FileResult
	for _, p := range paths {
		files, err := walkwalk.Collect(p, a.cfg.WalkOptions())
		if err != nil {
			return fmt.Errorf("collect %s: %w", p, err)
		}
		files = displayPaths(p, files)

		dir := a.snapshotDir(p, c != nil)
		if dir != "" {
			a.warm(an, dir, fresh)
		}
		res, err := an.AnalyzeFiles(ctx, files)
		if err != nil {
			return err
		}
		logging.Debug("scanned", "root", p, "files", len(files))
		if dir != "" {
			abs, _ := filepath.Abs(p)
			if err := cache.Save(dir, an.Snapshot(abs)); err != nil {
				logging.Warn("cache not saved", "dir", dir, "error", err)
			}
		}
		results = append(results, res...)
	}
	return report.Write(w, a.cfg.Format, report.Build(results, all))
}

// snapshotDir is the persisted cache location for root, or "" when
// persistence is off.
func (a *app) snapshotDir(root string, enabled bool) string {
	if !enabled || a.cfg.CacheDir == "" {
		return ""
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	return cache.Dir(a.cfg.CacheDir, abs)
}

func (a *app) warm(an *workspace.Analyzer, dir string, fresh bool) {
	if fresh {
		if err := cache.Clear(dir); err != nil {
			logging.Warn("cache not cleared", "dir", dir, "error", err)
		}
		return
	}
	snap, err := cache.Load(dir)
	if err != nil {
		logging.Warn("cache ignored", "dir", dir, "error", err)
		return
	}
	if snap != nil {
		logging.Debug("cache loaded", "dir", dir, "entries", len(snap.Entries))
	}
	an.Load(snap)
}

// displayPaths reports files relative to the working directory the way
// they were named on the command line.
func displayPaths(root string, files []walkwalk.FileInfo) []walkwalk.FileInfo {
	st, err := os.Stat(root)
	if err != nil {
		return files
	}
	base := filepath.ToSlash(filepath.Clean(root))
	for i := range files {
		switch {
		case !st.IsDir():
			files[i].RelPath = base
		case base != ".":
			files[i].RelPath = path.Join(base, files[i].RelPath)
		}
	}
	return files
}

func newCheckCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Exit with status 0 when the file is a JBang script, 1 otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ok := directive.IsJBangFile(textutil.Lines(b))
			if !quiet {
				verdict := "JBang script"
				if !ok {
					verdict = "not a JBang script"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], verdict)
			}
			if !ok {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")
	return cmd
}
