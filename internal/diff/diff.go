// Package diff renders script edits as unified diffs. It uses
// github.com/pmezard/go-difflib/difflib to produce classic patches
// (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation.
type Options struct {
	// Context is the number of context lines per hunk; 0 means 3.
	Context int
	// MaxBytes caps old+new input size; 0 means no limit.
	MaxBytes int
}

// Unified produces a unified patch for a↦b. An empty string means the
// inputs are identical. oversize is set when MaxBytes was exceeded and a
// placeholder was returned instead.
func Unified(aName, bName string, a, b []byte, opt Options) (patch string, oversize bool, err error) {
	if opt.MaxBytes > 0 && len(a)+len(b) > opt.MaxBytes {
		return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName), true, nil
	}
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", false, fmt.Errorf("diff %s: %w", bName, err)
	}
	return s, false, nil
}

// splitLinesKeepNL keeps the "\n" on each line, which difflib expects.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
