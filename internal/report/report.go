// Package report renders workspace results for the terminal or for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"jbang-lens/internal/anchor"
	"jbang-lens/internal/workspace"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
)

var (
	pathColor  = color.New(color.FgCyan, color.Bold)
	labelColor = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	dimColor   = color.New(color.Faint)
)

// Summary counts what a scan saw.
type Summary struct {
	Files   int `json:"files" toml:"files"`
	Scripts int `json:"scripts" toml:"scripts"`
	Errors  int `json:"errors" toml:"errors"`
}

// Report is the document written for the json and toml formats.
type Report struct {
	Summary Summary                `json:"summary" toml:"summary"`
	Files   []workspace.FileResult `json:"files" toml:"files"`
}

// Build summarises results. Unless all is set, files that are not JBang
// scripts and read without error are left out of Files.
func Build(results []workspace.FileResult, all bool) Report {
	rep := Report{Summary: Summary{Files: len(results)}, Files: []workspace.FileResult{}}
	for _, r := range results {
		switch {
		case r.Err != "":
			rep.Summary.Errors++
		case r.Applicable:
			rep.Summary.Scripts++
		case !all:
			continue
		}
		rep.Files = append(rep.Files, r)
	}
	return rep
}

// Write renders rep to w in the named format.
func Write(w io.Writer, format string, rep Report) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(rep)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// position prints a range start as 1-based line:column.
func position(r *anchor.Range) string {
	return fmt.Sprintf("%d:%d", r.StartLine+1, r.StartChar+1)
}

func writeText(w io.Writer, rep Report) error {
	var b strings.Builder
	for _, f := range rep.Files {
		pathColor.Fprint(&b, f.Path)
		dimColor.Fprintf(&b, " (%s)\n", f.Language)
		if f.Err != "" {
			errColor.Fprintf(&b, "  error: %s\n", f.Err)
			continue
		}
		if !f.Applicable {
			dimColor.Fprintln(&b, "  not a JBang script")
			continue
		}
		p, ok := anchor.Primary(f.Anchors)
		if !ok {
			dimColor.Fprintln(&b, "  no anchors")
			continue
		}
		labelColor.Fprintf(&b, "  %-10s", "primary")
		fmt.Fprintln(&b, position(&p))
		for _, a := range []struct {
			label string
			r     *anchor.Range
		}{
			{"directive", f.Anchors.FirstDirective},
			{"type", f.Anchors.Type},
			{"main", f.Anchors.Main},
		} {
			if a.r == nil {
				continue
			}
			labelColor.Fprintf(&b, "  %-10s", a.label)
			fmt.Fprintln(&b, position(a.r))
		}
		for _, l := range f.Lenses {
			labelColor.Fprintf(&b, "  %-10s", "lens")
			fmt.Fprintf(&b, "%s @ %s\n", l.Title, position(&l.Range))
		}
	}
	fmt.Fprintf(&b, "%d files, %d JBang scripts, %d errors\n", rep.Summary.Files, rep.Summary.Scripts, rep.Summary.Errors)
	_, err := io.WriteString(w, b.String())
	return err
}
