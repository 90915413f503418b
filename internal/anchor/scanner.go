// Package anchor locates the lines of a script where run/debug affordances
// attach: the first JBang directive, the first type declaration and the
// first main method.
//
// Detection is line based, there is no Java parser:
//
//	///usr/bin/env jbang "$0" "$@" ; exit $?   <- FirstDirective
//	//DEPS info.picocli:picocli:4.7.5
//	public class Hello {                       <- Type
//	    public static void main(String[] args) <- Main
//
// Line and character offsets are 0-based.
package anchor

import (
	"regexp"
	"strings"

	"jbang-lens/internal/directive"
)

var (
	reType    = regexp.MustCompile(`^.*(class|interface|enum|record)\s+.*$`)
	reComment = regexp.MustCompile(`^\s*//`)
	// [public] [static] void main([String[] name])
	reMain = regexp.MustCompile(`\b(?:public\s+)?(?:static\s+)?void\s+main\s*\(\s*(?:String\s*\[\]\s+\w+)?\s*\)`)
)

// Range is a span within a document.
type Range struct {
	StartLine int `json:"startLine" toml:"startLine"`
	StartChar int `json:"startChar" toml:"startChar"`
	EndLine   int `json:"endLine" toml:"endLine"`
	EndChar   int `json:"endChar" toml:"endChar"`
}

func lineRange(i int, line string) *Range {
	return &Range{StartLine: i, EndLine: i, EndChar: len(line)}
}

// Anchors holds the positions found by Scan. A nil field was not found.
type Anchors struct {
	FirstDirective *Range `json:"firstDirective,omitempty" toml:"firstDirective,omitempty"`
	Type           *Range `json:"type,omitempty" toml:"type,omitempty"`
	Main           *Range `json:"main,omitempty" toml:"main,omitempty"`
}

// scanState is the accumulator threaded through the line fold.
type scanState struct {
	Anchors
	hasPackage bool
}

// done reports whether the scan can stop. Without a package declaration the
// first main wins; with one, keep going until a type has been seen too.
func (s *scanState) done() bool {
	return s.Main != nil && (!s.hasPackage || s.Type != nil)
}

func (s *scanState) step(i int, line string) {
	if line == "" {
		return
	}
	if strings.HasPrefix(line, "package ") {
		s.hasPackage = true
	}
	if s.FirstDirective == nil && directive.IsJBangDirective(line) {
		s.FirstDirective = lineRange(i, line)
		return
	}
	// directive lines also start with "//", so this check comes second
	if reComment.MatchString(line) {
		return
	}
	if s.Type == nil && reType.MatchString(line) {
		s.Type = lineRange(i, line)
	}
	if s.Main == nil {
		s.Main = MainPosition(i, line)
	}
}

// Scan walks lines once and records, first match wins, the directive, type
// and main anchors.
func Scan(lines []string) Anchors {
	var s scanState
	for i, line := range lines {
		s.step(i, line)
		if s.done() {
			break
		}
	}
	return s.Anchors
}

// MainPosition returns the range of a main method declared on line, from
// the start of the declaration to the end of the line, or nil.
func MainPosition(lineNo int, line string) *Range {
	loc := reMain.FindStringIndex(line)
	if loc == nil {
		return nil
	}
	return &Range{StartLine: lineNo, StartChar: loc[0], EndLine: lineNo, EndChar: len(line)}
}
