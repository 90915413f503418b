package gav

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"jbang-lens/internal/textutil"
)

// DepsPrefix starts a dependency line.
const DepsPrefix = "//DEPS"

// ErrNoDependencies is returned when a snippet holds no usable dependency.
var ErrNoDependencies = errors.New("gav: no maven dependencies in snippet")

// Snippets are recognised by their first tag.
var xmlDependencyTags = []string{"<dependency>", "<dependencies>", "<dependencyManagement>"}

type mavenDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
}

// snippetXML mirrors the three shapes a pasted POM fragment can take.
type snippetXML struct {
	Dependency   []mavenDependency `xml:"dependency"`
	Dependencies []mavenDependency `xml:"dependencies>dependency"`
	Managed      []mavenDependency `xml:"dependencyManagement>dependencies>dependency"`
}

// IsMavenSnippet reports whether text looks like a POM dependency fragment.
func IsMavenSnippet(text string) bool {
	text = strings.TrimSpace(text)
	for _, tag := range xmlDependencyTags {
		if strings.HasPrefix(text, tag) {
			return true
		}
	}
	return false
}

func parseSnippet(text string) ([]mavenDependency, error) {
	var s snippetXML
	// a fragment may hold several sibling roots
	if err := xml.Unmarshal([]byte("<snippet>"+text+"</snippet>"), &s); err != nil {
		return nil, fmt.Errorf("parse maven snippet: %w", err)
	}
	switch {
	case len(s.Dependency) > 0:
		return s.Dependency, nil
	case len(s.Dependencies) > 0:
		return s.Dependencies, nil
	default:
		return s.Managed, nil
	}
}

func (m mavenDependency) depsLine() (string, bool) {
	g, a := strings.TrimSpace(m.GroupID), strings.TrimSpace(m.ArtifactID)
	if g == "" || a == "" {
		return "", false
	}
	v := strings.TrimSpace(m.Version)
	if v == "" {
		v = "LATEST"
	}
	suffix := ""
	if strings.TrimSpace(m.Type) == "pom" {
		suffix = "@pom"
	}
	return DepsPrefix + " " + g + ":" + a + ":" + v + suffix, true
}

// FromMavenXML converts a pasted <dependency>, <dependencies> or
// <dependencyManagement> fragment into //DEPS lines joined by "\n".
// Entries without group or artifact are dropped; a missing version becomes
// LATEST and type "pom" adds the "@pom" suffix.
func FromMavenXML(text string) (string, error) {
	text = strings.TrimSpace(text)
	if !IsMavenSnippet(text) {
		return "", ErrNoDependencies
	}
	deps, err := parseSnippet(text)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		if l, ok := d.depsLine(); ok {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "", ErrNoDependencies
	}
	return strings.Join(lines, "\n"), nil
}

// PasteEdit returns the text to insert when snippet is pasted on a line
// currently holding targetLine. Pasting converts only on an empty line or
// one holding a prefix of "//DEPS"; the part of the conversion already
// typed is not repeated.
func PasteEdit(targetLine, snippet string) (string, bool) {
	target := strings.TrimRight(targetLine, " \t")
	if target != "" && !strings.HasPrefix(DepsPrefix, target) {
		return "", false
	}
	out, err := FromMavenXML(snippet)
	if err != nil {
		return "", false
	}
	return strings.TrimPrefix(out, target), true
}

// NextDepsLine returns the line a new //DEPS entry goes to: after the last
// //DEPS line among the first 100 lines, or line 1 when there is none.
func NextDepsLine(lines []string) int {
	last := 0
	for i := 0; i < min(len(lines), 100); i++ {
		if strings.HasPrefix(lines[i], DepsPrefix+" ") {
			last = i
		}
	}
	return last + 1
}

// InsertDeps adds "//DEPS coordinate" to a script at NextDepsLine.
func InsertDeps(text, coordinate string) string {
	entry := DepsPrefix + " " + coordinate + "\n"
	at := NextDepsLine(textutil.SplitLines(text))
	off := 0
	for n := 0; n < at; n++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			// past the last line
			return string(textutil.EnsureTrailingLF([]byte(text))) + entry
		}
		off += i + 1
	}
	return text[:off] + entry + text[off:]
}
