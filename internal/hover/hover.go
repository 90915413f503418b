// Package hover produces the hover text for a position on a directive line:
// the directive description over its prefix, and dependency documentation
// over a //DEPS coordinate.
package hover

import (
	"jbang-lens/internal/directive"
	"jbang-lens/internal/gav"
	"jbang-lens/internal/textutil"
)

// Resolver looks up documentation for a dependency. *pom.Docs implements it.
type Resolver interface {
	Lookup(d gav.Dependency) (string, bool, error)
}

// At returns the hover text for column col of line. ok is false when the
// position has nothing to show. A nil resolver shows coordinates verbatim.
func At(line string, col int, docs Resolver) (text string, ok bool, err error) {
	d, found := directive.Lookup(line)
	if !found {
		return "", false, nil
	}
	word, found := textutil.TextAt(line, col)
	if !found {
		return "", false, nil
	}
	if word == d.Prefix() {
		return d.Description, true, nil
	}
	if d.Name != directive.Deps.Name {
		return "", false, nil
	}
	dep, perr := gav.Parse(word)
	if perr != nil || docs == nil {
		return word, true, nil
	}
	doc, found, err := docs.Lookup(dep)
	if err != nil {
		return word, true, err
	}
	if !found || doc == "" {
		return word, true, nil
	}
	return doc, true, nil
}

// Document applies At to a whole document. Documents that are neither JBang
// scripts nor in the jbang language get no hovers.
func Document(lines []string, languageID string, line, col int, docs Resolver) (string, bool, error) {
	if line < 0 || line >= len(lines) {
		return "", false, nil
	}
	if languageID != "jbang" && !directive.IsJBangFile(lines) {
		return "", false, nil
	}
	return At(lines[line], col, docs)
}
