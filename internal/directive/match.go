package directive

import (
	"strings"

	"jbang-lens/internal/textutil"
)

// Matches reports whether line starts with d's prefix, followed by a space
// when includeSpace is set. Matching is anchored at column 0.
func Matches(d Directive, line string, includeSpace bool) bool {
	p := d.Prefix()
	if includeSpace {
		p += " "
	}
	return strings.HasPrefix(line, p)
}

// matchesCatalog applies d's own RequireSpace rule.
func matchesCatalog(d Directive, line string) bool {
	return Matches(d, line, d.RequireSpace)
}

// IsJBangDirective reports whether line is the JBang header or a catalog
// directive. A bare "//" comment never matches.
func IsJBangDirective(line string) bool {
	if strings.HasPrefix(line, HeaderPrefix) {
		return true
	}
	for _, d := range catalog {
		if matchesCatalog(d, line) {
			return true
		}
	}
	return false
}

// IsJBangFile reports whether any of lines is a JBang directive. It stops at
// the first match.
func IsJBangFile(lines []string) bool {
	for _, l := range lines {
		if IsJBangDirective(l) {
			return true
		}
	}
	return false
}

// IsJBangText splits text on \r?\n and calls IsJBangFile.
func IsJBangText(text string) bool {
	return IsJBangFile(textutil.SplitLines(text))
}

// Lookup returns the first catalog directive the line belongs to. The line
// must be exactly the prefix, or the prefix followed by a space; bare
// directives also match as plain prefixes. This keeps "//JAVA_OPTIONS" from
// being reported as "//JAVA".
func Lookup(line string) (Directive, bool) {
	for _, d := range catalog {
		p := d.Prefix()
		if line == p || Matches(d, line, true) || (!d.RequireSpace && strings.HasPrefix(line, p)) {
			return d, true
		}
	}
	return Directive{}, false
}
