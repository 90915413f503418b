package gav

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jbang-lens/internal/version"
)

// Doc is one artifact returned by a Maven Central search ("core=gav").
type Doc struct {
	ID            string `json:"id"`
	Group         string `json:"g"`
	Artifact      string `json:"a"`
	Version       string `json:"v,omitempty"`
	LatestVersion string `json:"latestVersion,omitempty"`
	Timestamp     int64  `json:"timestamp,omitempty"`
}

// Coordinate renders g:a:v, using LatestVersion when the search returned
// artifacts rather than versions.
func (d Doc) Coordinate() string {
	v := d.Version
	if v == "" {
		v = d.LatestVersion
	}
	return d.Group + ":" + d.Artifact + ":" + v
}

// SortDocs orders version search results newest first. The search API
// cannot sort by version itself.
func SortDocs(docs []Doc) []Doc {
	out := slices.Clone(docs)
	slices.SortStableFunc(out, func(a, b Doc) int {
		return version.Compare(b.Version, a.Version)
	})
	return out
}

// Candidates orders class search results by group, artifact and version
// (newest first) and keeps the newest id of each group:artifact.
func Candidates(docs []Doc) []string {
	c := collate.New(language.Und)
	sorted := slices.Clone(docs)
	slices.SortStableFunc(sorted, func(a, b Doc) int {
		if n := c.CompareString(a.Group, b.Group); n != 0 {
			return n
		}
		if n := c.CompareString(a.Artifact, b.Artifact); n != 0 {
			return n
		}
		return version.Compare(b.Version, a.Version)
	})
	var out []string
	last := ""
	for _, d := range sorted {
		ga := d.Group + ":" + d.Artifact
		if ga == last {
			continue
		}
		last = ga
		id := d.ID
		if id == "" {
			id = d.Coordinate()
		}
		out = append(out, id)
	}
	return out
}

// commonParts counts the group segments equal, position by position, to
// the segments of reference.
func commonParts(reference []string, coordinate string) int {
	group, _, _ := strings.Cut(coordinate, ":")
	n := 0
	for i, part := range strings.Split(group, ".") {
		if i < len(reference) && part == reference[i] {
			n++
		}
	}
	return n
}

// SortByNamespace ranks candidate coordinates for a missing type: groups
// sharing more package segments with the type's package come first, ties
// are broken alphabetically.
func SortByNamespace(candidates []string, missingType string) []string {
	ref := strings.Split(missingType, ".")
	c := collate.New(language.Und)
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, func(a, b string) int {
		ca, cb := commonParts(ref, a), commonParts(ref, b)
		if ca != cb {
			return cb - ca
		}
		return c.CompareString(a, b)
	})
	return out
}

// SearchTerm reduces an unresolved import to the class search query: a
// star import searches its package, a dotted name is a fully qualified
// class ("fc"), anything else a simple class name ("c").
func SearchTerm(missingType string) (field, term string) {
	term = strings.TrimSuffix(missingType, ".*")
	if strings.Contains(term, ".") {
		return "fc", term
	}
	return "c", term
}
