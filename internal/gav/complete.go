package gav

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"jbang-lens/internal/textutil"
)

// SearchAPI is the Maven Central search endpoint.
const SearchAPI = "https://search.maven.org/solrsearch/select"

const searchRows = 100

// QueryKind tells which part of a coordinate is being completed.
type QueryKind int

const (
	QueryName     QueryKind = iota // a group prefix or a free text name
	QueryArtifact                  // group:artifact prefix
	QueryVersion                   // group:artifact:version prefix
)

// Query is the coordinate under the cursor of a //DEPS line, with the
// columns a completion replaces.
type Query struct {
	Text  string
	Parts []string
	Kind  QueryKind
	Start int
	End   int
}

// QueryAt reads the coordinate typed up to col on a //DEPS line.
func QueryAt(line string, col int) (Query, bool) {
	if !strings.HasPrefix(line, DepsPrefix+" ") || col <= len(DepsPrefix) || col > len(line) {
		return Query{}, false
	}
	// scan from the character left of the cursor
	start := textutil.FindStart(line, col-1, DepsPrefix)
	q := Query{Text: strings.TrimSpace(line[start:col]), Start: start, End: textutil.FindEnd(line, col)}
	q.Parts = strings.Split(q.Text, ":")
	switch len(q.Parts) {
	case 1:
		q.Kind = QueryName
	case 2:
		q.Kind = QueryArtifact
	case 3, 4:
		q.Kind = QueryVersion
		q.Start = textutil.FindVersionStart(line, col-1)
	default:
		return Query{}, false
	}
	return q, true
}

// URL builds the search request for q.
func (q Query) URL() string {
	var expr string
	core := ""
	switch q.Kind {
	case QueryName:
		n := q.Parts[0]
		expr = n + "* OR a:" + n + "* OR g:" + n + "*"
	case QueryArtifact:
		expr = "g:" + q.Parts[0] + "* AND a:" + q.Parts[1] + "*"
	case QueryVersion:
		expr = "g:" + q.Parts[0] + " AND a:" + q.Parts[1]
		if q.Parts[2] != "" {
			expr += " AND v:" + q.Parts[2] + "*"
		}
		core = "gav"
	}
	return searchURL(expr, searchRows, core)
}

// ClassSearchURL builds the request looking up the artifacts that contain
// missingType.
func ClassSearchURL(missingType string) string {
	field, term := SearchTerm(missingType)
	return searchURL(field+":"+term, 200, "")
}

func searchURL(q string, rows int, core string) string {
	v := url.Values{}
	v.Set("q", q)
	v.Set("rows", fmt.Sprint(rows))
	v.Set("wt", "json")
	if core != "" {
		v.Set("core", core)
	}
	return SearchAPI + "?" + v.Encode()
}

// SearchResponse is the body returned by SearchAPI.
type SearchResponse struct {
	Response struct {
		NumFound int   `json:"numFound"`
		Docs     []Doc `json:"docs"`
	} `json:"response"`
}

// DecodeSearch reads a SearchAPI response body.
func DecodeSearch(r io.Reader) (SearchResponse, error) {
	var s SearchResponse
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return SearchResponse{}, fmt.Errorf("decode search response: %w", err)
	}
	return s, nil
}

// Item is one dependency completion.
type Item struct {
	Label    string `json:"label"`
	SortText string `json:"sortText"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Completion is the list offered for a Query.
type Completion struct {
	Items      []Item `json:"items"`
	Incomplete bool   `json:"isIncomplete"`
}

// Complete turns a search response into completions for q. Version
// queries list versions newest first; other queries list coordinates.
func (q Query) Complete(s SearchResponse) Completion {
	docs := s.Response.Docs
	if q.Kind == QueryVersion {
		docs = SortDocs(docs)
	}
	c := Completion{Items: make([]Item, 0, len(docs))}
	for i, d := range docs {
		it := Item{Label: d.Coordinate(), SortText: fmt.Sprint(i), Start: q.Start, End: q.End}
		if q.Kind == QueryVersion {
			it.Label = d.Version
			it.SortText = fmt.Sprintf("%010d", i)
		}
		c.Items = append(c.Items, it)
	}
	c.Incomplete = s.Response.NumFound > len(c.Items)
	return c
}
