// Package pom reads Maven POM files from the local repository and turns
// them into short dependency documentation for hovers.
//
// Goals:
//   - Local files only; fetching from Maven Central is left to callers
//   - Best-effort parsing: tolerate partial POMs
//   - Results cached per coordinate in an injected LRU
package pom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"jbang-lens/internal/gav"
	"jbang-lens/internal/logging"
)

// Project is the subset of a POM used for documentation.
type Project struct {
	GroupID     string
	ArtifactID  string
	Version     string
	Name        string
	Description string
	URL         string
}

type pomXML struct {
	XMLName     xml.Name  `xml:"project"`
	GroupID     string    `xml:"groupId"`
	ArtifactID  string    `xml:"artifactId"`
	Version     string    `xml:"version"`
	Name        string    `xml:"name"`
	Description string    `xml:"description"`
	URL         string    `xml:"url"`
	Parent      pomParent `xml:"parent"`
}

type pomParent struct {
	GroupID string `xml:"groupId"`
	Version string `xml:"version"`
}

// Decode parses POM bytes.
func Decode(b []byte) (Project, error) {
	var p pomXML
	if err := xml.Unmarshal(b, &p); err != nil {
		return Project{}, fmt.Errorf("decode pom: %w", err)
	}
	return Project{
		GroupID:     firstNonEmpty(p.GroupID, p.Parent.GroupID),
		ArtifactID:  strings.TrimSpace(p.ArtifactID),
		Version:     firstNonEmpty(p.Version, p.Parent.Version),
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		URL:         strings.TrimSpace(p.URL),
	}, nil
}

// Read loads and parses the POM at path.
func Read(path string) (Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	return Decode(b)
}

// Markdown renders "**name**" followed by the description, falling back to
// the artifactId when the POM has no name.
func (p Project) Markdown() string {
	name := p.Name
	if name == "" {
		name = p.ArtifactID
	}
	doc := "**" + name + "**"
	if p.Description != "" {
		doc += "\n\n" + p.Description
	}
	return doc
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Docs resolves dependency documentation from a local Maven repository.
type Docs struct {
	repo  string
	cache *lru.Cache[string, string]
}

// NewDocs returns a Docs reading from repo and memoising into cache. A nil
// cache disables memoisation.
func NewDocs(repo string, cache *lru.Cache[string, string]) *Docs {
	return &Docs{repo: repo, cache: cache}
}

// Lookup returns markdown documentation for d. It reports false when the
// POM is not in the local repository; other read errors are returned.
func (s *Docs) Lookup(d gav.Dependency) (string, bool, error) {
	key := d.String()
	if s.cache != nil {
		if doc, ok := s.cache.Get(key); ok {
			return doc, true, nil
		}
	}
	path, ok := d.LocalPOM(s.repo)
	if !ok {
		return "", false, nil
	}
	p, err := Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("pom not in local repository", "path", path)
			return "", false, nil
		}
		return "", false, err
	}
	doc := p.Markdown()
	if s.cache != nil {
		s.cache.Add(key, doc)
	}
	return doc, true, nil
}
