// Package gav handles Maven coordinates as written on //DEPS lines
// ("group:artifact[:version[:classifier]]") and the repository locations
// derived from them.
package gav

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// MavenCentral is the remote repository POM locations are derived from.
const MavenCentral = "https://repo1.maven.org/maven2"

// ErrInvalidCoordinates is returned when group or artifact is missing.
var ErrInvalidCoordinates = errors.New("gav: coordinates need at least group:artifact")

// Dependency is a parsed Maven coordinate.
type Dependency struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version,omitempty"`
	Classifier string `json:"classifier,omitempty"`
}

// Parse reads "g:a[:v[:c]]". Extra segments are ignored.
func Parse(s string) (Dependency, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Dependency{}, ErrInvalidCoordinates
	}
	d := Dependency{GroupID: parts[0], ArtifactID: parts[1]}
	if len(parts) > 2 {
		d.Version = parts[2]
	}
	if len(parts) > 3 {
		d.Classifier = parts[3]
	}
	return d, nil
}

// String renders the full four-part coordinate, empty parts included.
func (d Dependency) String() string {
	return d.GroupID + ":" + d.ArtifactID + ":" + d.Version + ":" + d.Classifier
}

// GAV renders "g:a:v", or "g:a" without a version.
func (d Dependency) GAV() string {
	if d.Version == "" {
		return d.GroupID + ":" + d.ArtifactID
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + d.Version
}

func (d Dependency) groupPath() string {
	return strings.ReplaceAll(d.GroupID, ".", "/")
}

func (d Dependency) pomName() string {
	return d.ArtifactID + "-" + d.Version + ".pom"
}

// LocalPOM returns the POM path inside the local repository rooted at
// repo (usually ~/.m2/repository). It reports false without a version.
func (d Dependency) LocalPOM(repo string) (string, bool) {
	if d.Version == "" {
		return "", false
	}
	return filepath.Join(repo, filepath.FromSlash(d.groupPath()), d.ArtifactID, d.Version, d.pomName()), true
}

// RemotePOM returns the POM URL on Maven Central.
func (d Dependency) RemotePOM() (string, bool) {
	if d.Version == "" {
		return "", false
	}
	return MavenCentral + "/" + path.Join(d.groupPath(), d.ArtifactID, d.Version, d.pomName()), true
}

// RemoteMetadata returns the maven-metadata.xml URL listing all versions.
func (d Dependency) RemoteMetadata() string {
	return MavenCentral + "/" + path.Join(d.groupPath(), d.ArtifactID, "maven-metadata.xml")
}

// DefaultLocalRepo returns ~/.m2/repository for the given home directory.
func DefaultLocalRepo(home string) string {
	return filepath.Join(home, ".m2", "repository")
}
