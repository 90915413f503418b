package gav

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("info.picocli:picocli:4.7.5")
	require.NoError(t, err)
	assert.Equal(t, Dependency{GroupID: "info.picocli", ArtifactID: "picocli", Version: "4.7.5"}, d)
	assert.Equal(t, "info.picocli:picocli:4.7.5:", d.String())
	assert.Equal(t, "info.picocli:picocli:4.7.5", d.GAV())

	d, err = Parse("a:b:1:jdk8")
	require.NoError(t, err)
	assert.Equal(t, "jdk8", d.Classifier)

	_, err = Parse("just-a-group")
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	_, err = Parse(":artifact")
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestLocations(t *testing.T) {
	d := Dependency{GroupID: "com.google.inject", ArtifactID: "guice", Version: "7.0.0"}

	local, ok := d.LocalPOM(DefaultLocalRepo("/home/u"))
	require.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/home/u/.m2/repository/com/google/inject/guice/7.0.0/guice-7.0.0.pom"), local)

	remote, ok := d.RemotePOM()
	require.True(t, ok)
	assert.Equal(t, "https://repo1.maven.org/maven2/com/google/inject/guice/7.0.0/guice-7.0.0.pom", remote)

	assert.Equal(t, "https://repo1.maven.org/maven2/com/google/inject/guice/maven-metadata.xml", d.RemoteMetadata())

	_, ok = Dependency{GroupID: "a", ArtifactID: "b"}.RemotePOM()
	assert.False(t, ok)
}

func TestFromMavenXMLSingle(t *testing.T) {
	out, err := FromMavenXML(`<dependency>
  <groupId>org.junit</groupId>
  <artifactId>junit-bom</artifactId>
  <version>5.10.0</version>
  <type>pom</type>
</dependency>`)
	require.NoError(t, err)
	assert.Equal(t, "//DEPS org.junit:junit-bom:5.10.0@pom", out)
}

func TestFromMavenXMLList(t *testing.T) {
	out, err := FromMavenXML(`<dependencies>
  <dependency><groupId>a</groupId><artifactId>b</artifactId><version>1</version></dependency>
  <dependency><groupId>c</groupId><artifactId>d</artifactId></dependency>
  <dependency><artifactId>orphan</artifactId></dependency>
</dependencies>`)
	require.NoError(t, err)
	assert.Equal(t, "//DEPS a:b:1\n//DEPS c:d:LATEST", out)
}

func TestFromMavenXMLManaged(t *testing.T) {
	out, err := FromMavenXML(`<dependencyManagement><dependencies>
  <dependency><groupId>io.quarkus</groupId><artifactId>quarkus-bom</artifactId><version>3.2.0</version><type>pom</type></dependency>
</dependencies></dependencyManagement>`)
	require.NoError(t, err)
	assert.Equal(t, "//DEPS io.quarkus:quarkus-bom:3.2.0@pom", out)
}

func TestFromMavenXMLRejects(t *testing.T) {
	_, err := FromMavenXML("com.x:y:1")
	assert.ErrorIs(t, err, ErrNoDependencies)
	_, err = FromMavenXML("<dependency><artifactId>x</artifactId></dependency>")
	assert.ErrorIs(t, err, ErrNoDependencies)
	_, err = FromMavenXML("<dependency><groupId>x</groupId>")
	assert.Error(t, err)
}

func TestPasteEdit(t *testing.T) {
	snippet := "<dependency><groupId>a</groupId><artifactId>b</artifactId><version>1</version></dependency>"

	out, ok := PasteEdit("", snippet)
	require.True(t, ok)
	assert.Equal(t, "//DEPS a:b:1", out)

	out, ok = PasteEdit("//DE", snippet)
	require.True(t, ok)
	assert.Equal(t, "PS a:b:1", out)

	_, ok = PasteEdit("class Foo {", snippet)
	assert.False(t, ok)
	_, ok = PasteEdit("", "plain text")
	assert.False(t, ok)
}

func TestInsertDeps(t *testing.T) {
	script := "///usr/bin/env jbang \"$0\" \"$@\" ; exit $?\n//DEPS a:b:1\n\nclass A {}\n"
	got := InsertDeps(script, "c:d:2")
	assert.Equal(t, "///usr/bin/env jbang \"$0\" \"$@\" ; exit $?\n//DEPS a:b:1\n//DEPS c:d:2\n\nclass A {}\n", got)

	// without //DEPS the entry goes after the first line
	got = InsertDeps("//JAVA 21\nclass A {}", "c:d:2")
	assert.Equal(t, "//JAVA 21\n//DEPS c:d:2\nclass A {}", got)

	got = InsertDeps("//DEPS a:b:1", "c:d:2")
	assert.Equal(t, "//DEPS a:b:1\n//DEPS c:d:2\n", got)
}

func TestNextDepsLineLooksAtFirstHundredLines(t *testing.T) {
	lines := make([]string, 150)
	lines[3] = "//DEPS a:b:1"
	lines[120] = "//DEPS late:entry:1"
	assert.Equal(t, 4, NextDepsLine(lines))
}

func TestSortDocs(t *testing.T) {
	docs := []Doc{{Version: "1.0.0"}, {Version: "1.10.0"}, {Version: "1.2.0-RC1"}, {Version: "1.2.0"}}
	var got []string
	for _, d := range SortDocs(docs) {
		got = append(got, d.Version)
	}
	assert.Equal(t, []string{"1.10.0", "1.2.0", "1.2.0-RC1", "1.0.0"}, got)
}

func TestCandidates(t *testing.T) {
	docs := []Doc{
		{ID: "org.b:lib:1.0", Group: "org.b", Artifact: "lib", Version: "1.0"},
		{ID: "org.a:lib:2.0", Group: "org.a", Artifact: "lib", Version: "2.0"},
		{ID: "org.a:lib:10.0", Group: "org.a", Artifact: "lib", Version: "10.0"},
		{ID: "org.a:core:1.0", Group: "org.a", Artifact: "core", Version: "1.0"},
	}
	assert.Equal(t, []string{"org.a:core:1.0", "org.a:lib:10.0", "org.b:lib:1.0"}, Candidates(docs))
}

func TestSortByNamespace(t *testing.T) {
	cands := []string{"org.other:x:1", "com.fasterxml.jackson.core:jackson-databind:2.15.0", "com.fasterxml:classmate:1.5"}
	got := SortByNamespace(cands, "com.fasterxml.jackson.databind.ObjectMapper")
	assert.Equal(t, "com.fasterxml.jackson.core:jackson-databind:2.15.0", got[0])
	assert.Equal(t, "org.other:x:1", got[len(got)-1])
}

func TestSearchTerm(t *testing.T) {
	f, term := SearchTerm("com.acme.util.*")
	assert.Equal(t, "fc", f)
	assert.Equal(t, "com.acme.util", term)
	f, term = SearchTerm("ObjectMapper")
	assert.Equal(t, "c", f)
	assert.Equal(t, "ObjectMapper", term)
}
