package cache

import (
	"os"
	"path/filepath"
	"testing"

	"jbang-lens/internal/anchor"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := Dir(t.TempDir(), "/work/scripts")
	s := NewSnapshot("/work/scripts")
	s.Entries[Key("abc123", "java")] = anchor.Result{
		Applicable: true,
		Anchors:    anchor.Anchors{FirstDirective: &anchor.Range{EndChar: 12}},
	}
	if err := Save(dir, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(dir)
	if err != nil || got == nil {
		t.Fatalf("load: %v %v", got, err)
	}
	r, ok := got.Entries["abc123:java"]
	if !ok || !r.Applicable || r.Anchors.FirstDirective == nil || r.Anchors.FirstDirective.EndChar != 12 {
		t.Fatalf("entry not restored: %+v", got.Entries)
	}
	// no temp files left behind
	ents, _ := os.ReadDir(dir)
	if len(ents) != 1 {
		t.Fatalf("expected only index.json, got %d entries", len(ents))
	}
}

func TestLoadMissingAndStale(t *testing.T) {
	dir := t.TempDir()
	if s, err := Load(dir); s != nil || err != nil {
		t.Fatalf("missing: %v %v", s, err)
	}
	stale := `{"formatVersion":"0","entries":{}}`
	if err := os.WriteFile(filepath.Join(dir, indexFileName), []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}
	if s, err := Load(dir); s != nil || err != nil {
		t.Fatalf("stale: %v %v", s, err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, indexFileName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPathKeyStable(t *testing.T) {
	if PathKey("/a") != PathKey("/a") || len(PathKey("/a")) != 12 {
		t.Fatal("PathKey must be a stable 12 char key")
	}
	if PathKey("/a") == PathKey("/b") {
		t.Fatal("distinct paths collided")
	}
}

func TestSaveLeavesOnlyIndex(t *testing.T) {
	dir := t.TempDir()
	for range 2 {
		if err := Save(dir, NewSnapshot("/src")); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "index.json" {
		t.Fatalf("unexpected files after save: %v", entries)
	}
}

func TestClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")
	if err := Clear(dir); err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, NewSnapshot("")); err != nil {
		t.Fatal(err)
	}
	if err := Clear(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("dir still present: %v", err)
	}
}
