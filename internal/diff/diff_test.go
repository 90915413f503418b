package diff

import (
	"strings"
	"testing"
)

func TestUnifiedShowsInsertedDeps(t *testing.T) {
	a := []byte("//DEPS a:b:1\nclass A {}\n")
	b := []byte("//DEPS a:b:1\n//DEPS c:d:2\nclass A {}\n")
	patch, oversize, err := Unified("a/App.java", "b/App.java", a, b, Options{})
	if err != nil || oversize {
		t.Fatalf("err=%v oversize=%v", err, oversize)
	}
	for _, want := range []string{"--- a/App.java", "+++ b/App.java", "+//DEPS c:d:2\n", " //DEPS a:b:1\n"} {
		if !strings.Contains(patch, want) {
			t.Fatalf("patch missing %q:\n%s", want, patch)
		}
	}
}

func TestUnifiedIdentical(t *testing.T) {
	patch, _, err := Unified("a", "b", []byte("x\n"), []byte("x\n"), Options{})
	if err != nil || patch != "" {
		t.Fatalf("expected empty patch, got %q (%v)", patch, err)
	}
}

func TestUnifiedOversize(t *testing.T) {
	patch, oversize, err := Unified("a", "b", []byte("xxxx"), []byte("yyyy"), Options{MaxBytes: 4})
	if err != nil || !oversize || !strings.Contains(patch, "omitted") {
		t.Fatalf("patch=%q oversize=%v err=%v", patch, oversize, err)
	}
}
