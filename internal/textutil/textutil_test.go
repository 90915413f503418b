package textutil

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\nc")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %q", got)
	}
	if got := SplitLines(""); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty text: got %q", got)
	}
}

func TestNormalizeUTF8LF(t *testing.T) {
	got := string(NormalizeUTF8LF([]byte("a\r\nb\rc\xff")))
	if got != "a\nb\rc\uFFFD" {
		t.Fatalf("got %q", got)
	}
}

func TestLinesKeepsLoneCR(t *testing.T) {
	src := []byte("class A {}\r//DEPS a:b:1\r\n//JAVA 21")
	got := Lines(src)
	want := []string{"class A {}\r//DEPS a:b:1", "//JAVA 21"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !reflect.DeepEqual(got, SplitLines(string(src))) {
		t.Fatalf("Lines and SplitLines disagree: %q", got)
	}
}

func TestFindStartAndEnd(t *testing.T) {
	line := "//DEPS a:b:1, com.foo:bar"
	col := len(line)
	if got := FindStart(line, col, "//DEPS "); got != 14 {
		t.Fatalf("FindStart got %d", got)
	}
	if got := FindEnd(line, 8); got != 12 {
		t.Fatalf("FindEnd got %d", got)
	}
	if got := FindEnd(line, 20); got != len(line) {
		t.Fatalf("FindEnd at tail got %d", got)
	}
	// no delimiter: fall back to the prefix length
	if got := FindStart("//DEPSx", 6, "//DEPS "); got != 7 {
		t.Fatalf("FindStart fallback got %d", got)
	}
}

func TestFindVersionStart(t *testing.T) {
	line := "//DEPS com.foo:bar:1.2"
	if got := FindVersionStart(line, len(line)); got != 19 {
		t.Fatalf("FindVersionStart got %d", got)
	}
	if got := FindVersionStart("abc", 2); got != 2 {
		t.Fatalf("FindVersionStart without ':' got %d", got)
	}
}

func TestTextAt(t *testing.T) {
	line := "//DEPS com.foo:bar:1.0 org.x:y:2"
	if got, ok := TextAt(line, 2); !ok || got != "//DEPS" {
		t.Fatalf("TextAt(2) = %q, %v", got, ok)
	}
	if got, ok := TextAt(line, 10); !ok || got != "com.foo:bar:1.0" {
		t.Fatalf("TextAt(10) = %q, %v", got, ok)
	}
	if _, ok := TextAt(line, 6); ok {
		t.Fatalf("TextAt on a delimiter should fail")
	}
	if _, ok := TextAt(line, 99); ok {
		t.Fatalf("TextAt out of range should fail")
	}
}

func TestEnsureTrailingLF(t *testing.T) {
	if got := string(EnsureTrailingLF([]byte("x"))); got != "x\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(EnsureTrailingLF([]byte("x\n"))); got != "x\n" {
		t.Fatalf("got %q", got)
	}
}
