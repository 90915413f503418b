package anchor

import "testing"

func commands(ls []Lens) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Command)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAnalyzeJBangScript(t *testing.T) {
	lines := []string{
		"//DEPS com.x:y:1.0",
		"class App {",
		"  public static void main(String[] args) {}",
		"}",
	}
	res := Analyze(lines, "java")
	if !res.Applicable {
		t.Fatalf("expected applicable")
	}
	want := []string{CommandSynchronize, CommandRun, CommandDebug, CommandRun, CommandDebug}
	if got := commands(res.Lenses); !equal(got, want) {
		t.Fatalf("lenses = %v, want %v", got, want)
	}
	if res.Lenses[1].Range.StartLine != 1 || res.Lenses[3].Range.StartLine != 2 {
		t.Fatalf("unexpected ranges: %+v", res.Lenses)
	}
}

func TestAnalyzeNotJBang(t *testing.T) {
	res := Analyze([]string{"public class A {", "}"}, "java")
	if res.Applicable || len(res.Lenses) != 0 {
		t.Fatalf("plain java file should not be applicable: %+v", res)
	}
}

func TestAnalyzeJBangLanguageWithoutDirectives(t *testing.T) {
	res := Analyze([]string{"void main() {}"}, "jbang")
	if !res.Applicable {
		t.Fatalf("jbang documents are always scanned")
	}
	if got := commands(res.Lenses); !equal(got, []string{CommandRun, CommandDebug}) {
		t.Fatalf("lenses = %v", got)
	}
}

func TestLensesFallBackToDirective(t *testing.T) {
	a := Scan([]string{"//DEPS a:b:1", "System.out.println(1);"})
	got := commands(Lenses(a, "groovy"))
	if !equal(got, []string{CommandRun}) {
		t.Fatalf("lenses = %v", got)
	}
	got = commands(Lenses(a, "jbang"))
	if !equal(got, []string{CommandSynchronize}) {
		t.Fatalf("lenses = %v", got)
	}
}
