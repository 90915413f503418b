package anchor

import "jbang-lens/internal/directive"

// Editor commands a lens can trigger.
const (
	CommandSynchronize = "jbang.synchronize"
	CommandRun         = "jbang.script.run"
	CommandDebug       = "jbang.script.debug"
)

// Lens is an actionable marker attached to a range.
type Lens struct {
	Range   Range  `json:"range" toml:"range"`
	Command string `json:"command" toml:"command"`
	Title   string `json:"title" toml:"title"`
	Tooltip string `json:"tooltip,omitempty" toml:"tooltip,omitempty"`
}

func synchronize(r Range) Lens {
	return Lens{Range: r, Command: CommandSynchronize, Title: "Synchronize JBang",
		Tooltip: "Synchronize the classpath with the JBang directives in this file"}
}

func run(r Range) Lens {
	return Lens{Range: r, Command: CommandRun, Title: "Run JBang",
		Tooltip: "Run this script with JBang in a new terminal"}
}

func debug(r Range) Lens {
	return Lens{Range: r, Command: CommandDebug, Title: "Debug JBang",
		Tooltip: "Debug this script with JBang in a new terminal"}
}

// Lenses places the lenses for a scanned document. Classpath
// synchronisation is only offered for java and jbang documents. Run and
// debug go on the type and on the main method; when neither exists the
// directive line gets a run lens.
func Lenses(a Anchors, languageID string) []Lens {
	var out []Lens
	if a.FirstDirective != nil && (languageID == "java" || languageID == "jbang") {
		out = append(out, synchronize(*a.FirstDirective))
	}
	if a.Type != nil {
		out = append(out, run(*a.Type), debug(*a.Type))
	}
	if a.Main != nil {
		out = append(out, run(*a.Main), debug(*a.Main))
	}
	if len(out) == 0 && a.FirstDirective != nil {
		out = append(out, run(*a.FirstDirective))
	}
	return out
}

// Primary returns the range run/debug attach to first: the type, else the
// main method, else the directive line.
func Primary(a Anchors) (Range, bool) {
	switch {
	case a.Type != nil:
		return *a.Type, true
	case a.Main != nil:
		return *a.Main, true
	case a.FirstDirective != nil:
		return *a.FirstDirective, true
	}
	return Range{}, false
}

// Result is the outcome of Analyze.
type Result struct {
	Applicable bool    `json:"applicable" toml:"applicable"`
	Anchors    Anchors `json:"anchors" toml:"anchors"`
	Lenses     []Lens  `json:"lenses,omitempty" toml:"lenses,omitempty"`
}

// Analyze classifies lines and, for JBang scripts (or documents already in
// the jbang language), scans anchors and places lenses. Other documents are
// reported as not applicable.
func Analyze(lines []string, languageID string) Result {
	if languageID != "jbang" && !directive.IsJBangFile(lines) {
		return Result{}
	}
	a := Scan(lines)
	return Result{
		Applicable: true,
		Anchors:    a,
		Lenses:     Lenses(a, languageID),
	}
}
