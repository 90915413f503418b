package directive

import "strings"

// checked lists the directives whose presence changes the completion list.
var checked = []Directive{
	Java,
	JavacOptions,
	CompileOptions,
	Description,
	CDS,
	GAV,
	JavaAgent,
	Manifest,
	JavaOptions,
	RuntimeOptions,
	NativeOptions,
	Kotlin,
	Groovy,
	Main,
	Module,
	Preview,
	quarkusDep,
}

// Present is the set of checked directives found in a document, keyed by
// directive name.
type Present map[string]bool

// Has reports whether d was found.
func (p Present) Has(d Directive) bool { return p[d.Name] }

// HasQuarkus reports whether a Quarkus dependency was declared.
func (p Present) HasQuarkus() bool { return p[quarkusDep.Name] }

// Scan records, for each checked directive, whether a line declares it. A
// line is attributed to at most one directive, and a line holding only the
// prefix counts. The scan stops once every checked directive has been seen.
func Scan(lines []string) Present {
	found := make(Present)
	remaining := len(checked)
	for _, line := range lines {
		if remaining == 0 {
			break
		}
		for _, d := range checked {
			if found[d.Name] {
				continue
			}
			// "//DEPS io.quarkus:quarkus-..." is a prefix match
			includeSpace := d.Name != quarkusDep.Name
			if line == d.Prefix() || Matches(d, line, includeSpace) {
				found[d.Name] = true
				remaining--
				break
			}
		}
	}
	return found
}

// Suggestion is one directive completion item.
type Suggestion struct {
	Label      string `json:"label"`
	InsertText string `json:"insertText"`
	Detail     string `json:"detail,omitempty"`
	Retrigger  bool   `json:"retrigger,omitempty"`
}

func suggestion(d Directive) Suggestion {
	return Suggestion{
		Label:      d.Prefix(),
		InsertText: d.Prefix() + " ",
		Detail:     d.Description,
		Retrigger:  d.RetriggerCompletion,
	}
}

// Applies reports whether directive completion is offered for the text
// before the cursor.
func Applies(lineText string, column int) bool {
	return strings.HasPrefix(lineText, "//") || column == 0
}

// Suggest builds the directive completion list for a document in the given
// language, with the cursor on line. Directives that may appear only once
// are omitted when already present.
func Suggest(lines []string, languageID string, line int) []Suggestion {
	var out []Suggestion
	if line == 0 {
		out = append(out, Suggestion{Label: Header.Name, InsertText: Header.Name, Detail: Header.Description})
	}
	p := Scan(lines)
	add := func(d Directive, ok bool) {
		if ok {
			out = append(out, suggestion(d))
		}
	}
	add(Java, !p.Has(Java))
	add(Deps, true)
	add(Groovy, languageID == "groovy" && !p.Has(Groovy))
	add(Kotlin, languageID == "kotlin" && !p.Has(Kotlin))
	add(GAV, !p.Has(GAV))
	add(Module, !p.Has(Module))
	add(Main, !p.Has(Main))
	add(Sources, true)
	add(Files, true)
	add(Repos, true)
	add(Description, true)
	add(Manifest, !p.Has(Manifest))
	compile := p.Has(JavacOptions) || p.Has(CompileOptions)
	runtime := p.Has(JavaOptions) || p.Has(RuntimeOptions)
	add(JavacOptions, !compile)
	add(JavaOptions, !runtime)
	add(CompileOptions, !compile)
	add(RuntimeOptions, !runtime)
	add(JavaAgent, !p.Has(JavaAgent))
	add(CDS, !p.Has(CDS))
	add(NativeOptions, !p.Has(NativeOptions))
	add(Preview, !p.Has(Preview))
	add(QuarkusConfig, p.HasQuarkus())
	return out
}
