package directive

import (
	"strconv"
	"strings"

	"jbang-lens/internal/textutil"
)

// JavaVersions are offered after //JAVA and as values of -source/--release.
var JavaVersions = []int{21, 17, 11, 8}

// optionDirectives take compiler or runtime flags after the prefix.
var optionDirectives = []Directive{
	CompileOptions,
	RuntimeOptions,
	Java,
	JavacOptions,
	JavaOptions,
	NativeOptions,
}

const (
	docEnablePreview = "Enables preview language features. Used in conjunction with either -source or --release."
	docDeprecation   = "Shows a description of each use or override of a deprecated member or class. Without the -deprecation option, javac shows a summary of the source files that use or override deprecated members or classes. The -deprecation option is shorthand for -Xlint:deprecation."
	docSource        = "Compiles source code according to the rules of the Java programming language for the specified Java SE release. The supported values of release are the current Java SE release and a limited number of previous releases, detailed in the command-line help."
	docRelease       = "Compiles source code according to the rules of the Java programming language for the specified Java SE release, generating class files which target that release. Source code is compiled against the combined Java SE and JDK API for the specified release."
	docParameters    = "Generates metadata for reflection on method parameters. Stores formal parameter names of constructors and methods in the generated class file so that the method java.lang.reflect.Executable.getParameters from the Reflection API can retrieve them."
)

// OptionSuggestion is one value completion on an option directive line. The
// replaced span is [Start, End) on the cursor line.
type OptionSuggestion struct {
	Label      string `json:"label"`
	InsertText string `json:"insertText"`
	Detail     string `json:"detail,omitempty"`
	SortText   string `json:"sortText,omitempty"`
	// Values lists the choices for the argument that follows the option.
	Values []string `json:"values,omitempty"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
}

// optionDirective returns the option directive line declares, prefix and
// space included.
func optionDirective(line string) (Directive, bool) {
	for _, d := range optionDirectives {
		if Matches(d, line, true) {
			return d, true
		}
	}
	return Directive{}, false
}

// OptionsApply reports whether col sits past the prefix of an option
// directive.
func OptionsApply(line string, col int) bool {
	d, ok := optionDirective(line)
	return ok && col >= len(d.Prefix())
}

func javaVersionValues() []string {
	out := make([]string, len(JavaVersions))
	for i, v := range JavaVersions {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// OptionSuggest completes the flags of an option directive line with the
// cursor at col. //JAVA offers versions over the rest of the line; the other
// directives offer flags over the token under the cursor, skipping flags the
// line already carries.
func OptionSuggest(line string, col int) []OptionSuggestion {
	if !OptionsApply(line, col) {
		return nil
	}
	d, _ := optionDirective(line)
	var out []OptionSuggestion
	if d.Name == Java.Name {
		for i, v := range javaVersionValues() {
			out = append(out, OptionSuggestion{
				Label:      v,
				InsertText: v,
				SortText:   strconv.Itoa(i),
				Start:      len(d.Prefix()) + 1,
				End:        len(line),
			})
		}
		return out
	}

	start := textutil.FindStart(line, col-1, d.Prefix()+" ")
	end := max(textutil.FindEnd(line, col), start)
	add := func(label, detail string, values []string) {
		out = append(out, OptionSuggestion{
			Label:      label,
			InsertText: label + " ",
			Detail:     detail,
			Values:     values,
			Start:      start,
			End:        end,
		})
	}
	has := func(s string) bool { return strings.Contains(line, s) }

	if d.Name == NativeOptions.Name {
		if !has("--enable-https") {
			add("--enable-https", "Enables HTTPS support", nil)
		}
		if !has("--enable-http ") {
			add("--enable-http", "Enables HTTP support", nil)
		}
		return out
	}
	if !has("--enable-preview") {
		add("--enable-preview", docEnablePreview, nil)
	}
	if d.Name != JavacOptions.Name && d.Name != CompileOptions.Name {
		return out
	}
	if !has("-deprecation") {
		add("-deprecation", docDeprecation, nil)
	}
	// --release is only offered while -source is absent
	if !has("-source") {
		add("-source", docSource, javaVersionValues())
		if !has("--release") {
			add("--release", docRelease, javaVersionValues())
		}
	}
	if !has("-parameters") {
		add("-parameters", docParameters, nil)
	}
	return out
}
