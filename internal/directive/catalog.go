// Package directive recognises JBang directive lines ("//DEPS ...",
// "//JAVA 21", the "///usr/bin/env jbang" header, ...) and classifies a
// document as a JBang script when any of its lines is a directive.
//
// The catalog below is the vocabulary understood by the jbang CLI; names are
// case-sensitive and must not be altered.
package directive

// HeaderPrefix starts the shebang-style header line of a JBang script.
const HeaderPrefix = "///usr/bin/env jbang "

// Directive is one recognised line prefix.
type Directive struct {
	Name        string
	Description string
	// RetriggerCompletion asks the editor to reopen completion after the
	// directive is inserted.
	RetriggerCompletion bool
	MultipleAllowed     bool
	// RequireSpace makes catalog recognition require a space after the
	// prefix. Flag-like directives (//CDS, //PREVIEW, ...) are bare.
	RequireSpace bool

	header bool
}

// Prefix returns the text a matching line starts with.
func (d Directive) Prefix() string {
	if d.header {
		return HeaderPrefix
	}
	return "//" + d.Name
}

func define(name, desc string, retrigger, requireSpace bool) Directive {
	return Directive{
		Name:                name,
		Description:         desc,
		RetriggerCompletion: retrigger,
		MultipleAllowed:     true,
		RequireSpace:        requireSpace,
	}
}

var (
	Java           = define("JAVA", "Java version to use when running JBang", true, true)
	Deps           = define("DEPS", "JBang dependencies", false, true)
	JavacOptions   = define("JAVAC_OPTIONS", "Options passed to the Java compiler", true, true)
	JavaOptions    = define("JAVA_OPTIONS", "Options passed to the Java runtime", true, true)
	CompileOptions = define("COMPILE_OPTIONS", "Options passed to the compiler", true, false)
	RuntimeOptions = define("RUNTIME_OPTIONS", "Options passed to the JVM runtime", true, false)
	NativeOptions  = define("NATIVE_OPTIONS", "Options passed to the native image builder", true, false)
	Manifest       = define("MANIFEST", "Write entries to META-INF/manifest.mf", false, false)
	CDS            = define("CDS", "Activate Class Data Sharing", false, false)
	GAV            = define("GAV", "Set Group, Artifact and Version", false, true)
	Description    = define("DESCRIPTION", "Markdown description for the JBang application/script", false, true)
	JavaAgent      = define("JAVAAGENT", "Activate agent packaging", false, true)
	Groovy         = define("GROOVY", "Groovy version to use", true, true)
	Kotlin         = define("KOTLIN", "Kotlin version to use", true, true)
	Module         = define("MODULE", "Treat resource as a module. Optionally with the given module name.", false, true)
	Main           = define("MAIN", "Override the main class", false, true)
	Preview        = define("PREVIEW", "Enable Java preview features", false, false)
	Sources        = define("SOURCES", "Pattern to include as JBang sources", true, true)
	Files          = define("FILES", "Mount files to build", true, true)
	Repos          = define("REPOS", "Repositories used by Jbang to resolve dependencies", false, true)
	// The name carries its own trailing space.
	QuarkusConfig  = define("Q:CONFIG ", "Quarkus configuration property", false, false)

	// Header is not really a directive; it completes the first line.
	Header = Directive{
		Name:        HeaderPrefix + `"$0" "$@" ; exit $?`,
		Description: "JBang header",
		header:      true,
	}

	// quarkusDep marks a Quarkus dependency, which enables QuarkusConfig.
	quarkusDep = define("DEPS io.quarkus:quarkus", "", false, false)
)

var catalog = []Directive{
	Java,
	Deps,
	JavacOptions,
	JavaOptions,
	RuntimeOptions,
	CompileOptions,
	NativeOptions,
	CDS,
	Description,
	GAV,
	Groovy,
	Kotlin,
	JavaAgent,
	Main,
	Manifest,
	Module,
	Preview,
	Sources,
	Files,
	Repos,
	QuarkusConfig,
}

// All returns a copy of the directive catalog in recognition order.
func All() []Directive {
	out := make([]Directive, len(catalog))
	copy(out, catalog)
	return out
}
