// Command jbang-lens inspects JBang scripts from the command line: it finds
// scripts and the lines their run/debug lenses attach to, compares Maven
// versions, lists and suggests directives, edits //DEPS lines and shows
// hover documentation.
//
// Usage:
//
//	jbang-lens scan [paths...] [--format text|json|toml] [--all]
//	jbang-lens check <file>
//	jbang-lens versions sort|compare ...
//	jbang-lens directives list|suggest ...
//	jbang-lens deps paste|add|info|complete|resolve ...
//	jbang-lens hover <file> <line> <column>
//
// Settings come from flags, JBANG_LENS_* environment variables (a .env file
// is honoured) and an optional .jbang-lens.yaml.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"jbang-lens/internal/logging"
)

// exitError ends the process with code without logging anything.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logging.Init("info", stderr)
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		logging.Error("command failed", "error", err)
		return 1
	}
	return 0
}
