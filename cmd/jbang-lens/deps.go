package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"

	"jbang-lens/internal/diff"
	"jbang-lens/internal/gav"
	"jbang-lens/internal/logging"
	"jbang-lens/internal/pom"
)

const docsCacheSize = 64

func newDepsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Work with //DEPS dependency lines",
	}
	cmd.PersistentFlags().String("maven-home", "", "local Maven repository (default ~/.m2/repository)")
	cmd.AddCommand(newPasteCmd(), newAddCmd(), newInfoCmd(a), newCompleteCmd(), newResolveCmd())
	return cmd
}

func newPasteCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Convert a Maven <dependency> snippet on stdin to //DEPS lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read snippet: %w", err)
			}
			snippet := string(b)
			if !gav.IsMavenSnippet(snippet) {
				return errors.New("stdin is not a Maven dependency snippet")
			}
			var out string
			if cmd.Flags().Changed("line") {
				var ok bool
				if out, ok = gav.PasteEdit(target, snippet); !ok {
					return fmt.Errorf("snippet cannot be pasted on line %q", target)
				}
			} else if out, err = gav.FromMavenXML(snippet); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "line", "", "text of the line the snippet is pasted on")
	return cmd
}

func newAddCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "add <file> <group:artifact[:version[:classifier]]>",
		Short: "Add a //DEPS line after the existing ones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, coordinate := args[0], args[1]
			if _, err := gav.Parse(coordinate); err != nil {
				return fmt.Errorf("%s: %w", coordinate, err)
			}
			st, err := os.Stat(file)
			if err != nil {
				return err
			}
			old, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			updated := []byte(gav.InsertDeps(string(old), coordinate))
			if dryRun {
				name := filepath.ToSlash(file)
				patch, _, err := diff.Unified("a/"+name, "b/"+name, old, updated, diff.Options{})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), patch)
				return nil
			}
			if err := os.WriteFile(file, updated, st.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
			logging.Info("dependency added", "file", file, "gav", coordinate)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a unified diff instead of writing the file")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <group:artifact[:version]>",
		Short: "Show repository locations and local documentation for a dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := gav.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			w := cmd.OutOrStdout()
			repo := a.cfg.LocalRepo()
			fmt.Fprintf(w, "coordinate: %s\n", d.GAV())
			if p, ok := d.LocalPOM(repo); ok {
				state := "missing"
				if _, err := os.Stat(p); err == nil {
					state = "present"
				}
				fmt.Fprintf(w, "local pom:  %s (%s)\n", p, state)
			}
			if u, ok := d.RemotePOM(); ok {
				fmt.Fprintf(w, "remote pom: %s\n", u)
			}
			fmt.Fprintf(w, "metadata:   %s\n", d.RemoteMetadata())

			docs, err := newDocs(repo)
			if err != nil {
				return err
			}
			doc, ok, err := docs.Lookup(d)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(w, "\n%s\n", doc)
			}
			return nil
		},
	}
}

func newDocs(repo string) (*pom.Docs, error) {
	c, err := lru.New[string, string](docsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create docs cache: %w", err)
	}
	return pom.NewDocs(repo, c), nil
}

// openResponse opens a saved search response; "-" is stdin.
func openResponse(cmd *cobra.Command, name string) (gav.SearchResponse, error) {
	if name == "-" {
		return gav.DecodeSearch(cmd.InOrStdin())
	}
	f, err := os.Open(name)
	if err != nil {
		return gav.SearchResponse{}, err
	}
	defer f.Close()
	return gav.DecodeSearch(f)
}

// position parses 1-based line and column arguments into 0-based values.
func position(lineArg, colArg string) (int, int, error) {
	line, err := strconv.Atoi(lineArg)
	if err != nil || line < 1 {
		return 0, 0, fmt.Errorf("invalid line %q", lineArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("invalid column %q", colArg)
	}
	return line - 1, col - 1, nil
}

func newCompleteCmd() *cobra.Command {
	var response string
	cmd := &cobra.Command{
		Use:   "complete <file> <line> <column>",
		Short: "Print the search request, or the completions, for the coordinate at a position",
		Long: `Without --response, print the Maven Central search URL for the coordinate
being typed at <line>:<column>. With --response, rank a saved response of
that request into completion items.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}
			line, col, err := position(args[1], args[2])
			if err != nil {
				return err
			}
			if line >= len(lines) {
				return fmt.Errorf("line %d out of range 1..%d", line+1, len(lines))
			}
			q, ok := gav.QueryAt(lines[line], col)
			if !ok {
				return errors.New("no dependency coordinate at this position")
			}
			if response == "" {
				fmt.Fprintln(cmd.OutOrStdout(), q.URL())
				return nil
			}
			s, err := openResponse(cmd, response)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), q.Complete(s))
		},
	}
	cmd.Flags().StringVar(&response, "response", "", "saved search response to rank (- for stdin)")
	return cmd
}

func newResolveCmd() *cobra.Command {
	var response string
	cmd := &cobra.Command{
		Use:   "resolve <type>",
		Short: "Find the artifacts providing an unresolved type or package",
		Long: `Without --response, print the Maven Central class search URL for <type>.
With --response, list the candidate coordinates from a saved response, best
namespace match first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if response == "" {
				fmt.Fprintln(cmd.OutOrStdout(), gav.ClassSearchURL(args[0]))
				return nil
			}
			s, err := openResponse(cmd, response)
			if err != nil {
				return err
			}
			for _, c := range gav.SortByNamespace(gav.Candidates(s.Response.Docs), args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&response, "response", "", "saved search response to rank (- for stdin)")
	return cmd
}
