package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jbang-lens/internal/directive"
)

// directiveView is the json form of a catalog entry.
type directiveView struct {
	Name            string `json:"name"`
	Prefix          string `json:"prefix"`
	Description     string `json:"description"`
	MultipleAllowed bool   `json:"multipleAllowed"`
	RequireSpace    bool   `json:"requireSpace"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDirectivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directives",
		Short: "List JBang directives and suggest the ones a script can still use",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the known directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := directive.All()
			if listJSON {
				views := make([]directiveView, 0, len(all))
				for _, d := range all {
					views = append(views, directiveView{d.Name, d.Prefix(), d.Description, d.MultipleAllowed, d.RequireSpace})
				}
				return writeJSON(cmd.OutOrStdout(), views)
			}
			for _, d := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", d.Prefix(), d.Description)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")

	var (
		line, column int
		lang         string
		suggestJSON  bool
	)
	suggestCmd := &cobra.Command{
		Use:   "suggest <file>",
		Short: "Suggest directives, or option values on an option directive line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}
			idx := line - 1
			if idx < 0 || idx >= len(lines) {
				return fmt.Errorf("line %d out of range 1..%d", line, len(lines))
			}
			col := column - 1
			if directive.OptionsApply(lines[idx], col) {
				opts := directive.OptionSuggest(lines[idx], col)
				if suggestJSON {
					if opts == nil {
						opts = []directive.OptionSuggestion{}
					}
					return writeJSON(cmd.OutOrStdout(), opts)
				}
				for _, o := range opts {
					fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", o.Label, o.Detail)
				}
				return nil
			}
			var out []directive.Suggestion
			if directive.Applies(lines[idx], col) {
				out = directive.Suggest(lines, languageOf(args[0], lang), idx)
			}
			if suggestJSON {
				if out == nil {
					out = []directive.Suggestion{}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, s := range out {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", s.Label, s.Detail)
			}
			return nil
		},
	}
	f := suggestCmd.Flags()
	f.IntVar(&line, "line", 1, "1-based line the cursor is on")
	f.IntVar(&column, "column", 1, "1-based cursor column")
	f.StringVar(&lang, "lang", "", "language id (default derived from the file extension)")
	f.BoolVar(&suggestJSON, "json", false, "print JSON")

	cmd.AddCommand(listCmd, suggestCmd)
	return cmd
}
