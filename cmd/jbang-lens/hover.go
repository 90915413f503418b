package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jbang-lens/internal/hover"
	"jbang-lens/internal/logging"
)

func newHoverCmd(a *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "hover <file> <line> <column>",
		Short: "Print the hover text for a 1-based position of a script",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}
			line, col, err := position(args[1], args[2])
			if err != nil {
				return err
			}
			docs, err := newDocs(a.cfg.LocalRepo())
			if err != nil {
				return err
			}
			text, ok, err := hover.Document(lines, languageOf(args[0], lang), line, col, docs)
			if err != nil {
				logging.Warn("documentation unavailable", "error", err)
			}
			if !ok {
				return &exitError{code: 1}
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language id (default derived from the file extension)")
	cmd.Flags().String("maven-home", "", "local Maven repository (default ~/.m2/repository)")
	return cmd
}
