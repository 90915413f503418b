package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jbang-lens/internal/version"
)

func newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Compare and sort Maven/OSGi versions",
	}

	var asc bool
	sortCmd := &cobra.Command{
		Use:   "sort [versions...]",
		Short: "Print versions newest first (reads stdin when no versions are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				s := bufio.NewScanner(cmd.InOrStdin())
				for s.Scan() {
					if v := strings.TrimSpace(s.Text()); v != "" {
						args = append(args, v)
					}
				}
				if err := s.Err(); err != nil {
					return fmt.Errorf("read versions: %w", err)
				}
			}
			sorted := version.SortDesc(args)
			if asc {
				sorted = version.Sort(args)
			}
			for _, v := range sorted {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	sortCmd.Flags().BoolVar(&asc, "asc", false, "oldest first")

	compareCmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Print how a relates to b (<, = or >)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel := "="
			switch n := version.Compare(args[0], args[1]); {
			case n < 0:
				rel = "<"
			case n > 0:
				rel = ">"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", args[0], rel, args[1])
			return nil
		},
	}

	cmd.AddCommand(sortCmd, compareCmd)
	return cmd
}
