package main

import (
	"fmt"

	"github.com/dhamidi/texls/latex/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "check <files...>",
		Short:        "Report structural issues in LaTeX files",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			errors := 0
			for _, filename := range args {
				_, issues, lines, err := parseFile(filename)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					fmt.Fprintln(cmd.OutOrStdout(), formatIssue(issue, lines))
				}
				errors += issues.Count(parser.SeverityError)
			}
			if errors > 0 {
				return fmt.Errorf("%d errors", errors)
			}
			return nil
		},
	}
}
