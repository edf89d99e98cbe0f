package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <files...>",
		Short: "List TODO and FIXME comments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, filename := range args {
				doc, _, lines, err := parseFile(filename)
				if err != nil {
					return err
				}
				if doc == nil {
					log.Warningf("skipping %s: parse aborted", filename)
					continue
				}
				for _, task := range doc.Tasks() {
					fmt.Fprintln(cmd.OutOrStdout(), formatIssue(task, lines))
				}
			}
			return nil
		},
	}
}
