package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dhamidi/texls/latex/codebase"
	"github.com/dhamidi/texls/project"
	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <file> <offset>",
		Short: "Print completions at a character offset of a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid offset %q: %w", args[1], err)
			}

			proj, err := project.Load()
			if err != nil {
				return err
			}
			c := codebase.New(proj)
			if err := c.ScanAll(); err != nil {
				return err
			}
			if err := c.ScanFile(filename); err != nil {
				return err
			}

			for _, item := range c.Complete(filename, offset) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", item.Label, item.Kind, item.InsertText)
			}
			return nil
		},
	}
}
