package main

import (
	"fmt"
	"path/filepath"

	"github.com/dhamidi/texls/project"
	"github.com/spf13/cobra"
)

func newMasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "master <file> [<master>]",
		Short: "Show or set the master document of a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			proj, err := project.Load()
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if err := proj.SetMaster(filename, args[1]); err != nil {
					return fmt.Errorf("set master: %w", err)
				}
				log.Infof("master of %s is now %s", filename, args[1])
				return nil
			}

			master, ok := proj.MasterOf(filename)
			if !ok {
				return fmt.Errorf("no master configured for %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), master)
			return nil
		},
	}
}
