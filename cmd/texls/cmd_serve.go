package main

import (
	"context"

	"github.com/dhamidi/texls/api"
	"github.com/dhamidi/texls/latex/codebase"
	"github.com/dhamidi/texls/project"
	"github.com/dhamidi/texls/ui"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	var noUI bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load()
			if err != nil {
				return err
			}
			cfg := proj.Config
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			server := api.NewServer(cfg)

			if !noUI {
				c := codebase.New(proj)
				if err := c.ScanAll(); err != nil {
					return err
				}
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				if err := codebase.NewFileWatcher(c).Start(ctx); err != nil {
					log.Warningf("watcher disabled: %s", err)
				}

				browser, err := ui.NewServer(c)
				if err != nil {
					return err
				}
				server.Mount("/ui", browser)
			}

			return server.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from texls.toml)")
	cmd.Flags().BoolVar(&noUI, "no-ui", false, "Do not serve the project browser under /ui")
	return cmd
}
