package main

import (
	"os/signal"
	"syscall"

	"github.com/contre95/musicrescue/src/features/hosting"
	"github.com/contre95/musicrescue/src/features/indexing"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var index string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "browse an index over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if index == "" {
				index = a.cfg.Get().Index.Path
			}
			doc, err := indexing.ReadFile(index)
			if err != nil {
				return err
			}
			a.recordCatalog(doc.Tree)

			server := hosting.NewServer(a.cfg, hosting.NewCatalog(doc.Tree), a.collector, a.logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()
			a.logger.Info("Server started. Press Ctrl+C to shut down.", "port", a.cfg.Get().Server.Port, "index", index)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			a.logger.Info("Shutting down server...")
			if err := server.Shutdown(); err != nil {
				return err
			}
			a.logger.Info("Server gracefully shut down.")
			return nil
		},
	}
	cmd.Flags().StringVar(&index, "index", "", "index file to serve (default: config index.path)")
	return cmd
}
