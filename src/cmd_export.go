package main

import (
	"github.com/contre95/musicrescue/src/features/indexing"
	"github.com/contre95/musicrescue/src/infra/database"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var index, dbPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "mirror an index into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if index == "" {
				index = a.cfg.Get().Index.Path
			}
			if dbPath == "" {
				dbPath = a.cfg.Get().Database.Path
			}

			doc, err := indexing.ReadFile(index)
			if err != nil {
				return err
			}
			catalog, err := database.NewSqliteCatalog(dbPath)
			if err != nil {
				return err
			}
			defer catalog.Close()

			if err := catalog.Export(cmd.Context(), doc.Tree); err != nil {
				return err
			}
			tracks, err := catalog.GetTotalTracks(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info("Catalog exported", "index", index, "database", dbPath, "tracks", tracks)
			return nil
		},
	}
	cmd.Flags().StringVar(&index, "index", "", "index file to export (default: config index.path)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: config database.path)")
	return cmd
}
