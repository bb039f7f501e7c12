package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/contre95/musicrescue/src/features/indexing"
	"github.com/contre95/musicrescue/src/features/metrics"
	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/features/scanning"
	"github.com/contre95/musicrescue/src/infra/tag"
	"github.com/spf13/cobra"
)

func newIndexCmd(a *app) *cobra.Command {
	var workDir, outIndex string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "scan a directory and save its catalog",
		Long: `index scans the work directory and writes the resulting catalog to an index
file. An existing index file is never overwritten. Files ending in .yaml or
.yml are written as YAML, anything else as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.workDir(workDir)
			if err != nil {
				return err
			}
			if outIndex == "" {
				outIndex = a.cfg.Get().Index.Path
			}
			if _, err := os.Stat(outIndex); err == nil {
				return fmt.Errorf("can't create index file %s: %w", outIndex, fs.ErrExist)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("can't check index file %s: %w", outIndex, err)
			}

			console := reporting.NewConsole(a.stdout, a.logger)
			scanner := scanning.NewService(tag.NewTagReader(), a.cfg, a.logger)
			tree, err := scanner.Scan(cmd.Context(), root, a.reporter(console, metrics.PhaseScan))
			if err != nil {
				return err
			}
			a.recordCatalog(tree)
			console.PrintReport(a.stdout)
			defer a.flushMetrics()

			doc := indexing.NewDocument(tree)
			if err := indexing.CreateIndexFile(outIndex, doc); err != nil {
				return err
			}
			a.logger.Info("Index saved", "path", outIndex, "id", doc.ID, "artists", tree.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&workDir, "work-dir", "", "directory to scan (default: config scan.work_dir or the current directory)")
	cmd.Flags().StringVar(&outIndex, "out-index", "", "index file to create (default: config index.path)")
	return cmd
}
