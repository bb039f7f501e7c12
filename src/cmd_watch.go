package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/contre95/musicrescue/src/features/indexing"
	"github.com/contre95/musicrescue/src/features/metrics"
	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/features/scanning"
	"github.com/contre95/musicrescue/src/infra/database"
	"github.com/contre95/musicrescue/src/infra/tag"
	"github.com/contre95/musicrescue/src/infra/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var workDir, outIndex string
	var export bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "keep an index up to date while the work directory changes",
		Long: `watch scans the work directory, writes the index and rescans every time the
directory settles after a change. The index file is replaced on each pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.workDir(workDir)
			if err != nil {
				return err
			}
			if outIndex == "" {
				outIndex = a.cfg.Get().Index.Path
			}

			var catalog *database.SqliteCatalog
			if export {
				catalog, err = database.NewSqliteCatalog(a.cfg.Get().Database.Path)
				if err != nil {
					return err
				}
				defer catalog.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reindex := func() error {
				return a.reindex(ctx, root, outIndex, catalog)
			}
			if err := reindex(); err != nil {
				return err
			}

			events := make(chan watcher.FileEvent, 1)
			debounce := time.Duration(a.cfg.Get().Watch.DebounceMS) * time.Millisecond
			w, err := watcher.NewWatcher(events, debounce, a.logger)
			if err != nil {
				return err
			}
			w.Ignore(outIndex)
			if catalog != nil {
				w.Ignore(a.cfg.Get().Database.Path)
			}
			if err := w.Start(ctx, root); err != nil {
				return err
			}
			defer w.Stop()

			for {
				select {
				case <-ctx.Done():
					a.logger.Info("Stopping watch", "root", root)
					return nil
				case event := <-events:
					a.logger.Info("Change detected, re-indexing", "path", event.Path, "type", event.EventType)
					if err := reindex(); err != nil {
						if ctx.Err() != nil {
							return nil
						}
						return err
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&workDir, "work-dir", "", "directory to watch (default: config scan.work_dir or the current directory)")
	cmd.Flags().StringVar(&outIndex, "out-index", "", "index file to keep updated (default: config index.path)")
	cmd.Flags().BoolVar(&export, "export", false, "also mirror every pass into the SQLite database")
	return cmd
}

// reindex runs one scan pass and replaces the index with its result.
func (a *app) reindex(ctx context.Context, root, outIndex string, catalog *database.SqliteCatalog) error {
	console := reporting.NewConsole(nil, a.logger)
	scanner := scanning.NewService(tag.NewTagReader(), a.cfg, a.logger)
	tree, err := scanner.Scan(ctx, root, a.reporter(console, metrics.PhaseScan))
	if err != nil {
		return err
	}
	a.recordCatalog(tree)
	defer a.flushMetrics()

	doc := indexing.NewDocument(tree)
	if err := indexing.WriteFile(outIndex, doc); err != nil {
		return err
	}
	if catalog != nil {
		if err := catalog.Export(ctx, tree); err != nil {
			return err
		}
	}
	a.logger.Info("Index updated", "path", outIndex, "id", doc.ID, "cataloged", console.Successes(), "errors", console.Errors())
	return nil
}
