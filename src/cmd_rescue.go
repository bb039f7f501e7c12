package main

import (
	"errors"

	"github.com/contre95/musicrescue/src/features/indexing"
	"github.com/contre95/musicrescue/src/features/metrics"
	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/features/rescuing"
	"github.com/contre95/musicrescue/src/features/scanning"
	"github.com/contre95/musicrescue/src/infra/files"
	"github.com/contre95/musicrescue/src/infra/tag"
	"github.com/contre95/musicrescue/src/music"
	"github.com/spf13/cobra"
)

func newRescueCmd(a *app) *cobra.Command {
	var workDir, index string

	cmd := &cobra.Command{
		Use:   "rescue [out-dir]",
		Short: "copy every cataloged track into a clean layout",
		Long: `rescue copies each track to <out-dir>/<artist>/<year> - <album>/<n> - <title>.<ext>.
The catalog comes from --index when given, otherwise the work directory is
scanned first. Existing files in the output are reported and left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir := a.cfg.Get().Rescue.OutDir
			if len(args) == 1 {
				outDir = args[0]
			}
			if outDir == "" {
				return errors.New("an output directory is required (argument or rescue.out_dir)")
			}

			console := reporting.NewConsole(a.stdout, a.logger)
			defer a.flushMetrics()

			var tree *music.MusicTree
			if index != "" {
				doc, err := indexing.ReadFile(index)
				if err != nil {
					return err
				}
				a.logger.Info("Index loaded", "path", index, "id", doc.ID, "created_at", doc.CreatedAt)
				tree = doc.Tree
			} else {
				root, err := a.workDir(workDir)
				if err != nil {
					return err
				}
				scanner := scanning.NewService(tag.NewTagReader(), a.cfg, a.logger)
				tree, err = scanner.Scan(cmd.Context(), root, a.reporter(console, metrics.PhaseScan))
				if err != nil {
					return err
				}
			}
			a.recordCatalog(tree)

			rescuer := rescuing.NewService(files.NewFileOrganizer(), a.logger)
			err := rescuer.Rescue(cmd.Context(), tree, outDir, a.reporter(console, metrics.PhaseRescue))
			console.PrintReport(a.stdout)
			return err
		},
	}
	cmd.Flags().StringVar(&workDir, "work-dir", "", "directory to scan when no index is given")
	cmd.Flags().StringVar(&index, "index", "", "index file produced by the index command")
	return cmd
}
