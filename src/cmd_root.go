package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contre95/musicrescue/src/features/config"
	"github.com/contre95/musicrescue/src/features/logging"
	"github.com/contre95/musicrescue/src/features/metrics"
	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/music"
	"github.com/spf13/cobra"
)

// app carries what every command needs once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Manager
	logger     *slog.Logger
	collector  *metrics.Collector
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "musicrescue",
		Short: "rebuild a clean music library from a messy directory",
		Long: `musicrescue reads the tags of every audio file under a directory, builds an
artist/album/track catalog and copies each track to
<out>/<artist>/<year> - <album>/<n> - <title>.<ext> without touching the source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to the config file")

	rootCmd.AddCommand(
		newIndexCmd(a),
		newRescueCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(a.stderr, cfg.Get().Logger)
	slog.SetDefault(a.logger)
	a.collector = metrics.NewCollector()
	return nil
}

// reporter fans signals out to the console and the metrics of phase.
func (a *app) reporter(console *reporting.Console, phase metrics.Phase) reporting.Reporter {
	return reporting.Tee(console, a.collector.Reporter(phase))
}

// recordCatalog updates the catalog gauges.
func (a *app) recordCatalog(tree *music.MusicTree) {
	tracks := 0
	for info := range tree.Tracks() {
		if info.Track != nil {
			tracks++
		}
	}
	a.collector.SetCatalogSize(tree.Len(), tracks)
}

// flushMetrics writes the textfile when metrics output is enabled.
func (a *app) flushMetrics() {
	cfg := a.cfg.Get().Metrics
	if !cfg.Enabled {
		return
	}
	if err := a.collector.WriteTextfile(cfg.Textfile); err != nil {
		a.logger.Error("Failed to write metrics textfile", "path", cfg.Textfile, "error", err)
	}
}

// workDir resolves the scan root from the flag, the config and finally the
// current directory. The result is absolute so an index can be used from
// any directory.
func (a *app) workDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = a.cfg.Get().Scan.WorkDir
	}
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
