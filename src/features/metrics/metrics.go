package metrics

import (
	"fmt"
	"log/slog"

	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/prometheus/client_golang/prometheus"
)

// Phase names a run stage in metric labels.
type Phase string

const (
	PhaseScan   Phase = "scan"
	PhaseRescue Phase = "rescue"
)

// Collector holds the Prometheus counters of a musicrescue process.
type Collector struct {
	registry *prometheus.Registry
	items    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	tracks   prometheus.Gauge
	artists  prometheus.Gauge
}

// NewCollector creates the counters and registers them in a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicrescue_items_total",
				Help: "Files successfully cataloged or copied",
			},
			[]string{"phase"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicrescue_errors_total",
				Help: "Files skipped, by phase and kind",
			},
			[]string{"phase", "kind"},
		),
		tracks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "musicrescue_catalog_tracks",
			Help: "Tracks recorded in the loaded catalog",
		}),
		artists: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "musicrescue_catalog_artists",
			Help: "Artists recorded in the loaded catalog",
		}),
	}
	c.registry.MustRegister(c.items, c.errors, c.tracks, c.artists)
	return c
}

// Registry exposes the registry for the HTTP handler and textfile output.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Reporter returns a reporting.Reporter that feeds the counters of phase.
func (c *Collector) Reporter(phase Phase) reporting.Reporter {
	return &phaseReporter{collector: c, phase: string(phase)}
}

// SetCatalogSize records the size of the catalog.
func (c *Collector) SetCatalogSize(artists, tracks int) {
	c.artists.Set(float64(artists))
	c.tracks.Set(float64(tracks))
}

// WriteTextfile writes all metrics in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	slog.Debug("Metrics textfile written", "path", path)
	return nil
}

type phaseReporter struct {
	collector *Collector
	phase     string
}

func (r *phaseReporter) Progress() {
	r.collector.items.WithLabelValues(r.phase).Inc()
}

func (r *phaseReporter) Error(kind reporting.ErrorKind, path string) {
	r.collector.errors.WithLabelValues(r.phase, kind.String()).Inc()
}
