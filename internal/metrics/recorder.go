package metrics

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"contentpackage.run/internal/packages/packagetypes"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Recorder keeps the metrics of packaging runs of one process and writes
// them in the node exporter textfile format.
type Recorder struct {
	registry *prometheus.Registry

	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	archiveSize   *prometheus.GaugeVec
	removeFailed  prometheus.Counter
}

func NewRecorder() *Recorder {
	builds := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_package_builds_total",
			Help: "Packaging runs, grouped by outcome and failure reason.",
		}, []string{"outcome", "reason"})

	buildDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_package_build_duration_seconds",
			Help:    "Duration of packaging runs.",
			Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
		})

	archiveSize := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_package_archive_size_bytes",
			Help: "Size of the last archive written per package.",
		}, []string{"group", "name"})

	removeFailed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_package_input_remove_failures_total",
			Help: "Inputs that could not be deleted after packaging.",
		})

	registry := prometheus.NewRegistry()
	registry.MustRegister(builds, buildDuration, archiveSize, removeFailed)

	return &Recorder{
		registry:      registry,
		builds:        builds,
		buildDuration: buildDuration,
		archiveSize:   archiveSize,
		removeFailed:  removeFailed,
	}
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveBuild records the outcome of a single packaging run.
func (r *Recorder) ObserveBuild(group, name, archivePath string, removeErr, err error, duration time.Duration) {
	r.buildDuration.Observe(duration.Seconds())

	if err != nil {
		r.builds.WithLabelValues(outcomeFailure, failureReason(err)).Inc()
		return
	}
	r.builds.WithLabelValues(outcomeSuccess, "").Inc()

	if removeErr != nil {
		r.removeFailed.Inc()
	}
	if fi, statErr := os.Stat(archivePath); statErr == nil {
		r.archiveSize.WithLabelValues(group, name).Set(float64(fi.Size()))
	}
}

// WriteTextfile writes all metrics to path, replacing the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}

func failureReason(err error) string {
	var (
		configErr   *packagetypes.ConfigurationError
		decodeErr   *packagetypes.DecodeError
		notFoundErr *packagetypes.ResourceNotFoundError
		ioErr       *packagetypes.IOError
	)
	switch {
	case errors.As(err, &configErr):
		return "configuration"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &notFoundErr):
		return "resource_not_found"
	case errors.As(err, &ioErr):
		return "io"
	}
	return "other"
}
