package types

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	tomb "gopkg.in/tomb.v2"

	"github.com/crowdsecurity/logtail/pkg/metrics"
	"github.com/crowdsecurity/logtail/pkg/pipeline"
)

// DataSource is the common interface implemented by all acquisition modules.
//
// A DataSource can always be configured from YAML.
type DataSource interface {
	// identity, lifecycle

	// GetMode returns the operating mode of the datasource (e.g. TAIL, CAT).
	GetMode() string

	// GetName returns the module name (e.g. "logfile").
	GetName() string

	// GetUuid returns a unique identifier for this datasource instance.
	GetUuid() string

	// CanRun reports whether the datasource can run on the current
	// platform/environment.
	CanRun() error

	// configuration

	// UnmarshalConfig decodes and pre-validates the YAML datasource
	// configuration. Implementations should validate everything that can be
	// checked without I/O.
	UnmarshalConfig(yamlConfig []byte) error

	// Configure completes datasource configuration and performs runtime
	// checks.
	Configure(ctx context.Context, yamlConfig []byte, logger *log.Entry, metricsLevel metrics.AcquisitionMetricsLevel) error
}

// DataSourceFactory constructs a new unconfigured DataSource instance.
type DataSourceFactory func() DataSource

// RestartableStreamer represents a data source that produces an ongoing,
// potentially unbounded stream of events.
//
// Implementations should:
//
//   - send events to the output channel, continuously
//   - return (nil) when the context is canceled
//   - return errors if acquisition fails
type RestartableStreamer interface {
	// Start live acquisition (eg, tail a file)
	Stream(ctx context.Context, out chan pipeline.Event) error
}

// Tailer has the same purpose as RestartableStreamer (provide ongoing
// events) but is responsible for spawning its own goroutines under the
// provided tomb. New datasources are expected to implement
// RestartableStreamer instead.
type Tailer interface {
	StreamingAcquisition(ctx context.Context, out chan pipeline.Event, acquisTomb *tomb.Tomb) error
}

// MetricsProvider exposes Prometheus collectors owned by a datasource.
type MetricsProvider interface {
	// GetMetrics returns collectors for full (non-aggregated) metrics.
	GetMetrics() []prometheus.Collector

	// GetAggregMetrics returns collectors for aggregated metrics (reduced
	// cardinality).
	GetAggregMetrics() []prometheus.Collector
}
