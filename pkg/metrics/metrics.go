package metrics

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsLevelConfig string

const (
	MetricsLevelNone       MetricsLevelConfig = "none"
	MetricsLevelAggregated MetricsLevelConfig = "aggregated"
	MetricsLevelFull       MetricsLevelConfig = "full"
	// MetricsLevelDefault is the default metrics level.
	MetricsLevelDefault MetricsLevelConfig = MetricsLevelFull
)

var ErrInvalidMetricsLevel = errors.New("invalid metrics level")

type AcquisitionMetricsLevel int

const (
	AcquisitionMetricsLevelNone       AcquisitionMetricsLevel       = iota // No metrics
	AcquisitionMetricsLevelAggregated                                      // Aggregated metrics
	AcquisitionMetricsLevelFull                                            // Full metrics
	AcquisitionMetricsLevelDefault    = AcquisitionMetricsLevelFull        // Default metrics level
)

func (l MetricsLevelConfig) ToAcquisitionLevel() (AcquisitionMetricsLevel, error) {
	switch l {
	case MetricsLevelNone:
		return AcquisitionMetricsLevelNone, nil
	case MetricsLevelAggregated:
		return AcquisitionMetricsLevelAggregated, nil
	case MetricsLevelFull:
		return AcquisitionMetricsLevelFull, nil
	default:
		return AcquisitionMetricsLevelDefault, fmt.Errorf("%w: %s", ErrInvalidMetricsLevel, l)
	}
}

var (
	acquisitionMetricsNames   []string
	acquisitionMetricsNamesMu sync.Mutex
)

// RegisterAcquisitionMetric records the name of a datasource metric so
// consumers can tell them apart from engine metrics. Called from the init()
// of each metric file.
func RegisterAcquisitionMetric(name string) {
	acquisitionMetricsNamesMu.Lock()
	defer acquisitionMetricsNamesMu.Unlock()

	if !slices.Contains(acquisitionMetricsNames, name) {
		acquisitionMetricsNames = append(acquisitionMetricsNames, name)
	}
}

// AcquisitionMetricNames returns the registered datasource metric names.
func AcquisitionMetricNames() []string {
	acquisitionMetricsNamesMu.Lock()
	defer acquisitionMetricsNamesMu.Unlock()

	return slices.Clone(acquisitionMetricsNames)
}

// RegisterMetrics registers the collectors of the given datasources with the
// default prometheus registry, honoring the configured level.
func RegisterMetrics(level MetricsLevelConfig, full []prometheus.Collector, aggregated []prometheus.Collector) error {
	switch level {
	case MetricsLevelNone:
		// Do not register any metrics
	case MetricsLevelAggregated:
		prometheus.MustRegister(aggregated...)
	case MetricsLevelFull:
		prometheus.MustRegister(full...)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMetricsLevel, level)
	}

	return nil
}
