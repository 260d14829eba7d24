package logfileacquisition

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/crowdsecurity/logtail/pkg/metrics"
)

func (*Source) GetMetrics() []prometheus.Collector {
	return []prometheus.Collector{
		metrics.LogfileDatasourceLinesRead,
		metrics.LogfileDatasourceRotations,
	}
}

func (*Source) GetAggregMetrics() []prometheus.Collector {
	return []prometheus.Collector{
		metrics.LogfileDatasourceLinesRead,
		metrics.LogfileDatasourceRotations,
	}
}
