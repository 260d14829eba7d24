//go:build !no_datasource_logfile

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const LogfileDatasourceLinesReadMetricName = "logtail_logfilesource_hits_total"

var LogfileDatasourceLinesRead = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: LogfileDatasourceLinesReadMetricName,
		Help: "Total records that were read.",
	},
	[]string{"source", "datasource_type", "acquis_type"},
)

const LogfileDatasourceRotationsMetricName = "logtail_logfilesource_rotations_total"

var LogfileDatasourceRotations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: LogfileDatasourceRotationsMetricName,
		Help: "Total rotations that were detected.",
	},
	[]string{"source", "datasource_type"},
)

//nolint:gochecknoinits
func init() {
	RegisterAcquisitionMetric(LogfileDatasourceLinesReadMetricName)
	RegisterAcquisitionMetric(LogfileDatasourceRotationsMetricName)
}
