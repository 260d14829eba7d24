package logfileacquisition

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crowdsecurity/logtail/pkg/metrics"
	"github.com/crowdsecurity/logtail/pkg/pipeline"
)

// streamListener bridges the tailing engine to the event channel. All hooks
// run on the engine's goroutine.
type streamListener struct {
	src *Source
	out chan pipeline.Event
	ctx context.Context
}

func (l *streamListener) IsValid(candidate string) bool {
	if l.src.recordRE == nil {
		return true
	}

	return l.src.recordRE.MatchString(candidate)
}

func (l *streamListener) Handle(source string, record string) {
	if record == "" {
		// skip empty lines
		return
	}

	if l.src.metricsLevel != metrics.AcquisitionMetricsLevelNone {
		metrics.LogfileDatasourceLinesRead.With(prometheus.Labels{
			"source":          source,
			"datasource_type": ModuleName,
			"acquis_type":     l.src.config.Labels["type"],
		}).Inc()
	}

	evt := pipeline.MakeEvent(false, pipeline.LOG, true)
	evt.Line = pipeline.Line{
		Raw:     record,
		Src:     source,
		Time:    time.Now().UTC(),
		Labels:  l.src.config.Labels,
		Process: true,
		Module:  ModuleName,
	}

	select {
	case l.out <- evt:
	case <-l.ctx.Done():
		// consumer is gone, drop the record so the engine can wind down
	}
}

func (l *streamListener) Rotated(lastValidated, current int64) string {
	l.src.logger.Infof("rotation detected (validated offset %d, read offset %d)", lastValidated, current)

	if l.src.metricsLevel != metrics.AcquisitionMetricsLevelNone {
		metrics.LogfileDatasourceRotations.With(prometheus.Labels{
			"source":          l.src.config.Filename,
			"datasource_type": ModuleName,
		}).Inc()
	}

	if l.src.config.RotatedSuffix == "none" {
		return ""
	}

	return l.src.config.Filename + l.src.config.RotatedSuffix
}

func (l *streamListener) NotExists() {
	l.src.logger.Warningf("%s does not exist", l.src.config.Filename)
}

func (l *streamListener) HandleException(err error) {
	l.src.logger.Errorf("tailing failed: %s", err)
}
