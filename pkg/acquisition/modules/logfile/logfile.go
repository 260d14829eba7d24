// Package logfileacquisition exposes the tailing engine as an acquisition
// datasource: records read from a rotated-aware file tail are bridged to an
// event channel for the rest of the pipeline.
package logfileacquisition

import (
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/crowdsecurity/logtail/pkg/metrics"
)

type Source struct {
	config       Configuration
	logger       *log.Entry
	metricsLevel metrics.AcquisitionMetricsLevel

	// compiled from record_regexp, nil means every line is a record
	recordRE *regexp.Regexp
}

func (s *Source) GetMode() string {
	return s.config.Mode
}

func (s *Source) GetName() string {
	return ModuleName
}

func (s *Source) GetUuid() string {
	return s.config.UniqueId
}

func (*Source) CanRun() error {
	return nil
}

func (s *Source) pollInterval() time.Duration {
	if s.config.PollInterval <= 0 {
		return defaultPollInterval
	}

	return s.config.PollInterval
}

func (s *Source) setLogger(logger *log.Entry, level log.Level) {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	if level != 0 {
		l := log.New()
		l.SetFormatter(logger.Logger.Formatter)
		l.SetLevel(level)
		logger = l.WithFields(logger.Data)
	}

	s.logger = logger.WithFields(log.Fields{
		"type": ModuleName,
		"file": s.config.Filename,
	})
}
