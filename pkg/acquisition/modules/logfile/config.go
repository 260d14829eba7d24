package logfileacquisition

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	yaml "github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"github.com/crowdsecurity/logtail/pkg/acquisition/configuration"
	"github.com/crowdsecurity/logtail/pkg/metrics"
)

const defaultPollInterval = time.Second

// default archived-name policy: logrotate's "file.1"
const defaultRotatedSuffix = ".1"

type Configuration struct {
	configuration.DataSourceCommonCfg `yaml:",inline"`

	Filename string `yaml:"filename"`

	// PollInterval is the sleep between poll iterations when no new data is
	// available.
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`

	// RecordRegexp frames records: text accumulates until it matches. Empty
	// means every line is a record.
	RecordRegexp string `yaml:"record_regexp,omitempty"`

	// RotatedSuffix names the archived file after a rotation
	// (filename + suffix). Set to "none" to skip catch-up entirely.
	RotatedSuffix string `yaml:"rotated_suffix,omitempty"`
}

func ConfigurationFromYAML(y []byte) (Configuration, error) {
	var cfg Configuration

	if err := yaml.UnmarshalWithOptions(y, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("cannot parse: %s", yaml.FormatError(err, false, false))
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Configuration) SetDefaults() {
	if c.Mode == "" {
		c.Mode = configuration.TAIL_MODE
	}

	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}

	if c.RotatedSuffix == "" {
		c.RotatedSuffix = defaultRotatedSuffix
	}
}

func (c *Configuration) Validate() error {
	if c.Filename == "" {
		return errors.New("filename is required")
	}

	if c.PollInterval < 0 {
		return errors.New("poll_interval must not be negative")
	}

	if c.Mode != configuration.TAIL_MODE {
		return fmt.Errorf("unsupported mode %s for logfile source", c.Mode)
	}

	return nil
}

func (s *Source) UnmarshalConfig(yamlConfig []byte) error {
	cfg, err := ConfigurationFromYAML(yamlConfig)
	if err != nil {
		return err
	}

	if cfg.RecordRegexp != "" {
		re, err := regexp.Compile(cfg.RecordRegexp)
		if err != nil {
			return fmt.Errorf("could not compile record_regexp: %w", err)
		}

		s.recordRE = re
	}

	s.config = cfg

	return nil
}

func (s *Source) Configure(_ context.Context, yamlConfig []byte, logger *log.Entry, metricsLevel metrics.AcquisitionMetricsLevel) error {
	if err := s.UnmarshalConfig(yamlConfig); err != nil {
		return err
	}

	var level log.Level
	if s.config.LogLevel != nil {
		level = *s.config.LogLevel
	}

	s.setLogger(logger, level)
	s.metricsLevel = metricsLevel

	return nil
}
