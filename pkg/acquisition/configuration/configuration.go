package configuration

import (
	log "github.com/sirupsen/logrus"
)

// DataSourceCommonCfg is the configuration shared by every datasource,
// inlined at the top of each module's own configuration struct.
type DataSourceCommonCfg struct {
	Mode       string            `yaml:"mode,omitempty"`
	Labels     map[string]string `yaml:"labels,omitempty"`
	LogLevel   *log.Level        `yaml:"log_level,omitempty"`
	Source     string            `yaml:"source,omitempty"`
	ConfigFile string            `yaml:"-"`
	UniqueId   string            `yaml:"unique_id,omitempty"`
}

const (
	TAIL_MODE = "tail"
	CAT_MODE  = "cat"
)
