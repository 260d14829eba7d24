package logfileacquisition

import (
	"github.com/crowdsecurity/logtail/pkg/acquisition/registry"
	"github.com/crowdsecurity/logtail/pkg/acquisition/types"
)

var (
	// verify interface compliance
	_ types.DataSource          = (*Source)(nil)
	_ types.RestartableStreamer = (*Source)(nil)
	_ types.Tailer              = (*Source)(nil)
	_ types.MetricsProvider     = (*Source)(nil)
)

const ModuleName = "logfile"

//nolint:gochecknoinits
func init() {
	registry.RegisterFactory(ModuleName, func() types.DataSource { return &Source{} })
}
