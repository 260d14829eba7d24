//go:build !no_datasource_logfile

package acquisition

import (
	// registers the logfile datasource factory
	_ "github.com/crowdsecurity/logtail/pkg/acquisition/modules/logfile"
)
