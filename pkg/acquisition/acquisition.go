// Package acquisition wires configured datasources to the event pipeline.
//
// Acquisition is declared in YAML, one document per datasource. Each
// document is decoded twice: once into the common configuration to find the
// module to instantiate, then by the module itself for its own keys.
package acquisition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	tomb "gopkg.in/tomb.v2"

	"github.com/crowdsecurity/logtail/pkg/acquisition/configuration"
	"github.com/crowdsecurity/logtail/pkg/acquisition/registry"
	"github.com/crowdsecurity/logtail/pkg/acquisition/types"
	"github.com/crowdsecurity/logtail/pkg/metrics"
	"github.com/crowdsecurity/logtail/pkg/pipeline"
)

// DefaultModule is assumed when a datasource document has no source key.
const DefaultModule = "logfile"

// DataSourceConfigure instantiates and configures the datasource described
// by yamlConfig.
func DataSourceConfigure(ctx context.Context, yamlConfig []byte, commonConfig configuration.DataSourceCommonCfg, metricsLevel metrics.AcquisitionMetricsLevel) (types.DataSource, error) {
	factory, err := registry.LookupFactory(commonConfig.Source)
	if err != nil {
		return nil, err
	}

	dataSrc := factory()

	if err := dataSrc.CanRun(); err != nil {
		return nil, fmt.Errorf("datasource %s cannot be run: %w", commonConfig.Source, err)
	}

	subLogger := log.WithFields(log.Fields{
		"type": commonConfig.Source,
	})

	if err := dataSrc.Configure(ctx, yamlConfig, subLogger, metricsLevel); err != nil {
		return nil, fmt.Errorf("failed to configure datasource %s: %w", commonConfig.Source, err)
	}

	return dataSrc, nil
}

// LoadAcquisitionFromFile reads a multi-document acquisition YAML file and
// returns the configured datasources.
func LoadAcquisitionFromFile(ctx context.Context, path string, metricsLevel metrics.AcquisitionMetricsLevel) ([]types.DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", path, err)
	}
	defer f.Close()

	sources, err := loadAcquisition(ctx, f, metricsLevel)
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", path, err)
	}

	return sources, nil
}

func loadAcquisition(ctx context.Context, r io.Reader, metricsLevel metrics.AcquisitionMetricsLevel) ([]types.DataSource, error) {
	var sources []types.DataSource

	dec := yaml.NewDecoder(r)

	for {
		var holder map[string]any

		err := dec.Decode(&holder)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}

		if len(holder) == 0 {
			// empty document
			continue
		}

		// dump the document back to bytes so the datasource can decode its
		// own keys strictly
		inBytes, err := yaml.Marshal(holder)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal back datasource document: %w", err)
		}

		var sub configuration.DataSourceCommonCfg
		if err := yaml.Unmarshal(inBytes, &sub); err != nil {
			return nil, fmt.Errorf("invalid common configuration in %s: %w", string(inBytes), err)
		}

		if sub.Source == "" {
			sub.Source = DefaultModule
		}

		src, err := DataSourceConfigure(ctx, inBytes, sub, metricsLevel)
		if err != nil {
			return nil, err
		}

		sources = append(sources, src)
	}

	return sources, nil
}

// StartAcquisition runs every datasource under acquisTomb and blocks until
// all of them are done (which, for tailing sources, means cancellation or
// failure).
func StartAcquisition(ctx context.Context, sources []types.DataSource, output chan pipeline.Event, acquisTomb *tomb.Tomb) error {
	if len(sources) == 0 {
		return errors.New("no datasource to start")
	}

	// killing the tomb must also cancel streamers that only watch a context
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-acquisTomb.Dying()
		cancel()
	}()

	for i, subsrc := range sources {
		log.Debugf("starting source %d/%d ->> %T", i+1, len(sources), subsrc)

		switch src := subsrc.(type) {
		case types.Tailer:
			if err := src.StreamingAcquisition(ctx, output, acquisTomb); err != nil {
				return err
			}
		case types.RestartableStreamer:
			acquisTomb.Go(func() error {
				return src.Stream(streamCtx, output)
			})
		default:
			return fmt.Errorf("datasource %s does not implement a streaming interface", subsrc.GetName())
		}
	}

	return acquisTomb.Wait()
}

// RegisterDatasourceMetrics registers the collectors owned by the given
// datasources with the default prometheus registry.
func RegisterDatasourceMetrics(level metrics.MetricsLevelConfig, sources []types.DataSource) error {
	var full, aggregated []prometheus.Collector

	for _, src := range sources {
		provider, ok := src.(types.MetricsProvider)
		if !ok {
			continue
		}

		full = append(full, provider.GetMetrics()...)
		aggregated = append(aggregated, provider.GetAggregMetrics()...)
	}

	return metrics.RegisterMetrics(level, full, aggregated)
}
