package logfileacquisition

import (
	"context"

	"gopkg.in/tomb.v2"

	"github.com/crowdsecurity/logtail/pkg/pipeline"
	"github.com/crowdsecurity/logtail/pkg/tailer"
)

func (s *Source) StreamingAcquisition(ctx context.Context, out chan pipeline.Event, acquisTomb *tomb.Tomb) error {
	tombCtx, cancel := context.WithCancel(ctx)

	go func() {
		<-acquisTomb.Dying()
		cancel()
	}()

	acquisTomb.Go(func() error {
		defer cancel()
		return s.Stream(tombCtx, out)
	})

	return nil
}

// Stream tails the configured file until ctx is canceled, emitting one event
// per framed record. The tailing engine runs on its own goroutine so the
// cancellation can be observed while the engine is mid-sleep.
func (s *Source) Stream(ctx context.Context, out chan pipeline.Event) error {
	l := &streamListener{
		src: s,
		out: out,
		ctx: ctx,
	}

	t, err := tailer.New(l, s.pollInterval(), s.config.Filename, tailer.WithLogger(s.logger))
	if err != nil {
		return err
	}

	s.logger.Infof("starting tail of %s", s.config.Filename)

	done := make(chan error, 1)

	go func() {
		done <- t.Run()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("datasource stopping")
		t.Stop()
		// let the poll loop observe the stop
		<-done

		return nil
	case err := <-done:
		return err
	}
}
