package tailer

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	metadataMaxTries = 3
	metadataDelay    = 100 * time.Millisecond
)

// MetadataProbe reads a file's creation timestamp, retrying a bounded number
// of times when the file is momentarily absent (e.g. during an external
// rename). The retry policy is fixed-delay, not exponential: the window we
// are waiting out is a rename, not a remote outage.
type MetadataProbe struct {
	MaxTries uint
	Delay    time.Duration
}

func newMetadataProbe() *MetadataProbe {
	return &MetadataProbe{
		MaxTries: metadataMaxTries,
		Delay:    metadataDelay,
	}
}

// CreationTime returns the creation timestamp of the file at path. If the
// file is still absent after the retry budget is exhausted, the last
// fs.ErrNotExist is returned; any other stat failure aborts immediately.
func (p *MetadataProbe) CreationTime(path string) (time.Time, error) {
	op := func() (time.Time, error) {
		ts, err := birthTime(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return time.Time{}, err
			}
			return time.Time{}, backoff.Permanent(err)
		}
		return ts, nil
	}

	return backoff.Retry(context.Background(), op,
		backoff.WithBackOff(backoff.NewConstantBackOff(p.Delay)),
		backoff.WithMaxTries(p.MaxTries))
}
