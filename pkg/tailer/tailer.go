// Package tailer follows the tail of a growing text file and delivers
// complete logical records to a Listener. It tolerates file rotation
// (rename-and-recreate by an external log management tool) and slow writers
// that emit a record a few bytes at a time.
//
// Record framing is delegated to the listener: the engine accumulates read
// chunks in a pending buffer and asks Listener.IsValid after each one;
// a positive answer delivers the accumulated record and resets the buffer.
package tailer

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Tailer follows a single file. It owns its file handle and position state
// exclusively and performs no internal parallelism: Run is a blocking call,
// meant to be placed on its own goroutine by the caller, and every listener
// callback happens inline on that goroutine. Instances share no state; tail
// several files by running several Tailers.
type Tailer struct {
	listener     Listener
	pollInterval time.Duration
	path         string

	logger *log.Entry
	probe  *MetadataProbe

	acc          recordAccumulator
	epochCreated time.Time

	running atomic.Bool
}

type Option func(*Tailer)

// WithLogger replaces the default sublogger.
func WithLogger(logger *log.Entry) Option {
	return func(t *Tailer) {
		t.logger = logger
	}
}

// WithMetadataProbe replaces the default creation-time probe, mostly useful
// to tighten the retry policy in tests.
func WithMetadataProbe(probe *MetadataProbe) Option {
	return func(t *Tailer) {
		t.probe = probe
	}
}

// New validates the configuration and builds a Tailer. No I/O happens until
// Run is called. A nil listener is a caller bug and fails construction.
func New(listener Listener, pollInterval time.Duration, path string, opts ...Option) (*Tailer, error) {
	if listener == nil {
		return nil, &ConfigurationError{Reason: "listener is required"}
	}

	if pollInterval < 0 {
		return nil, &ConfigurationError{Reason: "poll interval must not be negative"}
	}

	t := &Tailer{
		listener:     listener,
		pollInterval: pollInterval,
		path:         path,
		probe:        newMetadataProbe(),
	}
	t.running.Store(true)

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = log.WithFields(log.Fields{
			"component": "tailer",
			"file":      path,
		})
	}

	return t, nil
}

// Stop requests cooperative shutdown. It is observed at the top of the next
// poll iteration: an in-flight read or sleep finishes first, so stopping can
// take up to one poll interval plus one read.
func (t *Tailer) Stop() {
	t.running.Store(false)
}

// Run tails the file until Stop is called or a fatal error occurs. If the
// file does not exist at startup, the listener is notified through NotExists
// and a *NotFoundError is returned; the listener's Rotated hook is never
// invoked in that case.
func (t *Tailer) Run() error {
	if _, err := os.Stat(t.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.listener.NotExists()
			return &NotFoundError{Path: t.path, Err: err}
		}

		return t.fatal(err)
	}

	reopen := true
	for reopen && t.running.Load() {
		var err error

		reopen, err = t.followFile()
		if err != nil {
			return err
		}

		t.sleep()
	}

	return nil
}

// followFile opens the tailed path and reads it until the run is stopped or
// a rotation is confirmed. It reports whether the path should be reopened.
func (t *Tailer) followFile() (bool, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// the new file may not be in place yet after a rotation
			t.logger.Debugf("%s is gone, waiting for it to reappear", t.path)
			return true, nil
		}

		return false, t.fatal(err)
	}
	defer f.Close()

	created, err := t.probe.CreationTime(t.path)
	if err != nil {
		return false, t.fatal(err)
	}

	t.epochCreated = created
	t.logger.Debugf("opened %s, epoch %s", t.path, created)

	r := bufio.NewReader(f)

	for t.running.Load() {
		rotated, err := t.rotationDue()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Rotation tools routinely unlink and recreate the tailed
				// path; a brief missing window is expected, not fatal.
				t.logger.Debugf("%s vanished mid-tail, retrying", t.path)
				t.sleep()

				continue
			}

			return false, t.fatal(err)
		}

		if rotated {
			if err := t.catchUp(); err != nil {
				return false, t.fatal(err)
			}

			t.sleep()

			return true, nil
		}

		if err := t.drain(r); err != nil {
			return false, t.fatal(err)
		}

		t.sleep()
	}

	return false, nil
}

// drain consumes every line currently available from the open handle. A
// chunk without a terminator (the writer is mid-record) is accumulated too,
// so a slow writer's partial output is validated as soon as it arrives.
func (t *Tailer) drain(r *bufio.Reader) error {
	for {
		data, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		terminated := strings.HasSuffix(data, "\n")

		chunk := strings.TrimSuffix(data, "\n")
		if chunk == "" && !terminated {
			return nil
		}

		t.acc.append(chunk, terminated)

		if t.listener.IsValid(t.acc.pending) {
			t.listener.Handle(t.path, t.acc.pending)
			t.acc.markDelivered()
		}

		if !terminated {
			return nil
		}
	}
}

// fatal reports err to the listener, then wraps it for the caller.
func (t *Tailer) fatal(err error) error {
	t.logger.Errorf("fatal: %s", err)
	t.listener.HandleException(err)

	return &FatalIOError{Path: t.path, Err: err}
}

func (t *Tailer) sleep() {
	time.Sleep(t.pollInterval)
}
