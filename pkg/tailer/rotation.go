package tailer

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// rotationDue reports whether the tailed path was replaced. Both conditions
// are required together: a shrink alone can be truncation in place (there is
// no archived file to catch up on), and a newer creation time alone can be
// filesystem timestamp noise.
func (t *Tailer) rotationDue() (bool, error) {
	fi, err := os.Stat(t.path)
	if err != nil {
		return false, err
	}

	created, err := t.probe.CreationTime(t.path)
	if err != nil {
		return false, err
	}

	return fi.Size()+1 < t.acc.position && created.After(t.epochCreated), nil
}

// catchUp runs after a confirmed rotation. It notifies the listener, and if
// an archived path is reported, drains its remainder: the buffer is seeded
// with the carried-over pending content so a record split across the
// rotation boundary is completed instead of duplicated or dropped. Records
// recovered here are delivered with the archived path as source.
//
// The accumulator is reset for the new epoch whether or not catch-up runs.
func (t *Tailer) catchUp() error {
	archived := t.listener.Rotated(t.acc.lastValidated, t.acc.position)

	carried := t.acc.pending

	// The last read may have consumed characters of a record that was never
	// validated, so resume from whichever offset is further along.
	offset := max(t.acc.lastValidated, t.acc.position)

	t.acc.reset()

	if archived == "" {
		t.logger.Debug("rotation: no archived file reported, skipping catch-up")
		return nil
	}

	f, err := os.Open(archived)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// the tail of the old file is lost, an accepted trade-off
			t.logger.Warningf("rotation: archived file %s not found, skipping catch-up", archived)
			return nil
		}

		return err
	}
	defer f.Close()

	t.logger.Debugf("rotation: catching up on %s from offset %d", archived, offset)

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	r := bufio.NewReader(f)
	pending := carried

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

		pending += chunk

		if t.listener.IsValid(pending) {
			t.listener.Handle(archived, pending)
			pending = ""
		}

		if !terminated {
			return nil
		}
	}
}
