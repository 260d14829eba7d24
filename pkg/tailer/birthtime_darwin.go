//go:build darwin

package tailer

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func birthTime(path string) (time.Time, error) {
	var st unix.Stat_t

	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), nil
}
