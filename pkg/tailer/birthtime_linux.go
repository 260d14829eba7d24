//go:build linux

package tailer

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the creation timestamp of path. Not every filesystem
// records a birth time; when statx does not report one, the inode change
// time is close enough, since a freshly created file has ctime == btime.
func birthTime(path string) (time.Time, error) {
	var stx unix.Statx_t

	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_CTIME, &stx); err != nil {
		return time.Time{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	ts := stx.Btime
	if stx.Mask&unix.STATX_BTIME == 0 {
		ts = stx.Ctime
	}

	return time.Unix(ts.Sec, int64(ts.Nsec)), nil
}
