//go:build !linux && !darwin && !windows

package tailer

import (
	"os"
	"time"
)

// birthTime falls back to the modification time on platforms without a
// usable creation timestamp. Rotation detection still works because a file
// recreated at the tailed path starts with a fresh mtime.
func birthTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}

	return fi.ModTime(), nil
}
