//go:build windows

package tailer

import (
	"os"
	"syscall"
	"time"
)

func birthTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}

	attr, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return fi.ModTime(), nil
	}

	return time.Unix(0, attr.CreationTime.Nanoseconds()), nil
}
