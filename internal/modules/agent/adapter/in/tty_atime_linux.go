//go:build linux

package in

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func accessTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	sec, nsec := st.Atim.Unix()
	return time.Unix(sec, nsec), nil
}

func stdinPath() (string, error) {
	return os.Readlink("/proc/self/fd/0")
}
