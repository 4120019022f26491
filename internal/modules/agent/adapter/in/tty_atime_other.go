//go:build !linux

package in

import (
	"os"
	"time"
)

// Without a portable atime, modification time is the closest signal.
func accessTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// /dev/stdin resolves through the descriptor, so stat reaches the terminal.
func stdinPath() (string, error) {
	return os.Stdin.Name(), nil
}
