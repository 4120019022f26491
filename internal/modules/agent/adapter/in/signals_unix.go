//go:build unix

package in

import (
	"os"

	"golang.org/x/sys/unix"
)

var (
	quitSignals = []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP}
	showSignals = []os.Signal{unix.SIGUSR1}
)
