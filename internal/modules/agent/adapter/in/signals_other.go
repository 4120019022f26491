//go:build !unix

package in

import "os"

var (
	quitSignals = []os.Signal{os.Interrupt}
	showSignals []os.Signal
)
