//go:build !windows

// Package shutdown registers the termination signals that end the hotkey
// loop. In-flight pipeline runs are abandoned, not drained.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
