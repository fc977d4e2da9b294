//go:build linux || darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// stderrIsTerminal reports whether stderr is attached to a terminal, which
// decides whether log output gets ANSI colors.
func stderrIsTerminal() bool {
	_, err := unix.IoctlGetTermios(int(os.Stderr.Fd()), termiosRequest)
	return err == nil
}
