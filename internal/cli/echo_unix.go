//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// withoutEcho runs fn with terminal echo turned off on terminal and restores
// the previous mode afterwards.
func withoutEcho(terminal *os.File, fn func() error) error {
	fd := int(terminal.Fd())
	state, err := unix.IoctlGetTermios(fd, getTermiosRequest)
	if err != nil {
		return errEchoUnsupported
	}
	restore := *state
	silent := restore
	silent.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, setTermiosRequest, &silent); err != nil {
		return err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, setTermiosRequest, &restore)
	}()
	return fn()
}
