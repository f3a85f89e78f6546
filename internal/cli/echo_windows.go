//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

func withoutEcho(terminal *os.File, fn func() error) error {
	handle := windows.Handle(terminal.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return errEchoUnsupported
	}
	if err := windows.SetConsoleMode(handle, mode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, mode)
	}()
	return fn()
}
