//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// readPasswordNoEcho disables echo on a terminal. Piped input is read as is.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	fd := int(stdin.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if errors.Is(err, unix.ENOTTY) {
		return readSecretLine(stdin)
	}
	if err != nil {
		return nil, err
	}
	restore := *termios
	silenced := restore
	silenced.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &silenced); err != nil {
		return nil, err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, ioctlSetTermios, &restore)
	}()

	return readSecretLine(stdin)
}
