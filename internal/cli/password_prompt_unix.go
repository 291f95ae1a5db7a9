//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// readPasswordNoEcho reads one line from stdin with terminal echo turned
// off, restoring the previous terminal state before returning.
func readPasswordNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	descriptor := int(stdin.Fd())
	saved, err := unix.IoctlGetTermios(descriptor, getTermiosRequest)
	if err != nil {
		return "", err
	}

	muted := *saved
	muted.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(descriptor, setTermiosRequest, &muted); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(descriptor, setTermiosRequest, saved)
	}()

	return readTrimmedLine(stdin)
}
