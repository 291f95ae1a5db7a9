//go:build linux

package cli

import "golang.org/x/sys/unix"

// Linux spells the termios ioctls TCGETS/TCSETS.
const (
	getTermiosRequest = unix.TCGETS
	setTermiosRequest = unix.TCSETS
)
