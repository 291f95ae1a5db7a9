//go:build windows

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// readPasswordNoEcho reads one line from the console with input echo turned
// off, restoring the previous console mode before returning.
func readPasswordNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	console := windows.Handle(stdin.Fd())
	var saved uint32
	if err := windows.GetConsoleMode(console, &saved); err != nil {
		return "", err
	}

	if err := windows.SetConsoleMode(console, saved&^windows.ENABLE_ECHO_INPUT); err != nil {
		return "", err
	}
	defer func() {
		_ = windows.SetConsoleMode(console, saved)
	}()

	return readTrimmedLine(stdin)
}
