// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

var termRestore unix.Termios

// enterRawTerm puts stdin into a raw, non-blocking mode so single key
// presses reach the keypad without echo or line buffering.
func enterRawTerm() {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		panic(err)
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), unix.TCSETS, &termstate,
	); err != nil {
		panic(err)
	}
}

// exitRawTerm restores the terminal state saved by enterRawTerm.
func exitRawTerm() {
	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), unix.TCSETS, &termRestore,
	); err != nil {
		panic(err)
	}
}
