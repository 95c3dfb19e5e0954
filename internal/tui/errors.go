package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when a session is started without a prompt driver.
	ErrNoDriver = errors.New("tui: no prompt driver")
)
