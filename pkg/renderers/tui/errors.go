package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedField is returned for fields the session cannot prompt.
	ErrUnsupportedField = errors.New("tui: unsupported field")
)

// ErrTooManyAttempts is returned when a field stays invalid after the
// configured number of prompts.
var ErrTooManyAttempts = errors.New("tui: too many attempts")

// errRetry asks the session to prompt the current field again.
var errRetry = errors.New("tui: retry field")
