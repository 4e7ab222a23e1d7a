package tuidrive

import (
	"errors"
	"fmt"
)

// ErrNotRunning is returned by operations that need an active session.
var ErrNotRunning = errors.New("tuidrive: no active session")

// SpawnError reports that the target process could not be started, either
// because the executable was not found or because pty allocation failed.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("tuidrive: start %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// SendError reports a failed write to the session pty, typically a broken
// pipe after the process has gone away.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("tuidrive: send: %v", e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
