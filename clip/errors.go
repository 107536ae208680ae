package clip

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when an export is requested while another one is running.
var ErrInFlight = errors.New("clip: export already in progress")

// LaunchError means the encoder could not be started (not installed, not executable).
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExecutionError means the encoder ran and exited non-zero. The destination may hold partial output.
type ExecutionError struct {
	Binary   string
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed (code %d)", e.Binary, e.ExitCode)
}
