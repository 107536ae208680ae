package clip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Runner runs an external command to completion and reports its exit code and stderr.
// A non-nil error means the command could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (exitCode int, stderr []byte, err error)
}

// ExecRunner is a Runner backed by os/exec.
type ExecRunner struct{}

// Run starts name with args and drains stderr before waiting, so a chatty encoder cannot block on a full pipe.
func (ExecRunner) Run(ctx context.Context, name string, args []string) (int, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return -1, nil, err
	}

	out, readErr := io.ReadAll(stderr)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), out, nil
		}
		return -1, out, err
	}
	if readErr != nil {
		return 0, out, fmt.Errorf("failed to read stderr: %w", readErr)
	}

	return 0, out, nil
}
