package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
)

// Runner executes a git subcommand in dir and returns its combined output and
// exit code. err is non-nil when the process could not be started or exited
// non-zero.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (output string, exitCode int, err error)
}

// ExecRunner runs the git executable found on PATH.
type ExecRunner struct {
	// Binary overrides the executable name; empty means "git".
	Binary string
}

func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, int, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec // args are built by Syncer
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err == nil {
		return buf.String(), 0, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return buf.String(), exitErr.ExitCode(), err
	}
	return buf.String(), -1, err
}
