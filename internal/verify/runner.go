// Package verify runs verification commands through a shell and reports
// whether they passed.
//
// A failure to launch the process at all is an error: it means the
// verifier itself is broken and must be escalated, not recorded as a
// failing revision. A nonzero exit from a successfully launched process
// is a plain negative result, carried in Result, not in the error.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrLaunch wraps failures to start the verifier process.
var ErrLaunch = errors.New("verifier failed to launch")

// Result is the outcome of one verifier invocation.
type Result struct {
	ExitCode int    // 0 means the revision verified successfully
	Stderr   string // captured standard error, for diagnostics
}

// Passed reports whether the invocation succeeded.
func (r Result) Passed() bool {
	return r.ExitCode == 0
}

// Runner executes a command line and reports the result.
// Implementations may bound or cancel the invocation via the context;
// the default ShellRunner imposes no timeout of its own.
type Runner interface {
	Run(ctx context.Context, cmdline string) (Result, error)
}

// ShellRunner executes command lines through a shell interpreter,
// equivalent to `sh -c "<cmdline>"`.
type ShellRunner struct {
	Shell string // interpreter to use, "sh" when empty
	Dir   string // working directory, inherited when empty
}

// Run executes cmdline and captures its exit status and stderr.
// The returned error is non-nil only when the process could not be
// started; see ErrLaunch.
func (r *ShellRunner) Run(ctx context.Context, cmdline string) (Result, error) {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", cmdline)
	cmd.Dir = r.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0, Stderr: stderr.String()}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The process launched and ran; a nonzero status is a
		// verification result, not an infrastructure failure.
		return Result{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
	}

	return Result{}, fmt.Errorf("%w: %s: %w", ErrLaunch, cmdline, err)
}

// IsLaunchFailure checks if the error indicates the verifier process
// could not be started.
func IsLaunchFailure(err error) bool {
	return errors.Is(err, ErrLaunch)
}
