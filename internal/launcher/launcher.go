// Package launcher forwards validated CLI arguments to external
// interpreter scripts.
//
// This is the core contract of the add-holding/add-cash family of
// commands: invoke a fixed interpreter with a fixed script path and the
// received arguments appended, preserving argument boundaries (an argument
// containing whitespace stays a single argument). There is no output
// transformation, no retry, and no timeout; the child's exit status
// becomes the process exit status.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mmr-tortoise/tradectl/internal/model"
)

// Launcher invokes an external interpreter with a script and arguments.
//
// Stdio defaults to the process's own streams so the child owns the
// terminal for the duration of the run. The fields are exported so tests
// can capture output instead.
type Launcher struct {
	// Interpreter is the executable invoked for every forwarded script,
	// e.g. "python".
	Interpreter string

	// Stdin, Stdout and Stderr are handed to the child process verbatim.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Launcher for the given interpreter with inherited stdio.
func New(interpreter string) *Launcher {
	return &Launcher{
		Interpreter: interpreter,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Forward runs the interpreter with the script path and all arguments
// appended, in order, with no alteration.
//
// The call blocks until the child exits. A non-zero child exit status is
// returned as a model.ExitStatusError carrying that status, so the CLI
// layer exits with the same code and prints nothing further — the child's
// own output is the only diagnostic. Failing to start the child at all
// (interpreter missing, script path unreadable by the OS) is a local
// error and is wrapped in a model.CLIError with exit code 1.
func (l *Launcher) Forward(ctx context.Context, script string, args ...string) error {
	argv := append([]string{script}, args...)

	// #nosec G204 — interpreter and script come from configuration, the
	// remaining args are forwarded verbatim by contract.
	cmd := exec.CommandContext(ctx, l.Interpreter, argv...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// The child ran and exited non-zero: propagate its status. A child
	// killed by a signal has no exit status (ExitCode reports -1) and is
	// normalized to a general error.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &model.ExitStatusError{Code: model.ExitCodeFromChild(exitErr.ExitCode())}
	}

	// The child never ran (exec failure). This is a local error.
	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("failed to launch %s %s", l.Interpreter, script), err)
}
