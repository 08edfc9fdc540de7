package conda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/tradectl/internal/model"
)

// Manager drives a resolved conda installation through its CLI.
//
// All operations shell out to the conda executable. Setup operations
// (create, install) stream their output to the Manager's stdio so the
// underlying tool's own messages are the diagnostic, per the launcher's
// fail-fast error model: the first failing step aborts the sequence with
// no cleanup of partially created environment state.
type Manager struct {
	install *Installation

	// Stdin, Stdout and Stderr are wired to child processes for the
	// streaming operations (CreateEnv, InstallRequirements, Run).
	// They default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewManager creates a Manager for the given installation with inherited
// stdio.
func NewManager(install *Installation) *Manager {
	return &Manager{
		install: install,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// envList mirrors the JSON document printed by `conda env list --json`:
// a single "envs" array of absolute environment prefixes.
type envList struct {
	Envs []string `json:"envs"`
}

// EnvExists reports whether a named environment is present in the
// installation's environment listing.
//
// Named environments appear as prefixes ending in envs/<name>; the install
// root itself is the implicit "base" environment.
func (m *Manager) EnvExists(ctx context.Context, name string) (bool, error) {
	out, err := m.capture(ctx, "env", "list", "--json")
	if err != nil {
		return false, err
	}

	var list envList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		return false, model.WrapCLIError(model.ExitGeneralError,
			"failed to parse conda env list output", err)
	}

	for _, prefix := range list.Envs {
		if filepath.Base(prefix) == name {
			return true, nil
		}
		if name == "base" && prefix == m.install.Root {
			return true, nil
		}
	}
	return false, nil
}

// CreateEnv creates a new named environment with a pinned Python version:
// `conda create -y -n <name> python=<version>`.
func (m *Manager) CreateEnv(ctx context.Context, name, pythonVersion string) error {
	err := m.stream(ctx, "create", "-y", "-n", name, "python="+pythonVersion)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create environment %q", name), err)
	}
	return nil
}

// InstallRequirements installs the requirements manifest into the named
// environment via pip: `conda run -n <name> python -m pip install -r <manifest>`.
func (m *Manager) InstallRequirements(ctx context.Context, name, manifest string) error {
	err := m.stream(ctx, "run", "-n", name, "python", "-m", "pip", "install", "-r", manifest)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to install dependencies from %q into environment %q", manifest, name), err)
	}
	return nil
}

// Run executes a command inside the named environment as a foreground
// child with inherited stdio:
// `conda run --no-capture-output -n <name> <argv...>`.
//
// --no-capture-output keeps the child attached to the terminal instead of
// letting conda buffer its streams, which matters for the long-running
// main application.
//
// A non-zero child exit status is returned as a model.ExitStatusError so
// the process exits with the same code.
func (m *Manager) Run(ctx context.Context, name string, argv ...string) error {
	args := append([]string{"run", "--no-capture-output", "-n", name}, argv...)

	// #nosec G204 — argv comes from configuration, not user input.
	cmd := exec.CommandContext(ctx, m.install.Exe, args...)
	cmd.Stdin = m.Stdin
	cmd.Stdout = m.Stdout
	cmd.Stderr = m.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// A child killed by a signal has no exit status (ExitCode reports -1)
	// and is normalized to a general error.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &model.ExitStatusError{Code: model.ExitCodeFromChild(exitErr.ExitCode())}
	}
	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("failed to run command in environment %q", name), err)
}

// capture runs a conda subcommand and returns its stdout. Stderr is kept
// separate so it can be included in error messages.
func (m *Manager) capture(ctx context.Context, args ...string) (string, error) {
	// #nosec G204 — args are constructed internally, not from user input.
	cmd := exec.CommandContext(ctx, m.install.Exe, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("conda %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String())), err)
	}
	return stdout.String(), nil
}

// stream runs a conda subcommand attached to the Manager's stdio, so the
// tool's own progress output and error text reach the user directly.
func (m *Manager) stream(ctx context.Context, args ...string) error {
	// #nosec G204 — args are constructed internally, not from user input.
	cmd := exec.CommandContext(ctx, m.install.Exe, args...)
	cmd.Stdin = m.Stdin
	cmd.Stdout = m.Stdout
	cmd.Stderr = m.Stderr
	return cmd.Run()
}
