package conda

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/tradectl/internal/model"
)

// fakeConda writes an executable shell script that impersonates the conda
// CLI. Every invocation appends its full argument list as one line to
// recordPath. `env list --json` prints the given JSON document; every
// other subcommand exits with exitCode.
func fakeConda(t *testing.T, envListJSON string, exitCode string) (*Installation, string) {
	t.Helper()

	dir := t.TempDir()
	recordPath := filepath.Join(dir, "invocations.log")
	exe := filepath.Join(dir, "conda")

	script := `#!/bin/sh
echo "$@" >> "` + recordPath + `"
if [ "$1" = "env" ] && [ "$2" = "list" ]; then
	cat <<'EOF'
` + envListJSON + `
EOF
	exit 0
fi
exit ` + exitCode + `
`
	require.NoError(t, os.WriteFile(exe, []byte(script), 0755))

	return &Installation{Exe: exe, Root: dir}, recordPath
}

// invocations returns the recorded conda argument lines, one per call.
func invocations(t *testing.T, recordPath string) []string {
	t.Helper()
	data, err := os.ReadFile(recordPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// TestEnvExists verifies environment listing against the JSON document
// conda prints, including the implicit base environment.
func TestEnvExists(t *testing.T) {
	install, _ := fakeConda(t, `{"envs": ["/opt/miniconda3", "/opt/miniconda3/envs/auto_trade"]}`, "0")
	// Align the install root with the fixture so the base check applies.
	install.Root = "/opt/miniconda3"
	m := NewManager(install)

	tests := []struct {
		name string
		env  string
		want bool
	}{
		{name: "named environment present", env: "auto_trade", want: true},
		{name: "named environment absent", env: "contest_trade", want: false},
		{name: "base environment is the install root", env: "base", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.EnvExists(context.Background(), tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestEnvExistsBadJSON verifies that unparsable listing output is a local
// error, not a silent "absent".
func TestEnvExistsBadJSON(t *testing.T) {
	install, _ := fakeConda(t, `not json at all`, "0")
	m := NewManager(install)

	_, err := m.EnvExists(context.Background(), "auto_trade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse conda env list output")
}

// TestEnvExistsCommandFailure verifies that a failing conda invocation
// surfaces its stderr in the error message.
func TestEnvExistsCommandFailure(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "conda")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\necho 'CondaError: broken' >&2\nexit 2\n"), 0755))

	m := NewManager(&Installation{Exe: exe, Root: dir})
	_, err := m.EnvExists(context.Background(), "auto_trade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CondaError: broken")
}

// TestCreateEnv verifies the exact conda create invocation, including the
// pinned Python version.
func TestCreateEnv(t *testing.T) {
	install, record := fakeConda(t, `{"envs": []}`, "0")
	m := NewManager(install)
	m.Stdout = &bytes.Buffer{}
	m.Stderr = &bytes.Buffer{}

	require.NoError(t, m.CreateEnv(context.Background(), "auto_trade", "3.10"))
	assert.Equal(t, []string{"create -y -n auto_trade python=3.10"}, invocations(t, record))
}

// TestCreateEnvFailure verifies fail-fast behavior: the error carries
// exit code 1 and the environment name.
func TestCreateEnvFailure(t *testing.T) {
	install, _ := fakeConda(t, `{"envs": []}`, "1")
	m := NewManager(install)
	m.Stdout = &bytes.Buffer{}
	m.Stderr = &bytes.Buffer{}

	err := m.CreateEnv(context.Background(), "auto_trade", "3.10")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.Contains(t, cliErr.Error(), `environment "auto_trade"`)
}

// TestInstallRequirements verifies the pip invocation routed through
// conda run.
func TestInstallRequirements(t *testing.T) {
	install, record := fakeConda(t, `{"envs": []}`, "0")
	m := NewManager(install)
	m.Stdout = &bytes.Buffer{}
	m.Stderr = &bytes.Buffer{}

	require.NoError(t, m.InstallRequirements(context.Background(), "auto_trade", "requirements.txt"))
	assert.Equal(t,
		[]string{"run -n auto_trade python -m pip install -r requirements.txt"},
		invocations(t, record))
}

// TestRun verifies the foreground launch invocation and that output
// streams through the Manager's stdio.
func TestRun(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "conda")
	// Echo the args so the test can assert both the invocation shape and
	// the stdout wiring in one pass.
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\necho \"$@\"\n"), 0755))

	var out bytes.Buffer
	m := NewManager(&Installation{Exe: exe, Root: dir})
	m.Stdout = &out
	m.Stderr = &bytes.Buffer{}

	err := m.Run(context.Background(), "auto_trade", "python", "auto_trade/main.py")
	require.NoError(t, err)
	assert.Equal(t,
		"run --no-capture-output -n auto_trade python auto_trade/main.py\n",
		out.String())
}

// TestRunSignalTermination verifies that a signal-killed application
// (no exit status to propagate) is reported as a general error rather
// than a negative exit code.
func TestRunSignalTermination(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "conda")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\nkill -KILL $$\n"), 0755))

	m := NewManager(&Installation{Exe: exe, Root: dir})
	m.Stdout = &bytes.Buffer{}
	m.Stderr = &bytes.Buffer{}

	err := m.Run(context.Background(), "auto_trade", "python", "auto_trade/main.py")
	require.Error(t, err)

	var exitErr *model.ExitStatusError
	require.True(t, errors.As(err, &exitErr), "expected ExitStatusError, got %T", err)
	assert.Equal(t, model.ExitGeneralError, exitErr.Code)
}

// TestRunPropagatesExitCode verifies that the main application's exit
// status passes through unchanged as an ExitStatusError.
func TestRunPropagatesExitCode(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "conda")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\nexit 3\n"), 0755))

	m := NewManager(&Installation{Exe: exe, Root: dir})
	m.Stdout = &bytes.Buffer{}
	m.Stderr = &bytes.Buffer{}

	err := m.Run(context.Background(), "auto_trade", "python", "auto_trade/main.py")
	require.Error(t, err)

	var exitErr *model.ExitStatusError
	require.True(t, errors.As(err, &exitErr), "expected ExitStatusError, got %T", err)
	assert.Equal(t, model.ExitCode(3), exitErr.Code)
}
