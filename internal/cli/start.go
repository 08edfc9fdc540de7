// Package cli — start.go implements the "tradectl start" command.
//
// start is the environment bootstrap launcher: it resolves a conda
// installation on the host, makes sure the application environment exists
// (creating it with a pinned Python version and installing the
// requirements manifest on first run), then launches the main application
// as a foreground process inside that environment.
//
// The sequence is linear and fail-fast: the first failing step aborts with
// a non-zero status, the underlying tool's own output as the diagnostic,
// and no cleanup of partially created environment state.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/tradectl/internal/conda"
	"github.com/mmr-tortoise/tradectl/internal/config"
	"github.com/mmr-tortoise/tradectl/internal/model"
)

// NewStartCommand creates the "start" cobra command.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Bootstrap the conda environment and launch the application",
		Long: `Locate a conda installation, create the application environment if it
does not exist yet (pinned Python version, dependencies installed from the
requirements manifest), then launch the main application in the foreground.

If the environment already exists it is reused as-is: no dependency
installation is attempted. The application's exit code becomes tradectl's
exit code.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd.Context())
		},
	}
}

// runStart is the main logic function for the start command. It walks the
// five-step bootstrap sequence in order.
func runStart(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Step 1-2: Resolve the conda installation. Resolution failure exits
	// with status 1 and nothing else happens.
	install, err := conda.NewResolver().Resolve()
	if err != nil {
		return err
	}
	VerboseLog("using conda %s (root %s)", install.Exe, install.Root)

	mgr := conda.NewManager(install)

	// Step 3-4: Ensure the named environment exists, creating it and
	// installing dependencies exactly once when it does not.
	if err := ensureEnv(ctx, mgr, cfg); err != nil {
		return err
	}

	// Step 5: Launch the main application as a foreground child inside
	// the environment, inheriting the terminal.
	VerboseLog("launching %s %s in environment %q", cfg.Interpreter, cfg.MainScript, cfg.Env.Name)
	return mgr.Run(ctx, cfg.Env.Name, cfg.Interpreter, cfg.MainScript)
}

// ensureEnv checks for the named environment and performs first-time setup
// (create + install) when it is absent. An existing environment is left
// untouched — the idempotent activation path skips installation entirely.
//
// First-time setup holds a file lock so two concurrent start invocations
// cannot both create the environment; after acquiring the lock the
// existence check is repeated in case another process finished setup while
// this one was waiting.
func ensureEnv(ctx context.Context, mgr *conda.Manager, cfg *config.Config) error {
	exists, err := mgr.EnvExists(ctx, cfg.Env.Name)
	if err != nil {
		return err
	}
	if exists {
		VerboseLog("environment %q already exists, skipping setup", cfg.Env.Name)
		return nil
	}

	lockPath := filepath.Join(os.TempDir(), "tradectl-env-"+cfg.Env.Name+".lock")
	fileLock := flock.New(lockPath)
	if err := fileLock.Lock(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to acquire setup lock %q", lockPath), err)
	}
	defer func() { _ = fileLock.Unlock() }()

	// Re-check under the lock.
	exists, err = mgr.EnvExists(ctx, cfg.Env.Name)
	if err != nil {
		return err
	}
	if exists {
		VerboseLog("environment %q created by a concurrent invocation", cfg.Env.Name)
		return nil
	}

	VerboseLog("creating environment %q (python=%s)", cfg.Env.Name, cfg.Env.PythonVersion)
	if err := mgr.CreateEnv(ctx, cfg.Env.Name, cfg.Env.PythonVersion); err != nil {
		return err
	}

	VerboseLog("installing dependencies from %s", cfg.Env.Requirements)
	return mgr.InstallRequirements(ctx, cfg.Env.Name, cfg.Env.Requirements)
}
