// Package cli implements the cobra-based CLI commands for tradectl.
//
// Each subcommand (add-holding, add-cash, sell-holding, analyze, start) is
// defined in its own file within this package. This file defines the root
// command that serves as the parent for all subcommands and handles global
// flags and exit-code translation.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/tradectl/internal/config"
	"github.com/mmr-tortoise/tradectl/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput switches error reporting to structured JSON on stderr.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	verbose bool

	// configPath overrides the config file discovery in the working
	// directory. Empty means discover.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only provides
// help text and global flags. Actual functionality is provided by the
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tradectl",
		Short: "Launchers for the auto-trade toolkit",
		Long: `tradectl validates command-line arguments and forwards them to the
auto-trade Python collaborator scripts, and bootstraps the isolated conda
environment the main application runs in.

tradectl owns no trading or bookkeeping logic: every command is a thin
launcher around an external process, and the external process's exit code
becomes tradectl's exit code.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// The launchers print their own usage text per their contract.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats errors itself (text or JSON based on --json).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output errors in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a tradectl config file (default: discover in working directory)")

	// Register subcommands. Each subcommand is defined in its own file
	// and returns a *cobra.Command.
	rootCmd.AddCommand(NewAddHoldingCommand())
	rootCmd.AddCommand(NewAddCashCommand())
	rootCmd.AddCommand(NewSellHoldingCommand())
	rootCmd.AddCommand(NewAnalyzeCommand())
	rootCmd.AddCommand(NewStartCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Error translation:
//   - model.ExitStatusError exits with the carried code and prints
//     nothing: either the command already printed its usage text, or the
//     error propagates a child process whose own output is the diagnostic.
//   - model.CLIError prints the message and exits with the carried code.
//   - anything else prints the message and exits with code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *model.ExitStatusError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}

		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// loadConfig resolves the effective configuration for a command run:
// the --config flag wins, otherwise the working directory is probed for
// a config file, otherwise built-in defaults apply.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to determine working directory", err)
	}
	return config.Discover(dir)
}

// usageError prints the given usage lines to the command's stdout and
// returns an error that exits with status 1 without further output.
//
// Usage text goes to stdout, not stderr; scripted callers depend on it.
func usageError(cmd *cobra.Command, lines ...string) error {
	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return &model.ExitStatusError{Code: model.ExitGeneralError}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
