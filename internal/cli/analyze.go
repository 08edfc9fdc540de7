// Package cli — analyze.go implements the "tradectl analyze" command,
// a launcher for the standalone stock analysis script.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/tradectl/internal/launcher"
	"github.com/mmr-tortoise/tradectl/internal/model"
)

// analyzeScript is the collaborator script, relative to the configured
// scripts directory.
const analyzeScript = "analyze_stock.py"

// analyzeUsage is printed to stdout when the symbol argument is missing.
var analyzeUsage = []string{
	"Usage: tradectl analyze <symbol>",
	"Example: tradectl analyze 601212",
}

// NewAnalyzeCommand creates the "analyze" cobra command.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Run the technical analysis script for a symbol",
		Long: `Forward a symbol to the external analysis script, which fetches market
data and prints a technical report. The symbol is passed through as an
opaque string; the script's exit code becomes tradectl's exit code.

Example:
  tradectl analyze 601212`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := model.AnalyzeRequestFromArgs(args)
			if err != nil {
				return usageError(cmd, analyzeUsage...)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			script := cfg.ScriptPath(analyzeScript)
			VerboseLog("forwarding to %s %s", cfg.Interpreter, script)

			l := launcher.New(cfg.Interpreter)
			return l.Forward(cmd.Context(), script, req.Args()...)
		},
	}
}
