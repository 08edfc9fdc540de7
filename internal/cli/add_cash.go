// Package cli — add_cash.go implements the "tradectl add-cash" command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/tradectl/internal/launcher"
	"github.com/mmr-tortoise/tradectl/internal/model"
)

// addCashScript is the collaborator script, relative to the configured
// scripts directory.
const addCashScript = "add_cash.py"

// addCashUsage is printed to stdout when the amount argument is missing.
var addCashUsage = []string{
	"Usage: tradectl add-cash <amount>",
	"Example: tradectl add-cash 10000",
}

// NewAddCashCommand creates the "add-cash" cobra command.
//
// Same forwarding contract as add-holding: one required positional
// argument, passed through as an opaque string.
func NewAddCashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-cash <amount>",
		Short: "Deposit cash through the bookkeeping script",
		Long: `Forward a cash-addition request to the external bookkeeping script.

The amount is passed through as an opaque string — tradectl does no numeric
validation. The script's exit code becomes tradectl's exit code.

Example:
  tradectl add-cash 10000`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := model.CashRequestFromArgs(args)
			if err != nil {
				return usageError(cmd, addCashUsage...)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			script := cfg.ScriptPath(addCashScript)
			VerboseLog("forwarding to %s %s", cfg.Interpreter, script)

			l := launcher.New(cfg.Interpreter)
			return l.Forward(cmd.Context(), script, req.Args()...)
		},
	}
}
