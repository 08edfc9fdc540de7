// Package cli — sell_holding.go implements the "tradectl sell-holding"
// command, the sell-side counterpart of add-holding.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/tradectl/internal/launcher"
	"github.com/mmr-tortoise/tradectl/internal/model"
)

// sellHoldingScript is the collaborator script, relative to the configured
// scripts directory.
const sellHoldingScript = "sell_holding.py"

// sellHoldingUsage is printed to stdout when required arguments are missing.
var sellHoldingUsage = []string{
	"Usage: tradectl sell-holding <code> <unit_price> <quantity>",
	"Example: tradectl sell-holding 601212 4.10 500",
}

// NewSellHoldingCommand creates the "sell-holding" cobra command.
func NewSellHoldingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sell-holding <code> <unit_price> <quantity>",
		Short: "Record a manual sell through the bookkeeping script",
		Long: `Forward a holding-sale request to the external bookkeeping script.

All three arguments are passed through as opaque strings. Position checks,
proceeds calculation, and portfolio mutation happen in the script; its exit
code becomes tradectl's exit code.

Example:
  tradectl sell-holding 601212 4.10 500`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := model.SellRequestFromArgs(args)
			if err != nil {
				return usageError(cmd, sellHoldingUsage...)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			script := cfg.ScriptPath(sellHoldingScript)
			VerboseLog("forwarding to %s %s", cfg.Interpreter, script)

			l := launcher.New(cfg.Interpreter)
			return l.Forward(cmd.Context(), script, req.Args()...)
		},
	}
}
