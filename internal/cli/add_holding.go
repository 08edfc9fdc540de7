// Package cli — add_holding.go implements the "tradectl add-holding" command.
//
// add-holding is a pure argument-forwarding launcher: it checks that the
// three required positional arguments are present and hands them, plus the
// optional display name, to the external bookkeeping script unchanged. All
// parsing, pricing, and portfolio mutation happens in that script.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/tradectl/internal/launcher"
	"github.com/mmr-tortoise/tradectl/internal/model"
)

// addHoldingScript is the collaborator script, relative to the configured
// scripts directory.
const addHoldingScript = "add_holding.py"

// addHoldingUsage is the two-line usage message printed to stdout when
// required arguments are missing.
var addHoldingUsage = []string{
	"Usage: tradectl add-holding <code> <unit_price> <quantity> [name]",
	"Example: tradectl add-holding 601212 3.50 1000 \"Silver Nonferrous\"",
}

// NewAddHoldingCommand creates the "add-holding" cobra command.
func NewAddHoldingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-holding <code> <unit_price> <quantity> [name]",
		Short: "Record a manual buy through the bookkeeping script",
		Long: `Forward a holding-addition request to the external bookkeeping script.

The three required arguments (security code, unit price, quantity), the
optional display name, and any further arguments are passed through as
opaque strings — tradectl does no numeric or format validation. The
script's exit code becomes tradectl's exit code.

Examples:
  tradectl add-holding 601212 3.50 1000
  tradectl add-holding 601212 3.50 1000 "Silver Nonferrous"`,

		// ArbitraryArgs: arity is the launcher's own contract (usage text
		// on stdout for too few, everything forwarded otherwise), not
		// cobra's.
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := model.HoldingRequestFromArgs(args)
			if err != nil {
				return usageError(cmd, addHoldingUsage...)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			script := cfg.ScriptPath(addHoldingScript)
			VerboseLog("forwarding to %s %s", cfg.Interpreter, script)

			l := launcher.New(cfg.Interpreter)
			return l.Forward(cmd.Context(), script, req.Args()...)
		},
	}
}
