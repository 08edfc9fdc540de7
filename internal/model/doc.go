// Package model defines the domain types for the tradectl CLI.
//
// The launchers own no business data: the only entities are positional
// argument tuples (HoldingRequest, SellRequest, CashRequest,
// AnalyzeRequest) validated for presence and forwarded as opaque strings
// to external collaborator scripts. All bookkeeping and trading logic
// lives in those scripts, outside this repository.
//
// The package also defines exit codes (ExitCode) and the error types
// (CLIError, ExitStatusError) that the cli layer translates into OS
// process exit codes.
package model
