package model

import (
	"fmt"
)

// ExitCode defines the CLI exit codes the launcher commands can produce.
//
// The launchers keep a deliberately flat taxonomy: every locally detected
// failure (missing arguments, unresolvable environment manager, setup
// failure) exits with 1, and any other non-zero code is the verbatim exit
// status of the external process a command forwarded to.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers all locally detected failures: usage errors,
	// an unresolvable environment manager, and environment setup failures.
	ExitGeneralError ExitCode = 1
)

// ExitCodeFromChild normalizes a child process exit status for use as the
// launcher's own exit code.
//
// exec.ExitError.ExitCode returns -1 when the child was terminated by a
// signal rather than exiting; there is no wait status to propagate then,
// so the launcher reports a general error instead of passing a negative
// value to os.Exit.
func ExitCodeFromChild(code int) ExitCode {
	if code < 0 {
		return ExitGeneralError
	}
	return ExitCode(code)
}

// CLIError is an error type that carries an exit code.
// It lets the cli layer translate domain errors into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitStatusError terminates the CLI with a specific exit code without
// printing an additional error message.
//
// It is used where the diagnostic has already been written by someone else:
//   - usage errors, where the command prints its usage text itself, and
//   - forwarded child processes, whose exit status must propagate unchanged
//     and whose own output is the only diagnostic.
type ExitStatusError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode
}

// Error satisfies the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Request types below model the positional argument tuples of the
// launchers. Presence is the only validation: an argument counts as
// present when it was supplied on the command line, even when it is the
// empty string. All values are opaque — the external scripts own type,
// range, and business validation.
//
// Each request keeps the raw argument list it was built from, and Args
// returns that list verbatim: arguments beyond the named fields are
// forwarded too, in order, with boundaries intact. The external scripts
// ignore extras they do not read.

// HoldingRequest is the argument tuple for the add-holding launcher.
type HoldingRequest struct {
	// Code is the security code (e.g. "601212").
	Code string

	// UnitPrice is the buy price per unit, unparsed.
	UnitPrice string

	// Quantity is the number of units, unparsed.
	Quantity string

	// Name is an optional display name for the security.
	// May contain whitespace; it is forwarded as a single argument.
	Name string

	raw []string
}

// HoldingRequestFromArgs builds a HoldingRequest from positional
// arguments. It fails when fewer than the three required arguments
// (code, unit price, quantity) are supplied.
func HoldingRequestFromArgs(args []string) (*HoldingRequest, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("holding request: need code, unit price and quantity")
	}
	r := &HoldingRequest{
		Code:      args[0],
		UnitPrice: args[1],
		Quantity:  args[2],
		raw:       append([]string(nil), args...),
	}
	if len(args) > 3 {
		r.Name = args[3]
	}
	return r, nil
}

// Args returns the positional arguments exactly as received.
func (r *HoldingRequest) Args() []string {
	return r.raw
}

// SellRequest is the argument tuple for the sell-holding launcher.
type SellRequest struct {
	Code      string
	UnitPrice string
	Quantity  string

	raw []string
}

// SellRequestFromArgs builds a SellRequest from positional arguments.
// It fails when fewer than three arguments are supplied.
func SellRequestFromArgs(args []string) (*SellRequest, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("sell request: need code, unit price and quantity")
	}
	return &SellRequest{
		Code:      args[0],
		UnitPrice: args[1],
		Quantity:  args[2],
		raw:       append([]string(nil), args...),
	}, nil
}

// Args returns the positional arguments exactly as received.
func (r *SellRequest) Args() []string {
	return r.raw
}

// CashRequest is the argument tuple for the add-cash launcher.
type CashRequest struct {
	// Amount is the cash amount to deposit, unparsed.
	Amount string

	raw []string
}

// CashRequestFromArgs builds a CashRequest from positional arguments.
// It fails when no argument is supplied.
func CashRequestFromArgs(args []string) (*CashRequest, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("cash request: need an amount")
	}
	return &CashRequest{
		Amount: args[0],
		raw:    append([]string(nil), args...),
	}, nil
}

// Args returns the positional arguments exactly as received.
func (r *CashRequest) Args() []string {
	return r.raw
}

// AnalyzeRequest is the argument tuple for the analyze launcher.
type AnalyzeRequest struct {
	// Symbol is the security code or ticker to analyze, unparsed.
	Symbol string

	raw []string
}

// AnalyzeRequestFromArgs builds an AnalyzeRequest from positional
// arguments. It fails when no argument is supplied.
func AnalyzeRequestFromArgs(args []string) (*AnalyzeRequest, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("analyze request: need a symbol")
	}
	return &AnalyzeRequest{
		Symbol: args[0],
		raw:    append([]string(nil), args...),
	}, nil
}

// Args returns the positional arguments exactly as received.
func (r *AnalyzeRequest) Args() []string {
	return r.raw
}
