package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHoldingRequestFromArgs verifies presence-only validation (arity, not
// content) and that Args returns the received arguments verbatim.
func TestHoldingRequestFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		wantName string
	}{
		{
			name: "required fields only",
			args: []string{"601212", "3.50", "1000"},
		},
		{
			name:     "optional name present",
			args:     []string{"601212", "3.50", "1000", "Silver Nonferrous"},
			wantName: "Silver Nonferrous",
		},
		{
			name: "non-numeric values still pass (opaque strings)",
			args: []string{"abc", "not-a-price", "many"},
		},
		{
			name: "empty strings count as present",
			args: []string{"", "", ""},
		},
		{
			name:     "arguments beyond the tuple are kept",
			args:     []string{"601212", "3.50", "1000", "Silver", "extra-1", "extra-2"},
			wantName: "Silver",
		},
		{
			name:    "no arguments",
			args:    nil,
			wantErr: true,
		},
		{
			name:    "two arguments",
			args:    []string{"601212", "3.50"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := HoldingRequestFromArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.args[0], req.Code)
			assert.Equal(t, tt.args[1], req.UnitPrice)
			assert.Equal(t, tt.args[2], req.Quantity)
			assert.Equal(t, tt.wantName, req.Name)
			assert.Equal(t, tt.args, req.Args())
		})
	}
}

// TestHoldingRequestArgsIsACopy verifies that mutating the caller's slice
// after construction does not alter what gets forwarded.
func TestHoldingRequestArgsIsACopy(t *testing.T) {
	args := []string{"601212", "3.50", "1000"}
	req, err := HoldingRequestFromArgs(args)
	require.NoError(t, err)

	args[0] = "mutated"
	assert.Equal(t, []string{"601212", "3.50", "1000"}, req.Args())
}

func TestSellRequestFromArgs(t *testing.T) {
	req, err := SellRequestFromArgs([]string{"601212", "4.10", "500"})
	require.NoError(t, err)
	assert.Equal(t, "601212", req.Code)
	assert.Equal(t, "4.10", req.UnitPrice)
	assert.Equal(t, "500", req.Quantity)
	assert.Equal(t, []string{"601212", "4.10", "500"}, req.Args())

	_, err = SellRequestFromArgs([]string{"601212", "4.10"})
	assert.Error(t, err)
}

func TestCashRequestFromArgs(t *testing.T) {
	req, err := CashRequestFromArgs([]string{"10000"})
	require.NoError(t, err)
	assert.Equal(t, "10000", req.Amount)
	assert.Equal(t, []string{"10000"}, req.Args())

	// Extras stay in the forwarded list.
	req, err = CashRequestFromArgs([]string{"10000", "note"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10000", "note"}, req.Args())

	_, err = CashRequestFromArgs(nil)
	assert.Error(t, err)
}

func TestAnalyzeRequestFromArgs(t *testing.T) {
	req, err := AnalyzeRequestFromArgs([]string{"601212"})
	require.NoError(t, err)
	assert.Equal(t, "601212", req.Symbol)
	assert.Equal(t, []string{"601212"}, req.Args())

	_, err = AnalyzeRequestFromArgs([]string{})
	assert.Error(t, err)
}

// TestCLIError verifies message formatting and error unwrapping.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "conda not found")
		assert.Equal(t, "conda not found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		cause := fmt.Errorf("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to create environment", cause)
		assert.Equal(t, "failed to create environment: permission denied", err.Error())
		assert.True(t, errors.Is(err, cause))
	})
}

// TestExitStatusError verifies that the carrier preserves the child's code.
func TestExitStatusError(t *testing.T) {
	err := &ExitStatusError{Code: 7}
	assert.Equal(t, "exit status 7", err.Error())
	assert.Equal(t, ExitCode(7), err.Code)
}

// TestExitCodeFromChild verifies the normalization of child wait statuses:
// real exit codes pass through, the -1 reported for signal-terminated
// children maps to a general error.
func TestExitCodeFromChild(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeFromChild(0))
	assert.Equal(t, ExitCode(7), ExitCodeFromChild(7))
	assert.Equal(t, ExitCode(255), ExitCodeFromChild(255))
	assert.Equal(t, ExitGeneralError, ExitCodeFromChild(-1))
}
