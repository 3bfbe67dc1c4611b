package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("config.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "config.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "config.yaml")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("procedures[1].name", "duplicate procedure name", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "procedures[1].name", validationErr.Field)
	require.Contains(t, validationErr.Message, "duplicate procedure name")
}

func TestExecutionErrorIncludesStepContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("command failed to start")
	err := NewExecutionError("mount data disk", underlying)

	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
	require.Equal(t, "mount data disk", executionErr.Step)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestFatalErrorCarriesProcedureAndFailures(t *testing.T) {
	t.Parallel()

	err := NewFatalError("mount_disks", 3)

	var fatalErr *FatalError
	require.ErrorAs(t, err, &fatalErr)
	require.Equal(t, "mount_disks", fatalErr.Procedure)
	require.Equal(t, 3, fatalErr.Failures)
	require.Contains(t, err.Error(), "mount_disks")
	require.Contains(t, err.Error(), "3")
}

func TestFatalErrorExitCodeClampsToValidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		failures int
		want     int
	}{
		{name: "regular status passes through", failures: 7, want: 7},
		{name: "zero clamps up to one", failures: 0, want: 1},
		{name: "negative clamps up to one", failures: -4, want: 1},
		{name: "overflow clamps down to 255", failures: 380, want: 255},
		{name: "upper bound stays put", failures: 255, want: 255},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fatal := &FatalError{Procedure: "proc", Failures: tc.failures}
			require.Equal(t, tc.want, fatal.ExitCode())
		})
	}
}

func TestPromptErrorIncludesFieldName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("stdin is not a terminal")
	err := NewPromptError("admin_password", underlying)

	var promptErr *PromptError
	require.ErrorAs(t, err, &promptErr)
	require.Equal(t, "admin_password", promptErr.Field)
	require.True(t, stdErrors.Is(err, underlying))
}
