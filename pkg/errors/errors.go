package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure while launching or waiting
// on a step's command, as opposed to the command exiting non-zero.
type ExecutionError struct {
	Step string
	Err  error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(step string, err error) error {
	return &ExecutionError{Step: step, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step != "" {
		return fmt.Sprintf("execution error on step %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FatalError reports a procedure whose failures were not forgiven. It
// carries the accumulated exit statuses so the process can exit with them.
type FatalError struct {
	Procedure string
	Failures  int
}

// NewFatalError constructs a FatalError for the given procedure.
func NewFatalError(procedure string, failures int) error {
	return &FatalError{Procedure: procedure, Failures: failures}
}

func (e *FatalError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("procedure %s failed (accumulated exit status %d)", e.Procedure, e.Failures)
}

// ExitCode maps the accumulated failures onto a valid process exit code.
// Zero would read as success and values above 255 wrap on POSIX systems,
// so the result is clamped to 1..255.
func (e *FatalError) ExitCode() int {
	if e == nil {
		return 0
	}
	if e.Failures < 1 {
		return 1
	}
	if e.Failures > 255 {
		return 255
	}
	return e.Failures
}

// PromptError indicates that an interactive answer could not be collected.
type PromptError struct {
	Field   string
	Message string
	Err     error
}

// NewPromptError constructs a PromptError for the given prompt field.
func NewPromptError(field string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PromptError{Field: field, Message: message, Err: err}
}

func (e *PromptError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("prompt error [%s]: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("prompt error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *PromptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
