package model

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ProcedureStatus represents the terminal state of a procedure.
type ProcedureStatus string

const (
	// ProcedureSkipped indicates selection ruled the procedure out.
	ProcedureSkipped ProcedureStatus = "skipped"
	// ProcedureSucceeded indicates every step succeeded or was forgiven.
	ProcedureSucceeded ProcedureStatus = "succeeded"
	// ProcedureFailed indicates at least one unforgiven step failure.
	ProcedureFailed ProcedureStatus = "failed"
)

// Icon returns the Unicode icon for the status
func (s ProcedureStatus) Icon() string {
	switch s {
	case ProcedureSucceeded:
		return "✓"
	case ProcedureFailed:
		return "✗"
	case ProcedureSkipped:
		return "⊘"
	default:
		return "•"
	}
}

// IconFallback returns ASCII fallback when Unicode is not supported
func (s ProcedureStatus) IconFallback() string {
	switch s {
	case ProcedureSucceeded:
		return "[OK]"
	case ProcedureFailed:
		return "[XX]"
	case ProcedureSkipped:
		return "[--]"
	default:
		return "[  ]"
	}
}

// Color returns the Lipgloss color for the status
func (s ProcedureStatus) Color() lipgloss.Color {
	switch s {
	case ProcedureSucceeded:
		return lipgloss.Color("42") // green
	case ProcedureFailed:
		return lipgloss.Color("196") // red
	case ProcedureSkipped:
		return lipgloss.Color("245") // gray
	default:
		return lipgloss.Color("250") // light gray
	}
}

// String returns the string representation of the status
func (s ProcedureStatus) String() string {
	return string(s)
}

// ProcedureResult captures the outcome of one procedure within a run.
type ProcedureResult struct {
	Name     string
	Number   int
	Status   ProcedureStatus
	Failures int
	Steps    []StepResult
	Duration time.Duration
}

// RunSummary aggregates the outcome of an entire run.
type RunSummary struct {
	Procedures []ProcedureResult
	Duration   time.Duration
}

// Executed counts the procedures that actually ran.
func (s *RunSummary) Executed() int {
	count := 0
	for _, p := range s.Procedures {
		if p.Status != ProcedureSkipped {
			count++
		}
	}
	return count
}

// Skipped counts the procedures ruled out by selection.
func (s *RunSummary) Skipped() int {
	count := 0
	for _, p := range s.Procedures {
		if p.Status == ProcedureSkipped {
			count++
		}
	}
	return count
}

// Failed counts the procedures that ended with unforgiven failures.
func (s *RunSummary) Failed() int {
	count := 0
	for _, p := range s.Procedures {
		if p.Status == ProcedureFailed {
			count++
		}
	}
	return count
}

// ForgivenSteps counts the step failures the operator continued past.
func (s *RunSummary) ForgivenSteps() int {
	count := 0
	for _, p := range s.Procedures {
		for _, step := range p.Steps {
			if step.Status == StepForgiven {
				count++
			}
		}
	}
	return count
}
