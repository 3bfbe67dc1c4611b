package model

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the lifecycle state of a single step.
type StepStatus string

const (
	// StepPending indicates a step has not started yet.
	StepPending StepStatus = "pending"
	// StepRunning indicates a step is actively executing.
	StepRunning StepStatus = "running"
	// StepSuccess marks a step whose command exited zero.
	StepSuccess StepStatus = "success"
	// StepFailed marks a step whose command exited non-zero.
	StepFailed StepStatus = "failed"
	// StepForgiven marks a failed step the operator chose to continue past.
	StepForgiven StepStatus = "forgiven"
)

// Icon returns the Unicode icon for the status
func (s StepStatus) Icon() string {
	switch s {
	case StepSuccess:
		return "✓"
	case StepFailed:
		return "✗"
	case StepForgiven:
		return "⚠"
	case StepRunning:
		return "…"
	default:
		return "•"
	}
}

// IconFallback returns ASCII fallback when Unicode is not supported
func (s StepStatus) IconFallback() string {
	switch s {
	case StepSuccess:
		return "[OK]"
	case StepFailed:
		return "[XX]"
	case StepForgiven:
		return "[!!]"
	case StepRunning:
		return "[..]"
	default:
		return "[  ]"
	}
}

// Color returns the Lipgloss color for the status
func (s StepStatus) Color() lipgloss.Color {
	switch s {
	case StepSuccess:
		return lipgloss.Color("42") // green
	case StepFailed:
		return lipgloss.Color("196") // red
	case StepForgiven:
		return lipgloss.Color("226") // yellow
	default:
		return lipgloss.Color("250") // light gray
	}
}

// String returns the string representation of the status
func (s StepStatus) String() string {
	return string(s)
}

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	Step       string
	Command    string
	Status     StepStatus
	ExitStatus int
	Duration   time.Duration
	Timestamp  time.Time
}
