package display

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/stepwise/internal/model"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// Display renders run progress on the operator's console. With a terminal
// attached, a step shows a pending mark that is rewritten in place once the
// command finishes; without one, only completed lines are printed.
type Display struct {
	out         io.Writer
	interactive bool
	pendingOpen bool
}

// New creates a Display writing to out. interactive selects Unicode marks
// and in-place rewriting, and should reflect whether out is a terminal.
func New(out io.Writer, interactive bool) *Display {
	return &Display{out: out, interactive: interactive}
}

// Banner announces a procedure before its first step runs.
func (d *Display) Banner(number int, name string) {
	fmt.Fprintf(d.out, "\n%s\n", bannerStyle.Render(fmt.Sprintf("[%d] %s", number, name)))
}

// StepPending shows a step that has started but not finished. Only an
// interactive terminal gets a pending mark; the line is completed later by
// StepSuccess or StepFailure.
func (d *Display) StepPending(step string) {
	if !d.interactive {
		return
	}
	fmt.Fprintf(d.out, "  %s %s", pendingStyle.Render(model.StepRunning.Icon()), step)
	d.pendingOpen = true
}

// StepSuccess completes a step line with the success mark.
func (d *Display) StepSuccess(step string) {
	d.completeStep(model.StepSuccess, step, "")
}

// StepFailure completes a step line with the failure mark and exit status.
func (d *Display) StepFailure(step string, status int) {
	d.completeStep(model.StepFailed, step, fmt.Sprintf(" (exit status %d)", status))
}

// StepForgiven notes that the operator chose to continue past a failure.
func (d *Display) StepForgiven(step string) {
	mark := d.mark(model.StepForgiven)
	style := lipgloss.NewStyle().Foreground(model.StepForgiven.Color())
	fmt.Fprintf(d.out, "  %s continuing past %q\n", style.Render(mark), step)
}

// ProcedureSuccess reports a procedure that finished clean.
func (d *Display) ProcedureSuccess(name string) {
	mark := d.mark(model.ProcedureSucceeded)
	style := lipgloss.NewStyle().Foreground(model.ProcedureSucceeded.Color())
	fmt.Fprintf(d.out, "%s\n", style.Render(fmt.Sprintf("%s %s completed", mark, name)))
}

// ProcedureFailure reports a procedure abandoned with accumulated failures.
func (d *Display) ProcedureFailure(name string, failures int) {
	mark := d.mark(model.ProcedureFailed)
	style := lipgloss.NewStyle().Foreground(model.ProcedureFailed.Color()).Bold(true)
	fmt.Fprintf(d.out, "%s\n", style.Render(fmt.Sprintf("%s %s failed (accumulated exit status %d)", mark, name, failures)))
}

// Summary prints the closing run totals and points at the log file.
func (d *Display) Summary(summary *model.RunSummary, logPath string) {
	line := fmt.Sprintf("%d executed, %d skipped, %d failed in %s (log: %s)",
		summary.Executed(),
		summary.Skipped(),
		summary.Failed(),
		summary.Duration.Round(time.Millisecond),
		logPath,
	)
	fmt.Fprintf(d.out, "\n%s\n", summaryStyle.Render(line))
}

func (d *Display) completeStep(status model.StepStatus, step, suffix string) {
	style := lipgloss.NewStyle().Foreground(status.Color())
	if status == model.StepFailed {
		style = style.Bold(true)
	}
	line := fmt.Sprintf("  %s %s%s", style.Render(d.mark(status)), step, suffix)

	if d.pendingOpen {
		fmt.Fprintf(d.out, "\r%s\n", line)
		d.pendingOpen = false
		return
	}
	fmt.Fprintf(d.out, "%s\n", line)
}

func (d *Display) mark(status interface {
	Icon() string
	IconFallback() string
}) string {
	if d.interactive {
		return status.Icon()
	}
	return status.IconFallback()
}
