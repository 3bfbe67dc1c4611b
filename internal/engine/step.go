package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/alexisbeaulieu97/stepwise/internal/logger"
	"github.com/alexisbeaulieu97/stepwise/internal/model"
)

// Run executes one step of the open procedure. A zero exit status marks
// the step done. A non-zero status either closes the procedure as failed
// (exit-on-error, or the operator declining to continue) or is forgiven
// and the run moves on. Cancellation is observed before the command is
// launched, never while it runs. Callers must have opened a procedure
// that was permitted to proceed.
func (r *Runner) Run(ctx context.Context, label string, command Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := r.log.WithProcedure(r.state.Procedure, r.state.Counter).WithStep(label)
	log.Debug("running step")

	if !r.state.InlineOutput {
		r.display.StepPending(label)
	}

	started := time.Now()
	status := r.execute(command, log)

	result := model.StepResult{
		Step:       label,
		Command:    command.Line,
		ExitStatus: status,
		Duration:   time.Since(started),
		Timestamp:  started,
	}

	if status == 0 {
		result.Status = model.StepSuccess
		r.record(result)
		r.display.StepSuccess(label)
		return nil
	}

	result.Status = model.StepFailed
	r.display.StepFailure(label, status)

	if r.state.ExitOnError {
		r.record(result)
		return r.failProcedure(status)
	}

	forgiven, err := r.confirm.Confirm(fmt.Sprintf("step %q failed with exit status %d, ignore and continue?", label, status))
	if err != nil {
		log.Error(err, "cannot collect an answer, treating the failure as fatal")
		r.record(result)
		return r.failProcedure(status)
	}
	if !forgiven {
		r.record(result)
		return r.failProcedure(status)
	}

	result.Status = model.StepForgiven
	r.record(result)
	r.sink.Forgiven(label, status)
	r.display.StepForgiven(label)
	log.Warn("continuing past failed step")
	return nil
}

// failProcedure accumulates the exit status and closes the procedure on
// the fatal path.
func (r *Runner) failProcedure(status int) error {
	r.state.Failures += status
	_, err := r.EndProcedure()
	return err
}

// execute runs the command and maps every outcome to an exit status. A
// command that cannot be started reports 127, the shell convention for
// command-not-found.
func (r *Runner) execute(command Command, log *logger.Logger) int {
	cmd := command.newCmd()

	if r.state.InlineOutput {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		r.sink.Audit(command.Dir, command.Line)
		out := r.sink.Writer()
		cmd.Stdout = out
		cmd.Stderr = out
	}

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
		// Killed by a signal; count it as a plain failure.
		return 1
	}

	log.Error(err, "command failed to start")
	return 127
}
