package engine

import (
	"context"
	"time"

	"github.com/alexisbeaulieu97/stepwise/internal/display"
	"github.com/alexisbeaulieu97/stepwise/internal/logger"
	"github.com/alexisbeaulieu97/stepwise/internal/model"
	"github.com/alexisbeaulieu97/stepwise/internal/runlog"
	stepwiseerrors "github.com/alexisbeaulieu97/stepwise/pkg/errors"
)

// Options configures a Runner for one invocation.
type Options struct {
	ResumeFrom   string
	Single       string
	ExitOnError  bool
	InlineOutput bool
}

// Confirmer answers the ignore-and-continue question after a step fails.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Runner executes procedures in declared order, one step at a time.
// Failures never unwind the stack below main: a fatally failed procedure
// surfaces as a FatalError value from Execute.
type Runner struct {
	state    RunContext
	selector Selector
	sink     *runlog.Sink
	display  *display.Display
	confirm  Confirmer
	log      *logger.Logger

	current     *model.ProcedureResult
	procStarted time.Time
	summary     model.RunSummary
}

// NewRunner wires a Runner to its log sink, console display, and prompt.
func NewRunner(opts Options, sink *runlog.Sink, disp *display.Display, confirm Confirmer, log *logger.Logger) *Runner {
	return &Runner{
		state: RunContext{
			ExitOnError:  opts.ExitOnError,
			InlineOutput: opts.InlineOutput,
		},
		selector: NewSelector(opts.Single, opts.ResumeFrom),
		sink:     sink,
		display:  disp,
		confirm:  confirm,
		log:      log,
	}
}

// StartProcedure opens the named procedure. The run counter advances for
// every procedure, skipped or not, so resumed runs keep their numbering.
// A skipped procedure leaves no trace in the log or on the console.
func (r *Runner) StartProcedure(name string) Permission {
	r.state.Counter++
	r.state.Procedure = name
	r.state.Failures = 0
	r.procStarted = time.Now()

	perm := r.selector.Decide(name)
	r.state.Permission = perm
	r.current = &model.ProcedureResult{Name: name, Number: r.state.Counter}

	log := r.log.WithProcedure(name, r.state.Counter)
	if perm == PermissionSkip {
		r.current.Status = model.ProcedureSkipped
		log.Debug("procedure skipped by selection")
		return perm
	}

	r.sink.Banner(r.state.Counter, name)
	r.display.Banner(r.state.Counter, name)
	log.Debug("procedure started")
	return perm
}

// EndProcedure closes the current procedure. done reports that the
// single-procedure target just completed cleanly and the run can stop.
// Unforgiven failures surface as a FatalError, which always wins over
// done. Closing a skipped procedure is a no-op.
func (r *Runner) EndProcedure() (bool, error) {
	defer func() {
		r.state.Permission = PermissionUndecided
		r.state.Procedure = ""
		if r.current != nil {
			r.current.Duration = time.Since(r.procStarted)
			r.summary.Procedures = append(r.summary.Procedures, *r.current)
			r.current = nil
		}
	}()

	if r.state.Permission != PermissionProceed {
		return false, nil
	}

	name := r.state.Procedure
	if r.state.Failures > 0 {
		r.current.Status = model.ProcedureFailed
		r.current.Failures = r.state.Failures
		r.sink.Failure(name, r.state.Failures)
		r.display.ProcedureFailure(name, r.state.Failures)
		return false, stepwiseerrors.NewFatalError(name, r.state.Failures)
	}

	r.current.Status = model.ProcedureSucceeded
	r.sink.Success(name)
	r.display.ProcedureSuccess(name)

	if target := r.selector.Single(); target != "" && target == name {
		return true, nil
	}
	return false, nil
}

// Execute runs every procedure in order and returns the run summary. The
// returned error is the FatalError of the procedure that failed, if any.
// Cancellation is honored between procedures and between steps; a launched
// command always runs to completion.
func (r *Runner) Execute(ctx context.Context, procedures []Procedure) (*model.RunSummary, error) {
	start := time.Now()
	defer func() {
		r.summary.Duration = time.Since(start)
	}()

	for _, proc := range procedures {
		if err := ctx.Err(); err != nil {
			return &r.summary, err
		}

		if r.StartProcedure(proc.Name) == PermissionProceed {
			if err := r.runSteps(ctx, proc); err != nil {
				// Fatal step failures already closed the procedure.
				return &r.summary, err
			}
		}

		done, err := r.EndProcedure()
		if err != nil {
			return &r.summary, err
		}
		if done {
			r.log.WithFields(map[string]any{"procedure": proc.Name}).Debug("single procedure completed, stopping run")
			break
		}
	}

	if r.selector.Single() == "" && r.selector.ResumePending() {
		r.log.WithFields(map[string]any{"resume_from": r.selector.ResumeTarget()}).Warn("resume target matched no procedure; nothing was executed")
	}

	return &r.summary, nil
}

func (r *Runner) runSteps(ctx context.Context, proc Procedure) error {
	for _, step := range proc.Steps {
		if err := r.Run(ctx, step.Label, step.Command); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) record(result model.StepResult) {
	if r.current != nil {
		r.current.Steps = append(r.current.Steps, result)
	}
}
