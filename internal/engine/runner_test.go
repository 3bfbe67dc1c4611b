package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stepwise/internal/display"
	"github.com/alexisbeaulieu97/stepwise/internal/logger"
	"github.com/alexisbeaulieu97/stepwise/internal/runlog"
)

type confirmFunc func(string) (bool, error)

func (f confirmFunc) Confirm(question string) (bool, error) {
	return f(question)
}

type scriptedConfirmer struct {
	answers []bool
	asked   []string
	err     error
}

func (s *scriptedConfirmer) Confirm(question string) (bool, error) {
	s.asked = append(s.asked, question)
	if s.err != nil {
		return false, s.err
	}
	if len(s.answers) == 0 {
		return false, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

type runnerFixture struct {
	runner  *Runner
	console *bytes.Buffer
	logPath string
	confirm *scriptedConfirmer
}

func newFixture(t *testing.T, opts Options, confirm *scriptedConfirmer) *runnerFixture {
	t.Helper()

	if confirm == nil {
		confirm = &scriptedConfirmer{}
	}

	logPath := filepath.Join(t.TempDir(), "run.log")
	sink, err := runlog.Open(logPath, runlog.Header{Tool: "stepwise", Version: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	console := &bytes.Buffer{}
	return &runnerFixture{
		runner:  NewRunner(opts, sink, display.New(console, false), confirm, log),
		console: console,
		logPath: logPath,
		confirm: confirm,
	}
}

func (f *runnerFixture) logContents(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(f.logPath)
	require.NoError(t, err)
	return string(data)
}

func shellStep(script string) Step {
	return Step{Label: script, Command: Command{Line: script, Shell: "sh", Args: []string{"-c"}}}
}

func shellProc(name string, scripts ...string) Procedure {
	steps := make([]Step, 0, len(scripts))
	for _, script := range scripts {
		steps = append(steps, shellStep(script))
	}
	return Procedure{Name: name, Steps: steps}
}

// markerProc runs a procedure whose only step drops a marker file, so a
// test can tell which procedures actually executed.
func markerProc(dir, name string) Procedure {
	return shellProc(name, fmt.Sprintf("touch %s", filepath.Join(dir, name)))
}

func markerExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func TestStartProcedureCountsSkippedProcedures(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Options{Single: "wanted"}, nil)

	require.Equal(t, PermissionSkip, f.runner.StartProcedure("unwanted"))
	done, err := f.runner.EndProcedure()
	require.NoError(t, err)
	require.False(t, done)

	require.Equal(t, PermissionProceed, f.runner.StartProcedure("wanted"))
	require.Equal(t, 2, f.runner.state.Counter)

	contents := f.logContents(t)
	require.NotContains(t, contents, "unwanted")
	require.Contains(t, contents, "START procedure 2: wanted (")
}

func TestEndProcedureWithoutOpenProcedureIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Options{}, nil)

	done, err := f.runner.EndProcedure()
	require.NoError(t, err)
	require.False(t, done)
}

func TestExecuteRunsAllProceduresInDeclaredOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := newFixture(t, Options{}, nil)

	summary, err := f.runner.Execute(context.Background(), []Procedure{
		markerProc(dir, "alpha"),
		markerProc(dir, "bravo"),
		markerProc(dir, "charlie"),
	})
	require.NoError(t, err)
	require.Equal(t, 3, summary.Executed())
	require.Equal(t, 0, summary.Skipped())

	for _, name := range []string{"alpha", "bravo", "charlie"} {
		require.True(t, markerExists(dir, name), "procedure %s should have run", name)
	}

	contents := f.logContents(t)
	require.Less(t, strings.Index(contents, "START procedure 1: alpha"), strings.Index(contents, "START procedure 2: bravo"))
	require.Less(t, strings.Index(contents, "START procedure 2: bravo"), strings.Index(contents, "START procedure 3: charlie"))
	require.Equal(t, 3, strings.Count(contents, "SUCCESS: "))
}

func TestExecuteSingleProcedureStopsAfterTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := newFixture(t, Options{Single: "bravo"}, nil)

	summary, err := f.runner.Execute(context.Background(), []Procedure{
		markerProc(dir, "alpha"),
		markerProc(dir, "bravo"),
		markerProc(dir, "charlie"),
	})
	require.NoError(t, err)

	require.False(t, markerExists(dir, "alpha"))
	require.True(t, markerExists(dir, "bravo"))
	require.False(t, markerExists(dir, "charlie"))

	// The run stops right after the target closes; charlie is never opened.
	require.Len(t, summary.Procedures, 2)
	require.Equal(t, 1, summary.Executed())
	require.Equal(t, 1, summary.Skipped())

	contents := f.logContents(t)
	require.NotContains(t, contents, "alpha")
	require.NotContains(t, contents, "charlie")
	require.Contains(t, contents, "START procedure 2: bravo (")
	require.Contains(t, contents, "SUCCESS: bravo (")
}

func TestExecuteResumeFromSkipsEarlierProcedures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := newFixture(t, Options{ResumeFrom: "bravo"}, nil)

	summary, err := f.runner.Execute(context.Background(), []Procedure{
		markerProc(dir, "alpha"),
		markerProc(dir, "bravo"),
		markerProc(dir, "charlie"),
	})
	require.NoError(t, err)

	require.False(t, markerExists(dir, "alpha"))
	require.True(t, markerExists(dir, "bravo"))
	require.True(t, markerExists(dir, "charlie"))

	require.Equal(t, 2, summary.Executed())
	require.Equal(t, 1, summary.Skipped())

	// Numbering keeps counting through skipped procedures.
	contents := f.logContents(t)
	require.Contains(t, contents, "START procedure 2: bravo (")
	require.Contains(t, contents, "START procedure 3: charlie (")
}

func TestExecuteResumeTargetNeverMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := newFixture(t, Options{ResumeFrom: "no_such_procedure"}, nil)

	summary, err := f.runner.Execute(context.Background(), []Procedure{
		markerProc(dir, "alpha"),
		markerProc(dir, "bravo"),
	})
	require.NoError(t, err)
	require.Equal(t, 0, summary.Executed())
	require.Equal(t, 2, summary.Skipped())

	require.False(t, markerExists(dir, "alpha"))
	require.False(t, markerExists(dir, "bravo"))
	require.NotContains(t, f.logContents(t), "START procedure")
}

func TestExecuteHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := newFixture(t, Options{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.runner.Execute(ctx, []Procedure{markerProc(dir, "alpha")})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, summary.Procedures)
	require.False(t, markerExists(dir, "alpha"))
}

func TestExecuteStopsBetweenStepsWhenCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	after := filepath.Join(dir, "after")

	logPath := filepath.Join(t.TempDir(), "run.log")
	sink, err := runlog.Open(logPath, runlog.Header{Version: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel while forgiving the first failure; the second step must
	// never launch.
	confirm := confirmFunc(func(string) (bool, error) {
		cancel()
		return true, nil
	})
	runner := NewRunner(Options{}, sink, display.New(&bytes.Buffer{}, false), confirm, log)

	_, err = runner.Execute(ctx, []Procedure{
		shellProc("deploy", "exit 3", "touch "+after),
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, markerExists(dir, "after"))
}
