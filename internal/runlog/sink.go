package runlog

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is where the run log lands when neither the --log-file flag
// nor the configuration names a destination.
const DefaultPath = "installation.log"

// Header carries run provenance written at the top of a fresh log.
type Header struct {
	Tool       string
	Version    string
	ConfigPath string
	ConfigName string
	Revision   string
}

// Sink is the append-only plain-text record of a run. Every command, its
// raw output, and each procedure outcome lands here so an operator can
// audit the run afterwards. The file is truncated when the sink opens.
type Sink struct {
	mu       sync.Mutex
	f        *os.File
	path     string
	identity string
}

// Open creates or truncates the log file at path and writes the header.
func Open(path string, header Header) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	s := &Sink{f: f, path: path, identity: identity()}
	s.writeHeader(header)
	return s, nil
}

// Path returns the location of the log file.
func (s *Sink) Path() string {
	return s.path
}

// Banner records the start of a procedure.
func (s *Sink) Banner(number int, procedure string) {
	s.printf("\nSTART procedure %d: %s (%s)\n", number, procedure, stamp())
}

// Audit records who ran what from where, in the classic shell-transcript
// form. An empty dir means the process working directory.
func (s *Sink) Audit(dir, command string) {
	s.printf("[%s %s]# %s\n", s.identity, baseDir(dir), command)
}

// Writer exposes the sink as a destination for raw command output. The
// returned value is comparable so exec.Cmd can share it between stdout
// and stderr without spawning a second copy goroutine.
func (s *Sink) Writer() io.Writer {
	return sinkWriter{s: s}
}

// Success records a procedure that finished without unforgiven failures.
func (s *Sink) Success(procedure string) {
	s.printf("SUCCESS: %s (%s)\n", procedure, stamp())
}

// Failure records a procedure abandoned with accumulated failures.
func (s *Sink) Failure(procedure string, failures int) {
	s.printf("FAIL: %s with accumulated status %d (%s)\n", procedure, failures, stamp())
}

// Forgiven records a failed step the operator chose to continue past.
func (s *Sink) Forgiven(step string, status int) {
	s.printf("IGNORED: step %q exited with status %d (%s)\n", step, status, stamp())
}

// Finish writes the closing trailer.
func (s *Sink) Finish(executed, skipped, failed int) {
	s.printf("\n# run finished %s (%d executed, %d skipped, %d failed)\n", stamp(), executed, skipped, failed)
}

// Close flushes and closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

func (s *Sink) writeHeader(header Header) {
	tool := header.Tool
	if tool == "" {
		tool = "stepwise"
	}
	s.printf("# %s %s run started %s by %s\n", tool, header.Version, stamp(), s.identity)
	if header.ConfigPath != "" {
		if header.ConfigName != "" {
			s.printf("# config: %s (%s)\n", header.ConfigPath, header.ConfigName)
		} else {
			s.printf("# config: %s\n", header.ConfigPath)
		}
	}
	if header.Revision != "" {
		s.printf("# revision: %s\n", header.Revision)
	}
}

func (s *Sink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.f, format, args...)
}

type sinkWriter struct {
	s *Sink
}

func (w sinkWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.f.Write(p)
}

func identity() string {
	username := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return username + "@" + host
}

func baseDir(dir string) string {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "?"
		}
		dir = cwd
	}
	return filepath.Base(dir)
}

func stamp() string {
	return time.Now().Format(time.RFC3339)
}
