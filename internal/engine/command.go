package engine

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Command is a fully resolved invocation of one step. Line keeps the
// expanded command text for the audit log; Shell and Args carry how it is
// actually launched.
type Command struct {
	Line  string
	Shell string
	Args  []string
	Dir   string
	Env   map[string]string
}

// newCmd builds the process for one step. Plain exec.Command on purpose:
// a launched command always runs to completion, and cancellation is only
// observed between steps.
func (c Command) newCmd() *exec.Cmd {
	args := make([]string, 0, len(c.Args)+1)
	args = append(args, c.Args...)
	args = append(args, c.Line)

	cmd := exec.Command(c.Shell, args...)
	cmd.Env = buildEnv(c.Env)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	return cmd
}

// ResolveShell picks the program that runs command lines. An explicit
// shell wins; otherwise bash, then sh. Windows falls back to cmd.
func ResolveShell(explicit string) (string, []string, error) {
	if explicit != "" {
		return explicit, []string{"-c"}, nil
	}

	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}, nil
	}

	if path, err := exec.LookPath("bash"); err == nil {
		return path, []string{"-c"}, nil
	}

	if path, err := exec.LookPath("sh"); err == nil {
		return path, []string{"-c"}, nil
	}

	return "", nil, fmt.Errorf("no suitable shell found")
}

func buildEnv(custom map[string]string) []string {
	env := os.Environ()
	for k, v := range custom {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
