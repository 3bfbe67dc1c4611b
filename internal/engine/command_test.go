package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveShellExplicit(t *testing.T) {
	t.Parallel()

	shell, args, err := ResolveShell("zsh")
	require.NoError(t, err)
	require.Equal(t, "zsh", shell)
	require.Equal(t, []string{"-c"}, args)
}

func TestResolveShellDefault(t *testing.T) {
	t.Parallel()

	shell, args, err := ResolveShell("")
	require.NoError(t, err)
	require.NotEmpty(t, shell)
	require.True(t, strings.HasSuffix(shell, "sh") || shell == "cmd")
	require.Len(t, args, 1)
}

func TestBuildEnvMergesCustomValues(t *testing.T) {
	env := buildEnv(map[string]string{"STEPWISE_TEST_KEY": "value-123"})

	require.Contains(t, env, "STEPWISE_TEST_KEY=value-123")
	require.Greater(t, len(env), 1, "process environment should be inherited")
}

func TestCommandNewCmd(t *testing.T) {
	t.Parallel()

	command := Command{
		Line:  "echo hello",
		Shell: "sh",
		Args:  []string{"-c"},
		Dir:   "/tmp",
	}

	cmd := command.newCmd()
	require.Equal(t, []string{"sh", "-c", "echo hello"}, cmd.Args)
	require.Equal(t, "/tmp", cmd.Dir)
	require.NotEmpty(t, cmd.Env)
}
