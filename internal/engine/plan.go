package engine

import (
	"github.com/alexisbeaulieu97/stepwise/internal/config"
	stepwiseerrors "github.com/alexisbeaulieu97/stepwise/pkg/errors"
)

// Step is one resolved command with its display label.
type Step struct {
	Label   string
	Command Command
}

// Procedure is an ordered list of steps under a selectable name.
type Procedure struct {
	Name        string
	Description string
	Steps       []Step
}

// BuildProcedures resolves the parsed configuration into executable
// procedures: {{var}} references are expanded in command lines, working
// directories, and env values, and each step gets its shell resolved.
func BuildProcedures(cfg *config.Config, vars map[string]string) ([]Procedure, error) {
	out := make([]Procedure, 0, len(cfg.Procedures))
	for _, proc := range cfg.Procedures {
		steps := make([]Step, 0, len(proc.Steps))
		for _, step := range proc.Steps {
			resolved, err := resolveStep(step, cfg.Settings.Shell, vars)
			if err != nil {
				return nil, err
			}
			steps = append(steps, resolved)
		}
		out = append(out, Procedure{Name: proc.Name, Description: proc.Description, Steps: steps})
	}
	return out, nil
}

func resolveStep(step config.Step, defaultShell string, vars map[string]string) (Step, error) {
	line, err := config.Expand(step.Command, vars)
	if err != nil {
		return Step{}, err
	}

	dir, err := config.Expand(step.WorkDir, vars)
	if err != nil {
		return Step{}, err
	}

	var env map[string]string
	if len(step.Env) > 0 {
		env = make(map[string]string, len(step.Env))
		for key, value := range step.Env {
			expanded, err := config.Expand(value, vars)
			if err != nil {
				return Step{}, err
			}
			env[key] = expanded
		}
	}

	shellName := step.Shell
	if shellName == "" {
		shellName = defaultShell
	}
	shell, args, err := ResolveShell(shellName)
	if err != nil {
		return Step{}, stepwiseerrors.NewExecutionError(step.Label(), err)
	}

	label := step.Name
	if label == "" {
		label = line
	}

	return Step{
		Label:   label,
		Command: Command{Line: line, Shell: shell, Args: args, Dir: dir, Env: env},
	}, nil
}
