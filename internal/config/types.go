package config

import (
	"gopkg.in/yaml.v3"
)

// Config represents the full Stepwise configuration document.
type Config struct {
	Version     string      `yaml:"version" validate:"required,semver"`
	Name        string      `yaml:"name" validate:"required,min=1,max=100"`
	Description string      `yaml:"description,omitempty"`
	Settings    Settings    `yaml:"settings,omitempty"`
	Vars        []Var       `yaml:"vars,omitempty" validate:"omitempty,dive"`
	Procedures  []Procedure `yaml:"procedures" validate:"required,min=1,dive"`
}

// Settings holds global execution parameters.
type Settings struct {
	LogFile      string `yaml:"log_file,omitempty"`
	Shell        string `yaml:"shell,omitempty"`
	ExitOnError  bool   `yaml:"exit_on_error,omitempty"`
	InlineOutput bool   `yaml:"inline_output,omitempty"`
}

// Var declares a named value that commands may reference as {{name}}.
// Values come from --var overrides, interactive prompts, or the default.
type Var struct {
	Name     string `yaml:"name" validate:"required,var_name"`
	Prompt   string `yaml:"prompt,omitempty"`
	Default  string `yaml:"default,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// Procedure groups an ordered list of steps under a selectable name.
type Procedure struct {
	Name        string `yaml:"name" validate:"required,proc_name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step describes one command to run. In YAML a step is either a mapping
// with a command key or a bare string, which is shorthand for the command.
type Step struct {
	Name    string            `yaml:"name,omitempty"`
	Command string            `yaml:"command" validate:"required,min=1"`
	Shell   string            `yaml:"shell,omitempty"`
	WorkDir string            `yaml:"workdir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

// UnmarshalYAML accepts the bare-string shorthand for a step.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var command string
		if err := value.Decode(&command); err != nil {
			return err
		}
		*s = Step{Command: command}
		return nil
	}

	type rawStep Step
	var temp rawStep
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*s = Step(temp)
	return nil
}

// Label returns the display name for the step, falling back to the command.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Command
}

// ProcedureMap builds a lookup table for procedures by name.
func ProcedureMap(procedures []Procedure) map[string]Procedure {
	out := make(map[string]Procedure, len(procedures))
	for _, proc := range procedures {
		out[proc.Name] = proc
	}
	return out
}

// ProcedureNames returns procedure names in declaration order.
func ProcedureNames(procedures []Procedure) []string {
	out := make([]string, 0, len(procedures))
	for _, proc := range procedures {
		out = append(out, proc.Name)
	}
	return out
}
