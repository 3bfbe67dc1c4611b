package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	stepwiseerrors "github.com/alexisbeaulieu97/stepwise/pkg/errors"
)

// Field describes one value to collect before a run starts.
type Field struct {
	Name     string
	Prompt   string
	Default  string
	Required bool
}

// Prompter collects answers from an interactive terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question and blocks until a decisive answer.
// Anything other than y/yes/n/no re-asks the question.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s [y/n]: ", question)

		line, err := p.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if err != nil {
			return false, stepwiseerrors.NewPromptError("confirm", err)
		}
		fmt.Fprintln(p.out, `answer "y" or "n"`)
	}
}

// Ask collects a value for the field, offering the default when present.
// Required fields re-prompt until the answer is non-empty.
func (p *Prompter) Ask(field Field) (string, error) {
	label := field.Prompt
	if label == "" {
		label = field.Name
	}

	for {
		if field.Default != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, field.Default)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}

		line, err := p.in.ReadString('\n')
		value := strings.TrimSpace(line)
		if value == "" {
			value = field.Default
		}
		if value != "" || !field.Required {
			return value, nil
		}

		if err != nil {
			return "", stepwiseerrors.NewPromptError(field.Name, err)
		}
		fmt.Fprintf(p.out, "%s is required\n", field.Name)
	}
}

// Auto answers every confirmation with a fixed decision. It stands in for
// a Prompter when stdin is not a terminal or the operator passed --yes.
type Auto bool

// Confirm returns the fixed decision.
func (a Auto) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Resolve merges override values, interactive answers, and declared
// defaults into the final var table. The prompter may be nil when stdin is
// not interactive; required fields must then be covered by an override or
// a default.
func Resolve(fields []Field, overrides map[string]string, p *Prompter) (map[string]string, error) {
	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field.Name] = struct{}{}
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return nil, stepwiseerrors.NewValidationError("--var", fmt.Sprintf("unknown var %q", name), nil)
		}
	}

	values := make(map[string]string, len(fields))
	for _, field := range fields {
		if value, ok := overrides[field.Name]; ok {
			if value == "" && field.Required {
				return nil, stepwiseerrors.NewPromptError(field.Name, errors.New("required var is empty"))
			}
			values[field.Name] = value
			continue
		}

		needsInput := field.Prompt != "" || (field.Required && field.Default == "")
		if p != nil && needsInput {
			value, err := p.Ask(field)
			if err != nil {
				return nil, err
			}
			values[field.Name] = value
			continue
		}

		if field.Required && field.Default == "" {
			return nil, stepwiseerrors.NewPromptError(field.Name, errors.New("required var not provided"))
		}
		values[field.Name] = field.Default
	}

	return values, nil
}
