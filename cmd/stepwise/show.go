package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
	"github.com/alexisbeaulieu97/stepwise/internal/tui"
)

type showOptions struct {
	plain bool
}

func newShowCmd(root *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [procedure]",
		Short: "Browse the procedures and steps a configuration declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(root.configPath)
			if err != nil {
				return err
			}
			procedure := ""
			if len(args) == 1 {
				procedure = args[0]
			}
			return runShow(cmd, path, procedure, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print without launching the interactive browser")

	return cmd
}

func runShow(cmd *cobra.Command, path, procedure string, opts *showOptions) error {
	cfg, err := config.ParseConfig(path)
	if err != nil {
		return newCommandError("show", "parsing configuration", err, "Fix the configuration errors shown above and try again.")
	}

	if procedure != "" {
		if _, ok := config.ProcedureMap(cfg.Procedures)[procedure]; !ok {
			return newCommandError("show", fmt.Sprintf("looking up procedure %q", procedure),
				fmt.Errorf("not declared in %s", path),
				"Run 'stepwise list' to see the declared procedures.")
		}
	}

	if opts.plain || !supportsUnicode(cmd.OutOrStdout()) {
		return renderShowText(cmd, cfg, procedure)
	}

	m := tui.NewBrowser(cfg, path, true)
	if procedure != "" {
		m.Focus(procedure)
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

func renderShowText(cmd *cobra.Command, cfg *config.Config, procedure string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cfg.Name)
	if cfg.Description != "" {
		fmt.Fprintln(out, cfg.Description)
	}

	for i, proc := range cfg.Procedures {
		if procedure != "" && proc.Name != procedure {
			continue
		}

		fmt.Fprintf(out, "\n[%d] %s\n", i+1, proc.Name)
		if proc.Description != "" {
			fmt.Fprintf(out, "    %s\n", proc.Description)
		}
		for j, step := range proc.Steps {
			fmt.Fprintf(out, "  %2d. %s\n", j+1, step.Label())
			if step.Name != "" {
				fmt.Fprintf(out, "      $ %s\n", step.Command)
			}
			if details := stepDetails(step); details != "" {
				fmt.Fprintf(out, "      %s\n", details)
			}
		}
	}

	return nil
}

func stepDetails(step config.Step) string {
	var parts []string
	if step.Shell != "" {
		parts = append(parts, "shell: "+step.Shell)
	}
	if step.WorkDir != "" {
		parts = append(parts, "workdir: "+step.WorkDir)
	}
	if len(step.Env) > 0 {
		keys := make([]string, 0, len(step.Env))
		for key := range step.Env {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts = append(parts, "env: "+strings.Join(keys, ", "))
	}
	return strings.Join(parts, "  ")
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
