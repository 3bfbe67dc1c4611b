package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
)

func newVarsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "List the vars a configuration declares and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(root.configPath)
			if err != nil {
				return err
			}
			return runVars(cmd, path)
		},
	}
}

func runVars(cmd *cobra.Command, path string) error {
	cfg, err := config.ParseConfig(path)
	if err != nil {
		return newCommandError("list vars", "parsing configuration", err, "Fix the configuration errors shown above and try again.")
	}

	out := cmd.OutOrStdout()
	if len(cfg.Vars) == 0 {
		fmt.Fprintln(out, "No vars declared.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREQUIRED\tDEFAULT\tPROMPT")
	for _, v := range cfg.Vars {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			v.Name,
			yesNo(v.Required),
			valueOrFallback(v.Default, "(none)"),
			valueOrFallback(v.Prompt, "(none)"),
		)
	}
	return w.Flush()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
