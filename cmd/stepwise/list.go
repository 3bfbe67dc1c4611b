package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(root *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the procedures a configuration declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(root.configPath)
			if err != nil {
				return err
			}
			return runList(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, path string, opts *listOptions) error {
	cfg, err := config.ParseConfig(path)
	if err != nil {
		return newCommandError("list", "parsing configuration", err, "Fix the configuration errors shown above and try again.")
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, path, cfg)
	}
	return renderListTable(cmd, cfg)
}

func renderListTable(cmd *cobra.Command, cfg *config.Config) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "#\tPROCEDURE\tSTEPS\tDESCRIPTION")
	for i, proc := range cfg.Procedures {
		fmt.Fprintf(writer, "%d\t%s\t%d\t%s\n",
			i+1,
			proc.Name,
			len(proc.Steps),
			valueOrFallback(proc.Description, "(none)"),
		)
	}

	return writer.Flush()
}

type listJSONProcedure struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StepCount   int    `json:"step_count"`
}

type listJSONPayload struct {
	Config     string              `json:"config"`
	Name       string              `json:"name"`
	Count      int                 `json:"count"`
	Procedures []listJSONProcedure `json:"procedures"`
}

func renderListJSON(cmd *cobra.Command, path string, cfg *config.Config) error {
	payload := listJSONPayload{
		Config:     path,
		Name:       cfg.Name,
		Count:      len(cfg.Procedures),
		Procedures: make([]listJSONProcedure, len(cfg.Procedures)),
	}

	for i, proc := range cfg.Procedures {
		payload.Procedures[i] = listJSONProcedure{
			Number:      i + 1,
			Name:        proc.Name,
			Description: proc.Description,
			StepCount:   len(proc.Steps),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
