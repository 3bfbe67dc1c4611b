package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
	"github.com/alexisbeaulieu97/stepwise/internal/display"
	"github.com/alexisbeaulieu97/stepwise/internal/engine"
	"github.com/alexisbeaulieu97/stepwise/internal/logger"
	"github.com/alexisbeaulieu97/stepwise/internal/prompt"
	"github.com/alexisbeaulieu97/stepwise/internal/runlog"
)

type runOptions struct {
	ConfigPath   string
	ResumeFrom   string
	Single       string
	ExitOnError  bool
	InlineOutput bool
	LogFile      string
	VarOverrides []string
	AssumeYes    bool
	Verbose      bool
}

var runCmdRunner = runProcedures

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the procedures a configuration declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(root.configPath)
			if err != nil {
				return err
			}
			opts.ConfigPath = path
			opts.Verbose = root.verbose

			return runCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ResumeFrom, "resume-from", "r", "", "Resume execution from the named procedure")
	cmd.Flags().StringVarP(&opts.Single, "single", "s", "", "Run only the named procedure, then stop")
	cmd.Flags().BoolVarP(&opts.ExitOnError, "exit-on-error", "x", false, "Treat any step failure as fatal without prompting")
	cmd.Flags().BoolVarP(&opts.InlineOutput, "inline-output", "i", false, "Send step output to the terminal instead of the run log")
	cmd.Flags().StringVarP(&opts.LogFile, "log-file", "l", "", fmt.Sprintf("Run log path (default %s)", runlog.DefaultPath))
	cmd.Flags().StringArrayVar(&opts.VarOverrides, "var", nil, "Set a declared var as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.AssumeYes, "yes", false, "Answer yes to every failure prompt")

	return cmd
}

func runProcedures(opts runOptions) error {
	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: true,
		NoColor:       !term.IsTerminal(int(os.Stderr.Fd())),
	})
	if err != nil {
		return err
	}

	overrides, err := parseVarOverrides(opts.VarOverrides)
	if err != nil {
		return err
	}

	// Vars are settled before the log file is touched, so an aborted
	// prompt leaves a previous run's log intact.
	var prompter *prompt.Prompter
	if term.IsTerminal(int(os.Stdin.Fd())) {
		prompter = prompt.New(os.Stdin, os.Stdout)
	}
	vars, err := prompt.Resolve(varFields(cfg.Vars), overrides, prompter)
	if err != nil {
		return err
	}

	procedures, err := engine.BuildProcedures(cfg, vars)
	if err != nil {
		return err
	}

	logPath := opts.LogFile
	if logPath == "" {
		logPath = cfg.Settings.LogFile
	}
	if logPath == "" {
		logPath = runlog.DefaultPath
	}

	header := runlog.Header{
		Tool:       "stepwise",
		Version:    version,
		ConfigPath: opts.ConfigPath,
		ConfigName: cfg.Name,
	}
	if rev, ok := runlog.Revision(opts.ConfigPath); ok {
		header.Revision = rev
	}

	sink, err := runlog.Open(logPath, header)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer sink.Close()

	warnUnknownSingle(log, cfg, opts.Single)

	var confirm engine.Confirmer
	switch {
	case opts.AssumeYes:
		confirm = prompt.Auto(true)
	case prompter == nil:
		// No terminal to ask on; failures are refused.
		confirm = prompt.Auto(false)
	default:
		confirm = prompter
	}

	disp := display.New(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))

	runner := engine.NewRunner(engine.Options{
		ResumeFrom:   opts.ResumeFrom,
		Single:       opts.Single,
		ExitOnError:  opts.ExitOnError || cfg.Settings.ExitOnError,
		InlineOutput: opts.InlineOutput || cfg.Settings.InlineOutput,
	}, sink, disp, confirm, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	summary, err := runner.Execute(ctx, procedures)
	sink.Finish(summary.Executed(), summary.Skipped(), summary.Failed())
	disp.Summary(summary, logPath)

	return err
}

func parseVarOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}

func varFields(vars []config.Var) []prompt.Field {
	fields := make([]prompt.Field, 0, len(vars))
	for _, v := range vars {
		fields = append(fields, prompt.Field{
			Name:     v.Name,
			Prompt:   v.Prompt,
			Default:  v.Default,
			Required: v.Required,
		})
	}
	return fields
}

// warnUnknownSingle flags a single target that cannot match anything. The
// run itself proceeds and skips every procedure. An unmatched resume target
// is reported by the runner once the run confirms it never fired.
func warnUnknownSingle(log *logger.Logger, cfg *config.Config, single string) {
	if single == "" {
		return
	}
	if _, ok := config.ProcedureMap(cfg.Procedures)[single]; !ok {
		log.WithFields(map[string]any{"single": single}).Warn("single target does not match any declared procedure")
	}
}
