package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stagehand/internal/config"
	"github.com/alexisbeaulieu97/stagehand/internal/engine"
	"github.com/alexisbeaulieu97/stagehand/internal/logger"
	"github.com/alexisbeaulieu97/stagehand/internal/report"
)

type runOptions struct {
	EnvOverrides []string
	NoColor      bool
	Verbose      bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <path>...",
		Short: "Execute workflow files or directories of workflow files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			return runWorkflows(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.EnvOverrides, "env", nil, "Override a workflow env value (KEY=VALUE, repeatable)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable styled output")

	return cmd
}

func runWorkflows(cmd *cobra.Command, paths []string, opts runOptions) error {
	workflows, err := loadPaths(paths)
	if err != nil {
		return err
	}

	overrides, err := parseEnvOverrides(opts.EnvOverrides)
	if err != nil {
		return err
	}
	for _, wf := range workflows {
		applyEnvOverrides(wf, overrides)
	}

	log := logger.Discard()
	if opts.Verbose {
		log, err = logger.New(logger.Options{Level: "debug", HumanReadable: true, Writer: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
	}

	reg, err := newBuiltinRegistry()
	if err != nil {
		return err
	}

	runner, err := engine.New(engine.Options{Registry: reg, Log: log})
	if err != nil {
		return err
	}

	run, runErr := runner.Run(context.Background(), workflows)

	reporter := report.New(cmd.OutOrStdout(), report.Options{NoColor: opts.NoColor})
	reporter.Print(run)

	if runErr != nil {
		return runErr
	}
	if !run.Passed() {
		return fmt.Errorf("run failed")
	}
	return nil
}

// loadPaths loads each argument as a workflow file or, for directories,
// every workflow file inside it.
func loadPaths(paths []string) ([]*config.Workflow, error) {
	var workflows []*config.Workflow
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			loaded, err := config.LoadDir(path)
			if err != nil {
				return nil, err
			}
			workflows = append(workflows, loaded...)
			continue
		}
		wf, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, wf)
	}
	return workflows, nil
}

func parseEnvOverrides(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env value %q, expected KEY=VALUE", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}

func applyEnvOverrides(wf *config.Workflow, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	if wf.Env == nil {
		wf.Env = make(map[string]string, len(overrides))
	}
	for k, v := range overrides {
		wf.Env[k] = v
	}
}
