package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Check workflow files for syntax and lint errors without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflows, err := loadPaths(args)
			if err != nil {
				return err
			}
			for _, wf := range workflows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d scenarios)\n", wf.Path, len(wf.Scenarios))
			}
			return nil
		},
	}

	return cmd
}
