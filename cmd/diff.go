package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"strata.dev/pkg/strata/internal/domain"
	m "strata.dev/pkg/strata/internal/model"
)

var diffModuleFlag string

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff file",
		Short: "Show how a file is rewritten before code generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Diff(context.Background(), domain.DiffArgs{
				File:   m.Path(args[0]),
				Module: diffModuleFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&diffModuleFlag, "module", "m", "", "module name (default: file name without extension)")

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
