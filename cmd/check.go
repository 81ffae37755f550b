package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"strata.dev/pkg/strata/internal/domain"
	m "strata.dev/pkg/strata/internal/model"
)

var checkParallelFlag int

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [roots...]",
		Short: "Compile every module under the search roots",
		Long: `Discover every module under the given roots (default: the search path),
compile each one and save a report per module to the output directory.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Check(context.Background(), domain.CheckArgs{
				Roots:    parsePaths(args),
				Optimize: viper.GetInt(optimizeKey),
				Threads:  viper.GetInt(checkParallelKey),
				Reports:  m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	cmd.Flags().IntVarP(&checkParallelFlag, parallelFlagName, "j", viper.GetInt(checkParallelKey), "number of parallel workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), checkParallelKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
