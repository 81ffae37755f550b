package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"strata.dev/pkg/strata/internal/domain"
)

// importCmd represents the import command.
var importCmd = newImportCmd()

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import module [module...]",
		Short: "Resolve modules the way a static import does",
		Long: `Resolve each module by name on the search path and build its static
module table, compiling static dependencies on the way. Shows why a module
has no table: not found, not static, strict-invalid or static-failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Import(context.Background(), domain.ImportArgs{
				Modules:  args,
				Optimize: viper.GetInt(optimizeKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
