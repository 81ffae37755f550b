package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"strata.dev/pkg/strata/internal/domain"
	m "strata.dev/pkg/strata/internal/model"
)

var compileModuleFlag string
var compileForceStrictFlag bool
var compileForceStaticFlag bool
var compileSaveFlag bool

// compileCmd represents the compile command.
var compileCmd = newCompileCmd()

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile file",
		Short: "Compile one source file",
		Long: `Compile a source file at the tier its markers select and print the
instruction listing. --strict and --static force a tier on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			compileArgs := domain.CompileArgs{
				File:        m.Path(args[0]),
				Module:      compileModuleFlag,
				Optimize:    viper.GetInt(optimizeKey),
				ForceStrict: compileForceStrictFlag,
				ForceStatic: compileForceStaticFlag,
			}

			if compileSaveFlag {
				compileArgs.Output = m.Path(viper.GetString(outputFlagName))
			}

			return workflow.Compile(context.Background(), compileArgs)
		},
	}

	configureCompileFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func configureCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&compileModuleFlag, "module", "m", "", "module name (default: file name without extension)")
	cmd.Flags().BoolVar(&compileForceStrictFlag, "strict", false, "treat the module as strict")
	cmd.Flags().BoolVar(&compileForceStaticFlag, "static", false, "treat the module as static")
	cmd.Flags().BoolVar(&compileSaveFlag, "save", false, "write the artifact to the output directory")

	cmd.Flags().Bool(patchingFlagName, viper.GetBool(enablePatchingKey), "mark static artifacts as patchable")
	bindFlagToConfig(cmd.Flags().Lookup(patchingFlagName), enablePatchingKey)

	cmd.Flags().Bool(referenceFlagName, viper.GetBool(referenceKey), "compile basic modules with the reference backend")
	bindFlagToConfig(cmd.Flags().Lookup(referenceFlagName), referenceKey)
}
