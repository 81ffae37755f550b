// Package cmd provides the root command and CLI setup for strata.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"strata.dev/pkg/strata/internal/adapter"
	"strata.dev/pkg/strata/internal/controller"
	"strata.dev/pkg/strata/internal/domain"
	"strata.dev/pkg/strata/internal/domain/codegen"
	"strata.dev/pkg/strata/internal/domain/conflict"
	"strata.dev/pkg/strata/internal/domain/rewrite"
	"strata.dev/pkg/strata/internal/domain/static"
	"strata.dev/pkg/strata/internal/domain/strict"
	m "strata.dev/pkg/strata/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var moduleParser adapter.ModuleParser
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read or
// write reports.
var reportsOutputDirFlag string

var importPaths []string
var stubRootFlag string
var optimizeFlag int
var raiseFlag bool
var verboseFlag bool

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	moduleParser = adapter.NewLocalModuleParser()
	reportStore = adapter.NewReportStore(fsAdapter)
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, newDriver)
}

// newDriver wires a Driver from the current configuration. It is called
// after flags are parsed, once per batch worker.
func newDriver() (*domain.Driver, error) {
	opts := driverOptions()

	return domain.NewDriver(opts, domain.Collaborators{
		FS:     fsAdapter,
		Parser: moduleParser,
		AnalyzerFactory: func(cfg m.AnalyzerConfig) (domain.StrictAnalyzer, error) {
			analyzer, err := strict.New(cfg, fsAdapter, moduleParser)
			if err != nil {
				return nil, err
			}

			return analyzer, nil
		},
		Rewriter:          rewrite.New(),
		Generator:         static.New(),
		Conflicts:         conflict.New(),
		Compiler:          codegen.NewDefault(),
		ReferenceCompiler: codegen.NewReference(),
		Telemetry:         adapter.NewSlogTelemetry(opts.Logger),
	})
}

const rootLongDescription = `Strata compiles modules through three tiers. Plain modules are compiled
as written. Modules that import __strict__ are checked for import-time side
effects first. Modules that import __static__ are also type checked against
the modules they import.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "strata",
		Short:        "Tiered module compiler",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&reportsOutputDirFlag, outputFlagName, "o", viper.GetString(outputFlagName), "output directory for reports and artifacts")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputFlagName)

	flags.StringArrayVarP(&importPaths, pathFlagName, "p", viper.GetStringSlice(importPathsKey), "module search root (can be repeated, searched in order)")
	bindFlagToConfig(flags.Lookup(pathFlagName), importPathsKey)

	flags.StringVar(&stubRootFlag, stubRootFlagName, viper.GetString(stubRootKey), "directory searched for stubs after every search root")
	bindFlagToConfig(flags.Lookup(stubRootFlagName), stubRootKey)

	flags.IntVarP(&optimizeFlag, optimizeFlagName, "O", viper.GetInt(optimizeKey), "optimization level (1 drops asserts, 2 also drops docstrings)")
	bindFlagToConfig(flags.Lookup(optimizeFlagName), optimizeKey)

	flags.BoolVar(&raiseFlag, raiseFlagName, viper.GetBool(raiseOnErrorKey), "fail on the first strict or static error")
	bindFlagToConfig(flags.Lookup(raiseFlagName), raiseOnErrorKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
