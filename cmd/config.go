package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"strata.dev/pkg/strata/internal/domain"
	"strata.dev/pkg/strata/internal/domain/resolve"
	m "strata.dev/pkg/strata/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "strata"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName    = "output"
	pathFlagName      = "path"
	stubRootFlagName  = "stub-root"
	optimizeFlagName  = "optimize"
	raiseFlagName     = "raise"
	verboseFlagName   = "verbose"
	parallelFlagName  = "parallel"
	patchingFlagName  = "enable-patching"
	referenceFlagName = "reference-compiler"

	importPathsKey     = "paths.import"
	stubRootKey        = "paths.stub_root"
	sourceExtKey       = "paths.source_ext"
	stubExtKey         = "paths.stub_ext"
	allowPrefixKey     = "allowlist.prefix"
	allowExactKey      = "allowlist.exact"
	allowRegexKey      = "allowlist.regex"
	optimizeKey        = "compile.optimize"
	raiseOnErrorKey    = "compile.raise_on_error"
	enablePatchingKey  = "compile.enable_patching"
	referenceKey       = "compile.use_reference_compiler"
	strictVerboseKey   = "strict.verbose"
	disableAnalysisKey = "strict.disable_analysis"
	checkParallelKey   = "check.parallel"

	defaultReportsDir    = ".strata-reports"
	defaultOptimize      = 0
	defaultCheckParallel = 1

	envPrefix = "STRATA"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".strata.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)

	viper.SetDefault(importPathsKey, []string{"."})
	viper.SetDefault(stubRootKey, "")
	viper.SetDefault(sourceExtKey, resolve.DefaultSourceExt)
	viper.SetDefault(stubExtKey, resolve.DefaultStubExt)
	viper.SetDefault(allowPrefixKey, []string{})
	viper.SetDefault(allowExactKey, []string{})
	viper.SetDefault(allowRegexKey, []string{})

	viper.SetDefault(optimizeKey, defaultOptimize)
	viper.SetDefault(raiseOnErrorKey, false)
	viper.SetDefault(enablePatchingKey, false)
	viper.SetDefault(referenceKey, false)
	viper.SetDefault(strictVerboseKey, false)
	viper.SetDefault(disableAnalysisKey, false)
	viper.SetDefault(checkParallelKey, defaultCheckParallel)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	readConfig()
}

// readConfig merges the configuration file into viper. A missing file is not
// an error; anything else is logged and the defaults stay in effect.
func readConfig() {
	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return
	}

	slog.Warn("Failed to read config file", "file", viper.ConfigFileUsed(), "error", err)
}

// driverOptions reads the driver options from the merged configuration.
func driverOptions() domain.Options {
	return domain.Options{
		SearchRoots: viper.GetStringSlice(importPathsKey),
		StubRoot:    viper.GetString(stubRootKey),
		SourceExt:   viper.GetString(sourceExtKey),
		StubExt:     viper.GetString(stubExtKey),
		AllowList: m.AllowList{
			Prefix: viper.GetStringSlice(allowPrefixKey),
			Exact:  viper.GetStringSlice(allowExactKey),
			Regex:  viper.GetStringSlice(allowRegexKey),
		},
		Verbose:              viper.GetBool(strictVerboseKey) || viper.GetBool(logVerboseKey),
		DisableAnalysis:      viper.GetBool(disableAnalysisKey),
		RaiseOnError:         viper.GetBool(raiseOnErrorKey),
		EnablePatching:       viper.GetBool(enablePatchingKey),
		UseReferenceCompiler: viper.GetBool(referenceKey),
		Logger:               globalLogger,
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs a rotating file logger as the slog default.
// Verbose forces the debug level.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
