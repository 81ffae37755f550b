package domain

import (
	"log/slog"

	m "strata.dev/pkg/strata/internal/model"
)

// Builtin namespace value kinds.
const (
	BuiltinType     = "type"
	BuiltinFunction = "function"
	BuiltinConstant = "constant"
)

// AmbientBuiltins is the process-wide builtin namespace. A Driver snapshots
// it (or Options.Builtins) once, at construction; changes made afterwards
// are never seen by that Driver.
var AmbientBuiltins = map[string]any{
	"object":       BuiltinType,
	"type":         BuiltinType,
	"int":          BuiltinType,
	"float":        BuiltinType,
	"complex":      BuiltinType,
	"bool":         BuiltinType,
	"str":          BuiltinType,
	"bytes":        BuiltinType,
	"list":         BuiltinType,
	"dict":         BuiltinType,
	"set":          BuiltinType,
	"frozenset":    BuiltinType,
	"tuple":        BuiltinType,
	"Exception":    BuiltinType,
	"ValueError":   BuiltinType,
	"TypeError":    BuiltinType,
	"KeyError":     BuiltinType,
	"property":     BuiltinType,
	"staticmethod": BuiltinType,
	"classmethod":  BuiltinType,
	"super":        BuiltinType,
	"len":          BuiltinFunction,
	"print":        BuiltinFunction,
	"isinstance":   BuiltinFunction,
	"issubclass":   BuiltinFunction,
	"range":        BuiltinFunction,
	"getattr":      BuiltinFunction,
	"setattr":      BuiltinFunction,
	"None":         BuiltinConstant,
	"True":         BuiltinConstant,
	"False":        BuiltinConstant,
	"Ellipsis":     BuiltinConstant,
}

// Options configures a Driver.
type Options struct {
	// SearchRoots is the ordered list of roots searched for module sources.
	SearchRoots []string
	// StubRoot is searched for stubs only, after every search root.
	StubRoot  string
	SourceExt string
	StubExt   string

	// AllowList, Verbose and DisableAnalysis are forwarded to the strict
	// analyzer. Verbose also enables the driver's diagnostic logging.
	AllowList       m.AllowList
	Verbose         bool
	DisableAnalysis bool

	// RaiseOnError turns the first strict diagnostic, static compilation
	// failure or class conflict into an error.
	RaiseOnError bool

	// EnablePatching is forwarded to the static code generator.
	EnablePatching bool

	// UseReferenceCompiler services the basic tier with the reference
	// backend instead of the default one.
	UseReferenceCompiler bool

	// Builtins is the namespace to snapshot. Nil means AmbientBuiltins.
	Builtins map[string]any

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func (o Options) analyzerConfig() m.AnalyzerConfig {
	return m.AnalyzerConfig{
		SearchRoots:     append([]string(nil), o.SearchRoots...),
		StubRoot:        o.StubRoot,
		SourceExt:       o.SourceExt,
		StubExt:         o.StubExt,
		AllowList:       o.AllowList,
		Verbose:         o.Verbose,
		DisableAnalysis: o.DisableAnalysis,
	}
}
