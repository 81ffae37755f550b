package domain

import (
	"context"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// StrictAnalyzer validates modules against the strict tier rules.
type StrictAnalyzer interface {
	// Check analyses the module the analyzer itself resolves for name.
	Check(ctx context.Context, name string) (m.AnalysisVerdict, error)

	// CheckSource analyses the given source.
	CheckSource(ctx context.Context, source []byte, filename, name string, submoduleSearchLocations []string) (m.AnalysisVerdict, error)

	// ForceStrict makes the analyzer treat name as strict even without a
	// marker in its source.
	ForceStrict(name string)
}

// AnalyzerFactory builds the strict analyzer from the driver configuration.
type AnalyzerFactory func(cfg m.AnalyzerConfig) (StrictAnalyzer, error)

// TreeRewriter lowers a parsed tree into the form the code generators take.
type TreeRewriter interface {
	Rewrite(
		ctx context.Context,
		tree *syntax.Module,
		symbols *syntax.SymbolTable,
		filename, name string,
		optimize int,
		isStatic bool,
		builtins m.Builtins,
	) (*syntax.Module, error)
}

// StaticCodeGenerator is the type-aware tier. Typed failures are returned
// as *model.StructuredError; any other error is a fault.
type StaticCodeGenerator interface {
	// DeclareModule builds the module table, resolving dependencies through
	// importer.
	DeclareModule(
		ctx context.Context,
		importer m.ModuleImporter,
		name, filename string,
		tree *syntax.Module,
		optimize int,
		builtins m.Builtins,
	) (*m.ModuleRecord, error)

	// Compile produces the static artifact.
	Compile(
		ctx context.Context,
		importer m.ModuleImporter,
		name, filename string,
		tree *syntax.Module,
		optimize int,
		enablePatching bool,
		builtins m.Builtins,
	) (*m.Artifact, error)
}

// ConflictChecker inspects class hierarchies of a validated module.
type ConflictChecker interface {
	Check(ctx context.Context, tree *syntax.Module, filename string, symbols *syntax.SymbolTable) error
}

// ArtifactCompiler turns a tree into an artifact without static analysis.
type ArtifactCompiler interface {
	Compile(ctx context.Context, name, filename string, tree *syntax.Module, tier m.Tier, optimize int) (*m.Artifact, error)
}
