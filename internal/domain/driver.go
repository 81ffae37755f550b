// Package domain contains the tiered compilation driver and the batch
// workflow built on it.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"strata.dev/pkg/strata/internal/adapter"
	"strata.dev/pkg/strata/internal/domain/flags"
	"strata.dev/pkg/strata/internal/domain/resolve"
	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// Telemetry phases.
const (
	PhaseDeclarationVisit = "declaration_visit"
	PhaseCompile          = "compile"
)

const unknownStaticError = "unknown error during static compilation"

// Collaborators are the services a Driver composes. Conflicts and
// Telemetry are optional; ReferenceCompiler is only needed when
// Options.UseReferenceCompiler is set.
type Collaborators struct {
	FS                adapter.SourceFSAdapter
	Parser            adapter.ModuleParser
	AnalyzerFactory   AnalyzerFactory
	Rewriter          TreeRewriter
	Generator         StaticCodeGenerator
	Conflicts         ConflictChecker
	Compiler          ArtifactCompiler
	ReferenceCompiler ArtifactCompiler
	Telemetry         adapter.Telemetry
}

// Stats counts the work a Driver has done.
type Stats struct {
	Resolves     int
	Parses       int
	StrictChecks int
	Declarations int
	Cached       int
}

// SourceRequest is the input of LoadCompiledModuleFromSource.
type SourceRequest struct {
	Source   []byte
	Filename string
	Name     string
	Optimize int
	// SubmoduleSearchLocations is forwarded to the strict analyzer.
	SubmoduleSearchLocations []string
	// OverrideFlags forces tiers on; nil leaves the scanned flags alone.
	OverrideFlags *m.ModuleFlags
}

// Driver is the tiered compilation driver. It is not safe for concurrent
// use: it may re-enter itself through the static code generator, but two
// goroutines must not share one Driver.
type Driver struct {
	opts      Options
	resolver  *resolve.Resolver
	parser    adapter.ModuleParser
	analyzer  StrictAnalyzer
	rewriter  TreeRewriter
	generator StaticCodeGenerator
	conflicts ConflictChecker
	compiler  ArtifactCompiler
	basic     ArtifactCompiler
	telemetry adapter.Telemetry
	builtins  m.Builtins
	cache     *moduleCache
	stats     Stats
	logger    *slog.Logger
}

var _ m.ModuleImporter = (*Driver)(nil)

// NewDriver builds a Driver. The builtin namespace is snapshotted here.
func NewDriver(opts Options, deps Collaborators) (*Driver, error) {
	if err := validateCollaborators(opts, deps); err != nil {
		return nil, err
	}

	analyzer, err := deps.AnalyzerFactory(opts.analyzerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create strict analyzer: %w", err)
	}

	ns := opts.Builtins
	if ns == nil {
		ns = AmbientBuiltins
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	basic := deps.Compiler
	if opts.UseReferenceCompiler {
		basic = deps.ReferenceCompiler
	}

	return &Driver{
		opts: opts,
		resolver: resolve.New(deps.FS, resolve.Config{
			Roots:     opts.SearchRoots,
			StubRoot:  opts.StubRoot,
			SourceExt: opts.SourceExt,
			StubExt:   opts.StubExt,
		}),
		parser:    deps.Parser,
		analyzer:  analyzer,
		rewriter:  deps.Rewriter,
		generator: deps.Generator,
		conflicts: deps.Conflicts,
		compiler:  deps.Compiler,
		basic:     basic,
		telemetry: deps.Telemetry,
		builtins:  m.SnapshotBuiltins(ns),
		cache:     newModuleCache(),
		logger:    logger,
	}, nil
}

func validateCollaborators(opts Options, deps Collaborators) error {
	missing := func(what string) error {
		return fmt.Errorf("%w: %s", ErrMissingCollaborator, what)
	}

	switch {
	case deps.FS == nil:
		return missing("filesystem adapter")
	case deps.Parser == nil:
		return missing("parser")
	case deps.AnalyzerFactory == nil:
		return missing("strict analyzer factory")
	case deps.Rewriter == nil:
		return missing("tree rewriter")
	case deps.Generator == nil:
		return missing("static code generator")
	case deps.Compiler == nil:
		return missing("artifact compiler")
	case opts.UseReferenceCompiler && deps.ReferenceCompiler == nil:
		return missing("reference compiler")
	}

	return nil
}

// Builtins returns the snapshot taken at construction.
func (d *Driver) Builtins() m.Builtins {
	return d.builtins
}

// SearchConfig returns the resolver configuration with defaults applied.
func (d *Driver) SearchConfig() resolve.Config {
	return d.resolver.Config()
}

// Stats returns the work counters.
func (d *Driver) Stats() Stats {
	s := d.stats
	s.Cached = d.cache.len()

	return s
}

// Verdict returns the cached recursive-resolution verdict for name.
func (d *Driver) Verdict(name string) (m.CacheVerdict, bool) {
	entry, ok := d.cache.lookup(name)
	if !ok || entry.state != stateDone {
		return m.CacheVerdict{}, false
	}

	return entry.verdict, true
}

// ImportModule resolves name to its module table, compiling it at the
// static tier on first use. It returns nil without error when the module
// does not exist or is not eligible for static compilation. Every outcome is
// cached, so repeated calls never re-parse or re-analyse. A request for a
// module that is still being built fails with *CircularDependencyError.
func (d *Driver) ImportModule(ctx context.Context, name string, optimize int) (*m.ModuleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if entry, ok := d.cache.lookup(name); ok {
		if entry.state == stateInProgress {
			return nil, &CircularDependencyError{Chain: d.cache.cycle(name)}
		}

		return entry.verdict.Record, nil
	}

	d.cache.begin(name)

	verdict, err := d.importUncached(ctx, name, optimize)
	if err != nil {
		d.cache.abandon(name)
		return nil, err
	}

	d.cache.finish(name, verdict)
	d.debug("resolved module", "module", name, "verdict", verdict.Reason)

	return verdict.Record, nil
}

func (d *Driver) importUncached(ctx context.Context, name string, optimize int) (m.CacheVerdict, error) {
	d.stats.Resolves++

	src, found, err := d.resolver.Resolve(ctx, name)
	if err != nil {
		return m.CacheVerdict{}, fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	if !found {
		return m.CacheVerdict{Reason: m.ReasonNotFound}, nil
	}

	tree, err := d.parse(ctx, src.Filename, src.Bytes)
	if err != nil {
		return m.CacheVerdict{}, err
	}

	moduleFlags := flags.Extract(tree)

	if moduleFlags.IsStrict {
		d.stats.StrictChecks++

		verdict, err := d.analyzer.Check(ctx, name)
		if err != nil {
			return m.CacheVerdict{}, fmt.Errorf("strict analysis of %s: %w", name, err)
		}

		if !verdict.StrictValid() {
			return m.CacheVerdict{Reason: m.ReasonStrictInvalid, Errors: verdict.Errors}, nil
		}
	}

	if !moduleFlags.IsStatic {
		return m.CacheVerdict{Reason: m.ReasonNotStatic}, nil
	}

	return d.declareStatic(ctx, name, src, tree, optimize)
}

func (d *Driver) declareStatic(ctx context.Context, name string, src resolve.Source, tree *syntax.Module, optimize int) (m.CacheVerdict, error) {
	symbols, err := d.parser.Symbols(ctx, src.Filename, tree)
	if err != nil {
		return m.CacheVerdict{}, fmt.Errorf("failed to build symbols for %s: %w", name, err)
	}

	if src.IsStub {
		tree = syntax.StripAnnotations(tree)
	}

	rewritten, err := d.rewriter.Rewrite(ctx, tree, symbols, src.Filename, name, optimize, true, d.builtins)
	if err != nil {
		return m.CacheVerdict{}, fmt.Errorf("failed to rewrite %s: %w", name, err)
	}

	d.stats.Declarations++

	end := d.span(name, src.Filename, PhaseDeclarationVisit)
	record, err := d.generator.DeclareModule(ctx, d, name, src.Filename, rewritten, optimize, d.builtins)
	end()

	if err != nil {
		serr, ok := d.structured(err, src.Filename)
		if !ok {
			return m.CacheVerdict{}, err
		}

		if d.opts.RaiseOnError {
			return m.CacheVerdict{}, serr
		}

		d.debug("static declaration failed", "module", name, "error", serr)

		return m.CacheVerdict{Reason: m.ReasonStaticFailed, Errors: []m.StructuredError{*serr}}, nil
	}

	return m.CacheVerdict{Reason: m.ReasonCached, Record: record}, nil
}

// LoadCompiledModuleFromSource compiles source directly. It always parses
// and analyses from scratch and never reads or fills the module cache for
// req.Name itself.
func (d *Driver) LoadCompiledModuleFromSource(ctx context.Context, req SourceRequest) (m.CompilationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return m.CompilationOutcome{}, err
	}

	if req.OverrideFlags != nil && req.OverrideFlags.IsStrict {
		d.logger.Debug("Forcibly treating module as strict", "module", req.Name)
		d.analyzer.ForceStrict(req.Name)
	}

	tree, err := d.parse(ctx, req.Filename, req.Source)
	if err != nil {
		return m.CompilationOutcome{}, err
	}

	symbols, err := d.parser.Symbols(ctx, req.Filename, tree)
	if err != nil {
		return m.CompilationOutcome{}, fmt.Errorf("failed to build symbols for %s: %w", req.Name, err)
	}

	unit := &compileUnit{
		source:          req.Source,
		filename:        req.Filename,
		name:            req.Name,
		optimize:        req.Optimize,
		searchLocations: req.SubmoduleSearchLocations,
		tree:            tree,
		symbols:         symbols,
		flags:           flags.Extract(tree).Merge(req.OverrideFlags),
	}

	path := selectPath(unit.flags)
	d.debug("compiling module", "module", req.Name, "tier", path.tier())

	return path.compile(ctx, d, unit)
}

// Rewritten returns the parsed tree of req and the tree the tier selected
// for it would hand to code generation. Basic modules are returned as is.
func (d *Driver) Rewritten(ctx context.Context, req SourceRequest) (*syntax.Module, *syntax.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	tree, err := d.parse(ctx, req.Filename, req.Source)
	if err != nil {
		return nil, nil, err
	}

	f := flags.Extract(tree).Merge(req.OverrideFlags)
	if !f.IsStrict && !f.IsStatic {
		return tree, tree, nil
	}

	symbols, err := d.parser.Symbols(ctx, req.Filename, tree)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build symbols for %s: %w", req.Name, err)
	}

	lowered := tree
	if f.IsStatic && d.resolver.IsStubFilename(req.Filename) {
		lowered = syntax.StripAnnotations(tree)
	}

	after, err := d.rewriter.Rewrite(ctx, lowered, symbols, req.Filename, req.Name, req.Optimize, f.IsStatic, d.builtins)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rewrite %s: %w", req.Name, err)
	}

	return tree, after, nil
}

func (d *Driver) parse(ctx context.Context, filename string, src []byte) (*syntax.Module, error) {
	d.stats.Parses++

	tree, err := d.parser.Parse(ctx, filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return tree, nil
}

// strictAnalyze runs the analyzer and the advisory conflict check and
// returns the strict validity.
func (d *Driver) strictAnalyze(ctx context.Context, u *compileUnit) (bool, error) {
	d.stats.StrictChecks++

	verdict, err := d.analyzer.CheckSource(ctx, u.source, u.filename, u.name, u.searchLocations)
	if err != nil {
		return false, fmt.Errorf("strict analysis of %s: %w", u.name, err)
	}

	if len(verdict.Errors) > 0 && d.opts.RaiseOnError {
		first := verdict.Errors[0]
		return false, &first
	}

	if err := d.checkConflicts(ctx, verdict, u); err != nil {
		return false, err
	}

	return verdict.StrictValid(), nil
}

func (d *Driver) checkConflicts(ctx context.Context, verdict m.AnalysisVerdict, u *compileUnit) error {
	if d.conflicts == nil {
		return nil
	}

	tree, symbols := verdict.Tree, verdict.Symbols
	if tree == nil {
		tree, symbols = u.tree, u.symbols
	}

	err := d.conflicts.Check(ctx, tree, u.filename, symbols)
	if err == nil {
		return nil
	}

	var serr *m.StructuredError
	if !errors.As(err, &serr) {
		return fmt.Errorf("conflict check of %s: %w", u.name, err)
	}

	if d.opts.RaiseOnError {
		return serr
	}

	d.debug("class conflict ignored", "module", u.name, "error", serr)

	return nil
}

// compileStatic returns a nil artifact without error when static
// compilation fails and errors are not raised.
func (d *Driver) compileStatic(ctx context.Context, u *compileUnit) (*m.Artifact, error) {
	tree := u.tree
	if d.resolver.IsStubFilename(u.filename) {
		tree = syntax.StripAnnotations(tree)
	}

	rewritten, err := d.rewriter.Rewrite(ctx, tree, u.symbols, u.filename, u.name, u.optimize, true, d.builtins)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", u.name, err)
	}

	end := d.span(u.name, u.filename, PhaseCompile)
	artifact, err := d.generator.Compile(ctx, d, u.name, u.filename, rewritten, u.optimize, d.opts.EnablePatching, d.builtins)
	end()

	if err == nil {
		return artifact, nil
	}

	serr, ok := d.structured(err, u.filename)
	if !ok {
		return nil, err
	}

	if d.opts.RaiseOnError {
		return nil, serr
	}

	d.debug("static compilation failed", "module", u.name, "error", serr)

	return nil, nil
}

func (d *Driver) compileStrict(ctx context.Context, u *compileUnit) (*m.Artifact, error) {
	rewritten, err := d.rewriter.Rewrite(ctx, u.tree, u.symbols, u.filename, u.name, u.optimize, false, d.builtins)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", u.name, err)
	}

	artifact, err := d.compiler.Compile(ctx, u.name, u.filename, rewritten, m.TierStrict, u.optimize)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", u.name, err)
	}

	return artifact, nil
}

func (d *Driver) compileBasic(ctx context.Context, u *compileUnit) (*m.Artifact, error) {
	artifact, err := d.basic.Compile(ctx, u.name, u.filename, u.tree, m.TierBasic, u.optimize)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", u.name, err)
	}

	return artifact, nil
}

// structured extracts a StructuredError, filling in the location defaults a
// generator may have left empty.
func (d *Driver) structured(err error, filename string) (*m.StructuredError, bool) {
	var serr *m.StructuredError
	if !errors.As(err, &serr) {
		return nil, false
	}

	out := *serr
	if out.Message == "" {
		out.Message = unknownStaticError
	}

	if out.Filename == "" {
		out.Filename = filename
	}

	if out.Line == 0 {
		out.Line = 1
	}

	return &out, true
}

func (d *Driver) span(name, filename, phase string) func() {
	if d.telemetry == nil {
		return func() {}
	}

	return d.telemetry.Span(name, filename, phase)
}

func (d *Driver) debug(msg string, args ...any) {
	if !d.opts.Verbose {
		return
	}

	d.logger.Debug(msg, args...)
}
