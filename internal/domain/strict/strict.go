// Package strict is the reference strict-module analyzer.
//
// A strict module must be safe to import: its module-level code may not
// have side effects beyond defining names, and it may only import other
// strict modules or modules on the allow list.
package strict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"strata.dev/pkg/strata/internal/adapter"
	"strata.dev/pkg/strata/internal/domain/flags"
	"strata.dev/pkg/strata/internal/domain/resolve"
	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

const mainGuard = `__name__ == "__main__"`

// Analyzer validates strict modules. It is not safe for concurrent use.
type Analyzer struct {
	cfg      m.AnalyzerConfig
	fs       adapter.SourceFSAdapter
	parser   adapter.ModuleParser
	resolver *resolve.Resolver
	patterns []*regexp.Regexp
	forced   map[string]bool
	// eligible memoizes whether an imported module may be used from a
	// strict module.
	eligible map[string]bool
	logger   *slog.Logger
}

// New builds an Analyzer. It fails when an allow-list regex does not
// compile.
func New(cfg m.AnalyzerConfig, fs adapter.SourceFSAdapter, parser adapter.ModuleParser) (*Analyzer, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.AllowList.Regex))

	for _, expr := range cfg.AllowList.Regex {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid allow-list pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return &Analyzer{
		cfg:    cfg,
		fs:     fs,
		parser: parser,
		resolver: resolve.New(fs, resolve.Config{
			Roots:     cfg.SearchRoots,
			StubRoot:  cfg.StubRoot,
			SourceExt: cfg.SourceExt,
			StubExt:   cfg.StubExt,
		}),
		patterns: patterns,
		forced:   make(map[string]bool),
		eligible: make(map[string]bool),
		logger:   slog.Default(),
	}, nil
}

// ForceStrict treats name as strict from now on.
func (a *Analyzer) ForceStrict(name string) {
	a.forced[name] = true
	a.eligible[name] = true
}

// IsForced reports whether ForceStrict was called for name.
func (a *Analyzer) IsForced(name string) bool {
	return a.forced[name]
}

// Allowed reports whether name matches the allow list.
func (a *Analyzer) Allowed(name string) bool {
	for _, exact := range a.cfg.AllowList.Exact {
		if name == exact {
			return true
		}
	}

	for _, prefix := range a.cfg.AllowList.Prefix {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			return true
		}
	}

	for _, re := range a.patterns {
		if re.MatchString(name) {
			return true
		}
	}

	return false
}

// Check resolves name on the analyzer's own search path and analyses it.
func (a *Analyzer) Check(ctx context.Context, name string) (m.AnalysisVerdict, error) {
	if err := ctx.Err(); err != nil {
		return m.AnalysisVerdict{}, err
	}

	src, found, err := a.resolver.Resolve(ctx, name)
	if err != nil {
		return m.AnalysisVerdict{}, err
	}

	if !found {
		return m.AnalysisVerdict{
			Errors: []m.StructuredError{{Message: "could not find module " + name, Line: 1}},
		}, nil
	}

	return a.CheckSource(ctx, src.Bytes, src.Filename, name, nil)
}

// CheckSource analyses the given module source.
func (a *Analyzer) CheckSource(
	ctx context.Context,
	source []byte,
	filename, name string,
	submoduleSearchLocations []string,
) (m.AnalysisVerdict, error) {
	if err := ctx.Err(); err != nil {
		return m.AnalysisVerdict{}, err
	}

	tree, err := a.parser.Parse(ctx, filename, source)
	if err != nil {
		var serr *syntax.Error
		if !errors.As(err, &serr) {
			return m.AnalysisVerdict{}, err
		}

		return m.AnalysisVerdict{
			Errors: []m.StructuredError{{Message: serr.Msg, Filename: filename, Line: serr.Line, Column: serr.Column}},
		}, nil
	}

	symbols, err := a.parser.Symbols(ctx, filename, tree)
	if err != nil {
		return m.AnalysisVerdict{}, err
	}

	verdict := m.AnalysisVerdict{IsValid: true, Tree: tree, Symbols: symbols}
	if a.cfg.DisableAnalysis {
		return verdict, nil
	}

	c := &checker{
		analyzer: a,
		ctx:      ctx,
		filename: filename,
		pkg:      packageOf(name, filename, len(submoduleSearchLocations) > 0, a.resolver),
		symbols:  symbols,
	}

	if err := c.module(tree.Body); err != nil {
		return m.AnalysisVerdict{}, err
	}

	verdict.Errors = c.errs
	verdict.IsValid = len(c.errs) == 0

	if a.cfg.Verbose {
		for _, diag := range c.errs {
			a.logger.Debug("strict violation", "module", name, "error", diag.Error())
		}
	}

	return verdict, nil
}

// packageOf returns the package relative imports of name are resolved
// against.
func packageOf(name, filename string, isPackage bool, r *resolve.Resolver) string {
	if isPackage || strings.HasSuffix(strings.TrimSuffix(filename, r.Config().SourceExt), resolve.PackageInit) {
		return name
	}

	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}

	return ""
}

type checker struct {
	analyzer *Analyzer
	ctx      context.Context
	filename string
	pkg      string
	symbols  *syntax.SymbolTable
	errs     []m.StructuredError
}

func (c *checker) report(pos syntax.Position, format string, args ...any) {
	c.errs = append(c.errs, m.StructuredError{
		Message:  fmt.Sprintf(format, args...),
		Filename: c.filename,
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

// module checks statements that run at import time. Function bodies do
// not run at import and are skipped; class bodies do.
func (c *checker) module(body []syntax.Stmt) error {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *syntax.Import:
			for _, alias := range s.Names {
				if err := c.importOf(s.Position, alias.Name); err != nil {
					return err
				}
			}
		case *syntax.ImportFrom:
			target, ok := c.absolute(s.Module, s.Level)
			if !ok {
				c.report(s.Position, "relative import beyond top-level package")
				continue
			}

			if err := c.importOf(s.Position, target); err != nil {
				return err
			}
		case *syntax.ExprStmt:
			if !syntax.IsConstant(s.Value) {
				c.report(s.Position, "module-level side effect: %s", s.Value)
			}
		case *syntax.ClassDef:
			if err := c.module(s.Body); err != nil {
				return err
			}
		case *syntax.Block:
			if strings.HasPrefix(s.Header, "if ") && strings.TrimSpace(strings.TrimPrefix(s.Header, "if ")) == mainGuard {
				continue
			}

			if err := c.module(s.Body); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *checker) absolute(module string, level int) (string, bool) {
	if level == 0 {
		return module, true
	}

	parts := []string{}
	if c.pkg != "" {
		parts = strings.Split(c.pkg, ".")
	}

	if level-1 > len(parts) {
		return "", false
	}

	parts = parts[:len(parts)-(level-1)]
	if module != "" {
		parts = append(parts, module)
	}

	return strings.Join(parts, "."), true
}

func (c *checker) importOf(pos syntax.Position, name string) error {
	ok, err := c.analyzer.strictEligible(c.ctx, name)
	if err != nil {
		return err
	}

	if !ok {
		c.report(pos, "import of non-strict module %s", name)
	}

	return nil
}

// strictEligible reports whether a strict module may import name: it is a
// marker, forced, allow-listed, or resolvable and itself marked strict or
// static.
func (a *Analyzer) strictEligible(ctx context.Context, name string) (bool, error) {
	if name == "" || flags.IsMarker(name) || a.forced[name] || a.Allowed(name) {
		return true, nil
	}

	if ok, seen := a.eligible[name]; seen {
		return ok, nil
	}

	src, found, err := a.resolver.Resolve(ctx, name)
	if err != nil {
		return false, err
	}

	ok := false

	if found {
		tree, err := a.parser.Parse(ctx, src.Filename, src.Bytes)
		if err == nil {
			f := flags.Extract(tree)
			ok = f.IsStrict || f.IsStatic
		}
	}

	a.eligible[name] = ok

	return ok, nil
}
