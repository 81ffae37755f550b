package domain

import (
	"context"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// compileUnit is one module on its way through LoadCompiledModuleFromSource.
type compileUnit struct {
	source          []byte
	filename        string
	name            string
	optimize        int
	searchLocations []string
	tree            *syntax.Module
	symbols         *syntax.SymbolTable
	flags           m.ModuleFlags
}

// compilePath is the closed set of tier pipelines. Only basicPath,
// strictPath and staticPath implement it.
type compilePath interface {
	tier() m.Tier
	compile(ctx context.Context, d *Driver, u *compileUnit) (m.CompilationOutcome, error)
}

// selectPath picks the pipeline for the merged flags. Static wins over
// strict.
func selectPath(f m.ModuleFlags) compilePath {
	switch {
	case f.IsStatic:
		return staticPath{}
	case f.IsStrict:
		return strictPath{}
	default:
		return basicPath{}
	}
}

type basicPath struct{}

func (basicPath) tier() m.Tier { return m.TierBasic }

func (basicPath) compile(ctx context.Context, d *Driver, u *compileUnit) (m.CompilationOutcome, error) {
	artifact, err := d.compileBasic(ctx, u)
	if err != nil {
		return m.CompilationOutcome{}, err
	}

	return m.CompilationOutcome{Artifact: artifact}, nil
}

type strictPath struct{}

func (strictPath) tier() m.Tier { return m.TierStrict }

func (strictPath) compile(ctx context.Context, d *Driver, u *compileUnit) (m.CompilationOutcome, error) {
	valid, err := d.strictAnalyze(ctx, u)
	if err != nil {
		return m.CompilationOutcome{}, err
	}

	artifact, err := d.compileStrict(ctx, u)
	if err != nil {
		return m.CompilationOutcome{}, err
	}

	return m.CompilationOutcome{Artifact: artifact, IsValidStrict: valid}, nil
}

type staticPath struct{}

func (staticPath) tier() m.Tier { return m.TierStatic }

// compile analyses strictness only when the module also carries the strict
// marker; a static-only module reports IsValidStrict false.
func (staticPath) compile(ctx context.Context, d *Driver, u *compileUnit) (m.CompilationOutcome, error) {
	var valid bool

	if u.flags.IsStrict {
		v, err := d.strictAnalyze(ctx, u)
		if err != nil {
			return m.CompilationOutcome{}, err
		}

		valid = v
	}

	artifact, err := d.compileStatic(ctx, u)
	if err != nil {
		return m.CompilationOutcome{}, err
	}

	return m.CompilationOutcome{Artifact: artifact, IsValidStrict: valid, IsStatic: true}, nil
}
