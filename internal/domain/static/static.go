// Package static is the reference type-aware code generator.
//
// The declaration pass builds a module table from the module's top-level
// bindings and checks every annotation against the builtin snapshot and the
// module's own names. Names imported from other modules are looked up in
// their module tables, which the importer builds on demand.
package static

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"strata.dev/pkg/strata/internal/domain/codegen"
	"strata.dev/pkg/strata/internal/domain/flags"
	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// Backend is the backend name recorded on static artifacts.
const Backend = "static"

// Generator implements the static tier.
type Generator struct{}

// New returns a Generator.
func New() *Generator {
	return &Generator{}
}

// DeclareModule builds the module table for name.
func (g *Generator) DeclareModule(
	ctx context.Context,
	importer m.ModuleImporter,
	name, filename string,
	tree *syntax.Module,
	optimize int,
	builtins m.Builtins,
) (*m.ModuleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tree == nil {
		return nil, fmt.Errorf("no tree to declare for %s", name)
	}

	d := &declarer{
		ctx:      ctx,
		importer: importer,
		name:     name,
		filename: filename,
		optimize: optimize,
		builtins: builtins,
		symbols:  syntax.BuildSymbols(filename, tree),
		record: &m.ModuleRecord{
			Name:     name,
			Filename: filename,
			Tree:     tree,
			Exports:  make(map[string]m.Declaration),
		},
	}

	d.record.Symbols = d.symbols

	if err := d.declare(tree.Body); err != nil {
		return nil, err
	}

	if err := d.checkAnnotations(tree.Body); err != nil {
		return nil, err
	}

	return d.record, nil
}

// Compile declares the module and emits its typed instruction listing.
func (g *Generator) Compile(
	ctx context.Context,
	importer m.ModuleImporter,
	name, filename string,
	tree *syntax.Module,
	optimize int,
	enablePatching bool,
	builtins m.Builtins,
) (*m.Artifact, error) {
	if _, err := g.DeclareModule(ctx, importer, name, filename, tree, optimize, builtins); err != nil {
		return nil, err
	}

	instrs := codegen.Lower(tree, codegen.Options{Optimize: optimize, Peephole: true, Typed: true})

	artifact := codegen.Assemble(name, filename, m.TierStatic, optimize, Backend, instrs)
	artifact.Patchable = enablePatching

	return artifact, nil
}

type declarer struct {
	ctx      context.Context
	importer m.ModuleImporter
	name     string
	filename string
	optimize int
	builtins m.Builtins
	symbols  *syntax.SymbolTable
	record   *m.ModuleRecord
}

func (d *declarer) fail(pos syntax.Position, format string, args ...any) error {
	return m.NewStructuredError(fmt.Sprintf(format, args...), d.filename, pos.Line, pos.Column)
}

func (d *declarer) export(decl m.Declaration) {
	d.record.Exports[decl.Name] = decl
}

func (d *declarer) declare(body []syntax.Stmt) error {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *syntax.Import:
			for _, alias := range s.Names {
				if _, err := d.dependOn(alias.Name); err != nil {
					return err
				}

				d.export(m.Declaration{Name: alias.BoundName(), Kind: m.DeclImport, Type: alias.Name, Line: s.Line})
			}
		case *syntax.ImportFrom:
			if err := d.importFrom(s); err != nil {
				return err
			}
		case *syntax.ClassDef:
			d.export(m.Declaration{Name: s.Name, Kind: m.DeclClass, Type: s.Name, Line: s.Line})
		case *syntax.FunctionDef:
			d.export(m.Declaration{Name: s.Name, Kind: m.DeclFunction, Type: s.Returns, Line: s.Line})
		case *syntax.AnnAssign:
			if err := d.checkLiteral(s); err != nil {
				return err
			}

			d.export(m.Declaration{Name: s.Target, Kind: m.DeclValue, Type: s.Annotation, Line: s.Line})
		case *syntax.Assign:
			typ, _ := syntax.LiteralType(s.Value)
			for _, target := range s.Targets {
				d.export(m.Declaration{Name: target, Kind: m.DeclValue, Type: typ, Line: s.Line})
			}
		case *syntax.Block:
			if err := d.declare(s.Body); err != nil {
				return err
			}
		}
	}

	return nil
}

// dependOn loads the module table of a dependency. A nil table means the
// dependency is not static and is used dynamically.
func (d *declarer) dependOn(module string) (*m.ModuleRecord, error) {
	if flags.IsMarker(module) || module == d.name {
		return nil, nil
	}

	rec, err := d.importer.ImportModule(d.ctx, module, d.optimize)
	if err != nil {
		return nil, err
	}

	if rec != nil {
		d.record.Dependencies = append(d.record.Dependencies, module)
	}

	return rec, nil
}

func (d *declarer) importFrom(s *syntax.ImportFrom) error {
	module, ok := d.absolute(s.Module, s.Level)
	if !ok {
		return d.fail(s.Position, "attempted relative import beyond top-level package")
	}

	dep, err := d.dependOn(module)
	if err != nil {
		return err
	}

	for _, alias := range s.Names {
		if alias.Name == "*" {
			continue
		}

		decl := m.Declaration{Name: alias.BoundName(), Kind: m.DeclImport, Type: module + "." + alias.Name, Line: s.Line}

		if dep != nil {
			exported, ok := dep.Export(alias.Name)
			if !ok {
				return d.fail(s.Position, "cannot import name '%s' from '%s'", alias.Name, module)
			}

			decl.Kind = exported.Kind
			decl.Type = exported.Type
		}

		d.export(decl)
	}

	return nil
}

func (d *declarer) absolute(module string, level int) (string, bool) {
	if level == 0 {
		return module, true
	}

	parts := strings.Split(d.name, ".")

	base := strings.TrimSuffix(filepath.Base(d.filename), filepath.Ext(d.filename))
	if base != "__init__" {
		parts = parts[:len(parts)-1]
	}

	if level-1 > len(parts) {
		return "", false
	}

	parts = parts[:len(parts)-(level-1)]
	if module != "" {
		parts = append(parts, module)
	}

	if len(parts) == 0 {
		return "", false
	}

	return strings.Join(parts, "."), true
}

// checkAnnotations verifies that every name used in an annotation is a
// builtin or bound in the module.
func (d *declarer) checkAnnotations(body []syntax.Stmt) error {
	var err error

	syntax.Inspect(body, func(stmt syntax.Stmt) bool {
		if err != nil {
			return false
		}

		switch s := stmt.(type) {
		case *syntax.AnnAssign:
			err = d.checkType(s.Position, s.Annotation)
		case *syntax.FunctionDef:
			for _, param := range s.Params {
				if err = d.checkType(s.Position, param.Annotation); err != nil {
					return false
				}
			}

			err = d.checkType(s.Position, s.Returns)
		}

		return err == nil
	})

	return err
}

func (d *declarer) checkType(pos syntax.Position, annotation string) error {
	for _, name := range syntax.Names(annotation) {
		if d.builtins.Has(name) {
			continue
		}

		if _, ok := d.symbols.Lookup(name); ok {
			continue
		}

		return d.fail(pos, "unknown type '%s' in annotation '%s'", name, annotation)
	}

	return nil
}

// checkLiteral rejects a literal initializer whose type cannot be assigned
// to a builtin scalar annotation.
func (d *declarer) checkLiteral(s *syntax.AnnAssign) error {
	if s.Value == "" || s.Value == syntax.StubPlaceholder {
		return nil
	}

	got, ok := syntax.LiteralType(s.Value)
	if !ok {
		return nil
	}

	want := strings.TrimSpace(s.Annotation)
	if !scalarTypes[want] || assignable(got, want) {
		return nil
	}

	return d.fail(s.Position, "type mismatch: %s cannot be assigned to %s", got, want)
}

var scalarTypes = map[string]bool{
	"int":     true,
	"float":   true,
	"complex": true,
	"bool":    true,
	"str":     true,
	"bytes":   true,
}

func assignable(got, want string) bool {
	if got == want {
		return true
	}

	switch want {
	case "int":
		return got == "bool"
	case "float":
		return got == "int" || got == "bool"
	case "complex":
		return got == "int" || got == "float" || got == "bool"
	}

	return false
}
