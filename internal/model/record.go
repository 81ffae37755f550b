package model

import (
	"context"

	"strata.dev/pkg/strata/internal/syntax"
)

// DeclKind is the kind of a name exported by a static module.
type DeclKind string

// Declaration kinds.
const (
	DeclClass    DeclKind = "class"
	DeclFunction DeclKind = "function"
	DeclValue    DeclKind = "value"
	DeclImport   DeclKind = "import"
)

// Declaration is one module-level name with its static type, if known.
type Declaration struct {
	Name string
	Kind DeclKind
	Type string
	Line int
}

// ModuleRecord is the module table of a statically compiled module. Records
// are never mutated once the driver caches them.
type ModuleRecord struct {
	Name         string
	Filename     string
	Tree         *syntax.Module
	Symbols      *syntax.SymbolTable
	Exports      map[string]Declaration
	Dependencies []string
}

// Export looks up a module-level declaration.
func (r *ModuleRecord) Export(name string) (Declaration, bool) {
	if r == nil {
		return Declaration{}, false
	}

	decl, ok := r.Exports[name]

	return decl, ok
}

// ModuleImporter resolves the module table of a dependency. The driver
// implements it; the static code generator calls back into it.
type ModuleImporter interface {
	ImportModule(ctx context.Context, name string, optimize int) (*ModuleRecord, error)
}
