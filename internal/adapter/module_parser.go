package adapter

import (
	"context"

	"strata.dev/pkg/strata/internal/syntax"
)

// ModuleParser encapsulates parsing and symbol-table construction so the
// driver can focus on tier selection while delegating the language front
// end to an infrastructure component.
type ModuleParser interface {
	// Parse builds a syntax tree from source bytes.
	Parse(ctx context.Context, filename string, src []byte) (*syntax.Module, error)

	// Symbols builds the global symbol table of a parsed module.
	Symbols(ctx context.Context, filename string, tree *syntax.Module) (*syntax.SymbolTable, error)
}

// LocalModuleParser is the ModuleParser backed by the syntax package.
type LocalModuleParser struct{}

// NewLocalModuleParser constructs a LocalModuleParser.
func NewLocalModuleParser() *LocalModuleParser {
	return &LocalModuleParser{}
}

// Parse builds a tree for the provided filename/source pair.
func (a *LocalModuleParser) Parse(ctx context.Context, filename string, src []byte) (*syntax.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return syntax.Parse(filename, src)
}

// Symbols collects the module's bindings.
func (a *LocalModuleParser) Symbols(ctx context.Context, filename string, tree *syntax.Module) (*syntax.SymbolTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return syntax.BuildSymbols(filename, tree), nil
}
