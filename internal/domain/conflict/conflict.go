// Package conflict reports class hierarchy conflicts in strict modules.
package conflict

import (
	"context"
	"fmt"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// Checker finds duplicate bases, rebound classes and bases that are only
// defined further down the module.
type Checker struct{}

// New returns a Checker.
func New() *Checker {
	return &Checker{}
}

// Check returns the first conflict as a *model.StructuredError.
func (c *Checker) Check(ctx context.Context, tree *syntax.Module, filename string, symbols *syntax.SymbolTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if tree == nil {
		return nil
	}

	if symbols == nil {
		symbols = syntax.BuildSymbols(filename, tree)
	}

	for _, stmt := range tree.Body {
		class, ok := stmt.(*syntax.ClassDef)
		if !ok {
			continue
		}

		if err := checkClass(class, filename, symbols); err != nil {
			return err
		}
	}

	return nil
}

func checkClass(class *syntax.ClassDef, filename string, symbols *syntax.SymbolTable) error {
	fail := func(format string, args ...any) error {
		return m.NewStructuredError(fmt.Sprintf(format, args...), filename, class.Line, class.Column)
	}

	seen := make(map[string]bool, len(class.Bases))

	for _, base := range class.Bases {
		if seen[base] {
			return fail("duplicate base class %s in %s", base, class.Name)
		}

		seen[base] = true

		bindings := symbols.Bindings(base)
		if len(bindings) > 0 && bindings[0].Kind == syntax.SymbolClass && bindings[0].Line > class.Line {
			return fail("base class %s of %s is defined later, at line %d", base, class.Name, bindings[0].Line)
		}
	}

	for _, sym := range symbols.Bindings(class.Name) {
		if sym.Line > class.Line {
			return fail("class %s is rebound at line %d", class.Name, sym.Line)
		}
	}

	return nil
}
