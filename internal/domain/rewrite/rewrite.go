// Package rewrite lowers declarations in a parsed module before code
// generation.
package rewrite

import (
	"context"
	"fmt"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// Class builders chosen by the rewriter.
const (
	ClassBuilder       = "__build_class__"
	StaticClassBuilder = "__build_static_class__"
)

// Rewriter lowers class declarations into builder calls. It never mutates
// its input.
type Rewriter struct{}

// New returns a Rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// Rewrite returns a lowered copy of tree. Static modules construct classes
// with the static builder so their layout is fixed at definition time.
func (r *Rewriter) Rewrite(
	ctx context.Context,
	tree *syntax.Module,
	_ *syntax.SymbolTable,
	filename, name string,
	_ int,
	isStatic bool,
	_ m.Builtins,
) (*syntax.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tree == nil {
		return nil, fmt.Errorf("no tree to rewrite for %s (%s)", name, filename)
	}

	builder := ClassBuilder
	if isStatic {
		builder = StaticClassBuilder
	}

	out := syntax.Clone(tree)

	syntax.Inspect(out.Body, func(stmt syntax.Stmt) bool {
		if class, ok := stmt.(*syntax.ClassDef); ok {
			class.Builder = builder
		}

		return true
	})

	return out, nil
}
