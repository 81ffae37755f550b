// Package codegen lowers syntax trees to instruction listings and packages
// them as artifacts.
package codegen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// Backend names.
const (
	BackendDefault   = "default"
	BackendReference = "reference"
)

// DefaultClassBuilder constructs classes when the rewriter did not pick one.
const DefaultClassBuilder = "__build_class__"

// Instruction opcodes.
const (
	OpImportName  = "IMPORT_NAME"
	OpImportFrom  = "IMPORT_FROM"
	OpImportStar  = "IMPORT_STAR"
	OpEval        = "EVAL"
	OpPopTop      = "POP_TOP"
	OpStoreName   = "STORE_NAME"
	OpStoreTyped  = "STORE_TYPED"
	OpAnnotate    = "ANNOTATE"
	OpDeclare     = "DECLARE"
	OpSetDoc      = "SET_DOC"
	OpBeginCode   = "BEGIN_CODE"
	OpEndCode     = "END_CODE"
	OpMakeFunc    = "MAKE_FUNCTION"
	OpCheckArgs   = "CHECK_ARGS"
	OpLoadBuilder = "LOAD_BUILD_CLASS"
	OpCallBuilder = "CALL_BUILD_CLASS"
	OpDecorate    = "DECORATE"
	OpBlock       = "BLOCK"
	OpEndBlock    = "END_BLOCK"
	OpAssert      = "ASSERT"
	OpReturn      = "RETURN_VALUE"
	OpNop         = "NOP"
)

// Options controls lowering.
type Options struct {
	Optimize int
	// Peephole drops no-op statements: pass and constant expressions.
	Peephole bool
	// Typed emits declared types for annotated stores and argument checks
	// for annotated parameters.
	Typed bool
}

// Lower turns a module body into a flat instruction listing. Optimize 1 and
// above drops asserts; 2 and above also drops docstrings.
func Lower(tree *syntax.Module, opts Options) []m.Instruction {
	l := &lowerer{opts: opts}
	if tree == nil {
		return l.out
	}

	body := tree.Body
	if doc, ok := tree.Docstring(); ok {
		if opts.Optimize < 2 {
			l.emit(OpSetDoc, doc, tree.Body[0].Pos().Line)
		}

		body = body[1:]
	}

	l.body(body)
	l.emit(OpReturn, "None", 0)

	return l.out
}

type lowerer struct {
	opts Options
	out  []m.Instruction
}

func (l *lowerer) emit(op, arg string, line int) {
	l.out = append(l.out, m.Instruction{Op: op, Arg: arg, Line: line})
}

func (l *lowerer) body(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		l.stmt(stmt)
	}
}

func (l *lowerer) stmt(stmt syntax.Stmt) {
	line := stmt.Pos().Line

	switch s := stmt.(type) {
	case *syntax.Import:
		for _, alias := range s.Names {
			l.emit(OpImportName, alias.Name, line)
			l.emit(OpStoreName, alias.BoundName(), line)
		}
	case *syntax.ImportFrom:
		l.emit(OpImportName, strings.Repeat(".", s.Level)+s.Module, line)

		for _, alias := range s.Names {
			if alias.Name == "*" {
				l.emit(OpImportStar, "", line)
				continue
			}

			l.emit(OpImportFrom, alias.Name, line)
			l.emit(OpStoreName, alias.BoundName(), line)
		}

		l.emit(OpPopTop, "", line)
	case *syntax.Assign:
		l.emit(OpEval, s.Value, line)

		for _, target := range s.Targets {
			l.emit(OpStoreName, target, line)
		}
	case *syntax.AnnAssign:
		l.annAssign(s)
	case *syntax.FunctionDef:
		l.function(s)
	case *syntax.ClassDef:
		l.class(s)
	case *syntax.Block:
		l.emit(OpBlock, s.Header, line)
		l.body(s.Body)
		l.emit(OpEndBlock, "", line)
	case *syntax.Return:
		value := s.Value
		if value == "" {
			value = "None"
		}

		l.emit(OpReturn, value, line)
	case *syntax.Assert:
		if l.opts.Optimize >= 1 {
			return
		}

		l.emit(OpAssert, s.Test, line)
	case *syntax.Pass:
		if !l.opts.Peephole {
			l.emit(OpNop, "", line)
		}
	case *syntax.ExprStmt:
		if l.opts.Peephole && syntax.IsConstant(s.Value) {
			return
		}

		l.emit(OpEval, s.Value, line)
		l.emit(OpPopTop, "", line)
	}
}

func (l *lowerer) annAssign(s *syntax.AnnAssign) {
	line := s.Line

	if s.Value == "" {
		if l.opts.Typed {
			l.emit(OpDeclare, s.Target+": "+s.Annotation, line)
		} else {
			l.emit(OpAnnotate, s.Target+": "+s.Annotation, line)
		}

		return
	}

	l.emit(OpEval, s.Value, line)

	if l.opts.Typed {
		l.emit(OpStoreTyped, s.Target+": "+s.Annotation, line)
	} else {
		l.emit(OpStoreName, s.Target, line)
	}
}

func (l *lowerer) function(s *syntax.FunctionDef) {
	for _, dec := range s.Decorators {
		l.emit(OpEval, dec, s.Line)
	}

	l.emit(OpBeginCode, s.Name, s.Line)

	if l.opts.Typed {
		if checks := argChecks(s.Params); checks != "" {
			l.emit(OpCheckArgs, checks, s.Line)
		}
	}

	l.body(s.Body)
	l.emit(OpReturn, "None", s.Line)
	l.emit(OpEndCode, s.Name, s.Line)
	l.emit(OpMakeFunc, s.Name+"/"+strconv.Itoa(len(s.Params)), s.Line)

	for range s.Decorators {
		l.emit(OpDecorate, "", s.Line)
	}

	l.emit(OpStoreName, s.Name, s.Line)
}

func (l *lowerer) class(s *syntax.ClassDef) {
	for _, dec := range s.Decorators {
		l.emit(OpEval, dec, s.Line)
	}

	builder := s.Builder
	if builder == "" {
		builder = DefaultClassBuilder
	}

	l.emit(OpLoadBuilder, builder, s.Line)
	l.emit(OpBeginCode, s.Name, s.Line)
	l.body(s.Body)
	l.emit(OpEndCode, s.Name, s.Line)

	for _, base := range s.Bases {
		l.emit(OpEval, base, s.Line)
	}

	l.emit(OpCallBuilder, s.Name+"/"+strconv.Itoa(len(s.Bases)), s.Line)

	for range s.Decorators {
		l.emit(OpDecorate, "", s.Line)
	}

	l.emit(OpStoreName, s.Name, s.Line)
}

func argChecks(params []syntax.Param) string {
	var parts []string

	for _, param := range params {
		if param.Annotation != "" {
			parts = append(parts, param.Name+": "+param.Annotation)
		}
	}

	return strings.Join(parts, ", ")
}

// Digest fingerprints an instruction listing together with the identity of
// the artifact it belongs to.
func Digest(name string, tier m.Tier, backend string, instrs []m.Instruction) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", name, tier, backend)

	for _, in := range instrs {
		fmt.Fprintf(h, "%d\x00%s\x00%s\n", in.Line, in.Op, in.Arg)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Assemble packages an instruction listing as an artifact.
func Assemble(name, filename string, tier m.Tier, optimize int, backend string, instrs []m.Instruction) *m.Artifact {
	return &m.Artifact{
		Name:         name,
		Filename:     filename,
		Tier:         tier,
		Optimize:     optimize,
		Backend:      backend,
		Instructions: instrs,
		Digest:       Digest(name, tier, backend, instrs),
	}
}

// Compiler is an ArtifactCompiler for the basic and strict tiers.
type Compiler struct {
	backend  string
	peephole bool
}

// NewDefault returns the default backend. It applies peephole cleanup.
func NewDefault() *Compiler {
	return &Compiler{backend: BackendDefault, peephole: true}
}

// NewReference returns the reference backend, which lowers every statement
// as written.
func NewReference() *Compiler {
	return &Compiler{backend: BackendReference}
}

// Backend returns the backend name recorded on artifacts.
func (c *Compiler) Backend() string {
	return c.backend
}

// Compile lowers tree into an artifact.
func (c *Compiler) Compile(ctx context.Context, name, filename string, tree *syntax.Module, tier m.Tier, optimize int) (*m.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tree == nil {
		return nil, fmt.Errorf("no tree to compile for %s", name)
	}

	instrs := Lower(tree, Options{Optimize: optimize, Peephole: c.peephole})

	return Assemble(name, filename, tier, optimize, c.backend, instrs), nil
}
