// Package syntax defines the module syntax tree, its parser, symbol table
// builder and formatter.
//
// Expressions are kept as normalized source text; only statements are
// structured. That is enough for tier classification, declaration lowering
// and the declaration-level type checks done by the static tier.
package syntax

// Position is a 1-based line and 0-based column in the module source.
type Position struct {
	Line   int
	Column int
}

// Pos returns the position itself so that embedding Position satisfies Node.
func (p Position) Pos() Position {
	return p
}

// Node is any element of the tree with a source position.
type Node interface {
	Pos() Position
}

// Stmt is a module, class or function level statement.
type Stmt interface {
	Node
	stmtNode()
}

// Module is the root of a parsed source file.
type Module struct {
	Body []Stmt
}

// Alias is one name in an import statement.
type Alias struct {
	Name   string
	AsName string
}

// BoundName returns the name the alias binds in the importing namespace.
func (a Alias) BoundName() string {
	if a.AsName != "" {
		return a.AsName
	}

	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}

	return a.Name
}

// Param is a function parameter. Name keeps any leading `*` or `**`.
type Param struct {
	Name       string
	Annotation string
	Default    string
}

// Import is `import a.b [as c], d`.
type Import struct {
	Position
	Names []Alias
}

// ImportFrom is `from [..]mod import a [as b], c`.
type ImportFrom struct {
	Position
	Module string
	Level  int
	Names  []Alias
}

// Assign is `a = b = value`.
type Assign struct {
	Position
	Targets []string
	Value   string
}

// AnnAssign is `target: annotation [= value]`. An empty Value means the
// declaration has no initializer.
type AnnAssign struct {
	Position
	Target     string
	Annotation string
	Value      string
}

// FunctionDef is a `def` statement with its decorators.
type FunctionDef struct {
	Position
	Decorators []string
	Name       string
	Params     []Param
	Returns    string
	Body       []Stmt
}

// ClassDef is a `class` statement. Builder is empty until the rewriter
// lowers the declaration to a construction call.
type ClassDef struct {
	Position
	Decorators []string
	Name       string
	Bases      []string
	Body       []Stmt
	Builder    string
}

// Block is any other compound statement (if, for, while, with, try and
// their continuation clauses). Header is the text before the colon.
type Block struct {
	Position
	Header string
	Body   []Stmt
}

// Return is `return [value]`.
type Return struct {
	Position
	Value string
}

// Assert is `assert test[, msg]`.
type Assert struct {
	Position
	Test string
	Msg  string
}

// Pass is `pass`.
type Pass struct {
	Position
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	Position
	Value string
}

func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Assign) stmtNode()      {}
func (*AnnAssign) stmtNode()   {}
func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Block) stmtNode()       {}
func (*Return) stmtNode()      {}
func (*Assert) stmtNode()      {}
func (*Pass) stmtNode()        {}
func (*ExprStmt) stmtNode()    {}

// Docstring returns the module docstring literal, if the first statement is
// a bare string expression.
func (m *Module) Docstring() (string, bool) {
	if m == nil || len(m.Body) == 0 {
		return "", false
	}

	expr, ok := m.Body[0].(*ExprStmt)
	if !ok || !IsStringLiteral(expr.Value) {
		return "", false
	}

	return expr.Value, true
}

// Inspect walks statements depth first. Returning false from fn skips the
// statement's nested body.
func Inspect(stmts []Stmt, fn func(Stmt) bool) {
	for _, stmt := range stmts {
		if !fn(stmt) {
			continue
		}

		switch s := stmt.(type) {
		case *FunctionDef:
			Inspect(s.Body, fn)
		case *ClassDef:
			Inspect(s.Body, fn)
		case *Block:
			Inspect(s.Body, fn)
		}
	}
}

// Clone returns a deep copy of the module.
func Clone(m *Module) *Module {
	if m == nil {
		return nil
	}

	return &Module{Body: cloneBody(m.Body)}
}

func cloneBody(body []Stmt) []Stmt {
	if body == nil {
		return nil
	}

	out := make([]Stmt, 0, len(body))
	for _, stmt := range body {
		out = append(out, cloneStmt(stmt))
	}

	return out
}

func cloneStmt(stmt Stmt) Stmt {
	switch s := stmt.(type) {
	case *Import:
		c := *s
		c.Names = append([]Alias(nil), s.Names...)

		return &c
	case *ImportFrom:
		c := *s
		c.Names = append([]Alias(nil), s.Names...)

		return &c
	case *Assign:
		c := *s
		c.Targets = append([]string(nil), s.Targets...)

		return &c
	case *AnnAssign:
		c := *s
		return &c
	case *FunctionDef:
		c := *s
		c.Decorators = append([]string(nil), s.Decorators...)
		c.Params = append([]Param(nil), s.Params...)
		c.Body = cloneBody(s.Body)

		return &c
	case *ClassDef:
		c := *s
		c.Decorators = append([]string(nil), s.Decorators...)
		c.Bases = append([]string(nil), s.Bases...)
		c.Body = cloneBody(s.Body)

		return &c
	case *Block:
		c := *s
		c.Body = cloneBody(s.Body)

		return &c
	case *Return:
		c := *s
		return &c
	case *Assert:
		c := *s
		return &c
	case *Pass:
		c := *s
		return &c
	case *ExprStmt:
		c := *s
		return &c
	}

	return stmt
}
