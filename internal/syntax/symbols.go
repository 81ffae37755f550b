package syntax

import "strings"

// SymbolKind classifies how a module-level name is bound.
type SymbolKind int

// Binding kinds recorded by BuildSymbols.
const (
	SymbolImport SymbolKind = iota + 1
	SymbolClass
	SymbolFunction
	SymbolAssigned
	SymbolAnnotated
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolImport:
		return "import"
	case SymbolClass:
		return "class"
	case SymbolFunction:
		return "function"
	case SymbolAssigned:
		return "assigned"
	case SymbolAnnotated:
		return "annotated"
	}

	return "unknown"
}

// Symbol is one binding of a name.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Line       int
	Annotation string
}

// SymbolTable lists the bindings of a module's global scope in source order
// and the members bound directly in each class body.
type SymbolTable struct {
	Filename string
	Globals  []Symbol
	Members  map[string][]Symbol
}

// BuildSymbols collects the module-level and class-level bindings. Bindings
// inside top-level compound statements (if, try, ...) are global too.
func BuildSymbols(filename string, m *Module) *SymbolTable {
	table := &SymbolTable{Filename: filename, Members: make(map[string][]Symbol)}
	if m == nil {
		return table
	}

	table.Globals = collectBindings(m.Body, table)

	return table
}

func collectBindings(body []Stmt, table *SymbolTable) []Symbol {
	var out []Symbol

	for _, stmt := range body {
		switch s := stmt.(type) {
		case *Import:
			for _, alias := range s.Names {
				out = append(out, Symbol{Name: alias.BoundName(), Kind: SymbolImport, Line: s.Line})
			}
		case *ImportFrom:
			for _, alias := range s.Names {
				if alias.Name == "*" {
					continue
				}

				out = append(out, Symbol{Name: alias.BoundName(), Kind: SymbolImport, Line: s.Line})
			}
		case *ClassDef:
			out = append(out, Symbol{Name: s.Name, Kind: SymbolClass, Line: s.Line})
			if table != nil {
				table.Members[s.Name] = collectBindings(s.Body, nil)
			}
		case *FunctionDef:
			out = append(out, Symbol{Name: s.Name, Kind: SymbolFunction, Line: s.Line})
		case *Assign:
			for _, target := range s.Targets {
				for _, name := range targetNames(target) {
					out = append(out, Symbol{Name: name, Kind: SymbolAssigned, Line: s.Line})
				}
			}
		case *AnnAssign:
			if isIdentifier(s.Target) {
				out = append(out, Symbol{Name: s.Target, Kind: SymbolAnnotated, Line: s.Line, Annotation: s.Annotation})
			}
		case *Block:
			out = append(out, collectBindings(s.Body, table)...)
		}
	}

	return out
}

// targetNames returns the plain names bound by an assignment target,
// unpacking tuple targets. Attribute and subscript targets bind nothing.
func targetNames(target string) []string {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, "(") && strings.HasSuffix(target, ")") {
		target = target[1 : len(target)-1]
	}

	var names []string

	for _, part := range splitTopLevel(target, ',') {
		part = strings.TrimPrefix(part, "*")
		if isIdentifier(part) {
			names = append(names, part)
		}
	}

	return names
}

// Lookup returns the last binding of name in the global scope.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	if t == nil {
		return Symbol{}, false
	}

	for i := len(t.Globals) - 1; i >= 0; i-- {
		if t.Globals[i].Name == name {
			return t.Globals[i], true
		}
	}

	return Symbol{}, false
}

// Bindings returns every global binding of name in source order.
func (t *SymbolTable) Bindings(name string) []Symbol {
	if t == nil {
		return nil
	}

	var out []Symbol

	for _, sym := range t.Globals {
		if sym.Name == name {
			out = append(out, sym)
		}
	}

	return out
}
