package syntax

// StubPlaceholder is the value given to stub declarations that had an
// annotation but no initializer.
const StubPlaceholder = "..."

// StripAnnotations returns a copy of the module with every annotation
// removed: parameter and return annotations are cleared and annotated
// assignments become plain assignments. Declarations without an initializer
// are kept, bound to StubPlaceholder, so the names they declare survive.
func StripAnnotations(m *Module) *Module {
	out := Clone(m)
	if out == nil {
		return nil
	}

	out.Body = stripBody(out.Body)

	return out
}

func stripBody(body []Stmt) []Stmt {
	for i, stmt := range body {
		switch s := stmt.(type) {
		case *AnnAssign:
			value := s.Value
			if value == "" {
				value = StubPlaceholder
			}

			body[i] = &Assign{Position: s.Position, Targets: []string{s.Target}, Value: value}
		case *FunctionDef:
			for j := range s.Params {
				s.Params[j].Annotation = ""
			}

			s.Returns = ""
			s.Body = stripBody(s.Body)
		case *ClassDef:
			s.Body = stripBody(s.Body)
		case *Block:
			s.Body = stripBody(s.Body)
		}
	}

	return body
}

// HasAnnotations reports whether any annotation remains anywhere in the tree.
func HasAnnotations(m *Module) bool {
	if m == nil {
		return false
	}

	found := false

	Inspect(m.Body, func(stmt Stmt) bool {
		switch s := stmt.(type) {
		case *AnnAssign:
			found = true
		case *FunctionDef:
			if s.Returns != "" {
				found = true
			}

			for _, param := range s.Params {
				if param.Annotation != "" {
					found = true
				}
			}
		}

		return !found
	})

	return found
}
