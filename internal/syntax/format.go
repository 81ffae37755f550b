package syntax

import "strings"

const indentUnit = "    "

// Format renders the tree back to source with canonical four-space
// indentation. Lowered class declarations are rendered with their builder
// as a trailing comment so rewrites stay visible in diffs.
func Format(m *Module) string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	formatBody(&b, m.Body, 0)

	return b.String()
}

func formatBody(b *strings.Builder, body []Stmt, depth int) {
	for _, stmt := range body {
		formatStmt(b, stmt, depth)
	}
}

func writeLine(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(text)
	b.WriteByte('\n')
}

func formatStmt(b *strings.Builder, stmt Stmt, depth int) {
	switch s := stmt.(type) {
	case *Import:
		writeLine(b, depth, "import "+formatAliases(s.Names))
	case *ImportFrom:
		writeLine(b, depth, "from "+strings.Repeat(".", s.Level)+s.Module+" import "+formatAliases(s.Names))
	case *Assign:
		writeLine(b, depth, strings.Join(s.Targets, " = ")+" = "+s.Value)
	case *AnnAssign:
		text := s.Target + ": " + s.Annotation
		if s.Value != "" {
			text += " = " + s.Value
		}

		writeLine(b, depth, text)
	case *FunctionDef:
		for _, dec := range s.Decorators {
			writeLine(b, depth, "@"+dec)
		}

		header := "def " + s.Name + "(" + formatParams(s.Params) + ")"
		if s.Returns != "" {
			header += " -> " + s.Returns
		}

		writeLine(b, depth, header+":")
		formatSuite(b, s.Body, depth+1)
	case *ClassDef:
		for _, dec := range s.Decorators {
			writeLine(b, depth, "@"+dec)
		}

		header := "class " + s.Name
		if len(s.Bases) > 0 {
			header += "(" + strings.Join(s.Bases, ", ") + ")"
		}

		header += ":"
		if s.Builder != "" {
			header += "  # built by " + s.Builder
		}

		writeLine(b, depth, header)
		formatSuite(b, s.Body, depth+1)
	case *Block:
		writeLine(b, depth, s.Header+":")
		formatSuite(b, s.Body, depth+1)
	case *Return:
		if s.Value == "" {
			writeLine(b, depth, "return")
		} else {
			writeLine(b, depth, "return "+s.Value)
		}
	case *Assert:
		text := "assert " + s.Test
		if s.Msg != "" {
			text += ", " + s.Msg
		}

		writeLine(b, depth, text)
	case *Pass:
		writeLine(b, depth, "pass")
	case *ExprStmt:
		writeLine(b, depth, s.Value)
	}
}

func formatSuite(b *strings.Builder, body []Stmt, depth int) {
	if len(body) == 0 {
		writeLine(b, depth, "pass")
		return
	}

	formatBody(b, body, depth)
}

func formatAliases(names []Alias) string {
	parts := make([]string, 0, len(names))

	for _, alias := range names {
		if alias.AsName != "" {
			parts = append(parts, alias.Name+" as "+alias.AsName)
		} else {
			parts = append(parts, alias.Name)
		}
	}

	return strings.Join(parts, ", ")
}

// formatParams renders a parameter list without the surrounding parens.
func formatParams(params []Param) string {
	parts := make([]string, 0, len(params))

	for _, param := range params {
		text := param.Name
		if param.Annotation != "" {
			text += ": " + param.Annotation
		}

		if param.Default != "" {
			if param.Annotation != "" {
				text += " = " + param.Default
			} else {
				text += "=" + param.Default
			}
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, ", ")
}
