package syntax

import (
	"fmt"
	"strings"
)

// Parse parses module source into a tree. filename is only used for error
// locations.
func Parse(filename string, src []byte) (*Module, error) {
	lines, err := scanLines(filename, src)
	if err != nil {
		return nil, err
	}

	p := &parser{filename: filename, lines: lines}

	body, err := p.parseSuite(0)
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.lines) {
		return nil, p.errorAt(p.lines[p.pos], "unexpected indent")
	}

	return &Module{Body: body}, nil
}

type parser struct {
	filename string
	lines    []logicalLine
	pos      int
}

func (p *parser) errorAt(l logicalLine, format string, args ...any) error {
	return &Error{Filename: p.filename, Line: l.line, Column: l.indent, Msg: fmt.Sprintf(format, args...)}
}

// parseSuite parses consecutive statements at exactly the given indent.
func (p *parser) parseSuite(indent int) ([]Stmt, error) {
	var body []Stmt

	for p.pos < len(p.lines) {
		l := p.lines[p.pos]
		if l.indent < indent {
			break
		}

		if l.indent > indent {
			return nil, p.errorAt(l, "unexpected indent")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	return body, nil
}

// parseIndentedBody parses the block that follows a compound header.
func (p *parser) parseIndentedBody(header logicalLine) ([]Stmt, error) {
	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= header.indent {
		return nil, p.errorAt(header, "expected an indented block")
	}

	return p.parseSuite(p.lines[p.pos].indent)
}

func (p *parser) parseStatement() (Stmt, error) {
	l := p.lines[p.pos]

	if strings.HasPrefix(l.text, "@") {
		return p.parseDecorated()
	}

	keyword := firstWord(l.text)
	if keyword == "async" {
		keyword = firstWord(strings.TrimSpace(strings.TrimPrefix(l.text, "async")))
	}

	switch keyword {
	case "def", "class":
		return p.parseDefinition(nil)
	case "if", "elif", "else", "for", "while", "with", "try", "except", "finally":
		if findTopLevel(l.text, ':') >= 0 {
			return p.parseBlock()
		}
	}

	p.pos++

	return p.parseSimple(l, l.text)
}

func (p *parser) parseDecorated() (Stmt, error) {
	var decorators []string

	first := p.lines[p.pos]

	for p.pos < len(p.lines) && strings.HasPrefix(p.lines[p.pos].text, "@") {
		l := p.lines[p.pos]
		if l.indent != first.indent {
			return nil, p.errorAt(l, "unexpected indent")
		}

		decorators = append(decorators, strings.TrimSpace(l.text[1:]))
		p.pos++
	}

	if p.pos >= len(p.lines) {
		return nil, p.errorAt(first, "decorator without definition")
	}

	switch firstWord(strings.TrimPrefix(p.lines[p.pos].text, "async ")) {
	case "def", "class":
		return p.parseDefinition(decorators)
	}

	return nil, p.errorAt(p.lines[p.pos], "decorator must precede def or class")
}

// headerAndBody splits `header: inline` and parses the body, inline or
// indented.
func (p *parser) headerAndBody(l logicalLine) (string, []Stmt, error) {
	colon := findTopLevel(l.text, ':')
	if colon < 0 {
		return "", nil, p.errorAt(l, "expected ':'")
	}

	header := strings.TrimSpace(l.text[:colon])
	inline := strings.TrimSpace(l.text[colon+1:])

	p.pos++

	if inline != "" {
		var body []Stmt

		for _, part := range splitTopLevel(inline, ';') {
			stmt, err := p.parseSimple(l, part)
			if err != nil {
				return "", nil, err
			}

			body = append(body, stmt)
		}

		return header, body, nil
	}

	body, err := p.parseIndentedBody(l)

	return header, body, err
}

func (p *parser) parseBlock() (Stmt, error) {
	l := p.lines[p.pos]

	header, body, err := p.headerAndBody(l)
	if err != nil {
		return nil, err
	}

	return &Block{Position: Position{Line: l.line, Column: l.indent}, Header: header, Body: body}, nil
}

func (p *parser) parseDefinition(decorators []string) (Stmt, error) {
	l := p.lines[p.pos]

	header, body, err := p.headerAndBody(l)
	if err != nil {
		return nil, err
	}

	pos := Position{Line: l.line, Column: l.indent}
	header = strings.TrimSpace(strings.TrimPrefix(header, "async"))

	if rest, ok := strings.CutPrefix(header, "class"); ok {
		name, bases, err := p.parseClassHeader(l, strings.TrimSpace(rest))
		if err != nil {
			return nil, err
		}

		return &ClassDef{Position: pos, Decorators: decorators, Name: name, Bases: bases, Body: body}, nil
	}

	rest, ok := strings.CutPrefix(header, "def")
	if !ok {
		return nil, p.errorAt(l, "invalid definition")
	}

	fn, err := p.parseFuncHeader(l, strings.TrimSpace(rest))
	if err != nil {
		return nil, err
	}

	fn.Position = pos
	fn.Decorators = decorators
	fn.Body = body

	return fn, nil
}

func (p *parser) parseClassHeader(l logicalLine, rest string) (string, []string, error) {
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		if !isIdentifier(rest) {
			return "", nil, p.errorAt(l, "invalid class name %q", rest)
		}

		return rest, nil, nil
	}

	name := strings.TrimSpace(rest[:open])
	if !isIdentifier(name) {
		return "", nil, p.errorAt(l, "invalid class name %q", name)
	}

	if !strings.HasSuffix(rest, ")") {
		return "", nil, p.errorAt(l, "expected ')' after class bases")
	}

	var bases []string

	for _, base := range splitTopLevel(rest[open+1:len(rest)-1], ',') {
		if base != "" {
			bases = append(bases, base)
		}
	}

	return name, bases, nil
}

func (p *parser) parseFuncHeader(l logicalLine, rest string) (*FunctionDef, error) {
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return nil, p.errorAt(l, "expected '(' after function name")
	}

	name := strings.TrimSpace(rest[:open])
	if !isIdentifier(name) {
		return nil, p.errorAt(l, "invalid function name %q", name)
	}

	closing := matchingParen(rest, open)
	if closing < 0 {
		return nil, p.errorAt(l, "expected ')' after parameters")
	}

	fn := &FunctionDef{Name: name}

	for _, raw := range splitTopLevel(rest[open+1:closing], ',') {
		if raw == "" {
			continue
		}

		fn.Params = append(fn.Params, parseParam(raw))
	}

	tail := strings.TrimSpace(rest[closing+1:])
	if tail != "" {
		returns, ok := strings.CutPrefix(tail, "->")
		if !ok {
			return nil, p.errorAt(l, "unexpected %q after parameters", tail)
		}

		fn.Returns = strings.TrimSpace(returns)
	}

	return fn, nil
}

func parseParam(raw string) Param {
	var param Param

	if eq := assignIndexes(raw); len(eq) > 0 {
		param.Default = strings.TrimSpace(raw[eq[0]+1:])
		raw = strings.TrimSpace(raw[:eq[0]])
	}

	if colon := findTopLevel(raw, ':'); colon >= 0 {
		param.Annotation = strings.TrimSpace(raw[colon+1:])
		raw = strings.TrimSpace(raw[:colon])
	}

	param.Name = raw

	return param
}

func (p *parser) parseSimple(l logicalLine, text string) (Stmt, error) {
	pos := Position{Line: l.line, Column: l.indent}

	switch firstWord(text) {
	case "pass":
		if text == "pass" {
			return &Pass{Position: pos}, nil
		}
	case "return":
		return &Return{Position: pos, Value: strings.TrimSpace(strings.TrimPrefix(text, "return"))}, nil
	case "assert":
		parts := splitTopLevel(strings.TrimSpace(strings.TrimPrefix(text, "assert")), ',')
		stmt := &Assert{Position: pos, Test: parts[0]}

		if len(parts) > 1 {
			stmt.Msg = parts[1]
		}

		return stmt, nil
	case "import":
		return p.parseImport(l, pos, strings.TrimSpace(strings.TrimPrefix(text, "import")))
	case "from":
		return p.parseImportFrom(l, pos, strings.TrimSpace(strings.TrimPrefix(text, "from")))
	}

	eqs := assignIndexes(text)

	if colon := findTopLevel(text, ':'); colon > 0 && (len(eqs) == 0 || colon < eqs[0]) {
		target := strings.TrimSpace(text[:colon])
		if isTarget(target) {
			stmt := &AnnAssign{Position: pos, Target: target}

			rest := text[colon+1:]
			if eq := assignIndexes(rest); len(eq) > 0 {
				stmt.Annotation = strings.TrimSpace(rest[:eq[0]])
				stmt.Value = strings.TrimSpace(rest[eq[0]+1:])
			} else {
				stmt.Annotation = strings.TrimSpace(rest)
			}

			if stmt.Annotation == "" {
				return nil, p.errorAt(l, "missing annotation for %q", target)
			}

			return stmt, nil
		}
	}

	if len(eqs) > 0 {
		stmt := &Assign{Position: pos}
		start := 0

		for _, eq := range eqs {
			target := strings.TrimSpace(text[start:eq])
			if target == "" {
				return nil, p.errorAt(l, "missing assignment target")
			}

			stmt.Targets = append(stmt.Targets, target)
			start = eq + 1
		}

		stmt.Value = strings.TrimSpace(text[start:])
		if stmt.Value == "" {
			return nil, p.errorAt(l, "missing value in assignment")
		}

		return stmt, nil
	}

	return &ExprStmt{Position: pos, Value: text}, nil
}

func (p *parser) parseImport(l logicalLine, pos Position, rest string) (Stmt, error) {
	names, err := p.parseAliases(l, rest, false)
	if err != nil {
		return nil, err
	}

	return &Import{Position: pos, Names: names}, nil
}

func (p *parser) parseImportFrom(l logicalLine, pos Position, rest string) (Stmt, error) {
	idx := strings.Index(rest, " import ")
	if idx < 0 {
		return nil, p.errorAt(l, "expected 'import' in from-import")
	}

	module := strings.TrimSpace(rest[:idx])
	level := 0

	for level < len(module) && module[level] == '.' {
		level++
	}

	module = module[level:]
	if module != "" && !isDottedName(module) {
		return nil, p.errorAt(l, "invalid module name %q", module)
	}

	if module == "" && level == 0 {
		return nil, p.errorAt(l, "missing module name")
	}

	list := strings.TrimSpace(rest[idx+len(" import "):])
	if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") {
		list = list[1 : len(list)-1]
	}

	names, err := p.parseAliases(l, list, true)
	if err != nil {
		return nil, err
	}

	return &ImportFrom{Position: pos, Module: module, Level: level, Names: names}, nil
}

func (p *parser) parseAliases(l logicalLine, list string, from bool) ([]Alias, error) {
	var names []Alias

	for _, part := range splitTopLevel(list, ',') {
		if part == "" {
			continue
		}

		fields := strings.Fields(part)

		var alias Alias

		switch {
		case len(fields) == 1:
			alias.Name = fields[0]
		case len(fields) == 3 && fields[1] == "as" && isIdentifier(fields[2]):
			alias.Name = fields[0]
			alias.AsName = fields[2]
		default:
			return nil, p.errorAt(l, "invalid import name %q", part)
		}

		valid := isDottedName(alias.Name)
		if from {
			valid = isIdentifier(alias.Name) || (alias.Name == "*" && alias.AsName == "")
		}

		if !valid {
			return nil, p.errorAt(l, "invalid import name %q", alias.Name)
		}

		names = append(names, alias)
	}

	if len(names) == 0 {
		return nil, p.errorAt(l, "empty import")
	}

	return names, nil
}

func firstWord(text string) string {
	end := 0
	for end < len(text) && isIdentByte(text[end], end > 0) {
		end++
	}

	return text[:end]
}

func matchingParen(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\'', '"':
			end, _, ok := stringEnd(s, i)
			if !ok {
				return -1
			}
			i = end - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func isIdentByte(c byte, notFirst bool) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (notFirst && c >= '0' && c <= '9') || c >= 0x80
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], i > 0) {
			return false
		}
	}

	return true
}

func isDottedName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}

	return true
}

// isTarget accepts names, attribute chains and subscripts as annotated
// assignment targets.
func isTarget(s string) bool {
	if open := strings.IndexByte(s, '['); open > 0 && strings.HasSuffix(s, "]") {
		return isDottedName(s[:open])
	}

	return isDottedName(s)
}
