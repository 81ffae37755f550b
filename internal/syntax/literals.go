package syntax

import (
	"strconv"
	"strings"
)

// LiteralType returns the builtin type name of a constant expression, or
// false when expr is not a single literal.
func LiteralType(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)

	switch expr {
	case "None":
		return "None", true
	case "True", "False":
		return "bool", true
	case "...", "Ellipsis":
		return "ellipsis", true
	}

	if IsStringLiteral(expr) {
		if strings.ContainsAny(expr[:strings.IndexAny(expr, `'"`)], "bB") {
			return "bytes", true
		}

		return "str", true
	}

	num := strings.ReplaceAll(strings.TrimPrefix(expr, "-"), "_", "")
	if num == "" || !(num[0] == '.' || (num[0] >= '0' && num[0] <= '9')) {
		return "", false
	}

	if strings.HasSuffix(num, "j") || strings.HasSuffix(num, "J") {
		if _, err := strconv.ParseFloat(num[:len(num)-1], 64); err == nil {
			return "complex", true
		}

		return "", false
	}

	if _, err := strconv.ParseInt(num, 0, 64); err == nil {
		return "int", true
	}

	if _, err := strconv.ParseFloat(num, 64); err == nil {
		return "float", true
	}

	return "", false
}

// IsConstant reports whether expr is a single literal.
func IsConstant(expr string) bool {
	_, ok := LiteralType(expr)
	return ok
}

// Names returns the identifiers referenced by an expression, in order of
// first appearance. Attribute access contributes only its leftmost name and
// string literal contents are skipped.
func Names(expr string) []string {
	var (
		out  []string
		seen = make(map[string]bool)
	)

	for i := 0; i < len(expr); {
		c := expr[i]

		switch {
		case c == '\'' || c == '"':
			end, _, ok := stringEnd(expr, i)
			if !ok {
				return out
			}

			i = end
		case isIdentByte(c, false):
			j := i + 1
			for j < len(expr) && isIdentByte(expr[j], true) {
				j++
			}

			name := expr[i:j]
			if j < len(expr) && (expr[j] == '\'' || expr[j] == '"') && len(name) <= 2 &&
				strings.Trim(name, "rRbBuUfF") == "" {
				i = j
				continue
			}

			attr := i > 0 && expr[i-1] == '.'

			if !attr && !seen[name] && !isKeyword(name) {
				seen[name] = true
				out = append(out, name)
			}

			i = j
		case c >= '0' && c <= '9':
			j := i + 1
			for j < len(expr) && (isIdentByte(expr[j], true) || expr[j] == '.') {
				j++
			}

			i = j
		default:
			i++
		}
	}

	return out
}

func isKeyword(name string) bool {
	switch name {
	case "and", "or", "not", "in", "is", "if", "else", "lambda", "for", "await", "yield":
		return true
	}

	return false
}
