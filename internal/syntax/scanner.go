package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error is a syntax error with its location in the source.
type Error struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}

// logicalLine is one statement line after joining bracket and backslash
// continuations and dropping comments.
type logicalLine struct {
	indent int
	line   int
	text   string
}

const tabWidth = 8

type scanner struct {
	filename string
	src      string
	pos      int
	line     int
	depth    int
	buf      strings.Builder
	lines    []logicalLine
}

// byteOrderMark may prefix a UTF-8 source and is not part of the text.
const byteOrderMark = "\ufeff"

func scanLines(filename string, src []byte) ([]logicalLine, error) {
	text := strings.TrimPrefix(string(src), byteOrderMark)
	if !utf8.ValidString(text) {
		return nil, invalidEncoding(filename, text)
	}

	s := &scanner{filename: filename, src: text, line: 1}
	if err := s.run(); err != nil {
		return nil, err
	}

	return s.lines, nil
}

// invalidEncoding locates the first byte that is not valid UTF-8.
func invalidEncoding(filename, text string) error {
	offset := 0
	for offset < len(text) {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}

		offset += size
	}

	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1

	return &Error{
		Filename: filename,
		Line:     strings.Count(text[:offset], "\n") + 1,
		Column:   offset - lineStart,
		Msg:      fmt.Sprintf("invalid utf-8 byte 0x%02x", text[offset]),
	}
}

func (s *scanner) errorf(format string, args ...any) error {
	return &Error{Filename: s.filename, Line: s.line, Column: 0, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		indent, ok := s.skipBlankLines()
		if !ok {
			break
		}

		start := s.line
		if err := s.readLogical(); err != nil {
			return err
		}

		text := strings.TrimSpace(s.buf.String())
		s.buf.Reset()

		if text != "" {
			s.lines = append(s.lines, logicalLine{indent: indent, line: start, text: text})
		}
	}

	if s.depth > 0 {
		return s.errorf("unexpected EOF: unclosed bracket")
	}

	return nil
}

// skipBlankLines consumes blank and comment-only lines and returns the
// indentation of the next logical line.
func (s *scanner) skipBlankLines() (int, bool) {
	for s.pos < len(s.src) {
		indent := 0
		i := s.pos

		for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t' || s.src[i] == '\f') {
			if s.src[i] == '\t' {
				indent = (indent/tabWidth + 1) * tabWidth
			} else {
				indent++
			}
			i++
		}

		if i >= len(s.src) {
			s.pos = i
			return 0, false
		}

		switch s.src[i] {
		case '\r':
			s.pos = i + 1
			continue
		case '\n':
			s.pos = i + 1
			s.line++

			continue
		case '#':
			for i < len(s.src) && s.src[i] != '\n' {
				i++
			}
			s.pos = i

			continue
		}

		s.pos = i

		return indent, true
	}

	return 0, false
}

func (s *scanner) readLogical() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case c == '\'' || c == '"':
			end, newlines, ok := stringEnd(s.src, s.pos)
			if !ok {
				return s.errorf("unterminated string literal")
			}

			s.buf.WriteString(s.src[s.pos:end])
			s.line += newlines
			s.pos = end
		case c == '(' || c == '[' || c == '{':
			s.depth++
			s.buf.WriteByte(c)
			s.pos++
		case c == ')' || c == ']' || c == '}':
			s.depth--
			if s.depth < 0 {
				return s.errorf("unmatched %q", c)
			}

			s.buf.WriteByte(c)
			s.pos++
		case c == '\\' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '\n':
			s.buf.WriteByte(' ')
			s.pos += 2
			s.line++
		case c == '\r':
			s.pos++
		case c == '\n':
			s.pos++
			s.line++

			if s.depth == 0 {
				return nil
			}

			s.buf.WriteByte(' ')
		default:
			s.buf.WriteByte(c)
			s.pos++
		}
	}

	return nil
}

// stringEnd returns the index just past the string literal starting at i
// and the number of newlines it spans.
func stringEnd(src string, i int) (int, int, bool) {
	quote := src[i]
	triple := i+2 < len(src) && src[i+1] == quote && src[i+2] == quote
	newlines := 0

	j := i + 1
	if triple {
		j = i + 3
	}

	for j < len(src) {
		c := src[j]

		switch {
		case c == '\\':
			if j+1 < len(src) && src[j+1] == '\n' {
				newlines++
			}
			j += 2

			continue
		case c == '\n':
			if !triple {
				return 0, 0, false
			}
			newlines++
		case c == quote:
			if !triple {
				return j + 1, newlines, true
			}

			if j+2 < len(src) && src[j+1] == quote && src[j+2] == quote {
				return j + 3, newlines, true
			}
		}

		j++
	}

	return 0, 0, false
}

// IsStringLiteral reports whether s is exactly one string literal,
// optionally prefixed (r, b, u, f and their combinations).
func IsStringLiteral(s string) bool {
	i := 0
	for i < len(s) && i < 2 && strings.ContainsRune("rRbBuUfF", rune(s[i])) {
		i++
	}

	if i >= len(s) || (s[i] != '\'' && s[i] != '"') {
		return false
	}

	end, _, ok := stringEnd(s, i)

	return ok && end == len(s)
}

// findTopLevel returns the index of the first occurrence of ch outside
// brackets and string literals, or -1.
func findTopLevel(s string, ch byte) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '\'' || c == '"':
			end, _, ok := stringEnd(s, i)
			if !ok {
				return -1
			}
			i = end - 1
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == ch && depth == 0:
			return i
		}
	}

	return -1
}

// splitTopLevel splits s on sep outside brackets and strings and trims each
// part. Empty trailing parts (from a trailing separator) are dropped.
func splitTopLevel(s string, sep byte) []string {
	var parts []string

	for {
		i := findTopLevel(s, sep)
		if i < 0 {
			break
		}

		parts = append(parts, strings.TrimSpace(s[:i]))
		s = s[i+1:]
	}

	if last := strings.TrimSpace(s); last != "" || len(parts) == 0 {
		parts = append(parts, last)
	}

	return parts
}

// assignIndexes returns the positions of top-level `=` that are plain
// assignment operators (not ==, <=, >=, !=, :=, augmented assignment or
// keyword arguments inside brackets).
func assignIndexes(s string) []int {
	var out []int

	depth := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '\'' || c == '"':
			end, _, ok := stringEnd(s, i)
			if !ok {
				return out
			}
			i = end - 1
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == '=' && depth == 0:
			if i+1 < len(s) && s[i+1] == '=' {
				i++
				continue
			}

			if i > 0 && strings.ContainsRune("=!<>:+-*/%&|^@", rune(s[i-1])) {
				continue
			}

			out = append(out, i)
		}
	}

	return out
}
