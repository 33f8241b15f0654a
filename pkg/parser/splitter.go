package parser

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/token"
)

// RawStatement is one top-level statement as sliced out of the source text,
// before parsing. Pos points at the first non-whitespace byte.
type RawStatement struct {
	Text string
	Pos  token.Position
}

// SplitStatements splits SQL source into top-level statements delimited by
// semicolons. The scan is a single linear pass tracking quoting state,
// comments, dollar-quoted strings, and parenthesis nesting, so semicolons
// inside string literals, comments, or nested parentheses never split.
//
// The trailing statement is returned even without a terminating semicolon.
// Empty statements (stray semicolons) are dropped.
func SplitStatements(src string) []RawStatement {
	var stmts []RawStatement

	line, col := 1, 0
	start := -1 // byte offset of first non-whitespace byte of current stmt
	var startPos token.Position
	depth := 0

	flush := func(end int) {
		if start < 0 {
			return
		}
		text := strings.TrimRight(src[start:end], " \t\r\n")
		if text != "" {
			stmts = append(stmts, RawStatement{Text: text, Pos: startPos})
		}
		start = -1
	}

	i := 0
	for i < len(src) {
		ch := src[i]
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}

		switch {
		case isSpace(ch):
			i++
			continue

		case ch == '-' && i+1 < len(src) && src[i+1] == '-':
			// Line comment: runs to end of line
			for i < len(src) && src[i] != '\n' {
				i++
				col++
			}
			continue

		case ch == '/' && i+1 < len(src) && src[i+1] == '*':
			// Block comment: runs to */ or EOF (the lexer reports the
			// unterminated case when the statement is parsed)
			i += 2
			col += 2
			for i < len(src) {
				if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
					i += 2
					col += 2
					break
				}
				if src[i] == '\n' {
					line++
					col = 0
				} else {
					col++
				}
				i++
			}
			continue
		}

		// Anything else starts (or continues) a statement.
		if start < 0 {
			start = i
			startPos = token.Position{Line: line, Column: col, Offset: i}
		}

		switch ch {
		case '\'':
			i = skipQuoted(src, i, '\'', &line, &col)
			continue
		case '"':
			i = skipQuoted(src, i, '"', &line, &col)
			continue
		case '`':
			i = skipQuoted(src, i, '`', &line, &col)
			continue
		case '[':
			i = skipTo(src, i+1, ']', &line, &col)
			continue
		case '$':
			if end, ok := dollarQuoteEnd(src, i); ok {
				advancePos(src, i, end, &line, &col)
				i = end
				continue
			}
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				if start == i {
					// Stray semicolon, no statement to flush.
					start = -1
				} else {
					// Keep the terminator in the statement text.
					flush(i + 1)
				}
				i++
				continue
			}
		}
		i++
	}

	flush(len(src))
	return stmts
}

// skipQuoted advances past a quoted region starting at src[i] == quote,
// honoring doubled-quote escapes. Returns the index after the closing quote,
// or len(src) if unterminated.
func skipQuoted(src string, i int, quote byte, line, col *int) int {
	j := i + 1
	for j < len(src) {
		if src[j] == '\n' {
			*line++
			*col = 0
			j++
			continue
		}
		*col++
		if src[j] == quote {
			if j+1 < len(src) && src[j+1] == quote {
				j += 2
				*col++
				continue
			}
			return j + 1
		}
		j++
	}
	return j
}

// skipTo advances to the byte after the next occurrence of delim.
func skipTo(src string, i int, delim byte, line, col *int) int {
	for i < len(src) {
		if src[i] == '\n' {
			*line++
			*col = 0
		} else {
			*col++
		}
		if src[i] == delim {
			return i + 1
		}
		i++
	}
	return i
}

// dollarQuoteEnd detects a Postgres dollar-quoted string starting at src[i]
// and returns the index just past its closing tag. Tags are $$ or $name$.
func dollarQuoteEnd(src string, i int) (int, bool) {
	j := i + 1
	for j < len(src) && (src[j] == '_' || isAlnum(src[j])) {
		j++
	}
	if j >= len(src) || src[j] != '$' {
		return 0, false
	}
	if j > i+1 && src[i+1] >= '0' && src[i+1] <= '9' {
		// $1-style parameter markers are not quote tags.
		return 0, false
	}
	tag := src[i : j+1]
	end := strings.Index(src[j+1:], tag)
	if end < 0 {
		return len(src), true
	}
	return j + 1 + end + len(tag), true
}

// advancePos advances line/col counters across src[from:to].
func advancePos(src string, from, to int, line, col *int) {
	for k := from + 1; k < to && k < len(src); k++ {
		if src[k] == '\n' {
			*line++
			*col = 0
		} else {
			*col++
		}
	}
}

// isSpace returns true for SQL whitespace.
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isAlnum returns true for ASCII letters and digits.
func isAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch)
}
