package parser

import (
	"strings"
	"unicode"

	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Dialect support (optional). Controls identifier quoting styles and
	// dialect-specific keyword recognition.
	dialect *dialect.Dialect

	// First lex error encountered; once set, NextToken keeps returning it
	// alongside ILLEGAL tokens.
	err error

	// Comments collected during lexing
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// NewLexerWithDialect creates a new dialect-aware Lexer for the given input.
func NewLexerWithDialect(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
	}
	l.readChar()
	return l
}

// Err returns the first lex error encountered, or nil.
func (l *Lexer) Err() error {
	return l.err
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	var tok token.Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		if l.err != nil {
			tok.Type = token.ILLEGAL
			tok.Literal = ""
			return tok
		}
		tok.Type = token.EOF
		tok.Literal = ""
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		tok = l.newToken(token.MINUS, "-")
	case '*':
		tok = l.newToken(token.STAR, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '%':
		tok = l.newToken(token.PERCENT, "%")
	case '=':
		tok = l.newToken(token.EQ, "=")
	case ';':
		tok = l.newToken(token.SEMICOLON, ";")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "<>", Pos: pos}
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "!=", Pos: pos}
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = token.Token{Type: token.DPIPE, Literal: "||", Pos: pos}
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '?':
		tok = l.newToken(token.PARAM, "?")
	case '$':
		if isDigit(l.peekChar()) {
			tok.Type = token.PARAM
			tok.Literal = l.readNumberedParam()
			tok.Pos = pos
			return tok
		}
		if l.peekChar() == '$' || isIdentStart(l.peekChar()) {
			tok.Type = token.STRING
			tok.Literal = l.readDollarString(pos)
			tok.Pos = pos
			if l.err != nil {
				tok.Type = token.ILLEGAL
			}
			return tok
		}
		tok = l.newToken(token.ILLEGAL, "$")
	case ':':
		switch {
		case l.peekChar() == ':':
			l.readChar()
			tok = token.Token{Type: token.DCOLON, Literal: "::", Pos: pos}
		case isIdentStart(l.peekChar()):
			tok.Type = token.PARAM
			tok.Literal = l.readNamedParam()
			tok.Pos = pos
			return tok
		default:
			tok = l.newToken(token.ILLEGAL, ":")
		}
	case '.':
		tok = l.newToken(token.DOT, ".")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '[':
		if l.dialect != nil && l.dialect.Identifiers.Bracket && isIdentStart(l.peekChar()) {
			tok.Type = token.IDENT
			tok.Literal = l.readDelimitedIdentifier(']')
			tok.Pos = pos
			return tok
		}
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '`':
		if l.dialect != nil && l.dialect.Identifiers.Backtick {
			tok.Type = token.IDENT
			tok.Literal = l.readDelimitedIdentifier('`')
			tok.Pos = pos
			return tok
		}
		tok = l.newToken(token.ILLEGAL, "`")
	case '\'':
		tok.Type = token.STRING
		tok.Literal = l.readString(pos)
		tok.Pos = pos
		if l.err != nil {
			tok.Type = token.ILLEGAL
		}
		return tok
	case '"':
		// ANSI quoted identifier
		tok.Type = token.IDENT
		tok.Literal = l.readQuotedIdentifier(pos)
		tok.Pos = pos
		if l.err != nil {
			tok.Type = token.ILLEGAL
		}
		return tok
	default:
		switch {
		case isIdentStart(l.ch):
			tok.Literal = l.readIdentifier()
			lowerIdent := strings.ToLower(tok.Literal)
			// Check builtin keywords first
			tok.Type = token.LookupIdent(lowerIdent)
			// If not a builtin keyword, check dialect keywords
			if tok.Type == token.IDENT && l.dialect != nil {
				if dynTok, ok := l.dialect.LookupKeyword(lowerIdent); ok {
					tok.Type = dynTok
				}
			}
			tok.Pos = pos
			return tok
		case isDigit(l.ch):
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			tok.Pos = pos
			return tok
		default:
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	}

	l.readChar()
	return tok
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		// Collect line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment()
			continue
		}

		// Collect block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}

		break
	}
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	// Consume until end of line
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment.
// An unterminated block comment is a lex error.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	terminated := false
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			terminated = true
			break
		}
		l.readChar()
	}

	if !terminated {
		l.setErr(startPos, ErrUnterminatedComment)
		return
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString reads a single-quoted string literal.
// Handles doubled single quotes as escape: 'it''s' -> it's
// Reaching EOF before the closing quote is a lex error.
func (l *Lexer) readString(startPos token.Position) string {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		if l.ch == 0 {
			l.setErr(startPos, ErrUnterminatedString)
			return result.String()
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				// Doubled quote escape
				result.WriteByte('\'')
				l.readChar() // skip first quote
				l.readChar() // skip second quote
				continue
			}
			// End of string
			l.readChar() // skip closing quote
			return result.String()
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
}

// readQuotedIdentifier reads a double-quoted identifier.
// Handles doubled double quotes as escape: "col""name" -> col"name
func (l *Lexer) readQuotedIdentifier(startPos token.Position) string {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		if l.ch == 0 {
			l.setErr(startPos, ErrUnterminatedQuoted)
			return result.String()
		}
		if l.ch == '"' {
			if l.peekChar() == '"' {
				// Doubled quote escape
				result.WriteByte('"')
				l.readChar() // skip first quote
				l.readChar() // skip second quote
				continue
			}
			// End of identifier
			l.readChar() // skip closing quote
			return result.String()
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
}

// readDelimitedIdentifier reads a backtick- or bracket-quoted identifier,
// terminated by the given closing byte. No escape handling; neither style
// supports doubling in the inputs this parser targets.
func (l *Lexer) readDelimitedIdentifier(delim byte) string {
	startPos := l.currentPos()
	l.readChar() // skip opening delimiter

	var result strings.Builder
	for l.ch != delim {
		if l.ch == 0 {
			l.setErr(startPos, ErrUnterminatedQuoted)
			return result.String()
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing delimiter
	return result.String()
}

// readNumberedParam reads a positional parameter marker like $1.
func (l *Lexer) readNumberedParam() string {
	start := l.pos
	l.readChar() // skip '$'
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNamedParam reads a named parameter marker like :user_id.
func (l *Lexer) readNamedParam() string {
	start := l.pos
	l.readChar() // skip ':'
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readDollarString reads a dollar-quoted string: $$...$$ or $tag$...$tag$.
// The returned literal is the body without the delimiters. Reaching EOF
// before the closing delimiter is a lex error.
func (l *Lexer) readDollarString(startPos token.Position) string {
	tagStart := l.pos
	l.readChar() // skip opening '$'
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '$' {
		l.setErr(startPos, ErrUnterminatedDollar)
		return ""
	}
	l.readChar() // skip the '$' closing the tag
	delim := l.input[tagStart:l.pos]
	bodyStart := l.pos

	for {
		if l.ch == 0 {
			l.setErr(startPos, ErrUnterminatedDollar)
			return l.input[bodyStart:l.pos]
		}
		if l.ch == '$' && strings.HasPrefix(l.input[l.pos:], delim) {
			body := l.input[bodyStart:l.pos]
			for range delim {
				l.readChar()
			}
			return body
		}
		l.readChar()
	}
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

// setErr records the first lex error.
func (l *Lexer) setErr(pos token.Position, msg string) {
	if l.err == nil {
		l.err = &LexError{Pos: pos, Message: msg}
	}
}

// isIdentStart returns true if ch can start an identifier.
func isIdentStart(ch byte) bool {
	return ch == '_' || unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, stopping at EOF or the first
// lex error.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if l.Err() != nil {
			return tokens, l.Err()
		}
		if tok.Type == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
