// Package parser turns SQL source into dialect-agnostic statement nodes.
//
// # Usage
//
//	d, ok := dialect.Get("postgres")
//	results := parser.ParseAll(src, d)
//	for _, r := range results {
//	    if r.Err != nil {
//	        // malformed statement; the rest of the file still parsed
//	    }
//	}
//
// # Grammar Overview
//
// DDL statements get a deep parse:
//
//	create_table  → CREATE [TEMP|TEMPORARY|UNLOGGED] TABLE [IF NOT EXISTS]
//	                object_name "(" table_element ("," table_element)* ")"
//	                table_option*
//	table_element → column_def | table_constraint
//	create_index  → CREATE [UNIQUE|FULLTEXT|SPATIAL] INDEX [IF NOT EXISTS]
//	                object_name ON object_name [USING ident]
//	                "(" index_elem ("," index_elem)* ")" [WHERE predicate]
//	alter_table   → ALTER TABLE [IF EXISTS] object_name alter_action
//
// Everything else (SELECT, INSERT, UPDATE, DELETE, DROP, CREATE VIEW, ...)
// is recognized from its leading keywords and carried through verbatim.
//
// Dialect grammar tables drive the recognition decisions: a construct only
// parses under dialects whose tables list it, and matching constructs attach
// feature tags to the nodes they produce.
package parser

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// Result pairs one raw statement with its parse outcome. Exactly one of
// Stmt and Err is set.
type Result struct {
	Raw  RawStatement
	Stmt *Statement
	Err  error
}

// ParseAll splits src into statements and parses each one independently.
// A malformed statement yields a Result with Err set; parsing resumes at
// the next statement boundary. The returned slice preserves source order.
func ParseAll(src string, d *dialect.Dialect) []Result {
	raws := SplitStatements(src)
	results := make([]Result, 0, len(raws))
	for _, raw := range raws {
		stmt, err := ParseStatement(raw, d)
		results = append(results, Result{Raw: raw, Stmt: stmt, Err: err})
	}
	return results
}

// ParseStatement parses a single statement under the given dialect.
func ParseStatement(raw RawStatement, d *dialect.Dialect) (*Statement, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := &Parser{
		lexer:   NewLexerWithDialect(raw.Text, d),
		dialect: d,
		raw:     raw,
	}
	// Read two tokens to initialize current and peek.
	p.nextToken()
	p.nextToken()
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Text = raw.Text
	stmt.Pos = raw.Pos
	return stmt, nil
}

// Parser parses one statement into a Statement node.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	dialect *dialect.Dialect
	raw     RawStatement
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check reports whether the current token has the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it has the given type.
func (p *Parser) match(t token.TokenType) bool {
	if p.token.Type == t {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it has the given type, or fails the
// statement with a ParseError naming what the grammar needed.
func (p *Parser) expect(t token.TokenType, what string) error {
	if p.token.Type == t {
		p.nextToken()
		return nil
	}
	return p.errExpected(what)
}

// checkIdent reports whether the current token is an identifier matching
// name case-insensitively.
func (p *Parser) checkIdent(name string) bool {
	return p.token.Type == token.IDENT && strings.EqualFold(p.token.Literal, name)
}

// matchIdent consumes the current token if it is the given bare identifier.
func (p *Parser) matchIdent(name string) bool {
	if p.checkIdent(name) {
		p.nextToken()
		return true
	}
	return false
}

// errExpected builds a ParseError at the current token. Positions are
// reported relative to the whole source, not the statement.
func (p *Parser) errExpected(what string) error {
	if err := p.lexer.Err(); err != nil {
		return p.adjustErr(err)
	}
	return &ParseError{
		Pos:      p.sourcePos(p.token.Pos),
		Expected: what,
		Found:    describeToken(p.token),
	}
}

// sourcePos translates a statement-relative position into a source-relative
// one using the statement's start position.
func (p *Parser) sourcePos(pos token.Position) token.Position {
	out := token.Position{
		Line:   p.raw.Pos.Line + pos.Line - 1,
		Column: pos.Column,
		Offset: p.raw.Pos.Offset + pos.Offset,
	}
	if pos.Line == 1 {
		out.Column = p.raw.Pos.Column + pos.Column - 1
	}
	return out
}

// adjustErr rewrites the position inside a lexer error to be source-relative.
func (p *Parser) adjustErr(err error) error {
	if le, ok := err.(*LexError); ok {
		return &LexError{Pos: p.sourcePos(le.Pos), Message: le.Message}
	}
	return err
}

// describeToken renders a token for error messages.
func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of statement"
	case token.IDENT:
		return "identifier " + quoted(tok.Literal)
	case token.STRING:
		return "string literal"
	case token.NUMBER:
		return "number " + tok.Literal
	default:
		return quoted(tok.Literal)
	}
}

func quoted(s string) string {
	return "'" + s + "'"
}

// identValue consumes an identifier-like token (bare identifier, quoted
// identifier, or any keyword used as a name) and returns its text.
func (p *Parser) identValue(what string) (string, error) {
	if p.token.Type == token.IDENT || token.IsKeyword(p.token.Type) || token.IsDynamic(p.token.Type) {
		v := p.token.Literal
		p.nextToken()
		return v, nil
	}
	return "", p.errExpected(what)
}

// parseObjectName parses a dot-qualified name, e.g. db.schema.table.
func (p *Parser) parseObjectName(what string) (ObjectName, error) {
	part, err := p.identValue(what)
	if err != nil {
		return nil, err
	}
	name := ObjectName{part}
	for p.match(token.DOT) {
		part, err = p.identValue("name after '.'")
		if err != nil {
			return nil, err
		}
		name = append(name, part)
	}
	return name, nil
}

// ---------- Statement Dispatch ----------

func (p *Parser) parseStatement() (*Statement, error) {
	switch p.token.Type {
	case token.CREATE:
		return p.parseCreate()
	case token.ALTER:
		return p.parseAlterTable()
	case token.DROP:
		return p.parseDrop()
	case token.SELECT, token.WITH:
		return p.rawStatement(KindSelect)
	case token.INSERT:
		return p.rawStatement(KindInsert)
	case token.UPDATE:
		return p.rawStatement(KindUpdate)
	case token.DELETE:
		return p.rawStatement(KindDelete)
	case token.EOF:
		return nil, p.errExpected("statement")
	default:
		return p.rawStatement(KindOther)
	}
}

func (p *Parser) parseCreate() (*Statement, error) {
	if err := p.expect(token.CREATE, "CREATE"); err != nil {
		return nil, err
	}

	stmt := &Statement{}
	if p.match(token.TEMP) || p.match(token.TEMPORARY) {
		stmt.Temporary = true
	}
	if p.token.Type == dialect.UNLOGGED {
		if tag, ok := p.dialect.TableOptionTag("unlogged"); ok {
			stmt.Tags = append(stmt.Tags, tag)
		}
		p.nextToken()
	}

	switch p.token.Type {
	case token.TABLE:
		return p.parseCreateTable(stmt)
	case token.INDEX:
		return p.parseCreateIndex(stmt, false, 0)
	case token.UNIQUE:
		p.nextToken()
		if !p.check(token.INDEX) {
			return nil, p.errExpected("INDEX")
		}
		return p.parseCreateIndex(stmt, true, 0)
	case dialect.FULLTEXT, dialect.SPATIAL:
		kw := strings.ToLower(p.token.Literal)
		tag, ok := p.dialect.IndexFeatureTag(kw)
		if !ok {
			return nil, p.errExpected("TABLE or INDEX")
		}
		p.nextToken()
		if !p.check(token.INDEX) {
			return nil, p.errExpected("INDEX")
		}
		return p.parseCreateIndex(stmt, false, tag)
	case token.VIEW:
		return p.rawStatementAs(stmt, KindCreateView)
	default:
		return p.rawStatementAs(stmt, KindOther)
	}
}

// parseDrop gives DROP TABLE a name; other DROP forms stay raw.
func (p *Parser) parseDrop() (*Statement, error) {
	if p.peek.Type != token.TABLE {
		return p.rawStatement(KindOther)
	}
	p.nextToken()
	p.nextToken()
	stmt := &Statement{Kind: KindDropTable}
	if p.check(token.IF) {
		p.nextToken()
		if err := p.expect(token.EXISTS, "EXISTS"); err != nil {
			return nil, err
		}
	}
	name, err := p.parseObjectName("table name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name
	if err := p.drainToEnd(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// rawStatement records the statement kind and scans the remaining tokens so
// lexical errors still surface, without imposing any grammar.
func (p *Parser) rawStatement(kind StatementKind) (*Statement, error) {
	return p.rawStatementAs(&Statement{}, kind)
}

func (p *Parser) rawStatementAs(stmt *Statement, kind StatementKind) (*Statement, error) {
	stmt.Kind = kind
	for p.token.Type != token.EOF {
		if p.token.Type == token.ILLEGAL {
			return nil, p.errExpected("token")
		}
		p.nextToken()
	}
	if err := p.lexer.Err(); err != nil {
		return nil, p.adjustErr(err)
	}
	return stmt, nil
}

// drainToEnd consumes an optional trailing semicolon and requires the
// statement to end there.
func (p *Parser) drainToEnd() error {
	p.match(token.SEMICOLON)
	if p.token.Type != token.EOF {
		return p.errExpected("end of statement")
	}
	if err := p.lexer.Err(); err != nil {
		return p.adjustErr(err)
	}
	return nil
}

// ---------- Raw Text Capture ----------

// textFrom returns the statement text from the given offset up to (not
// including) the current token, trimmed.
func (p *Parser) textFrom(start int) string {
	end := p.token.Pos.Offset
	if p.token.Type == token.EOF {
		end = len(p.raw.Text)
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(p.raw.Text[start:end])
}

// parseParenText consumes a balanced parenthesized group and returns its
// text including the outer parens.
func (p *Parser) parseParenText() (string, error) {
	if !p.check(token.LPAREN) {
		return "", p.errExpected("'('")
	}
	start := p.token.Pos.Offset
	depth := 0
	for {
		switch p.token.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.EOF, token.ILLEGAL:
			return "", p.errExpected("')'")
		}
		end := p.token.Pos.Offset + len(p.token.Literal)
		p.nextToken()
		if depth == 0 {
			return p.raw.Text[start:end], nil
		}
	}
}

// consumeUntilTopLevel advances until one of the stop tokens appears outside
// any parenthesized group, returning the skipped text.
func (p *Parser) consumeUntilTopLevel(stop ...token.TokenType) (string, error) {
	start := p.token.Pos.Offset
	depth := 0
	for {
		if depth == 0 {
			for _, t := range stop {
				if p.token.Type == t {
					return p.textFrom(start), nil
				}
			}
		}
		switch p.token.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return p.textFrom(start), nil
			}
			depth--
		case token.EOF:
			return p.textFrom(start), nil
		case token.ILLEGAL:
			return "", p.errExpected("token")
		}
		p.nextToken()
	}
}
