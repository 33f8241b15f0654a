package parser

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// parseCreateIndex parses the body of CREATE [UNIQUE|FULLTEXT|SPATIAL] INDEX.
// The CREATE dispatch has already consumed the modifier; preTag carries the
// FULLTEXT/SPATIAL feature tag when one applied.
//
//	create_index → INDEX [IF NOT EXISTS] object_name ON object_name
//	               [USING ident] "(" index_elem ("," index_elem)* ")"
//	               [USING ident] [WHERE predicate]
func (p *Parser) parseCreateIndex(stmt *Statement, unique bool, preTag feature.FeatureTag) (*Statement, error) {
	stmt.Kind = KindCreateIndex
	idx := &IndexDef{Unique: unique}
	stmt.Index = idx
	if preTag != 0 {
		stmt.Tags = append(stmt.Tags, preTag)
	}
	if err := p.expect(token.INDEX, "INDEX"); err != nil {
		return nil, err
	}
	if p.check(token.IF) {
		p.nextToken()
		if err := p.expect(token.NOT, "NOT"); err != nil {
			return nil, err
		}
		if err := p.expect(token.EXISTS, "EXISTS"); err != nil {
			return nil, err
		}
		stmt.IfNotExists = true
	}

	name, err := p.parseObjectName("index name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name
	if err := p.expect(token.ON, "ON"); err != nil {
		return nil, err
	}
	table, err := p.parseObjectName("table name")
	if err != nil {
		return nil, err
	}
	idx.Table = table

	// Postgres places USING before the column list, MySQL after; both
	// resolve through the same grammar table entry.
	if p.check(token.USING) {
		if err := p.parseIndexMethod(stmt, idx); err != nil {
			return nil, err
		}
	}

	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	for {
		elem, err := p.parseIndexElement()
		if err != nil {
			return nil, err
		}
		idx.Columns = append(idx.Columns, elem)
		if p.match(token.COMMA) {
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "',' or ')'"); err != nil {
		return nil, err
	}

	if p.check(token.USING) {
		if err := p.parseIndexMethod(stmt, idx); err != nil {
			return nil, err
		}
	}
	if p.check(token.WHERE) {
		tag, ok := p.dialect.IndexFeatureTag("partial")
		if !ok {
			return nil, p.errExpected("end of statement")
		}
		p.nextToken()
		pred, err := p.consumeUntilTopLevel(token.SEMICOLON)
		if err != nil {
			return nil, err
		}
		if pred == "" {
			return nil, p.errExpected("predicate")
		}
		idx.Where = pred
		stmt.Tags = append(stmt.Tags, tag)
	}
	return stmt, p.drainToEnd()
}

// parseIndexMethod parses `USING ident` and tags the statement when the
// dialect supports explicit index methods.
func (p *Parser) parseIndexMethod(stmt *Statement, idx *IndexDef) error {
	tag, ok := p.dialect.IndexFeatureTag("using")
	if !ok {
		return p.errExpected("'('")
	}
	p.nextToken()
	method, err := p.identValue("index method")
	if err != nil {
		return err
	}
	idx.Method = strings.ToLower(method)
	stmt.Tags = append(stmt.Tags, tag)
	return nil
}

// parseIndexElement parses one indexed element: a column (optionally with a
// MySQL prefix length), a function call, or a parenthesized expression, each
// with an optional ordering.
func (p *Parser) parseIndexElement() (IndexColumn, error) {
	var elem IndexColumn
	start := p.token.Pos.Offset

	switch {
	case p.check(token.LPAREN):
		text, err := p.parseParenText()
		if err != nil {
			return elem, err
		}
		elem.Expr = text
		elem.Expression = true

	case p.token.Type == token.IDENT || token.IsKeyword(p.token.Type):
		name, err := p.identValue("column name")
		if err != nil {
			return elem, err
		}
		elem.Expr = name
		if p.check(token.LPAREN) {
			inner, err := p.parseParenText()
			if err != nil {
				return elem, err
			}
			// lower(email) is an expression; name(10) is a MySQL
			// prefix length on a plain column.
			if !isPrefixLength(inner) {
				elem.Expr = p.raw.Text[start:p.token.Pos.Offset]
				elem.Expr = strings.TrimSpace(elem.Expr)
				elem.Expression = true
			}
		}

	default:
		return elem, p.errExpected("column or expression")
	}

	if elem.Expression {
		tag, ok := p.dialect.IndexFeatureTag("expression")
		if !ok {
			return elem, p.errExpected("column name")
		}
		elem.Tags = append(elem.Tags, tag)
	}

	if p.match(token.COLLATE) {
		if _, err := p.identValue("collation name"); err != nil {
			return elem, err
		}
	}
	if p.matchAscDesc() == "desc" {
		elem.Desc = true
		if tag, ok := p.dialect.IndexFeatureTag("desc"); ok {
			elem.Tags = append(elem.Tags, tag)
		}
	}
	return elem, nil
}

// isPrefixLength reports whether a parenthesized group holds a single bare
// integer, i.e. a MySQL prefix length rather than call arguments.
func isPrefixLength(paren string) bool {
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(paren, "("), ")"))
	if inner == "" {
		return false
	}
	for i := 0; i < len(inner); i++ {
		if inner[i] < '0' || inner[i] > '9' {
			return false
		}
	}
	return true
}
