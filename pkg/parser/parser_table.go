package parser

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// parseCreateTable parses the body of CREATE TABLE. stmt carries flags
// already consumed by the CREATE dispatch (TEMP, UNLOGGED).
//
//	create_table → TABLE [IF NOT EXISTS] object_name
//	               "(" table_element ("," table_element)* ")" table_option*
func (p *Parser) parseCreateTable(stmt *Statement) (*Statement, error) {
	stmt.Kind = KindCreateTable
	if err := p.expect(token.TABLE, "TABLE"); err != nil {
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

	name, err := p.parseObjectName("table name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	for {
		if err := p.parseTableElement(stmt); err != nil {
			return nil, err
		}
		if p.match(token.COMMA) {
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "',' or ')'"); err != nil {
		return nil, err
	}

	if err := p.parseTableOptions(stmt); err != nil {
		return nil, err
	}
	return stmt, p.drainToEnd()
}

// parseTableElement parses one comma-separated item inside the column list:
// either a table-level constraint or a column definition.
func (p *Parser) parseTableElement(stmt *Statement) error {
	switch p.token.Type {
	case token.CONSTRAINT, token.PRIMARY, token.FOREIGN, token.CHECK,
		token.KEY, token.INDEX, dialect.FULLTEXT, dialect.SPATIAL:
		return p.parseTableConstraint(stmt)
	case token.UNIQUE:
		// UNIQUE at element start is a table constraint; as a column
		// option it follows the column's type.
		return p.parseTableConstraint(stmt)
	}
	col, err := p.parseColumnDef(stmt)
	if err != nil {
		return err
	}
	stmt.Columns = append(stmt.Columns, col)
	return nil
}

// ---------- Column Definitions ----------

// parseColumnDef parses `name type column_option*`. Inline constraints are
// appended to stmt's constraint list in declaration order; stmt may be nil
// for ALTER TABLE ADD COLUMN, where constraints attach nowhere.
func (p *Parser) parseColumnDef(stmt *Statement) (*ColumnDef, error) {
	name, err := p.identValue("column name")
	if err != nil {
		return nil, err
	}
	col := &ColumnDef{Name: name}
	if err := p.parseColumnType(col); err != nil {
		return nil, err
	}
	for {
		done, err := p.parseColumnOption(stmt, col)
		if err != nil {
			return nil, err
		}
		if done {
			return col, nil
		}
	}
}

// parseColumnType parses the type name, optional length arguments, and the
// Postgres `[]` array suffix. Type and sized-type tags come from the
// dialect's grammar tables.
func (p *Parser) parseColumnType(col *ColumnDef) error {
	name, err := p.identValue("column type")
	if err != nil {
		return err
	}
	name = strings.ToLower(name)

	// Multi-word ANSI type names collapse to one lookup key.
	switch name {
	case "double":
		if p.matchIdent("precision") {
			name = "double precision"
		}
	case "character":
		if p.matchIdent("varying") {
			name = "character varying"
		}
	case "time", "timestamp":
		if p.check(token.WITH) || p.token.Type == dialect.WITHOUT || p.checkIdent("without") {
			with := p.check(token.WITH)
			p.nextToken()
			if !p.matchIdent("time") {
				return p.errExpected("TIME ZONE")
			}
			if !p.matchIdent("zone") {
				return p.errExpected("ZONE")
			}
			if with {
				name += " with time zone"
			} else {
				name += " without time zone"
			}
		}
	}
	col.Type.Name = name

	if p.check(token.LPAREN) {
		args, err := p.parseTypeArgs()
		if err != nil {
			return err
		}
		col.Type.Args = args
	}
	if p.check(token.LBRACKET) {
		if !p.dialect.SupportsArrayTypes() {
			return p.errExpected("column constraint")
		}
		p.nextToken()
		if err := p.expect(token.RBRACKET, "']'"); err != nil {
			return err
		}
		col.Type.Array = true
		col.Tags = append(col.Tags, feature.ArrayType)
	}

	if tag, ok := p.dialect.TypeTag(name); ok {
		col.Tags = append(col.Tags, tag)
	}
	if len(col.Type.Args) > 0 {
		if tag, ok := p.dialect.SizedTypeTag(name); ok {
			col.Tags = append(col.Tags, tag)
		}
	}
	return nil
}

// parseTypeArgs parses the parenthesized type argument list: lengths for
// VARCHAR(255), precision pairs for NUMERIC(10,2), value lists for
// ENUM('a','b').
func (p *Parser) parseTypeArgs() ([]string, error) {
	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []string
	for {
		switch p.token.Type {
		case token.NUMBER, token.IDENT:
			args = append(args, p.token.Literal)
		case token.STRING:
			args = append(args, "'"+p.token.Literal+"'")
		default:
			return nil, p.errExpected("type argument")
		}
		p.nextToken()
		if p.match(token.COMMA) {
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseColumnOption parses one trailing column construct. It returns
// done=true when the column definition has ended (',', ')', or end of
// statement). Bare identifiers are resolved through the dialect's column
// option table; anything unlisted there fails the statement.
func (p *Parser) parseColumnOption(stmt *Statement, col *ColumnDef) (bool, error) {
	switch p.token.Type {
	case token.COMMA, token.RPAREN, token.SEMICOLON, token.EOF:
		return true, nil

	case token.NOT:
		p.nextToken()
		if err := p.expect(token.NULL, "NULL"); err != nil {
			return false, err
		}
		col.NotNull = true
		return false, nil

	case token.NULL:
		p.nextToken()
		return false, nil

	case token.PRIMARY:
		p.nextToken()
		if err := p.expect(token.KEY, "KEY"); err != nil {
			return false, err
		}
		p.addInlineConstraint(stmt, &ConstraintDef{Kind: ConstraintPrimaryKey, Column: col.Name})
		if p.matchAscDesc() == "desc" {
			// SQLite allows ordering on an inline primary key.
			if tag, ok := p.dialect.IndexFeatureTag("desc"); ok {
				col.Tags = append(col.Tags, tag)
			}
		}
		return false, nil

	case token.UNIQUE:
		p.nextToken()
		p.match(token.KEY) // MySQL UNIQUE KEY
		p.addInlineConstraint(stmt, &ConstraintDef{Kind: ConstraintUnique, Column: col.Name})
		return false, nil

	case token.CHECK:
		p.nextToken()
		expr, err := p.parseParenText()
		if err != nil {
			return false, err
		}
		p.addInlineConstraint(stmt, &ConstraintDef{Kind: ConstraintCheck, Column: col.Name, Expr: expr})
		return false, nil

	case token.DEFAULT:
		p.nextToken()
		val, err := p.parseDefaultValue()
		if err != nil {
			return false, err
		}
		col.Default = val
		return false, nil

	case token.REFERENCES:
		p.nextToken()
		if err := p.parseColumnReferences(stmt, col); err != nil {
			return false, err
		}
		return false, nil

	case token.COLLATE:
		p.nextToken()
		if _, err := p.identValue("collation name"); err != nil {
			return false, err
		}
		if tag, ok := p.dialect.ColumnOptionTag("collate"); ok {
			col.Tags = append(col.Tags, tag)
		}
		return false, nil

	case token.GENERATED:
		return false, p.parseGenerated(col)

	case token.AS:
		// Short generated-column form: `expr` without GENERATED ALWAYS.
		p.nextToken()
		return false, p.parseGenerationExpr(col)

	case token.ON:
		// MySQL ON UPDATE CURRENT_TIMESTAMP.
		p.nextToken()
		if err := p.expect(token.UPDATE, "UPDATE"); err != nil {
			return false, err
		}
		if _, err := p.parseDefaultValue(); err != nil {
			return false, err
		}
		tag, ok := p.dialect.ColumnOptionTag("on_update")
		if !ok {
			return false, p.errExpected("column constraint")
		}
		col.Tags = append(col.Tags, tag)
		return false, nil

	case token.CONSTRAINT:
		// Named inline constraint: CONSTRAINT name {PRIMARY KEY|UNIQUE|CHECK|REFERENCES ...}
		p.nextToken()
		cname, err := p.identValue("constraint name")
		if err != nil {
			return false, err
		}
		done, err := p.parseColumnOption(stmt, col)
		if err != nil {
			return false, err
		}
		if done {
			return false, p.errExpected("constraint body")
		}
		if stmt != nil {
			if n := len(stmt.Constraints); n > 0 && stmt.Constraints[n-1].Name == "" {
				stmt.Constraints[n-1].Name = cname
			}
		}
		return false, nil

	case token.IDENT:
		kw := strings.ToLower(p.token.Literal)
		tag, ok := p.dialect.ColumnOptionTag(kw)
		if !ok {
			return false, p.errExpected("column constraint")
		}
		col.Tags = append(col.Tags, tag)
		p.nextToken()
		return false, nil

	default:
		return false, p.errExpected("column constraint")
	}
}

// addInlineConstraint appends an inline constraint when a statement is in
// scope. ALTER TABLE ADD COLUMN parses columns without one.
func (p *Parser) addInlineConstraint(stmt *Statement, c *ConstraintDef) {
	if stmt != nil {
		stmt.Constraints = append(stmt.Constraints, c)
	}
}

// parseDefaultValue parses a DEFAULT value: a literal, a bare keyword like
// CURRENT_TIMESTAMP (optionally with precision), a signed number, or a
// parenthesized expression.
func (p *Parser) parseDefaultValue() (string, error) {
	switch p.token.Type {
	case token.LPAREN:
		return p.parseParenText()
	case token.MINUS, token.PLUS:
		sign := p.token.Literal
		p.nextToken()
		if !p.check(token.NUMBER) {
			return "", p.errExpected("number")
		}
		v := sign + p.token.Literal
		p.nextToken()
		return v, nil
	case token.NUMBER, token.NULL, token.TRUE, token.FALSE:
		v := p.token.Literal
		p.nextToken()
		return v, nil
	case token.STRING:
		v := "'" + p.token.Literal + "'"
		p.nextToken()
		return v, nil
	case token.IDENT:
		v := p.token.Literal
		p.nextToken()
		if p.check(token.LPAREN) {
			args, err := p.parseParenText()
			if err != nil {
				return "", err
			}
			v += args
		}
		return v, nil
	default:
		return "", p.errExpected("default value")
	}
}

// parseColumnReferences parses the tail of an inline foreign key:
// `REFERENCES table [(cols)] [ON DELETE ...] [ON UPDATE ...]` with the
// actions kept as raw text.
func (p *Parser) parseColumnReferences(stmt *Statement, col *ColumnDef) error {
	start := p.token.Pos.Offset
	if _, err := p.parseObjectName("referenced table"); err != nil {
		return err
	}
	if p.check(token.LPAREN) {
		if _, err := p.parseParenText(); err != nil {
			return err
		}
	}
	for p.check(token.ON) {
		p.nextToken()
		if !p.match(token.DELETE) && !p.match(token.UPDATE) {
			return p.errExpected("DELETE or UPDATE")
		}
		if !p.match(token.CASCADE) && !p.match(token.RESTRICT) {
			if p.matchIdent("no") {
				if !p.matchIdent("action") {
					return p.errExpected("ACTION")
				}
			} else if p.match(token.SET) {
				if !p.match(token.NULL) && !p.match(token.DEFAULT) {
					return p.errExpected("NULL or DEFAULT")
				}
			} else {
				return p.errExpected("referential action")
			}
		}
	}
	p.addInlineConstraint(stmt, &ConstraintDef{
		Kind:   ConstraintForeignKey,
		Column: col.Name,
		Expr:   p.textFrom(start),
	})
	return nil
}

// parseGenerated parses `GENERATED ALWAYS AS (expr) [STORED|VIRTUAL]` and
// `GENERATED {ALWAYS|BY DEFAULT} AS IDENTITY [(options)]`.
func (p *Parser) parseGenerated(col *ColumnDef) error {
	p.nextToken() // GENERATED
	if !p.matchIdent("always") {
		if !p.match(token.BY) || !p.match(token.DEFAULT) {
			return p.errExpected("ALWAYS or BY DEFAULT")
		}
	}
	if err := p.expect(token.AS, "AS"); err != nil {
		return err
	}
	if p.matchIdent("identity") {
		if p.check(token.LPAREN) {
			if _, err := p.parseParenText(); err != nil {
				return err
			}
		}
		tag, ok := p.dialect.ColumnOptionTag("identity")
		if !ok {
			return p.errExpected("column constraint")
		}
		col.Tags = append(col.Tags, tag)
		return nil
	}
	return p.parseGenerationExpr(col)
}

// parseGenerationExpr parses `(expr) [STORED|VIRTUAL]` and tags the column
// by storage mode. Without an explicit mode the column is virtual, which is
// every dialect's default where the mode is optional.
func (p *Parser) parseGenerationExpr(col *ColumnDef) error {
	if _, err := p.parseParenText(); err != nil {
		return err
	}
	key := "generated_virtual"
	if p.matchIdent("stored") {
		key = "generated_stored"
	} else {
		p.matchIdent("virtual")
	}
	tag, ok := p.dialect.ColumnOptionTag(key)
	if !ok {
		return p.errExpected("column constraint")
	}
	col.Tags = append(col.Tags, tag)
	return nil
}

// matchAscDesc consumes an optional ASC or DESC and reports which.
func (p *Parser) matchAscDesc() string {
	switch p.token.Type {
	case token.ASC:
		p.nextToken()
		return "asc"
	case token.DESC:
		p.nextToken()
		return "desc"
	}
	return ""
}

// ---------- Table Constraints ----------

// parseTableConstraint parses one table-level constraint clause.
func (p *Parser) parseTableConstraint(stmt *Statement) error {
	c := &ConstraintDef{}
	if p.match(token.CONSTRAINT) {
		name, err := p.identValue("constraint name")
		if err != nil {
			return err
		}
		c.Name = name
	}

	switch p.token.Type {
	case token.PRIMARY:
		p.nextToken()
		if err := p.expect(token.KEY, "KEY"); err != nil {
			return err
		}
		c.Kind = ConstraintPrimaryKey
		cols, err := p.parseKeyColumnList()
		if err != nil {
			return err
		}
		c.Columns = cols

	case token.UNIQUE:
		p.nextToken()
		if p.match(token.KEY) || p.match(token.INDEX) {
			if p.token.Type == token.IDENT {
				c.Name, _ = p.identValue("index name")
			}
		}
		c.Kind = ConstraintUnique
		cols, err := p.parseKeyColumnList()
		if err != nil {
			return err
		}
		c.Columns = cols

	case token.FOREIGN:
		p.nextToken()
		if err := p.expect(token.KEY, "KEY"); err != nil {
			return err
		}
		c.Kind = ConstraintForeignKey
		cols, err := p.parseKeyColumnList()
		if err != nil {
			return err
		}
		c.Columns = cols
		start := p.token.Pos.Offset
		if err := p.expect(token.REFERENCES, "REFERENCES"); err != nil {
			return err
		}
		if _, err := p.parseObjectName("referenced table"); err != nil {
			return err
		}
		if _, err := p.consumeUntilTopLevel(token.COMMA, token.SEMICOLON); err != nil {
			return err
		}
		c.Expr = p.textFrom(start)

	case token.CHECK:
		p.nextToken()
		c.Kind = ConstraintCheck
		expr, err := p.parseParenText()
		if err != nil {
			return err
		}
		c.Expr = expr

	case token.KEY, token.INDEX:
		if _, ok := p.dialect.TableOptionTag("engine"); !ok {
			// Inline KEY/INDEX clauses are a MySQL construct.
			return p.errExpected("constraint")
		}
		p.nextToken()
		if p.token.Type == token.IDENT {
			c.Name, _ = p.identValue("index name")
		}
		c.Kind = ConstraintIndex
		cols, err := p.parseKeyColumnList()
		if err != nil {
			return err
		}
		c.Columns = cols

	case dialect.FULLTEXT, dialect.SPATIAL:
		kw := strings.ToLower(p.token.Literal)
		tag, ok := p.dialect.IndexFeatureTag(kw)
		if !ok {
			return p.errExpected("constraint")
		}
		p.nextToken()
		if !p.match(token.KEY) {
			p.match(token.INDEX)
		}
		if p.token.Type == token.IDENT {
			c.Name, _ = p.identValue("index name")
		}
		c.Kind = ConstraintIndex
		c.Tags = append(c.Tags, tag)
		cols, err := p.parseKeyColumnList()
		if err != nil {
			return err
		}
		c.Columns = cols

	default:
		return p.errExpected("constraint")
	}

	stmt.Constraints = append(stmt.Constraints, c)
	return nil
}

// parseKeyColumnList parses `(col [(len)] [ASC|DESC], ...)` as used by key
// and constraint clauses.
func (p *Parser) parseKeyColumnList() ([]string, error) {
	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var cols []string
	for {
		name, err := p.identValue("column name")
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
		if p.check(token.LPAREN) {
			// MySQL prefix length, e.g. KEY (name(10)).
			if _, err := p.parseParenText(); err != nil {
				return nil, err
			}
		}
		p.matchAscDesc()
		if p.match(token.COMMA) {
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return cols, nil
}

// ---------- Table Options ----------

// parseTableOptions parses the option clauses after the closing paren.
// Every clause resolves through the dialect's table option table; a clause
// the dialect does not list fails the statement.
func (p *Parser) parseTableOptions(stmt *Statement) error {
	for {
		switch p.token.Type {
		case token.SEMICOLON, token.EOF:
			return nil

		case dialect.WITHOUT:
			p.nextToken()
			if !p.matchIdent("rowid") {
				return p.errExpected("ROWID")
			}
			if err := p.tagTableOption(stmt, "without_rowid"); err != nil {
				return err
			}

		case dialect.STRICT:
			p.nextToken()
			if err := p.tagTableOption(stmt, "strict"); err != nil {
				return err
			}

		case dialect.INHERITS:
			p.nextToken()
			if _, err := p.parseParenText(); err != nil {
				return err
			}
			if err := p.tagTableOption(stmt, "inherits"); err != nil {
				return err
			}

		case dialect.PARTITION:
			p.nextToken()
			if err := p.expect(token.BY, "BY"); err != nil {
				return err
			}
			if _, err := p.identValue("partition method"); err != nil {
				return err
			}
			if p.check(token.LPAREN) {
				if _, err := p.parseParenText(); err != nil {
					return err
				}
			}
			if err := p.tagTableOption(stmt, "partition_by"); err != nil {
				return err
			}

		case token.COLLATE:
			p.nextToken()
			p.match(token.EQ)
			if _, err := p.identValue("collation name"); err != nil {
				return err
			}
			if err := p.tagTableOption(stmt, "collate"); err != nil {
				return err
			}

		case token.DEFAULT:
			// MySQL DEFAULT CHARSET / DEFAULT COLLATE prefix.
			p.nextToken()

		case token.COMMA:
			// MySQL permits commas between table options.
			p.nextToken()

		case token.IDENT:
			if err := p.parseNamedTableOption(stmt); err != nil {
				return err
			}

		default:
			return p.errExpected("table option")
		}
	}
}

// parseNamedTableOption handles the `name = value` option family:
// ENGINE=InnoDB, CHARSET=utf8mb4, ROW_FORMAT=COMPRESSED, COMMENT='...',
// AUTO_INCREMENT=n, CHARACTER SET utf8mb4.
func (p *Parser) parseNamedTableOption(stmt *Statement) error {
	kw := strings.ToLower(p.token.Literal)
	p.nextToken()
	if kw == "character" {
		if !p.match(token.SET) {
			return p.errExpected("SET")
		}
		kw = "character_set"
	}
	p.match(token.EQ)
	switch p.token.Type {
	case token.IDENT, token.NUMBER, token.STRING:
		p.nextToken()
	default:
		return p.errExpected("option value")
	}
	return p.tagTableOption(stmt, kw)
}

// tagTableOption resolves a table option key through the dialect tables and
// attaches the resulting tag to the statement.
func (p *Parser) tagTableOption(stmt *Statement, key string) error {
	tag, ok := p.dialect.TableOptionTag(key)
	if !ok {
		return p.errExpected("table option")
	}
	stmt.Tags = append(stmt.Tags, tag)
	return nil
}
