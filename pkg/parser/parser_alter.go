package parser

import (
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// parseAlterTable parses ALTER TABLE with its common single-action forms.
// Actions outside the recognized set are kept as raw text so the statement
// still classifies instead of failing.
//
//	alter_table  → ALTER TABLE [IF EXISTS] object_name alter_action
//	alter_action → ADD [COLUMN] column_def
//	             | ADD table_constraint
//	             | DROP COLUMN ident | DROP CONSTRAINT ident
//	             | RENAME TO object_name | RENAME COLUMN ident TO ident
func (p *Parser) parseAlterTable() (*Statement, error) {
	if err := p.expect(token.ALTER, "ALTER"); err != nil {
		return nil, err
	}
	if !p.check(token.TABLE) {
		// ALTER INDEX, ALTER VIEW and friends pass through raw.
		return p.rawStatement(KindOther)
	}
	p.nextToken()

	stmt := &Statement{Kind: KindAlterTable}
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

	spec := &AlterSpec{}
	stmt.Alter = spec
	switch p.token.Type {
	case token.ADD:
		p.nextToken()
		if err := p.parseAlterAdd(stmt, spec); err != nil {
			return nil, err
		}
	case token.DROP:
		p.nextToken()
		if err := p.parseAlterDrop(spec); err != nil {
			return nil, err
		}
	case token.RENAME:
		p.nextToken()
		if err := p.parseAlterRename(spec); err != nil {
			return nil, err
		}
	default:
		raw, err := p.consumeUntilTopLevel(token.SEMICOLON)
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return nil, p.errExpected("alter action")
		}
		spec.Action = AlterOther
		spec.Raw = raw
	}
	return stmt, p.drainToEnd()
}

func (p *Parser) parseAlterAdd(stmt *Statement, spec *AlterSpec) error {
	switch p.token.Type {
	case token.CONSTRAINT, token.PRIMARY, token.UNIQUE, token.FOREIGN, token.CHECK:
		spec.Action = AlterAddConstraint
		// Reuse the table-constraint grammar; the constraint lands on
		// the statement list and is mirrored on the spec.
		if err := p.parseTableConstraint(stmt); err != nil {
			return err
		}
		spec.Constraint = stmt.Constraints[len(stmt.Constraints)-1]
		return nil
	}
	p.match(token.COLUMN)
	spec.Action = AlterAddColumn
	col, err := p.parseColumnDef(stmt)
	if err != nil {
		return err
	}
	spec.Column = col
	return nil
}

func (p *Parser) parseAlterDrop(spec *AlterSpec) error {
	switch p.token.Type {
	case token.CONSTRAINT:
		p.nextToken()
		spec.Action = AlterDropConstraint
	case token.COLUMN:
		p.nextToken()
		spec.Action = AlterDropColumn
	default:
		// Bare DROP name drops a column.
		spec.Action = AlterDropColumn
	}
	if p.check(token.IF) {
		p.nextToken()
		if err := p.expect(token.EXISTS, "EXISTS"); err != nil {
			return err
		}
	}
	name, err := p.identValue("name")
	if err != nil {
		return err
	}
	spec.OldName = name
	p.match(token.CASCADE)
	p.match(token.RESTRICT)
	return nil
}

func (p *Parser) parseAlterRename(spec *AlterSpec) error {
	switch p.token.Type {
	case token.TO:
		p.nextToken()
		spec.Action = AlterRenameTable
		name, err := p.parseObjectName("new table name")
		if err != nil {
			return err
		}
		spec.NewName = name.String()
		return nil
	case token.COLUMN:
		p.nextToken()
	}
	spec.Action = AlterRenameColumn
	old, err := p.identValue("column name")
	if err != nil {
		return err
	}
	spec.OldName = old
	if err := p.expect(token.TO, "TO"); err != nil {
		return err
	}
	newName, err := p.identValue("new column name")
	if err != nil {
		return err
	}
	spec.NewName = newName
	return nil
}
