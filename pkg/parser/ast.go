package parser

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// StatementKind identifies the top-level kind of a parsed statement.
type StatementKind int

// Statement kinds. DDL kinds get a deep parse; the rest are recognized from
// their leading keywords and carried through as raw statements.
const (
	KindOther StatementKind = iota
	KindCreateTable
	KindCreateIndex
	KindCreateView
	KindAlterTable
	KindDropTable
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the statement kind name.
func (k StatementKind) String() string {
	switch k {
	case KindCreateTable:
		return "CREATE TABLE"
	case KindCreateIndex:
		return "CREATE INDEX"
	case KindCreateView:
		return "CREATE VIEW"
	case KindAlterTable:
		return "ALTER TABLE"
	case KindDropTable:
		return "DROP TABLE"
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return "STATEMENT"
	}
}

// ObjectName is a possibly qualified name, e.g. schema.table or
// db.schema.table. Qualifiers are kept in declaration order.
type ObjectName []string

// String joins the name parts with dots.
func (n ObjectName) String() string {
	return strings.Join(n, ".")
}

// Base returns the last (unqualified) part of the name.
func (n ObjectName) Base() string {
	if len(n) == 0 {
		return ""
	}
	return n[len(n)-1]
}

// TypeName is a column type with optional arguments, e.g. VARCHAR(255) or
// NUMERIC(10,2). Array is true for Postgres `type[]` columns.
type TypeName struct {
	Name  string
	Args  []string
	Array bool
}

// String renders the type the way it appeared, normalized to upper case.
func (t TypeName) String() string {
	s := strings.ToUpper(t.Name)
	if len(t.Args) > 0 {
		s += "(" + strings.Join(t.Args, ",") + ")"
	}
	if t.Array {
		s += "[]"
	}
	return s
}

// ColumnDef is one column definition inside CREATE TABLE or ALTER TABLE ADD.
type ColumnDef struct {
	Name    string
	Type    TypeName
	NotNull bool
	Default string // raw default expression text; empty if none
	Tags    []feature.FeatureTag
}

// ConstraintKind identifies a constraint node.
type ConstraintKind int

// Constraint kinds.
const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintCheck
	ConstraintIndex // MySQL inline KEY/INDEX, FULLTEXT, SPATIAL
)

// String returns the constraint kind name.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPrimaryKey:
		return "PRIMARY KEY"
	case ConstraintUnique:
		return "UNIQUE"
	case ConstraintForeignKey:
		return "FOREIGN KEY"
	case ConstraintCheck:
		return "CHECK"
	case ConstraintIndex:
		return "INDEX"
	default:
		return "CONSTRAINT"
	}
}

// ConstraintDef is one constraint node. Inline column constraints and
// table-level CONSTRAINT clauses populate the same list on the statement,
// preserving declaration order; Column is set for inline constraints.
type ConstraintDef struct {
	Name    string // explicit constraint name; empty if anonymous
	Kind    ConstraintKind
	Column  string   // owning column for inline constraints
	Columns []string // referenced column list for table-level constraints
	Expr    string   // raw text for CHECK expressions and FK references
	Tags    []feature.FeatureTag
}

// IndexColumn is one indexed element: a plain column or an expression.
type IndexColumn struct {
	Expr       string
	Desc       bool
	Expression bool // true when the element is an expression, not a column
	Tags       []feature.FeatureTag
}

// IndexDef holds the CREATE INDEX specifics.
type IndexDef struct {
	Unique  bool
	Table   ObjectName
	Columns []IndexColumn
	Method  string // USING method; empty if none
	Where   string // partial index predicate; empty if none
}

// AlterAction identifies the ALTER TABLE sub-operation.
type AlterAction int

// Alter actions.
const (
	AlterAddColumn AlterAction = iota
	AlterDropColumn
	AlterAddConstraint
	AlterDropConstraint
	AlterRenameTable
	AlterRenameColumn
	AlterOther
)

// AlterSpec holds the ALTER TABLE specifics.
type AlterSpec struct {
	Action     AlterAction
	Column     *ColumnDef     // AlterAddColumn
	Constraint *ConstraintDef // AlterAddConstraint
	OldName    string         // AlterDropColumn, AlterDropConstraint, AlterRenameColumn
	NewName    string         // AlterRenameTable, AlterRenameColumn
	Raw        string         // AlterOther: unparsed action text
}

// Statement is the dialect-agnostic representation of one SQL statement.
// It is owned by the parse result that produced it and never mutated after
// construction.
type Statement struct {
	Kind        StatementKind
	Text        string         // original statement text, trimmed
	Pos         token.Position // start of the statement in the source
	Name        ObjectName     // target object; nil for raw statements
	IfNotExists bool
	Temporary   bool

	Columns     []*ColumnDef     // CREATE TABLE
	Constraints []*ConstraintDef // CREATE TABLE / ALTER TABLE, declaration order
	Index       *IndexDef        // CREATE INDEX
	Alter       *AlterSpec       // ALTER TABLE

	// Tags attached to the statement node itself (table options, index
	// features). Node-level tags live on the nodes.
	Tags []feature.FeatureTag
}

// AllTags returns every feature tag in the tree in document order:
// column tags, constraint tags, index element tags, then statement-level
// tags (table options appear after the column list in the source).
func (s *Statement) AllTags() []feature.FeatureTag {
	var tags []feature.FeatureTag
	for _, c := range s.Columns {
		tags = append(tags, c.Tags...)
	}
	for _, c := range s.Constraints {
		tags = append(tags, c.Tags...)
	}
	if s.Index != nil {
		for _, c := range s.Index.Columns {
			tags = append(tags, c.Tags...)
		}
	}
	if s.Alter != nil {
		if s.Alter.Column != nil {
			tags = append(tags, s.Alter.Column.Tags...)
		}
		if s.Alter.Constraint != nil {
			tags = append(tags, s.Alter.Constraint.Tags...)
		}
	}
	tags = append(tags, s.Tags...)
	return tags
}

// Summary returns a short one-line description for reports.
func (s *Statement) Summary() string {
	if len(s.Name) > 0 {
		return s.Kind.String() + " " + s.Name.String()
	}
	return s.Kind.String()
}
