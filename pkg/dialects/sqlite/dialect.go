// Package sqlite provides the SQLite dialect definition.
// This package is pure data with no database driver dependencies.
package sqlite

import (
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/feature"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite is the SQLite dialect. It extends the standard tables with
// AUTOINCREMENT, WITHOUT ROWID and STRICT table options, and
// partial/expression indexes.
var SQLite = dialect.NewDialect("sqlite").
	Standard().
	Identifiers(dialect.IdentifierConfig{Backtick: true, Bracket: true}).
	ColumnOptions(map[string]feature.FeatureTag{
		"autoincrement": feature.SqliteAutoincrement,
	}).
	TableOptions(map[string]feature.FeatureTag{
		"without_rowid": feature.WithoutRowid,
		"strict":        feature.StrictTable,
	}).
	IndexFeatures(map[string]feature.FeatureTag{
		"partial":    feature.PartialIndex,
		"expression": feature.ExpressionIndex,
	}).
	AddKeyword("without", dialect.WITHOUT).
	AddKeyword("strict", dialect.STRICT).
	Build()
