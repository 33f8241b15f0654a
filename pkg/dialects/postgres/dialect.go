// Package postgres provides the PostgreSQL dialect definition.
// This package is pure data with no database driver dependencies.
package postgres

import (
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/feature"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect. It extends the standard tables with
// serial pseudo-types, JSONB, arrays, table inheritance/partitioning, and
// partial/expression/method indexes.
var Postgres = dialect.NewDialect("postgres").
	Standard().
	Types(map[string]feature.FeatureTag{
		"serial":      feature.SerialColumn,
		"serial4":     feature.SerialColumn,
		"bigserial":   feature.BigSerialColumn,
		"serial8":     feature.BigSerialColumn,
		"smallserial": feature.SmallSerialColumn,
		"serial2":     feature.SmallSerialColumn,
		"jsonb":       feature.JsonbType,
	}).
	ArrayTypes().
	TableOptions(map[string]feature.FeatureTag{
		"inherits":     feature.InheritsClause,
		"partition_by": feature.PartitionBy,
		"unlogged":     feature.UnloggedTable,
	}).
	IndexFeatures(map[string]feature.FeatureTag{
		"partial":    feature.PartialIndex,
		"using":      feature.IndexMethod,
		"expression": feature.ExpressionIndex,
	}).
	AddKeyword("unlogged", dialect.UNLOGGED).
	AddKeyword("inherits", dialect.INHERITS).
	AddKeyword("partition", dialect.PARTITION).
	Build()
