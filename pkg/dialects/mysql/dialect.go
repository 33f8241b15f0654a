// Package mysql provides the MySQL dialect definition.
// This package is pure data with no database driver dependencies.
package mysql

import (
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/feature"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect. It extends the standard tables with
// AUTO_INCREMENT, unsigned/zerofill integers, inline ENUM types, storage
// engine and charset table options, and fulltext/spatial indexes.
var MySQL = dialect.NewDialect("mysql").
	Standard().
	Identifiers(dialect.IdentifierConfig{Backtick: true}).
	Types(map[string]feature.FeatureTag{
		"enum": feature.EnumType,
	}).
	ColumnOptions(map[string]feature.FeatureTag{
		"auto_increment": feature.AutoIncrement,
		"unsigned":       feature.UnsignedInteger,
		"zerofill":       feature.ZerofillInteger,
		"on_update":      feature.OnUpdateCurrentTimestamp,
	}).
	TableOptions(map[string]feature.FeatureTag{
		"engine":         feature.TableEngine,
		"charset":        feature.TableCharset,
		"character_set":  feature.TableCharset,
		"collate":        feature.TableCharset,
		"row_format":     feature.TableRowFormat,
		"comment":        feature.TableComment,
		"auto_increment": feature.AutoIncrement,
		"partition_by":   feature.PartitionBy,
	}).
	IndexFeatures(map[string]feature.FeatureTag{
		"using":      feature.IndexMethod,
		"expression": feature.ExpressionIndex,
		"fulltext":   feature.FulltextIndex,
		"spatial":    feature.SpatialIndex,
	}).
	AddKeyword("fulltext", dialect.FULLTEXT).
	AddKeyword("spatial", dialect.SPATIAL).
	AddKeyword("partition", dialect.PARTITION).
	Build()
