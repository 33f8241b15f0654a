// Package feature defines the dialect-specific SQL constructs tracked for
// compatibility classification, and the capability matrix that maps each
// construct to a verdict per target dialect.
//
// FeatureTag is a closed enumerated type: new dialects append new tags, and
// adding a tag never changes the meaning of existing tags. The closed set,
// together with CapabilityMatrix.Validate, lets missing matrix entries be
// caught by the test suite instead of at classification time.
package feature

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FeatureTag identifies a dialect-specific SQL construct.
//
//nolint:revive // Accept stutter as feature.FeatureTag is clear and widely used
type FeatureTag int

const (
	// Column features
	SerialColumn             FeatureTag = iota // Postgres SERIAL
	BigSerialColumn                            // Postgres BIGSERIAL
	SmallSerialColumn                          // Postgres SMALLSERIAL
	AutoIncrement                              // MySQL AUTO_INCREMENT
	SqliteAutoincrement                        // SQLite AUTOINCREMENT
	GeneratedColumnStored                      // GENERATED ALWAYS AS (...) STORED
	GeneratedColumnVirtual                     // GENERATED ALWAYS AS (...) VIRTUAL
	IdentityColumn                             // GENERATED ALWAYS AS IDENTITY
	UnsignedInteger                            // MySQL INT UNSIGNED
	ZerofillInteger                            // MySQL INT ZEROFILL
	OnUpdateCurrentTimestamp                   // MySQL ON UPDATE CURRENT_TIMESTAMP
	CollateClause                              // COLLATE on a column definition

	// Type features
	ArrayType     // Postgres INTEGER[]
	JsonbType     // Postgres JSONB
	EnumType      // MySQL ENUM(...)
	IntervalType  // Postgres INTERVAL
	SizedTextType // TEXT(n) - rejected by SQLite STRICT tables

	// Table features
	TableEngine    // MySQL ENGINE=InnoDB
	TableCharset   // MySQL DEFAULT CHARSET=utf8mb4
	TableRowFormat // MySQL ROW_FORMAT=...
	WithoutRowid   // SQLite WITHOUT ROWID
	StrictTable    // SQLite STRICT
	InheritsClause // Postgres INHERITS (parent)
	PartitionBy    // Postgres PARTITION BY RANGE (...)
	UnloggedTable  // Postgres UNLOGGED
	TableComment   // MySQL COMMENT='...'

	// Index features
	PartialIndex    // CREATE INDEX ... WHERE predicate
	ExpressionIndex // CREATE INDEX ON t ((lower(col)))
	IndexMethod     // CREATE INDEX ... USING gin/gist/hash/btree
	DescendingIndex // indexed column with DESC ordering
	FulltextIndex   // MySQL FULLTEXT INDEX
	SpatialIndex    // MySQL SPATIAL INDEX

	// Sentinel for iteration; keep last.
	maxFeatureTag
)

// tagNames maps feature tags to their canonical names.
var tagNames = map[FeatureTag]string{
	SerialColumn:             "serial-column",
	BigSerialColumn:          "bigserial-column",
	SmallSerialColumn:        "smallserial-column",
	AutoIncrement:            "auto-increment",
	SqliteAutoincrement:      "sqlite-autoincrement",
	GeneratedColumnStored:    "generated-column-stored",
	GeneratedColumnVirtual:   "generated-column-virtual",
	IdentityColumn:           "identity-column",
	UnsignedInteger:          "unsigned-integer",
	ZerofillInteger:          "zerofill-integer",
	OnUpdateCurrentTimestamp: "on-update-current-timestamp",
	CollateClause:            "collate-clause",
	ArrayType:                "array-type",
	JsonbType:                "jsonb-type",
	EnumType:                 "enum-type",
	IntervalType:             "interval-type",
	SizedTextType:            "sized-text-type",
	TableEngine:              "table-engine",
	TableCharset:             "table-charset",
	TableRowFormat:           "table-row-format",
	WithoutRowid:             "without-rowid",
	StrictTable:              "strict-table",
	InheritsClause:           "inherits-clause",
	PartitionBy:              "partition-by",
	UnloggedTable:            "unlogged-table",
	TableComment:             "table-comment",
	PartialIndex:             "partial-index",
	ExpressionIndex:          "expression-index",
	IndexMethod:              "index-method",
	DescendingIndex:          "descending-index",
	FulltextIndex:            "fulltext-index",
	SpatialIndex:             "spatial-index",
}

// String returns the canonical name of the feature tag.
func (t FeatureTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("feature(%d)", int(t))
}

// MarshalJSON renders the tag as its canonical name.
func (t FeatureTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// IsValid returns true if the tag is a known feature tag.
func (t FeatureTag) IsValid() bool {
	return t >= 0 && t < maxFeatureTag
}

// All returns every defined feature tag in declaration order.
func All() []FeatureTag {
	tags := make([]FeatureTag, 0, int(maxFeatureTag))
	for t := FeatureTag(0); t < maxFeatureTag; t++ {
		tags = append(tags, t)
	}
	return tags
}

// Parse resolves a canonical name back to its feature tag.
// Returns an error if the name is not a known tag.
func Parse(name string) (FeatureTag, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for t, n := range tagNames {
		if n == needle {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown feature tag %q", name)
}
