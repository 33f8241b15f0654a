// Package dialect provides SQL dialect configuration: identifier quoting
// rules, dialect-specific keywords for the lexer, and the grammar tables that
// map recognized constructs to feature tags.
//
// Each dialect's grammar table is a flat, independent registry. Shared ANSI
// productions live in the standard tables (standard.go) and dialect tables
// extend them by map merge, not by subclassing. Concrete dialects are
// registered from pkg/dialects/*/ packages at init() time and are immutable
// afterwards, so unsynchronized concurrent reads are safe.
package dialect

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// IdentifierConfig describes which quoting styles the dialect accepts for
// identifiers. Double quotes are ANSI and always accepted.
type IdentifierConfig struct {
	Backtick bool // `name` (MySQL, SQLite)
	Bracket  bool // [name] (SQLite compatibility mode)
}

// Dialect represents one SQL dialect: its lexical extensions and the grammar
// tables used by the parser to attach feature tags.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig

	// Grammar tables. Keys are lowercase canonical construct names.
	types         map[string]feature.FeatureTag // type name -> tag (e.g. "serial")
	sizedTypes    map[string]feature.FeatureTag // type name with length -> tag (e.g. "text")
	columnOptions map[string]feature.FeatureTag // column option -> tag (e.g. "auto_increment")
	tableOptions  map[string]feature.FeatureTag // table option -> tag (e.g. "engine")
	indexFeatures map[string]feature.FeatureTag // index construct -> tag (e.g. "partial")
	arrayTypes    bool                          // `type[]` suffix recognized (Postgres)

	// Dialect-specific keywords for the lexer: lowercase name -> token type.
	dynamicKw map[string]token.TokenType
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// LookupKeyword returns the token type for a dialect-specific keyword.
// Returns IDENT and false if the name is not a keyword in this dialect.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	if t, ok := d.dynamicKw[strings.ToLower(name)]; ok {
		return t, true
	}
	return token.IDENT, false
}

// TypeTag returns the feature tag for a type name, if the type is
// dialect-specific.
func (d *Dialect) TypeTag(name string) (feature.FeatureTag, bool) {
	t, ok := d.types[strings.ToLower(name)]
	return t, ok
}

// SizedTypeTag returns the feature tag attached when the named type carries
// an explicit length, e.g. TEXT(50).
func (d *Dialect) SizedTypeTag(name string) (feature.FeatureTag, bool) {
	t, ok := d.sizedTypes[strings.ToLower(name)]
	return t, ok
}

// ColumnOptionTag returns the feature tag for a column option construct.
func (d *Dialect) ColumnOptionTag(name string) (feature.FeatureTag, bool) {
	t, ok := d.columnOptions[strings.ToLower(name)]
	return t, ok
}

// TableOptionTag returns the feature tag for a table option construct.
func (d *Dialect) TableOptionTag(name string) (feature.FeatureTag, bool) {
	t, ok := d.tableOptions[strings.ToLower(name)]
	return t, ok
}

// IndexFeatureTag returns the feature tag for an index construct
// ("partial", "using", "expression", "desc", "fulltext", "spatial").
func (d *Dialect) IndexFeatureTag(name string) (feature.FeatureTag, bool) {
	t, ok := d.indexFeatures[strings.ToLower(name)]
	return t, ok
}

// SupportsArrayTypes returns true if the dialect recognizes `type[]` columns.
func (d *Dialect) SupportsArrayTypes() bool {
	return d.arrayTypes
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name:          name,
			types:         make(map[string]feature.FeatureTag),
			sizedTypes:    make(map[string]feature.FeatureTag),
			columnOptions: make(map[string]feature.FeatureTag),
			tableOptions:  make(map[string]feature.FeatureTag),
			indexFeatures: make(map[string]feature.FeatureTag),
			dynamicKw:     make(map[string]token.TokenType),
		},
	}
}

// Identifiers configures accepted identifier quoting styles.
func (b *Builder) Identifiers(cfg IdentifierConfig) *Builder {
	b.dialect.Identifiers = cfg
	return b
}

// Standard merges the shared ANSI grammar tables into this dialect.
// Dialects extend the merged result; they never mutate the standard tables.
func (b *Builder) Standard() *Builder {
	mergeTags(b.dialect.types, standardTypes)
	mergeTags(b.dialect.sizedTypes, standardSizedTypes)
	mergeTags(b.dialect.columnOptions, standardColumnOptions)
	mergeTags(b.dialect.indexFeatures, standardIndexFeatures)
	return b
}

// Types adds dialect-specific type tags.
func (b *Builder) Types(tags map[string]feature.FeatureTag) *Builder {
	mergeTags(b.dialect.types, tags)
	return b
}

// SizedTypes adds tags for types that are flagged when given a length.
func (b *Builder) SizedTypes(tags map[string]feature.FeatureTag) *Builder {
	mergeTags(b.dialect.sizedTypes, tags)
	return b
}

// ColumnOptions adds dialect-specific column option tags.
func (b *Builder) ColumnOptions(tags map[string]feature.FeatureTag) *Builder {
	mergeTags(b.dialect.columnOptions, tags)
	return b
}

// TableOptions adds dialect-specific table option tags.
func (b *Builder) TableOptions(tags map[string]feature.FeatureTag) *Builder {
	mergeTags(b.dialect.tableOptions, tags)
	return b
}

// IndexFeatures adds dialect-specific index construct tags.
func (b *Builder) IndexFeatures(tags map[string]feature.FeatureTag) *Builder {
	mergeTags(b.dialect.indexFeatures, tags)
	return b
}

// ArrayTypes enables the `type[]` suffix.
func (b *Builder) ArrayTypes() *Builder {
	b.dialect.arrayTypes = true
	return b
}

// AddKeyword registers a dialect-specific keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}

// mergeTags copies src entries into dst, overriding existing keys.
func mergeTags(dst, src map[string]feature.FeatureTag) {
	for k, v := range src {
		dst[k] = v
	}
}
