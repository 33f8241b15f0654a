package dialect

import (
	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// Dynamic tokens for dialect-specific structural keywords. Dialects opt in
// by registering the keyword via AddKeyword; the lexer only produces these
// token types for dialects that did.
var (
	UNLOGGED  = token.Register("UNLOGGED")
	INHERITS  = token.Register("INHERITS")
	PARTITION = token.Register("PARTITION")
	WITHOUT   = token.Register("WITHOUT")
	STRICT    = token.Register("STRICT")
	FULLTEXT  = token.Register("FULLTEXT")
	SPATIAL   = token.Register("SPATIAL")
)

// Shared ANSI grammar tables. Dialect tables extend these by map merge
// (Builder.Standard); the maps themselves are never mutated after init.
var (
	// standardTypes tags types that are portable in name but tracked for
	// compatibility because at least one target restricts them.
	standardTypes = map[string]feature.FeatureTag{
		"interval": feature.IntervalType,
	}

	// standardSizedTypes tags types that become dialect-sensitive when they
	// carry an explicit length, e.g. TEXT(50).
	standardSizedTypes = map[string]feature.FeatureTag{
		"text": feature.SizedTextType,
	}

	// standardColumnOptions covers SQL-standard column constructs that still
	// need classification because targets differ in support.
	standardColumnOptions = map[string]feature.FeatureTag{
		"generated_stored":  feature.GeneratedColumnStored,
		"generated_virtual": feature.GeneratedColumnVirtual,
		"identity":          feature.IdentityColumn,
		"collate":           feature.CollateClause,
	}

	// standardIndexFeatures covers index constructs every dialect's parser
	// recognizes syntactically.
	standardIndexFeatures = map[string]feature.FeatureTag{
		"desc": feature.DescendingIndex,
	}
)
