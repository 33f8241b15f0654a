// Package ansi provides the ANSI SQL dialect definition.
// It carries only the shared standard grammar tables: every construct beyond
// them is dialect-specific by definition.
package ansi

import (
	"github.com/sqlport-dev/sqlport/pkg/dialect"
)

func init() {
	dialect.Register(Ansi)
}

// Ansi is the ANSI SQL dialect: the standard tables and nothing else.
var Ansi = dialect.NewDialect("ansi").
	Standard().
	Build()
