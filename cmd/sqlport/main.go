// Command sqlport checks SQL written for one dialect for compatibility
// with other dialects.
package main

import (
	"os"

	"github.com/sqlport-dev/sqlport/internal/cli"

	// Register the built-in dialects.
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/ansi"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/mysql"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/postgres"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/sqlite"
)

func main() {
	os.Exit(cli.Execute())
}
