package parser_test

import (
	"testing"

	"github.com/sqlport-dev/sqlport/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatementsBasic(t *testing.T) {
	raws := parser.SplitStatements("SELECT 1; SELECT 2;\nSELECT 3")
	require.Len(t, raws, 3)
	assert.Equal(t, "SELECT 1;", raws[0].Text)
	assert.Equal(t, "SELECT 3", raws[2].Text)
}

func TestSplitStatementsSemicolonInString(t *testing.T) {
	raws := parser.SplitStatements(`INSERT INTO t(v) VALUES (';');`)
	require.Len(t, raws, 1)
	assert.Equal(t, `INSERT INTO t(v) VALUES (';');`, raws[0].Text)
}

func TestSplitStatementsSemicolonInComment(t *testing.T) {
	src := "SELECT 1 -- trailing; not a boundary\n; SELECT /* a; b */ 2;"
	raws := parser.SplitStatements(src)
	require.Len(t, raws, 2)
}

func TestSplitStatementsDollarQuote(t *testing.T) {
	src := `CREATE FUNCTION f() RETURNS void AS $body$ BEGIN; END; $body$ LANGUAGE plpgsql; SELECT 1;`
	raws := parser.SplitStatements(src)
	require.Len(t, raws, 2)
	assert.Contains(t, raws[0].Text, "$body$")
	assert.Equal(t, "SELECT 1;", raws[1].Text)
}

func TestSplitStatementsQuotedIdentifiers(t *testing.T) {
	raws := parser.SplitStatements("SELECT \"a;b\" FROM t; SELECT `c;d` FROM u;")
	require.Len(t, raws, 2)
}

func TestSplitStatementsPositions(t *testing.T) {
	raws := parser.SplitStatements("SELECT 1;\n\nSELECT 2;")
	require.Len(t, raws, 2)
	assert.Equal(t, 1, raws[0].Pos.Line)
	assert.Equal(t, 3, raws[1].Pos.Line)
}

func TestSplitStatementsEmptyInput(t *testing.T) {
	assert.Empty(t, parser.SplitStatements(""))
	assert.Empty(t, parser.SplitStatements("  \n\t ;;  ; "))
	assert.Empty(t, parser.SplitStatements("-- only a comment\n"))
}

func TestSplitParameterMarkersAreNotDollarQuotes(t *testing.T) {
	raws := parser.SplitStatements(
		"SELECT * FROM t WHERE a = $1 AND b = $2;\nSELECT $$x; y$$;\n")
	require.Len(t, raws, 2)
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2;", raws[0].Text)
	assert.Equal(t, "SELECT $$x; y$$;", raws[1].Text)
}
