package checker_test

import (
	"testing"

	"github.com/sqlport-dev/sqlport/internal/checker"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src, dialectName string) []checker.QueryInfo {
	t.Helper()
	d, ok := dialect.Get(dialectName)
	require.True(t, ok)
	return checker.AnalyzeQueries(src, d)
}

func TestAnalyzeQueriesNamedSelect(t *testing.T) {
	infos := analyze(t, `
-- name: GetUserByID
SELECT id, email, created_at FROM users WHERE id = $1;
`, "postgres")
	require.Len(t, infos, 1)
	q := infos[0]
	assert.Equal(t, "GetUserByID", q.Name)
	assert.Equal(t, "select", q.Kind)
	assert.Equal(t, "users", q.Table)
	assert.Equal(t, []string{"$1"}, q.Params)
	assert.Equal(t, []checker.QueryOutput{
		{Name: "id"}, {Name: "email"}, {Name: "created_at"},
	}, q.Outputs)
}

func TestAnalyzeQueriesAliasResolution(t *testing.T) {
	infos := analyze(t, `
SELECT u.id, u.email AS address, o.total
FROM users u
JOIN orders o ON o.user_id = u.id
WHERE o.total > $1;
`, "postgres")
	require.Len(t, infos, 1)
	q := infos[0]
	assert.Equal(t, "users", q.Table)
	assert.Equal(t, []checker.QueryOutput{
		{Name: "id", Table: "users"},
		{Name: "address", Table: "users"},
		{Name: "total", Table: "orders"},
	}, q.Outputs)
}

func TestAnalyzeQueriesParameterStyles(t *testing.T) {
	infos := analyze(t, `
SELECT * FROM t WHERE a = $1 AND b = $2 AND c = $1;
INSERT INTO t (a, b) VALUES (?, ?);
UPDATE t SET a = :val WHERE id = :id;
`, "sqlite")
	require.Len(t, infos, 3)
	assert.Equal(t, []string{"$1", "$2"}, infos[0].Params)
	assert.Equal(t, []string{"?", "?"}, infos[1].Params)
	assert.Equal(t, []string{":val", ":id"}, infos[2].Params)
}

func TestAnalyzeQueriesStatementKinds(t *testing.T) {
	infos := analyze(t, `
SELECT * FROM a;
WITH x AS (SELECT 1 FROM b) SELECT * FROM x;
INSERT INTO c (v) VALUES (1);
UPDATE d SET v = 1;
DELETE FROM e WHERE v = 1;
CREATE TABLE f (id INT);
`, "ansi")
	require.Len(t, infos, 6)
	kinds := make([]string, 0, len(infos))
	tables := make([]string, 0, len(infos))
	for _, q := range infos {
		kinds = append(kinds, q.Kind)
		tables = append(tables, q.Table)
	}
	assert.Equal(t, []string{"select", "select", "insert", "update", "delete", "ddl"}, kinds)
	assert.Equal(t, []string{"a", "x", "c", "d", "e", ""}, tables)
}

func TestAnalyzeQueriesWildcardAndExpressions(t *testing.T) {
	infos := analyze(t, `SELECT *, count(id) AS n FROM users;`, "ansi")
	require.Len(t, infos, 1)
	assert.Equal(t, []checker.QueryOutput{
		{Name: "*"}, {Name: "n"},
	}, infos[0].Outputs)
}

func TestAnalyzeQueriesBrokenStatementStillSummarized(t *testing.T) {
	infos := analyze(t, "SELECT id FROM users WHERE note = 'unterminated", "ansi")
	require.Len(t, infos, 1)
	assert.Equal(t, "select", infos[0].Kind)
	assert.Equal(t, "users", infos[0].Table)
}

func TestAnalyzeQueriesInlineCommentIsNotAName(t *testing.T) {
	infos := analyze(t, "SELECT id -- name: Bogus\nFROM t;", "ansi")
	require.Len(t, infos, 1)
	assert.Empty(t, infos[0].Name)
	assert.Equal(t, "t", infos[0].Table)
}
