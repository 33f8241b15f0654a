package parser_test

import (
	"testing"

	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/dialects/ansi"
	"github.com/sqlport-dev/sqlport/pkg/dialects/mysql"
	"github.com/sqlport-dev/sqlport/pkg/dialects/postgres"
	"github.com/sqlport-dev/sqlport/pkg/dialects/sqlite"
	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/sqlport-dev/sqlport/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDialect(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, ok := dialect.Get(name)
	require.True(t, ok, "dialect %s not registered", name)
	return d
}

// parseSingle parses exactly one statement under the named dialect.
func parseSingle(sql, name string) (*parser.Statement, error) {
	d, ok := dialect.Get(name)
	if !ok {
		return nil, dialect.ErrDialectRequired
	}
	raws := parser.SplitStatements(sql)
	if len(raws) != 1 {
		return nil, &parser.ParseError{Expected: "one statement", Found: "several"}
	}
	return parser.ParseStatement(raws[0], d)
}

// ---------- CREATE TABLE Tests ----------

func TestParseCreateTableBasic(t *testing.T) {
	sql := `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	stmt, err := parseSingle(sql, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.KindCreateTable, stmt.Kind)
	assert.Equal(t, "users", stmt.Name.String())
	require.Len(t, stmt.Columns, 3)

	assert.Equal(t, "id", stmt.Columns[0].Name)
	assert.Equal(t, "integer", stmt.Columns[0].Type.Name)
	assert.Equal(t, "email", stmt.Columns[1].Name)
	assert.Equal(t, []string{"255"}, stmt.Columns[1].Type.Args)
	assert.True(t, stmt.Columns[1].NotNull)
	assert.Equal(t, "CURRENT_TIMESTAMP", stmt.Columns[2].Default)

	// Inline constraints land on the statement in declaration order.
	require.Len(t, stmt.Constraints, 2)
	assert.Equal(t, parser.ConstraintPrimaryKey, stmt.Constraints[0].Kind)
	assert.Equal(t, "id", stmt.Constraints[0].Column)
	assert.Equal(t, parser.ConstraintUnique, stmt.Constraints[1].Kind)
	assert.Equal(t, "email", stmt.Constraints[1].Column)
}

func TestParseCreateTableQualifiedName(t *testing.T) {
	stmt, err := parseSingle(`CREATE TABLE analytics.public.events (id INT)`, postgres.Postgres.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.ObjectName{"analytics", "public", "events"}, stmt.Name)
	assert.Equal(t, "events", stmt.Name.Base())
}

func TestParseCreateTableIfNotExistsTemp(t *testing.T) {
	stmt, err := parseSingle(`CREATE TEMPORARY TABLE IF NOT EXISTS scratch (v TEXT)`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.True(t, stmt.IfNotExists)
	assert.True(t, stmt.Temporary)
}

func TestParseCreateTableSerialColumn(t *testing.T) {
	stmt, err := parseSingle(`CREATE TABLE t (id SERIAL PRIMARY KEY)`, postgres.Postgres.GetName())
	require.NoError(t, err)
	assert.Contains(t, stmt.AllTags(), feature.SerialColumn)
}

func TestParseCreateTableArrayType(t *testing.T) {
	stmt, err := parseSingle(`CREATE TABLE t (tags TEXT[] NOT NULL)`, postgres.Postgres.GetName())
	require.NoError(t, err)
	require.Len(t, stmt.Columns, 1)
	assert.True(t, stmt.Columns[0].Type.Array)
	assert.Contains(t, stmt.Columns[0].Tags, feature.ArrayType)
}

func TestParseCreateTableArrayTypeRejectedOutsidePostgres(t *testing.T) {
	_, err := parseSingle(`CREATE TABLE t (tags TEXT[])`, mysql.MySQL.GetName())
	require.Error(t, err)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseCreateTableMySQLOptions(t *testing.T) {
	sql := "CREATE TABLE logs (" +
		"id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY, " +
		"body TEXT" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 ROW_FORMAT=COMPRESSED"

	stmt, err := parseSingle(sql, mysql.MySQL.GetName())
	require.NoError(t, err)
	tags := stmt.AllTags()
	assert.Contains(t, tags, feature.UnsignedInteger)
	assert.Contains(t, tags, feature.AutoIncrement)
	assert.Contains(t, tags, feature.TableEngine)
	assert.Contains(t, tags, feature.TableCharset)
	assert.Contains(t, tags, feature.TableRowFormat)
}

func TestParseCreateTableEngineRejectedOutsideMySQL(t *testing.T) {
	_, err := parseSingle(`CREATE TABLE t (id INT) ENGINE=InnoDB`, ansi.Ansi.GetName())
	require.Error(t, err)
}

func TestParseCreateTableSQLiteOptions(t *testing.T) {
	stmt, err := parseSingle(`CREATE TABLE kv (k TEXT PRIMARY KEY, v BLOB) WITHOUT ROWID, STRICT`, sqlite.SQLite.GetName())
	require.NoError(t, err)
	tags := stmt.AllTags()
	assert.Contains(t, tags, feature.WithoutRowid)
	assert.Contains(t, tags, feature.StrictTable)
}

func TestParseCreateTablePostgresInherits(t *testing.T) {
	sql := `CREATE UNLOGGED TABLE audit_2024 (LIKE_ID INT) INHERITS (audit) PARTITION BY RANGE (created_at)`
	stmt, err := parseSingle(sql, postgres.Postgres.GetName())
	require.NoError(t, err)
	tags := stmt.AllTags()
	assert.Contains(t, tags, feature.UnloggedTable)
	assert.Contains(t, tags, feature.InheritsClause)
	assert.Contains(t, tags, feature.PartitionBy)
}

func TestParseCreateTableGeneratedColumns(t *testing.T) {
	sql := `CREATE TABLE m (
		w INT,
		h INT,
		area INT GENERATED ALWAYS AS (w * h) STORED,
		label TEXT AS (printf('%dx%d', w, h))
	)`
	stmt, err := parseSingle(sql, sqlite.SQLite.GetName())
	require.NoError(t, err)
	tags := stmt.AllTags()
	assert.Contains(t, tags, feature.GeneratedColumnStored)
	assert.Contains(t, tags, feature.GeneratedColumnVirtual)
}

func TestParseCreateTableIdentity(t *testing.T) {
	stmt, err := parseSingle(`CREATE TABLE t (id INT GENERATED BY DEFAULT AS IDENTITY)`, postgres.Postgres.GetName())
	require.NoError(t, err)
	assert.Contains(t, stmt.AllTags(), feature.IdentityColumn)
}

func TestParseCreateTableTableConstraints(t *testing.T) {
	sql := `CREATE TABLE order_items (
		order_id INT,
		product_id INT,
		qty INT CHECK (qty > 0),
		PRIMARY KEY (order_id, product_id),
		CONSTRAINT fk_order FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE
	)`
	stmt, err := parseSingle(sql, ansi.Ansi.GetName())
	require.NoError(t, err)
	require.Len(t, stmt.Constraints, 3)

	assert.Equal(t, parser.ConstraintCheck, stmt.Constraints[0].Kind)
	assert.Equal(t, "(qty > 0)", stmt.Constraints[0].Expr)

	pk := stmt.Constraints[1]
	assert.Equal(t, parser.ConstraintPrimaryKey, pk.Kind)
	assert.Equal(t, []string{"order_id", "product_id"}, pk.Columns)

	fk := stmt.Constraints[2]
	assert.Equal(t, parser.ConstraintForeignKey, fk.Kind)
	assert.Equal(t, "fk_order", fk.Name)
	assert.Equal(t, []string{"order_id"}, fk.Columns)
	assert.Contains(t, fk.Expr, "REFERENCES orders")
}

func TestParseCreateTableMalformedColumnList(t *testing.T) {
	_, err := parseSingle(`CREATE TABLE broken ( , )`, ansi.Ansi.GetName())
	require.Error(t, err)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "expected")
}

// ---------- CREATE INDEX Tests ----------

func TestParseCreateIndexBasic(t *testing.T) {
	stmt, err := parseSingle(`CREATE UNIQUE INDEX idx_email ON users (email DESC)`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.KindCreateIndex, stmt.Kind)
	require.NotNil(t, stmt.Index)
	assert.True(t, stmt.Index.Unique)
	assert.Equal(t, "users", stmt.Index.Table.String())
	require.Len(t, stmt.Index.Columns, 1)
	assert.True(t, stmt.Index.Columns[0].Desc)
	assert.Contains(t, stmt.AllTags(), feature.DescendingIndex)
}

func TestParseCreateIndexPartial(t *testing.T) {
	stmt, err := parseSingle(`CREATE INDEX idx_active ON users (email) WHERE deleted_at IS NULL`, postgres.Postgres.GetName())
	require.NoError(t, err)
	assert.Equal(t, "deleted_at IS NULL", stmt.Index.Where)
	assert.Contains(t, stmt.AllTags(), feature.PartialIndex)
}

func TestParseCreateIndexPartialRejectedOnMySQL(t *testing.T) {
	_, err := parseSingle(`CREATE INDEX idx ON users (email) WHERE x > 0`, mysql.MySQL.GetName())
	require.Error(t, err)
}

func TestParseCreateIndexExpressionAndMethod(t *testing.T) {
	stmt, err := parseSingle(`CREATE INDEX idx_lower ON users USING btree (lower(email))`, postgres.Postgres.GetName())
	require.NoError(t, err)
	assert.Equal(t, "btree", stmt.Index.Method)
	require.Len(t, stmt.Index.Columns, 1)
	assert.True(t, stmt.Index.Columns[0].Expression)
	tags := stmt.AllTags()
	assert.Contains(t, tags, feature.IndexMethod)
	assert.Contains(t, tags, feature.ExpressionIndex)
}

func TestParseCreateIndexFulltext(t *testing.T) {
	stmt, err := parseSingle(`CREATE FULLTEXT INDEX ft_body ON posts (body)`, mysql.MySQL.GetName())
	require.NoError(t, err)
	assert.Contains(t, stmt.AllTags(), feature.FulltextIndex)
}

func TestParseCreateIndexMySQLPrefixLength(t *testing.T) {
	stmt, err := parseSingle("CREATE INDEX idx_name ON users (name(10))", mysql.MySQL.GetName())
	require.NoError(t, err)
	require.Len(t, stmt.Index.Columns, 1)
	assert.False(t, stmt.Index.Columns[0].Expression)
}

// ---------- ALTER TABLE Tests ----------

func TestParseAlterTableAddColumn(t *testing.T) {
	stmt, err := parseSingle(`ALTER TABLE users ADD COLUMN age INT NOT NULL DEFAULT 0`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.KindAlterTable, stmt.Kind)
	require.NotNil(t, stmt.Alter)
	assert.Equal(t, parser.AlterAddColumn, stmt.Alter.Action)
	require.NotNil(t, stmt.Alter.Column)
	assert.Equal(t, "age", stmt.Alter.Column.Name)
	assert.True(t, stmt.Alter.Column.NotNull)
	assert.Equal(t, "0", stmt.Alter.Column.Default)
}

func TestParseAlterTableAddSerialColumn(t *testing.T) {
	stmt, err := parseSingle(`ALTER TABLE users ADD COLUMN seq SERIAL`, postgres.Postgres.GetName())
	require.NoError(t, err)
	assert.Contains(t, stmt.AllTags(), feature.SerialColumn)
}

func TestParseAlterTableAddConstraint(t *testing.T) {
	stmt, err := parseSingle(`ALTER TABLE users ADD CONSTRAINT uq_email UNIQUE (email)`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.AlterAddConstraint, stmt.Alter.Action)
	require.NotNil(t, stmt.Alter.Constraint)
	assert.Equal(t, "uq_email", stmt.Alter.Constraint.Name)
	assert.Equal(t, parser.ConstraintUnique, stmt.Alter.Constraint.Kind)
}

func TestParseAlterTableDropAndRename(t *testing.T) {
	stmt, err := parseSingle(`ALTER TABLE users DROP COLUMN legacy_flag`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.AlterDropColumn, stmt.Alter.Action)
	assert.Equal(t, "legacy_flag", stmt.Alter.OldName)

	stmt, err = parseSingle(`ALTER TABLE users RENAME COLUMN email TO primary_email`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.AlterRenameColumn, stmt.Alter.Action)
	assert.Equal(t, "email", stmt.Alter.OldName)
	assert.Equal(t, "primary_email", stmt.Alter.NewName)

	stmt, err = parseSingle(`ALTER TABLE users RENAME TO customers`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.AlterRenameTable, stmt.Alter.Action)
	assert.Equal(t, "customers", stmt.Alter.NewName)
}

// ---------- Raw Statement Tests ----------

func TestParseRawStatements(t *testing.T) {
	cases := []struct {
		sql  string
		kind parser.StatementKind
	}{
		{`SELECT * FROM users`, parser.KindSelect},
		{`WITH x AS (SELECT 1) SELECT * FROM x`, parser.KindSelect},
		{`INSERT INTO t (a) VALUES (1)`, parser.KindInsert},
		{`UPDATE t SET a = 1`, parser.KindUpdate},
		{`DELETE FROM t WHERE a = 1`, parser.KindDelete},
		{`DROP VIEW v`, parser.KindOther},
		{`CREATE VIEW v AS SELECT 1`, parser.KindCreateView},
	}
	for _, tc := range cases {
		stmt, err := parseSingle(tc.sql, ansi.Ansi.GetName())
		require.NoError(t, err, tc.sql)
		assert.Equal(t, tc.kind, stmt.Kind, tc.sql)
		assert.Empty(t, stmt.AllTags(), tc.sql)
	}
}

func TestParseDropTable(t *testing.T) {
	stmt, err := parseSingle(`DROP TABLE IF EXISTS old_users`, ansi.Ansi.GetName())
	require.NoError(t, err)
	assert.Equal(t, parser.KindDropTable, stmt.Kind)
	assert.Equal(t, "old_users", stmt.Name.String())
}

// ---------- Multi-Statement Recovery Tests ----------

func TestParseAllRecoversAfterMalformedStatement(t *testing.T) {
	src := `CREATE TABLE ok1 (id INT);
CREATE TABLE broken ( , );
CREATE TABLE ok2 (id INT);`

	results := parser.ParseAll(src, mustDialect(t, "ansi"))
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "ok2", results[2].Stmt.Name.String())
}

func TestParseAllReportsSourcePositions(t *testing.T) {
	src := "SELECT 1;\nCREATE TABLE broken ( , );"
	results := parser.ParseAll(src, mustDialect(t, "ansi"))
	require.Len(t, results, 2)
	require.Error(t, results[1].Err)
	var perr *parser.ParseError
	require.ErrorAs(t, results[1].Err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
}

func TestParseUnterminatedStringIsLexError(t *testing.T) {
	results := parser.ParseAll(`SELECT 'oops FROM t`, mustDialect(t, "ansi"))
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	var lerr *parser.LexError
	require.ErrorAs(t, results[0].Err, &lerr)
}

func TestParseRawStatementsWithParameters(t *testing.T) {
	cases := []struct {
		sql     string
		dialect string
		kind    parser.StatementKind
	}{
		{`SELECT id, email FROM users WHERE id = $1`, "postgres", parser.KindSelect},
		{`SELECT created_at::date FROM orders WHERE total > $1`, "postgres", parser.KindSelect},
		{`INSERT INTO t (a, b) VALUES (?, ?)`, "mysql", parser.KindInsert},
		{`UPDATE users SET name = :name WHERE id = :id`, "sqlite", parser.KindUpdate},
		{`DELETE FROM sessions WHERE expires < $1`, "ansi", parser.KindDelete},
	}
	for _, tc := range cases {
		stmt, err := parseSingle(tc.sql, tc.dialect)
		require.NoError(t, err, tc.sql)
		assert.Equal(t, tc.kind, stmt.Kind, tc.sql)
		assert.Empty(t, stmt.AllTags(), tc.sql)
	}
}
