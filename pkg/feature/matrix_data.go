package feature

// Target dialect names used as matrix column keys. These must match the
// names the dialect packages register under.
const (
	targetAnsi     = "ansi"
	targetPostgres = "postgres"
	targetMysql    = "mysql"
	targetSqlite   = "sqlite"
)

// matrixRow holds the verdicts for one feature tag across all targets.
type matrixRow struct {
	tag      FeatureTag
	verdicts map[string]Capability
}

// ok, rw and no are shorthand constructors for matrix cells.
func ok() Capability { return Capability{Verdict: Supported} }

func rw(rule string) Capability {
	return Capability{Verdict: SupportedWithRewrite, Rewrite: rule}
}

func no() Capability { return Capability{Verdict: Unsupported} }

// builtinMatrix is the curated capability matrix. Every feature tag must have
// a cell for every target dialect; TestMatrixCompleteness enforces this.
// Rewrite texts are advisory and can be overridden via a rewrite-rules file.
var builtinMatrix = []matrixRow{
	{SerialColumn, map[string]Capability{
		targetAnsi:     rw("INTEGER GENERATED BY DEFAULT AS IDENTITY"),
		targetPostgres: ok(),
		targetMysql:    rw("INT AUTO_INCREMENT"),
		targetSqlite:   rw("INTEGER PRIMARY KEY AUTOINCREMENT"),
	}},
	{BigSerialColumn, map[string]Capability{
		targetAnsi:     rw("BIGINT GENERATED BY DEFAULT AS IDENTITY"),
		targetPostgres: ok(),
		targetMysql:    rw("BIGINT AUTO_INCREMENT"),
		targetSqlite:   rw("INTEGER PRIMARY KEY AUTOINCREMENT"),
	}},
	{SmallSerialColumn, map[string]Capability{
		targetAnsi:     rw("SMALLINT GENERATED BY DEFAULT AS IDENTITY"),
		targetPostgres: ok(),
		targetMysql:    rw("SMALLINT AUTO_INCREMENT"),
		targetSqlite:   rw("INTEGER PRIMARY KEY AUTOINCREMENT"),
	}},
	{AutoIncrement, map[string]Capability{
		targetAnsi:     rw("GENERATED BY DEFAULT AS IDENTITY"),
		targetPostgres: rw("GENERATED BY DEFAULT AS IDENTITY"),
		targetMysql:    ok(),
		targetSqlite:   rw("INTEGER PRIMARY KEY AUTOINCREMENT"),
	}},
	{SqliteAutoincrement, map[string]Capability{
		targetAnsi:     rw("GENERATED BY DEFAULT AS IDENTITY"),
		targetPostgres: rw("GENERATED BY DEFAULT AS IDENTITY"),
		targetMysql:    rw("AUTO_INCREMENT"),
		targetSqlite:   ok(),
	}},
	{GeneratedColumnStored, map[string]Capability{
		targetAnsi:     ok(),
		targetPostgres: ok(),
		targetMysql:    ok(),
		targetSqlite:   ok(),
	}},
	{GeneratedColumnVirtual, map[string]Capability{
		targetAnsi:     rw("GENERATED ALWAYS AS (...) STORED"),
		targetPostgres: rw("GENERATED ALWAYS AS (...) STORED"),
		targetMysql:    ok(),
		targetSqlite:   ok(),
	}},
	{IdentityColumn, map[string]Capability{
		targetAnsi:     ok(),
		targetPostgres: ok(),
		targetMysql:    rw("AUTO_INCREMENT"),
		targetSqlite:   rw("INTEGER PRIMARY KEY AUTOINCREMENT"),
	}},
	{UnsignedInteger, map[string]Capability{
		targetAnsi:     rw("CHECK (value >= 0)"),
		targetPostgres: rw("CHECK (value >= 0)"),
		targetMysql:    ok(),
		targetSqlite:   rw("CHECK (value >= 0)"),
	}},
	{ZerofillInteger, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: no(),
		targetMysql:    ok(),
		targetSqlite:   no(),
	}},
	{OnUpdateCurrentTimestamp, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: rw("BEFORE UPDATE trigger setting the column to now()"),
		targetMysql:    ok(),
		targetSqlite:   rw("AFTER UPDATE trigger setting the column to CURRENT_TIMESTAMP"),
	}},
	{CollateClause, map[string]Capability{
		targetAnsi:     ok(),
		targetPostgres: ok(),
		targetMysql:    ok(),
		targetSqlite:   rw("map collation to BINARY, NOCASE, or RTRIM"),
	}},
	{ArrayType, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    rw("JSON column"),
		targetSqlite:   rw("TEXT column with JSON encoding"),
	}},
	{JsonbType, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    rw("JSON"),
		targetSqlite:   rw("TEXT"),
	}},
	{EnumType, map[string]Capability{
		targetAnsi:     rw("VARCHAR with CHECK (value IN (...))"),
		targetPostgres: rw("CREATE TYPE ... AS ENUM"),
		targetMysql:    ok(),
		targetSqlite:   rw("TEXT with CHECK (value IN (...))"),
	}},
	{IntervalType, map[string]Capability{
		targetAnsi:     ok(),
		targetPostgres: ok(),
		targetMysql:    no(),
		targetSqlite:   rw("NUMERIC seconds"),
	}},
	{SizedTextType, map[string]Capability{
		targetAnsi:     rw("VARCHAR(n)"),
		targetPostgres: rw("VARCHAR(n)"),
		targetMysql:    ok(),
		targetSqlite:   rw("TEXT without a length (rejected by STRICT tables)"),
	}},
	{TableEngine, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: no(),
		targetMysql:    ok(),
		targetSqlite:   no(),
	}},
	{TableCharset, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: rw("set the database encoding instead"),
		targetMysql:    ok(),
		targetSqlite:   no(),
	}},
	{TableRowFormat, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: no(),
		targetMysql:    ok(),
		targetSqlite:   no(),
	}},
	{WithoutRowid, map[string]Capability{
		targetAnsi:     rw("remove WITHOUT ROWID"),
		targetPostgres: rw("remove WITHOUT ROWID"),
		targetMysql:    rw("remove WITHOUT ROWID; InnoDB clusters by primary key"),
		targetSqlite:   ok(),
	}},
	{StrictTable, map[string]Capability{
		targetAnsi:     rw("remove STRICT; column types are already enforced"),
		targetPostgres: rw("remove STRICT; column types are already enforced"),
		targetMysql:    rw("remove STRICT; column types are already enforced"),
		targetSqlite:   ok(),
	}},
	{InheritsClause, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    no(),
		targetSqlite:   no(),
	}},
	{PartitionBy, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    ok(),
		targetSqlite:   no(),
	}},
	{UnloggedTable, map[string]Capability{
		targetAnsi:     rw("remove UNLOGGED"),
		targetPostgres: ok(),
		targetMysql:    rw("remove UNLOGGED"),
		targetSqlite:   rw("remove UNLOGGED"),
	}},
	{TableComment, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: rw("COMMENT ON TABLE after creation"),
		targetMysql:    ok(),
		targetSqlite:   no(),
	}},
	{PartialIndex, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    no(),
		targetSqlite:   ok(),
	}},
	{ExpressionIndex, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    rw("functional index (MySQL 8.0.13+) or indexed generated column"),
		targetSqlite:   ok(),
	}},
	{IndexMethod, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    rw("USING BTREE or USING HASH only"),
		targetSqlite:   no(),
	}},
	{DescendingIndex, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: ok(),
		targetMysql:    ok(),
		targetSqlite:   ok(),
	}},
	{FulltextIndex, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: rw("GIN index over to_tsvector(...)"),
		targetMysql:    ok(),
		targetSqlite:   rw("FTS5 virtual table"),
	}},
	{SpatialIndex, map[string]Capability{
		targetAnsi:     no(),
		targetPostgres: rw("GiST index (PostGIS)"),
		targetMysql:    ok(),
		targetSqlite:   rw("R*Tree module"),
	}},
}
