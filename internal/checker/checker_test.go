package checker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sqlport-dev/sqlport/internal/checker"
	"github.com/sqlport-dev/sqlport/internal/testutil"
	"github.com/sqlport-dev/sqlport/pkg/compat"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/ansi"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/mysql"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/postgres"
	_ "github.com/sqlport-dev/sqlport/pkg/dialects/sqlite"
	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChecker(t *testing.T, source string, targets ...string) *checker.Checker {
	t.Helper()
	c, err := checker.New(checker.Config{
		SourceDialect: source,
		Targets:       targets,
		Logger:        testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	return c
}

func TestNewRejectsUnknownDialects(t *testing.T) {
	_, err := checker.New(checker.Config{SourceDialect: "oracle", Targets: []string{"ansi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")

	_, err = checker.New(checker.Config{SourceDialect: "postgres", Targets: []string{"mssql"}})
	require.Error(t, err)

	_, err = checker.New(checker.Config{SourceDialect: "postgres"})
	require.Error(t, err)
}

func TestCheckSourceSerialRewrite(t *testing.T) {
	c := newChecker(t, "postgres", "sqlite")
	report, err := c.CheckSource(context.Background(), `CREATE TABLE t (id SERIAL PRIMARY KEY);`)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	require.Len(t, entry.Assessments, 1)
	a := entry.Assessments[0]
	assert.Equal(t, feature.SupportedWithRewrite, a.Verdict)
	require.Len(t, a.Findings, 1)
	assert.Equal(t, "INTEGER PRIMARY KEY AUTOINCREMENT", a.Findings[0].Rewrite)
	assert.Equal(t, compat.ExitOK, report.ExitCode())
}

func TestCheckSourceRecoversFromBrokenStatement(t *testing.T) {
	src := `CREATE TABLE a (id INT);
CREATE TABLE broken ( , );
CREATE TABLE b (id INT);`

	c := newChecker(t, "ansi", "sqlite")
	report, err := c.CheckSource(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, report.Entries, 3)
	assert.False(t, report.Entries[0].Failed())
	assert.True(t, report.Entries[1].Failed())
	assert.Contains(t, report.Entries[1].ParseError, "expected")
	assert.False(t, report.Entries[2].Failed())

	assert.Equal(t, 1, report.Summary.ParseFailures)
	assert.Equal(t, compat.ExitParseFailed, report.ExitCode())
}

func TestCheckSourceEntryOrderStable(t *testing.T) {
	src := `CREATE TABLE t1 (id INT);
CREATE TABLE t2 (id INT);
CREATE TABLE t3 (id INT);
CREATE TABLE t4 (id INT);`

	c := newChecker(t, "ansi", "ansi", "postgres", "mysql", "sqlite")
	for run := 0; run < 5; run++ {
		report, err := c.CheckSource(context.Background(), src)
		require.NoError(t, err)
		require.Len(t, report.Entries, 4)
		for i, e := range report.Entries {
			assert.Equal(t, i, e.Index)
		}
		assert.Equal(t, "CREATE TABLE t3", report.Entries[2].Summary)
	}
}

func TestCheckSourceUnsupportedExitCode(t *testing.T) {
	c := newChecker(t, "mysql", "ansi")
	report, err := c.CheckSource(context.Background(), `CREATE TABLE t (id INT) ENGINE=InnoDB;`)
	require.NoError(t, err)
	assert.Equal(t, compat.ExitUnsupported, report.ExitCode())
}

func TestCheckPathsFileResilience(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sql")
	require.NoError(t, os.WriteFile(good, []byte("CREATE TABLE t (id INT);"), 0o644))
	missing := filepath.Join(dir, "missing.sql")

	c := newChecker(t, "ansi", "sqlite")
	reports := c.CheckPaths(context.Background(), []string{missing, good})
	require.Len(t, reports, 2)
	assert.Error(t, reports[0].Err)
	require.NoError(t, reports[1].Err)
	assert.Equal(t, compat.ExitOK, reports[1].Report.ExitCode())

	assert.Equal(t, compat.ExitParseFailed, checker.CombinedExitCode(reports))
}

func TestCollectSQLFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "queries")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"b.sql", "a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(sub, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := checker.CollectSQLFiles([]string{sub})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(sub, "a.sql"), files[0])
	assert.Equal(t, filepath.Join(sub, "b.sql"), files[1])
}

func TestCheckSourceRewriteOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewrites.yaml")
	doc := `rewrites:
  - feature: serial-column
    target: sqlite
    verdict: unsupported
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := checker.New(checker.Config{
		SourceDialect: "postgres",
		Targets:       []string{"sqlite"},
		RewritesFile:  path,
		Logger:        testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	report, err := c.CheckSource(context.Background(), `CREATE TABLE t (id SERIAL);`)
	require.NoError(t, err)
	assert.Equal(t, compat.ExitUnsupported, report.ExitCode())
}

func TestCheckSourceParameterizedQueries(t *testing.T) {
	c := newChecker(t, "postgres", "mysql", "sqlite")
	report, err := c.CheckSource(context.Background(),
		"SELECT id, email FROM users WHERE id = $1;\n"+
			"UPDATE users SET email = $2 WHERE id = $1;\n")
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.ParseFailures)
	assert.Equal(t, compat.ExitOK, report.ExitCode())
	for _, e := range report.Entries {
		assert.False(t, e.Failed(), e.Text)
	}
}

func TestCheckSourceErrorPositionOnFailingLine(t *testing.T) {
	c := newChecker(t, "ansi", "sqlite")
	report, err := c.CheckSource(context.Background(),
		"CREATE TABLE orders (\n"+
			"    id INT NOT NULL,\n"+
			"    total BOGUS OPTION HERE (,\n"+
			");\n")
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	require.True(t, entry.Failed())
	assert.Equal(t, 1, entry.Pos.Line)
	require.NotNil(t, entry.ErrorPos)
	assert.Equal(t, 3, entry.ErrorPos.Line)
}
