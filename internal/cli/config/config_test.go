package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes a sqlport.yaml into dir and returns its path.
func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceDialect, cfg.SourceDialect)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.Targets)
	assert.Equal(t, 0, cfg.Workers)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfigFile(t, dir, `source_dialect: postgres
targets:
  - mysql
  - sqlite
schema_file: db/schema.sql
queries_dir: db/queries
workers: 4
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.SourceDialect)
	assert.Equal(t, []string{"mysql", "sqlite"}, cfg.Targets)
	assert.Equal(t, "db/schema.sql", cfg.SchemaFile)
	assert.Equal(t, "db/queries", cfg.QueriesDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ConfigFileName, GetConfigFileUsed())
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source_dialect: mysql\n"), 0644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.SourceDialect)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfigFile(t, dir, "source_dialect: postgres\n")
	t.Setenv("SQLPORT_SOURCE_DIALECT", "mysql")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.SourceDialect)
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfigFile(t, dir, "source_dialect: postgres\noutput: json\n")
	t.Setenv("SQLPORT_SOURCE_DIALECT", "mysql")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("source-dialect", DefaultSourceDialect, "")
	flags.String("output", DefaultOutput, "")
	require.NoError(t, flags.Set("source-dialect", "sqlite"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	// Changed flags win; unchanged flags do not mask the file value.
	assert.Equal(t, "sqlite", cfg.SourceDialect)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfigFile(t, dir, "workers: 8\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 0, "")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nope.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoadConfig_YmlFallback(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, ConfigFileNameAlt)
	require.NoError(t, os.WriteFile(path, []byte("source_dialect: sqlite\n"), 0644))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.SourceDialect)
	assert.Equal(t, ConfigFileNameAlt, GetConfigFileUsed())
}

func TestDefaultPaths(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.DefaultPaths())

	cfg.SchemaFile = "schema.sql"
	assert.Equal(t, []string{"schema.sql"}, cfg.DefaultPaths())

	cfg.QueriesDir = "queries"
	assert.Equal(t, []string{"schema.sql", "queries"}, cfg.DefaultPaths())
}
