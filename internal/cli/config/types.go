// Package config loads CLI configuration from the project config file,
// environment variables, and command-line flags.
package config

// Default configuration values.
const (
	DefaultSourceDialect = "ansi"
	DefaultOutput        = "auto"
	ConfigFileName       = "sqlport.yaml"
	ConfigFileNameAlt    = "sqlport.yml"
)

// Config holds all CLI configuration options.
type Config struct {
	// SourceDialect is the dialect the project's SQL is written for.
	SourceDialect string `koanf:"source_dialect"`
	// Targets are the dialects to check compatibility against.
	Targets []string `koanf:"targets"`
	// SchemaFile is the project's DDL schema file, checked by default.
	SchemaFile string `koanf:"schema_file"`
	// QueriesDir holds the project's query files, checked recursively.
	QueriesDir string `koanf:"queries_dir"`
	// RewritesFile overrides built-in rewrite rules.
	RewritesFile string `koanf:"rewrites_file"`
	// OutputFormat selects the render mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`
	// Workers caps parallel statement classification; 0 means GOMAXPROCS.
	Workers int  `koanf:"workers"`
	Verbose bool `koanf:"verbose"`
}

// DefaultPaths returns the input paths implied by the config when a command
// gets no path arguments: the schema file and the queries directory, when
// set.
func (c *Config) DefaultPaths() []string {
	var paths []string
	if c.SchemaFile != "" {
		paths = append(paths, c.SchemaFile)
	}
	if c.QueriesDir != "" {
		paths = append(paths, c.QueriesDir)
	}
	return paths
}
