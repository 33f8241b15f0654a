// Package commands implements the sqlport subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sqlport-dev/sqlport/internal/cli/config"
	"github.com/sqlport-dev/sqlport/internal/cli/output"
)

// errNoInputs is returned when neither arguments nor the project config
// name any SQL inputs.
var errNoInputs = errors.New("no input files: pass paths or set schema_file/queries_dir in sqlport.yaml")

// ConfigKey stores the loaded config in the command context.
type ConfigKey struct{}

// RendererKey stores the output renderer in the command context.
type RendererKey struct{}

// ExitError carries a specific process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		SourceDialect: config.DefaultSourceDialect,
		OutputFormat:  config.DefaultOutput,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(RendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}
