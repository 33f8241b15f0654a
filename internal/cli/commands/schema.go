package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqlport-dev/sqlport/internal/checker"
	"github.com/sqlport-dev/sqlport/internal/cli/output"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/parser"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [file]",
		Short: "Show the tables and columns a DDL file defines",
		Long: `Schema parses a DDL file under the source dialect and prints the
resulting tables with their columns, after applying ALTER TABLE statements.
Without an argument the project's schema_file is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			r := GetRenderer(cmd.Context())

			path := cfg.SchemaFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errNoInputs
			}

			d, ok := dialect.Get(cfg.SourceDialect)
			if !ok {
				return fmt.Errorf("unknown source dialect %q, available: %v", cfg.SourceDialect, dialect.List())
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			results := parser.ParseAll(string(data), d)
			tables := checker.ExtractSchema(results)
			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					r.Warnf("warning: %v\n", res.Err)
				}
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]any{
					"tables":         tables,
					"parse_failures": failed,
				})
			}
			renderSchema(r, tables)
			return nil
		},
	}
}

func renderSchema(r *output.Renderer, tables []checker.TableInfo) {
	if len(tables) == 0 {
		r.Println("(no tables)")
		return
	}
	md := r.EffectiveMode() == output.ModeMarkdown
	for _, ti := range tables {
		if md {
			r.Printf("## %s\n\n", ti.Name)
		} else {
			r.Println(r.Styles().Header.Render(ti.Name))
		}

		t := table.NewWriter()
		t.SetOutputMirror(r.Out())
		if md {
			t.SetStyle(table.StyleDefault)
		} else {
			t.SetStyle(table.StyleLight)
		}
		t.AppendHeader(table.Row{"column", "type", "null", "default"})
		for _, col := range ti.Columns {
			null := "yes"
			if col.NotNull {
				null = "no"
			}
			t.AppendRow(table.Row{col.Name, col.Type, null, col.Default})
		}
		if md {
			t.RenderMarkdown()
		} else {
			t.Render()
		}
		r.Println("")
	}
}
