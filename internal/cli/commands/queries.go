package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqlport-dev/sqlport/internal/checker"
	"github.com/sqlport-dev/sqlport/internal/cli/output"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
)

// queriesJSONFile is one file's block in the queries JSON document.
type queriesJSONFile struct {
	Path    string              `json:"path"`
	Queries []checker.QueryInfo `json:"queries"`
}

// NewQueriesCommand creates the queries command.
func NewQueriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "queries [paths...]",
		Short: "Summarize the statements in query files",
		Long: `Queries scans SQL files under the source dialect and summarizes each
statement: its kind, the main table it touches, its parameter markers, and
the columns a SELECT returns. Statements named with a leading "-- name:"
comment keep that name. Without arguments the project's queries_dir is
scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			r := GetRenderer(cmd.Context())

			paths := args
			if len(paths) == 0 && cfg.QueriesDir != "" {
				paths = []string{cfg.QueriesDir}
			}
			if len(paths) == 0 {
				return errNoInputs
			}

			d, ok := dialect.Get(cfg.SourceDialect)
			if !ok {
				return fmt.Errorf("unknown source dialect %q, available: %v", cfg.SourceDialect, dialect.List())
			}

			files, err := checker.CollectSQLFiles(paths)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errNoInputs
			}

			var doc []queriesJSONFile
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					r.Warnf("warning: %v\n", err)
					continue
				}
				doc = append(doc, queriesJSONFile{
					Path:    path,
					Queries: checker.AnalyzeQueries(string(data), d),
				})
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]any{"files": doc})
			}
			for _, f := range doc {
				renderQueries(r, f)
			}
			return nil
		},
	}
}

func renderQueries(r *output.Renderer, f queriesJSONFile) {
	md := r.EffectiveMode() == output.ModeMarkdown
	if md {
		r.Printf("## %s\n\n", f.Path)
	} else {
		r.Println(r.Styles().Header.Render(f.Path))
	}
	if len(f.Queries) == 0 {
		r.Println("(no statements)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	if md {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"name", "kind", "table", "params", "returns"})
	for _, q := range f.Queries {
		t.AppendRow(table.Row{
			q.Name, q.Kind, q.Table,
			strings.Join(q.Params, ", "),
			outputNames(q.Outputs),
		})
	}
	if md {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	r.Println("")
}

func outputNames(outputs []checker.QueryOutput) string {
	names := make([]string, 0, len(outputs))
	for _, o := range outputs {
		if o.Table != "" {
			names = append(names, o.Table+"."+o.Name)
			continue
		}
		names = append(names, o.Name)
	}
	return strings.Join(names, ", ")
}
