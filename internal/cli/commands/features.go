package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqlport-dev/sqlport/internal/cli/output"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/feature"
)

// NewFeaturesCommand creates the features command.
func NewFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Show the capability matrix for every tracked feature",
		Long: `Features prints each dialect-specific construct sqlport tracks and its
verdict on every dialect: supported, supported with a rewrite, or
unsupported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := GetRenderer(cmd.Context())
			targets := dialect.List()
			m := feature.NewMatrix(targets)
			if err := m.Validate(); err != nil {
				return err
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(matrixDoc(m, targets))
			}

			t := table.NewWriter()
			t.SetOutputMirror(r.Out())
			t.SetStyle(table.StyleLight)
			header := table.Row{"feature"}
			for _, target := range targets {
				header = append(header, target)
			}
			t.AppendHeader(header)
			for _, tag := range feature.All() {
				row := table.Row{tag.String()}
				for _, target := range targets {
					c, err := m.Lookup(tag, target)
					if err != nil {
						return err
					}
					row = append(row, verdictCell(r, c))
				}
				t.AppendRow(row)
			}
			if r.EffectiveMode() == output.ModeMarkdown {
				t.RenderMarkdown()
			} else {
				t.Render()
			}
			return nil
		},
	}
}

func verdictCell(r *output.Renderer, c feature.Capability) string {
	switch c.Verdict {
	case feature.Supported:
		return r.Styles().Success.Render("yes")
	case feature.SupportedWithRewrite:
		return r.Styles().Warning.Render("rewrite")
	default:
		return r.Styles().Error.Render("no")
	}
}

type matrixCell struct {
	Target  string          `json:"target"`
	Verdict feature.Verdict `json:"verdict"`
	Rewrite string          `json:"rewrite,omitempty"`
}

type matrixRowDoc struct {
	Feature string       `json:"feature"`
	Cells   []matrixCell `json:"cells"`
}

func matrixDoc(m *feature.CapabilityMatrix, targets []string) []matrixRowDoc {
	var rows []matrixRowDoc
	for _, tag := range feature.All() {
		row := matrixRowDoc{Feature: tag.String()}
		for _, target := range targets {
			c, err := m.Lookup(tag, target)
			if err != nil {
				continue
			}
			row.Cells = append(row.Cells, matrixCell{
				Target:  target,
				Verdict: c.Verdict,
				Rewrite: c.Rewrite,
			})
		}
		rows = append(rows, row)
	}
	return rows
}
