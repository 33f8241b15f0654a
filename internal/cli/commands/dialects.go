package commands

import (
	"github.com/spf13/cobra"

	"github.com/sqlport-dev/sqlport/internal/cli/output"
	"github.com/sqlport-dev/sqlport/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported SQL dialects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := GetRenderer(cmd.Context())
			names := dialect.List()
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string][]string{"dialects": names})
			}
			for _, name := range names {
				r.Println(name)
			}
			return nil
		},
	}
}
