package cli

import (
	"orgdir/internal/autocomplete"

	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show what the organization field suggests for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			catalog, err := e.directory.GetAllOrganizations(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			engine := autocomplete.New(catalog)
			engine.SetQuery(args[0])
			suggestions := entriesTable(engine.Suggestions())
			if suggestions == nil {
				suggestions = entriesTable{}
			}
			return writeOut(cmd, app, suggestions, map[string]any{
				"query":   args[0],
				"limit":   autocomplete.MaxSuggestions,
				"matches": engine.Matches(args[0]),
			})
		},
	}
	return cmd
}
