package cli

import (
	"orgdir/internal/layout"

	"github.com/spf13/cobra"
)

func newPagesCmd(app *App) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Lay out one page of category cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			cards, err := e.directory.Categories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := layout.Bucket(cards, layout.PageSize, page)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pageTable(res), map[string]any{
				"pageSize":      layout.PageSize,
				"priorityCount": layout.PriorityCount,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	return cmd
}
