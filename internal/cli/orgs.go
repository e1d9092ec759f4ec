package cli

import (
	"github.com/spf13/cobra"
)

func newOrgsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations"},
		Short:   "Organization commands",
	}
	cmd.AddCommand(newOrgsListCmd(app))
	cmd.AddCommand(newOrgsAddCmd(app))
	cmd.AddCommand(newOrgsRmCmd(app))
	return cmd
}

func newOrgsListCmd(app *App) *cobra.Command {
	var customOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the organization catalog (corpus and custom, sorted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			catalog, err := e.directory.GetAllOrganizations(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if customOnly {
				out := catalog[:0]
				for _, entry := range catalog {
					if entry.IsUserCreated {
						out = append(out, entry)
					}
				}
				catalog = out
			}
			return writeOut(cmd, app, entriesTable(catalog), map[string]any{"count": len(catalog)})
		},
	}

	cmd.Flags().BoolVar(&customOnly, "custom", false, "Only user-created organizations")
	return cmd
}

func newOrgsAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom organization (returns the existing one on a name match)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := e.directory.AddCustomOrganization(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, rec, nil)
		},
	}
	return cmd
}

func newOrgsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a custom organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, err := e.directory.RemoveCustomOrganization(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !removed {
				return writeErr(cmd, errNotFound("organization", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"id": args[0], "removed": true}, nil)
		},
	}
	return cmd
}
