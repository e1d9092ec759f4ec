package cli

import (
	"strings"

	"orgdir/internal/directory"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "Category commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesAddCmd(app))
	cmd.AddCommand(newCategoriesRmCmd(app))
	cmd.AddCommand(newCategoriesExistsCmd(app))
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom categories with mail counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			cards, err := e.directory.Categories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cardsTable(cards), map[string]any{"count": len(cards)})
		},
	}
	return cmd
}

func newCategoriesAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a custom category (returns the existing one on a title or id match)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := e.directory.AddCustomCategory(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, rec, nil)
		},
	}
	return cmd
}

func newCategoriesRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if directory.IsBuiltinCategory(id) {
				return writeErr(cmd, builtinCategoryError{id: id})
			}
			removed, err := e.directory.RemoveCustomCategory(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !removed {
				return writeErr(cmd, errNotFound("category", id))
			}
			return writeOut(cmd, app, map[string]any{"id": id, "removed": true}, nil)
		},
	}
	return cmd
}

func newCategoriesExistsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <id>",
		Short: "Report whether a category id is known",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, e.directory.CategoryExists(cmd.Context(), args[0]), nil)
		},
	}
	return cmd
}
