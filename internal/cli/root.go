package cli

import (
	"fmt"
	"os"
	"strings"

	"orgdir/internal/format"
	"orgdir/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	PrettyJSON bool
	Format     string

	env *env
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "orgdir",
		Short:        "Organization and category directory (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  orgdir

  # Scriptable commands
  orgdir orgs list
  orgdir categories add "Senior Living"

  # What the organization field would suggest
  orgdir suggest "city hosp"

  # Category cards on page 2
  orgdir pages --page 2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		app.close()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("ORGDIR_CONFIG", ""), "Path to config.yaml (default: $ORGDIR_CONFIG_DIR/config.yaml or ~/.orgdir/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to store dir (overrides store.dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (file|sqlite|memory; overrides store.backend)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ORGDIR_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newOrgsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newSuggestCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	e, err := openEnv(cmd.Context(), app, true)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), e.directory, tui.Options{
		Grace:  e.cfg.UI.Grace,
		Settle: e.cfg.UI.Settle,
	})
}

func (app *App) close() {
	if app.env != nil {
		app.env.Close()
		app.env = nil
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, data any, meta map[string]any) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: data, Meta: meta}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
