package tui

import (
	"context"

	"orgdir/internal/directory"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive directory browser and blocks until it exits.
func Run(ctx context.Context, dir *directory.Directory, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(ctx, dir, opts)
	defer m.close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
