package tui

import "github.com/charmbracelet/bubbles/key"

type fieldKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Dismiss key.Binding
}

func defaultFieldKeys() fieldKeyMap {
	return fieldKeyMap{
		Next:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Prev:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

type appKeyMap struct {
	Quit      key.Binding
	SwitchPan key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Open      key.Binding
	Reload    key.Binding
	Help      key.Binding
}

func defaultAppKeys() appKeyMap {
	return appKeyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		SwitchPan: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "select card")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		PrevPage:  key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("[/]", "page")),
		NextPage:  key.NewBinding(key.WithKeys("pgdown", "]")),
		MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H/L", "move card")),
		MoveRight: key.NewBinding(key.WithKeys("shift+right", "L")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add category")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
