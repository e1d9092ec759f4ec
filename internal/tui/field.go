package tui

import (
	"strings"
	"time"

	"orgdir/internal/autocomplete"
	"orgdir/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CreateFunc turns an unmatched commit into a command that persists the new entity.
type CreateFunc func(name string) tea.Cmd

// blurGraceMsg fires after the blur grace delay. Stale seqs are ignored.
type blurGraceMsg struct {
	field string
	seq   int
}

// settleDoneMsg ends the post-selection window in which blur handling is suppressed.
type settleDoneMsg struct {
	field string
	seq   int
}

// FieldCommittedMsg reports a committed field value to the parent model.
type FieldCommittedMsg struct {
	Field  string
	Result autocomplete.Result
}

// Field is a text input with catalog suggestions and commit-on-blur creation.
type Field struct {
	name   string
	input  textinput.Model
	engine *autocomplete.Engine
	keys   fieldKeyMap
	create CreateFunc

	grace  time.Duration
	settle time.Duration

	// Generation counters: scheduling a new timer of a kind supersedes the pending one.
	blurSeq   int
	settleSeq int
	settling  bool
	closed    bool
}

type FieldOpts struct {
	Name        string
	Placeholder string
	Catalog     []model.DirectoryEntry
	Create      CreateFunc
	Grace       time.Duration
	Settle      time.Duration
}

func NewField(opts FieldOpts) Field {
	in := textinput.New()
	in.Placeholder = opts.Placeholder
	in.CharLimit = 200
	in.Width = 40
	in.Prompt = glyphCursor() + " "

	grace := opts.Grace
	if grace <= 0 {
		grace = 150 * time.Millisecond
	}
	settle := opts.Settle
	if settle <= 0 {
		settle = 50 * time.Millisecond
	}
	return Field{
		name:   opts.Name,
		input:  in,
		engine: autocomplete.New(opts.Catalog),
		keys:   defaultFieldKeys(),
		create: opts.Create,
		grace:  grace,
		settle: settle,
	}
}

func (f Field) Value() string                       { return f.input.Value() }
func (f Field) Focused() bool                       { return f.input.Focused() }
func (f Field) Engine() *autocomplete.Engine        { return f.engine }
func (f Field) Suggestions() []model.DirectoryEntry { return f.engine.Suggestions() }

// SetCatalog swaps in a rebuilt catalog.
func (f *Field) SetCatalog(entries []model.DirectoryEntry) {
	f.engine.SetCatalog(entries)
}

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd {
	if f.closed {
		return nil
	}
	f.engine.Focus()
	return f.input.Focus()
}

// Blur removes focus and schedules the unmatched-value check after the grace delay.
func (f *Field) Blur() tea.Cmd {
	if f.closed {
		return nil
	}
	f.input.Blur()
	f.engine.Blur()
	f.blurSeq++
	seq, name := f.blurSeq, f.name
	return tea.Tick(f.grace, func(time.Time) tea.Msg { return blurGraceMsg{field: name, seq: seq} })
}

// Click selects suggestion i, as a pointer selection would.
func (f *Field) Click(i int) tea.Cmd {
	if f.closed {
		return nil
	}
	return f.commit(f.engine.Select(i))
}

// Close invalidates every pending timer. Messages that arrive afterwards are ignored.
func (f *Field) Close() {
	f.closed = true
	f.blurSeq++
	f.settleSeq++
	f.settling = false
}

func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.closed {
		return f, nil
	}
	switch msg := msg.(type) {
	case blurGraceMsg:
		if msg.field != f.name || msg.seq != f.blurSeq || f.settling {
			return f, nil
		}
		return f, f.commit(f.engine.BlurElapsed())

	case settleDoneMsg:
		if msg.field == f.name && msg.seq == f.settleSeq {
			f.settling = false
		}
		return f, nil

	case tea.KeyMsg:
		if !f.input.Focused() {
			return f, nil
		}
		switch {
		case key.Matches(msg, f.keys.Next):
			f.engine.Advance()
			return f, nil
		case key.Matches(msg, f.keys.Prev):
			f.engine.Retreat()
			return f, nil
		case key.Matches(msg, f.keys.Confirm):
			return f, f.commit(f.engine.Confirm())
		case key.Matches(msg, f.keys.Dismiss):
			f.engine.Dismiss()
			return f, nil
		}

		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() != before {
			f.engine.SetQuery(f.input.Value())
		}
		return f, cmd
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *Field) commit(res autocomplete.Result) tea.Cmd {
	switch res.Action {
	case autocomplete.ActionSelect:
		f.input.SetValue(res.Value)
		f.input.CursorEnd()
		f.settling = true
		f.settleSeq++
		seq, name := f.settleSeq, f.name
		settle := tea.Tick(f.settle, func(time.Time) tea.Msg { return settleDoneMsg{field: name, seq: seq} })
		return tea.Batch(settle, f.committed(res))
	case autocomplete.ActionCreate:
		cmds := []tea.Cmd{f.committed(res)}
		if f.create != nil && strings.TrimSpace(res.Value) != "" {
			cmds = append(cmds, f.create(res.Value))
		}
		return tea.Batch(cmds...)
	default:
		return nil
	}
}

func (f Field) committed(res autocomplete.Result) tea.Cmd {
	name := f.name
	return func() tea.Msg { return FieldCommittedMsg{Field: name, Result: res} }
}

var (
	suggestionStyle       = lipgloss.NewStyle().PaddingLeft(2)
	activeSuggestionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	suggestionGroupStyle  = lipgloss.NewStyle().Faint(true)
)

func (f Field) View() string {
	var b strings.Builder
	b.WriteString(f.input.View())
	if !f.engine.IsOpen() {
		return b.String()
	}
	for i, s := range f.engine.Suggestions() {
		b.WriteString("\n")
		line := s.DisplayName + "  " + suggestionGroupStyle.Render(s.GroupTitle)
		if i == f.engine.ActiveIndex() {
			b.WriteString(activeSuggestionStyle.Render(glyphCursor() + " " + line))
			continue
		}
		b.WriteString(suggestionStyle.Render(line))
	}
	return b.String()
}
