// Package autocomplete is the suggestion state machine behind the organization field.
//
// The engine never schedules anything itself. Callers that need the blur grace delay (the TUI
// field) wait it out and then call BlurElapsed.
package autocomplete

import (
	"strings"

	"orgdir/internal/model"
)

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 8

type Action int

const (
	ActionNone Action = iota
	// ActionSelect means Value was adopted from an existing catalog entry.
	ActionSelect
	// ActionCreate means Value matched nothing and should become a new entity.
	ActionCreate
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionCreate:
		return "create"
	default:
		return "none"
	}
}

// Result is what a commit asks the caller to do.
type Result struct {
	Action Action
	Value  string
}

type Engine struct {
	query       string
	catalog     []model.DirectoryEntry
	suggestions []model.DirectoryEntry
	active      int
	open        bool
	focused     bool
}

func New(catalog []model.DirectoryEntry) *Engine {
	e := &Engine{}
	e.SetCatalog(catalog)
	return e
}

func (e *Engine) Query() string                       { return e.query }
func (e *Engine) Catalog() []model.DirectoryEntry     { return e.catalog }
func (e *Engine) Suggestions() []model.DirectoryEntry { return e.suggestions }
func (e *Engine) ActiveIndex() int                    { return e.active }
func (e *Engine) IsOpen() bool                        { return e.open }
func (e *Engine) Focused() bool                       { return e.focused }

// Active returns the highlighted suggestion.
func (e *Engine) Active() (model.DirectoryEntry, bool) {
	if e.active < 0 || e.active >= len(e.suggestions) {
		return model.DirectoryEntry{}, false
	}
	return e.suggestions[e.active], true
}

// SetQuery records typed input. Typing implies focus.
func (e *Engine) SetQuery(q string) {
	e.query = q
	e.focused = true
	e.recompute()
	e.open = len(e.suggestions) > 0
}

// SetValue replaces the field value without opening the panel.
func (e *Engine) SetValue(v string) {
	e.query = v
	e.recompute()
	e.open = false
}

// SetCatalog swaps in a rebuilt catalog. The panel only opens while the field has focus.
func (e *Engine) SetCatalog(catalog []model.DirectoryEntry) {
	e.catalog = catalog
	e.recompute()
	e.open = e.focused && len(e.suggestions) > 0
}

func (e *Engine) recompute() {
	e.active = 0
	q := model.NormalizeName(e.query)
	if q == "" {
		e.suggestions = nil
		return
	}
	out := make([]model.DirectoryEntry, 0, MaxSuggestions)
	for _, entry := range e.catalog {
		if strings.Contains(strings.ToLower(entry.DisplayName), q) ||
			strings.Contains(strings.ToLower(entry.GroupTitle), q) {
			out = append(out, entry)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	e.suggestions = out
}

// Advance moves the cursor forward, wrapping to the first suggestion.
func (e *Engine) Advance() {
	if len(e.suggestions) == 0 {
		return
	}
	e.active = (e.active + 1) % len(e.suggestions)
}

// Retreat moves the cursor backward, wrapping to the last suggestion.
func (e *Engine) Retreat() {
	if len(e.suggestions) == 0 {
		return
	}
	e.active = (e.active - 1 + len(e.suggestions)) % len(e.suggestions)
}

// Confirm handles the confirm key. With an open panel the highlighted suggestion is adopted;
// otherwise non-empty input is committed, as a new entity when nothing in the catalog matches.
func (e *Engine) Confirm() Result {
	if e.open && len(e.suggestions) > 0 {
		return e.Select(e.active)
	}
	return e.commitTyped()
}

// Select adopts suggestion i (a click) and closes the panel.
func (e *Engine) Select(i int) Result {
	if i < 0 || i >= len(e.suggestions) {
		return Result{}
	}
	name := e.suggestions[i].DisplayName
	e.SetValue(name)
	return Result{Action: ActionSelect, Value: name}
}

// Dismiss closes the panel and keeps the value.
func (e *Engine) Dismiss() {
	e.open = false
}

// Focus reopens the panel when there is a value with computed suggestions.
func (e *Engine) Focus() {
	e.focused = true
	if strings.TrimSpace(e.query) != "" && len(e.suggestions) > 0 {
		e.open = true
	}
}

// Blur marks the field unfocused. The caller waits out its grace delay, then calls BlurElapsed.
func (e *Engine) Blur() {
	e.focused = false
}

// BlurElapsed closes the panel and reports whether the value should become a new entity.
// It does nothing if the field regained focus during the grace delay.
func (e *Engine) BlurElapsed() Result {
	if e.focused {
		return Result{}
	}
	e.open = false
	v := strings.TrimSpace(e.query)
	if v == "" || e.Matches(v) {
		return Result{}
	}
	return Result{Action: ActionCreate, Value: v}
}

// Matches reports whether name equals a catalog display name, ignoring case and surrounding space.
func (e *Engine) Matches(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

func (e *Engine) lookup(name string) (model.DirectoryEntry, bool) {
	n := model.NormalizeName(name)
	if n == "" {
		return model.DirectoryEntry{}, false
	}
	for _, entry := range e.catalog {
		if model.NormalizeName(entry.DisplayName) == n {
			return entry, true
		}
	}
	return model.DirectoryEntry{}, false
}

func (e *Engine) commitTyped() Result {
	v := strings.TrimSpace(e.query)
	if v == "" {
		return Result{}
	}
	e.open = false
	if entry, ok := e.lookup(v); ok {
		e.SetValue(entry.DisplayName)
		return Result{Action: ActionSelect, Value: entry.DisplayName}
	}
	return Result{Action: ActionCreate, Value: v}
}
