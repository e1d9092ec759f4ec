package cli

import (
	"strconv"

	"orgdir/internal/directory"
	"orgdir/internal/layout"
	"orgdir/internal/model"
)

type entriesTable []model.DirectoryEntry

func (t entriesTable) Header() []string {
	return []string{"id", "name", "group", "count", "custom"}
}

func (t entriesTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		rows = append(rows, []string{e.ID, e.DisplayName, e.GroupTitle, strconv.Itoa(e.OccurrenceCount), yesNo(e.IsUserCreated)})
	}
	return rows
}

type cardsTable []directory.CategoryCard

func (t cardsTable) Header() []string {
	return []string{"id", "title", "color", "mail", "custom"}
}

func (t cardsTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, c := range t {
		rows = append(rows, []string{c.ID, c.Title, c.Color, strconv.Itoa(c.MailCount), yesNo(c.IsUserCreated)})
	}
	return rows
}

// pageTable renders one bucketed page with a slot column.
type pageTable layout.Result[directory.CategoryCard]

func (t pageTable) Header() []string {
	return []string{"slot", "id", "title", "mail"}
}

func (t pageTable) Rows() [][]string {
	var rows [][]string
	for _, c := range t.Priority {
		rows = append(rows, []string{"priority", c.ID, c.Title, strconv.Itoa(c.MailCount)})
	}
	if t.Placeholder == layout.PlaceholderInPriority {
		rows = append(rows, []string{"priority", "", "+ New category", ""})
	}
	for _, c := range t.Compact {
		rows = append(rows, []string{"compact", c.ID, c.Title, strconv.Itoa(c.MailCount)})
	}
	if t.Placeholder == layout.PlaceholderInCompact {
		rows = append(rows, []string{"compact", "", "+ New category", ""})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
