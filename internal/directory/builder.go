// Package directory merges corpus-derived and user-created entities into sorted catalogs and
// exposes the category/organization lookups the rest of orgdir consumes.
package directory

import (
	"sort"
	"strings"

	"orgdir/internal/model"
)

// DefaultSelf is the organization value that stands for the directory owner.
const DefaultSelf = "self"

type BuildOptions struct {
	// Self is skipped during corpus aggregation (case-insensitive).
	Self string
	// GroupTitle resolves a group key to its label. Nil uses the built-in categories.
	GroupTitle func(key string) string
}

// Build aggregates organization references from records, merges the user-created records on top
// and returns the catalog sorted by group title, occurrence count (desc), then display name.
// It is a pure function of its inputs; callers rebuild instead of patching a previous result.
func Build(records []model.MailRecord, custom []model.Record, opts BuildOptions) []model.DirectoryEntry {
	titleFor := opts.GroupTitle
	if titleFor == nil {
		titleFor = builtinTitle
	}
	self := model.NormalizeName(opts.Self)

	type agg struct {
		name     string
		groupKey string
		count    int
	}
	byName := map[string]*agg{}
	order := []string{}
	for _, r := range records {
		if r.Organization == nil {
			continue
		}
		name := strings.TrimSpace(*r.Organization)
		if name == "" {
			continue
		}
		if self != "" && model.NormalizeName(name) == self {
			continue
		}
		if a := byName[name]; a != nil {
			a.count++
			continue
		}
		byName[name] = &agg{name: name, groupKey: strings.TrimSpace(r.Category), count: 1}
		order = append(order, name)
	}

	userNames := map[string]bool{}
	userIDs := map[string]bool{}
	out := make([]model.DirectoryEntry, 0, len(order)+len(custom))
	for _, rec := range custom {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			id = name
		}
		if userIDs[id] {
			continue
		}
		userIDs[id] = true
		userNames[model.NormalizeName(name)] = true

		key, title := resolveGroup(rec.GroupKey, titleFor)
		if strings.TrimSpace(rec.GroupTitle) != "" && strings.TrimSpace(rec.GroupKey) != "" {
			title = strings.TrimSpace(rec.GroupTitle)
		}
		out = append(out, model.DirectoryEntry{
			ID:              id,
			DisplayName:     name,
			GroupKey:        key,
			GroupTitle:      title,
			OccurrenceCount: 1,
			IsUserCreated:   true,
		})
	}

	for _, name := range order {
		a := byName[name]
		if userNames[model.NormalizeName(a.name)] || userIDs[a.name] {
			continue
		}
		key, title := resolveGroup(a.groupKey, titleFor)
		out = append(out, model.DirectoryEntry{
			ID:              a.name,
			DisplayName:     a.name,
			GroupKey:        key,
			GroupTitle:      title,
			OccurrenceCount: a.count,
		})
	}

	SortEntries(out)
	return out
}

// SortEntries orders a catalog in place.
func SortEntries(entries []model.DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return compareEntries(entries[i], entries[j]) < 0
	})
}

func compareEntries(a, b model.DirectoryEntry) int {
	if a.GroupTitle != b.GroupTitle {
		if a.GroupTitle < b.GroupTitle {
			return -1
		}
		return 1
	}
	if a.OccurrenceCount != b.OccurrenceCount {
		if a.OccurrenceCount > b.OccurrenceCount {
			return -1
		}
		return 1
	}
	if a.DisplayName != b.DisplayName {
		if a.DisplayName < b.DisplayName {
			return -1
		}
		return 1
	}
	// Total order: ids are unique within a catalog.
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}

// resolveGroup maps an empty key to the fallback group and looks up the title otherwise.
// Unknown keys keep their own key as the title so they still group together.
func resolveGroup(key string, titleFor func(string) string) (string, string) {
	key = strings.TrimSpace(key)
	if key == "" || key == model.FallbackGroupKey {
		return model.FallbackGroupKey, model.FallbackGroupTitle
	}
	if title := strings.TrimSpace(titleFor(key)); title != "" {
		return key, title
	}
	return key, key
}
