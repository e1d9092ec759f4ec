package directory

import (
	"context"
	"fmt"
	"strings"

	"orgdir/internal/corpus"
	"orgdir/internal/model"
	"orgdir/internal/store"

	"go.uber.org/zap"
)

// Directory is the consumer-facing view over the custom collections and the corpus.
// It holds no cached catalog; every call reads the store and rebuilds.
type Directory struct {
	categories    *store.Collection
	organizations *store.Collection
	corpus        corpus.Source
	self          string
	log           *zap.Logger
}

type Opts struct {
	Categories    *store.Collection
	Organizations *store.Collection
	Corpus        corpus.Source
	// Self defaults to DefaultSelf.
	Self   string
	Logger *zap.Logger
}

func New(opts Opts) *Directory {
	src := opts.Corpus
	if src == nil {
		src = corpus.Static(nil)
	}
	self := strings.TrimSpace(opts.Self)
	if self == "" {
		self = DefaultSelf
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{
		categories:    opts.Categories,
		organizations: opts.Organizations,
		corpus:        src,
		self:          self,
		log:           log,
	}
}

// CategoryCard is one category as laid out on the categories pages.
type CategoryCard struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Color         string `json:"color"`
	BgColor       string `json:"bgColor"`
	MailCount     int    `json:"mailCount"`
	IsUserCreated bool   `json:"isUserCreated"`
}

// GetAllCategories returns built-in and custom categories keyed by id.
func (d *Directory) GetAllCategories(ctx context.Context) map[string]CategoryInfo {
	out := make(map[string]CategoryInfo, len(builtinCategories))
	for _, c := range builtinCategories {
		out[c.ID] = c.CategoryInfo
	}
	for _, r := range d.categories.Read(ctx) {
		if _, ok := out[r.ID]; ok {
			continue
		}
		out[r.ID] = CategoryInfo{Title: r.Name, Color: r.Color, BgColor: r.BgColor}
	}
	return out
}

// CategoryExists reports whether id names a built-in or custom category.
func (d *Directory) CategoryExists(ctx context.Context, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	if _, ok := builtinByID(id); ok {
		return true
	}
	_, ok := d.categories.Find(ctx, id)
	return ok
}

// AddCustomCategory creates a category from title, or returns the existing one with the same
// name or id. Built-in categories are returned as records rather than duplicated.
func (d *Directory) AddCustomCategory(ctx context.Context, title string) (model.Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Record{}, store.ErrEmptyName
	}
	id := Slugify(title)
	if b, ok := builtinByTitle(title); ok {
		return builtinRecord(b), nil
	}
	if b, ok := builtinByID(id); ok {
		return builtinRecord(b), nil
	}
	sw := SwatchFor(title)
	rec, err := d.categories.AddOne(ctx, model.Record{
		ID:         id,
		Name:       title,
		GroupKey:   CustomGroupKey,
		GroupTitle: "Custom",
		Color:      sw.Color,
		BgColor:    sw.BgColor,
	})
	if err != nil {
		return model.Record{}, fmt.Errorf("add category: %w", err)
	}
	return rec, nil
}

// RemoveCustomCategory deletes a custom category. Built-ins cannot be removed.
func (d *Directory) RemoveCustomCategory(ctx context.Context, id string) (bool, error) {
	return d.categories.Remove(ctx, id)
}

// GetAllOrganizations builds the organization catalog from the corpus and custom organizations.
func (d *Directory) GetAllOrganizations(ctx context.Context) ([]model.DirectoryEntry, error) {
	records, err := d.corpus.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	cats := d.GetAllCategories(ctx)
	catalog := Build(records, d.organizations.Read(ctx), BuildOptions{
		Self: d.self,
		GroupTitle: func(key string) string {
			return cats[key].Title
		},
	})
	d.log.Debug("organization catalog built", zap.Int("entries", len(catalog)), zap.Int("records", len(records)))
	return catalog, nil
}

// AddCustomOrganization persists a user-created organization under the fallback group.
// An organization with the same normalized name is returned unchanged.
func (d *Directory) AddCustomOrganization(ctx context.Context, name string) (model.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Record{}, store.ErrEmptyName
	}
	rec, err := d.organizations.AddOne(ctx, model.Record{
		ID:         name,
		Name:       name,
		GroupKey:   model.FallbackGroupKey,
		GroupTitle: model.FallbackGroupTitle,
	})
	if err != nil {
		return model.Record{}, fmt.Errorf("add organization: %w", err)
	}
	return rec, nil
}

// RemoveCustomOrganization deletes a user-created organization. Corpus-derived organizations
// come back on the next build as long as the corpus references them.
func (d *Directory) RemoveCustomOrganization(ctx context.Context, id string) (bool, error) {
	return d.organizations.Remove(ctx, id)
}

// Categories lists category cards: built-ins in their fixed order, then custom categories in
// creation order, each with the number of corpus records filed under it.
func (d *Directory) Categories(ctx context.Context) ([]CategoryCard, error) {
	records, err := d.corpus.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	counts := map[string]int{}
	for _, r := range records {
		key := strings.TrimSpace(r.Category)
		if key == "" {
			key = model.FallbackGroupKey
		}
		counts[key]++
	}

	out := make([]CategoryCard, 0, len(builtinCategories))
	seen := map[string]bool{}
	for _, c := range builtinCategories {
		seen[c.ID] = true
		out = append(out, CategoryCard{
			ID:        c.ID,
			Title:     c.Title,
			Color:     c.Color,
			BgColor:   c.BgColor,
			MailCount: counts[c.ID],
		})
	}
	for _, r := range d.categories.Read(ctx) {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, CategoryCard{
			ID:            r.ID,
			Title:         r.Name,
			Color:         r.Color,
			BgColor:       r.BgColor,
			MailCount:     counts[r.ID],
			IsUserCreated: true,
		})
	}
	return out, nil
}

// Watch calls onChange after any write to either custom collection. The returned func detaches.
func (d *Directory) Watch(onChange func()) func() {
	if onChange == nil {
		return func() {}
	}
	listener := func([]model.Record) { onChange() }
	stopCats := d.categories.Subscribe(listener)
	stopOrgs := d.organizations.Subscribe(listener)
	return func() {
		stopCats()
		stopOrgs()
	}
}

func builtinRecord(b builtinCategory) model.Record {
	return model.Record{
		ID:      b.ID,
		Name:    b.Title,
		Color:   b.Color,
		BgColor: b.BgColor,
	}
}
