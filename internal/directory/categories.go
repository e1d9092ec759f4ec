package directory

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"orgdir/internal/model"
)

// CategoryInfo is the presentation form of a category.
type CategoryInfo struct {
	Title   string `json:"title"`
	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
}

// CustomGroupKey tags user-created categories.
const CustomGroupKey = "custom"

type builtinCategory struct {
	ID string
	CategoryInfo
}

// Built-in mail categories, in display order. The fallback group is always last.
var builtinCategories = []builtinCategory{
	{ID: "personal", CategoryInfo: CategoryInfo{Title: "Personal", Color: "#1d4ed8", BgColor: "#dbeafe"}},
	{ID: "work", CategoryInfo: CategoryInfo{Title: "Work", Color: "#7c3aed", BgColor: "#ede9fe"}},
	{ID: "finance", CategoryInfo: CategoryInfo{Title: "Finance", Color: "#047857", BgColor: "#d1fae5"}},
	{ID: "receipts", CategoryInfo: CategoryInfo{Title: "Receipts", Color: "#b45309", BgColor: "#fef3c7"}},
	{ID: "travel", CategoryInfo: CategoryInfo{Title: "Travel", Color: "#0e7490", BgColor: "#cffafe"}},
	{ID: "healthcare", CategoryInfo: CategoryInfo{Title: "Healthcare", Color: "#be123c", BgColor: "#ffe4e6"}},
	{ID: "newsletters", CategoryInfo: CategoryInfo{Title: "Newsletters", Color: "#4338ca", BgColor: "#e0e7ff"}},
	{ID: "promotions", CategoryInfo: CategoryInfo{Title: "Promotions", Color: "#c2410c", BgColor: "#ffedd5"}},
	{ID: model.FallbackGroupKey, CategoryInfo: CategoryInfo{Title: model.FallbackGroupTitle, Color: "#374151", BgColor: "#f3f4f6"}},
}

func builtinByID(id string) (builtinCategory, bool) {
	for _, c := range builtinCategories {
		if c.ID == id {
			return c, true
		}
	}
	return builtinCategory{}, false
}

// IsBuiltinCategory reports whether id is one of the fixed categories.
func IsBuiltinCategory(id string) bool {
	_, ok := builtinByID(id)
	return ok
}

func builtinByTitle(title string) (builtinCategory, bool) {
	for _, c := range builtinCategories {
		if model.SameName(c.Title, title) {
			return c, true
		}
	}
	return builtinCategory{}, false
}

func builtinTitle(id string) string {
	if c, ok := builtinByID(id); ok {
		return c.Title
	}
	return ""
}

// Swatch is one palette entry.
type Swatch struct {
	Color   string
	BgColor string
}

var palette = []Swatch{
	{Color: "#9d174d", BgColor: "#fce7f3"},
	{Color: "#1e40af", BgColor: "#dbeafe"},
	{Color: "#166534", BgColor: "#dcfce7"},
	{Color: "#854d0e", BgColor: "#fef9c3"},
	{Color: "#6b21a8", BgColor: "#f3e8ff"},
	{Color: "#155e75", BgColor: "#cffafe"},
	{Color: "#9a3412", BgColor: "#ffedd5"},
	{Color: "#3f6212", BgColor: "#ecfccb"},
}

// SwatchFor picks a palette entry from the normalized name, so the same name always gets
// the same colors.
func SwatchFor(name string) Swatch {
	h := fnv.New32a()
	_, _ = h.Write([]byte(model.NormalizeName(name)))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Slugify derives a category id from its title: lower-case ASCII letters and digits joined by
// single dashes. Titles with no ASCII letters or digits get a hashed id.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		// Non-ASCII titles still need distinct ids.
		h := fnv.New32a()
		_, _ = h.Write([]byte(model.NormalizeName(title)))
		return fmt.Sprintf("category-%08x", h.Sum32())
	}
	return s
}
