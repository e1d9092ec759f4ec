// Package layout splits a list into fixed-size pages with a detailed "priority" row and a
// compact remainder, and decides where the "add new" placeholder goes.
package layout

import (
	"errors"
	"fmt"
)

const (
	// PageSize is how many entries a page shows.
	PageSize = 9
	// PriorityCount is how many leading entries of a page get the detailed card.
	PriorityCount = 3
)

var (
	ErrInvalidPage = errors.New("page must be >= 1")
	// ErrPlaceholderOnFullPage means the placeholder was requested for a page that is already
	// full. Bucketing refuses rather than dropping an entry to make room.
	ErrPlaceholderOnFullPage = errors.New("placeholder required on a full page")
)

type Placeholder int

const (
	PlaceholderNone Placeholder = iota
	PlaceholderInPriority
	PlaceholderInCompact
)

func (p Placeholder) String() string {
	switch p {
	case PlaceholderInPriority:
		return "priority"
	case PlaceholderInCompact:
		return "compact"
	default:
		return "none"
	}
}

func (p Placeholder) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Result is the layout of one page.
type Result[T any] struct {
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	Visible     []T         `json:"visible"`
	Priority    []T         `json:"priority"`
	Compact     []T         `json:"compact"`
	Placeholder Placeholder `json:"placeholder"`
}

// TotalPages is ceil(n/pageSize), at least 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Bucket lays out page (1-based) of entries.
func Bucket[T any](entries []T, pageSize, page int) (Result[T], error) {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if page < 1 {
		return Result[T]{}, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(entries) {
		start = len(entries)
	}
	if end > len(entries) {
		end = len(entries)
	}
	slice := entries[start:end]

	// Pages 1..lastWithContent hold entries; with no entries there is no such page.
	lastWithContent := 0
	if len(entries) > 0 {
		lastWithContent = TotalPages(len(entries), pageSize)
	}
	needed := page > lastWithContent || (page == lastWithContent && len(slice) < pageSize)

	res, err := split(slice, pageSize, needed)
	if err != nil {
		return Result[T]{}, fmt.Errorf("page %d of %d: %w", page, len(entries), err)
	}
	res.Page = page
	res.TotalPages = TotalPages(len(entries), pageSize)
	return res, nil
}

func split[T any](slice []T, pageSize int, placeholder bool) (Result[T], error) {
	res := Result[T]{
		Visible:  clone(slice),
		Priority: []T{},
		Compact:  []T{},
	}
	if !placeholder {
		n := min(PriorityCount, len(slice))
		res.Priority = clone(slice[:n])
		res.Compact = clone(slice[n:])
		return res, nil
	}
	switch {
	case len(slice) < PriorityCount:
		res.Priority = clone(slice)
		res.Placeholder = PlaceholderInPriority
	case len(slice) < pageSize:
		res.Priority = clone(slice[:PriorityCount])
		res.Compact = clone(slice[PriorityCount:])
		res.Placeholder = PlaceholderInCompact
	default:
		return Result[T]{}, ErrPlaceholderOnFullPage
	}
	return res, nil
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
