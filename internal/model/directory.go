package model

import (
	"strings"
	"time"
)

// Record is one element of a persisted collection (custom categories or custom organizations).
type Record struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	GroupKey   string    `json:"groupKey,omitempty"`
	GroupTitle string    `json:"groupTitle,omitempty"`
	Color      string    `json:"color,omitempty"`
	BgColor    string    `json:"bgColor,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DirectoryEntry is one row of a catalog.
type DirectoryEntry struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	GroupKey        string `json:"groupKey"`
	GroupTitle      string `json:"groupTitle"`
	OccurrenceCount int    `json:"occurrenceCount"`
	IsUserCreated   bool   `json:"isUserCreated"`
}

// MailRecord is a single analyzed email from the corpus.
type MailRecord struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject,omitempty"`
	From         string    `json:"from,omitempty"`
	ReceivedAt   time.Time `json:"receivedAt,omitempty"`
	Category     string    `json:"category,omitempty"`
	Organization *string   `json:"organization,omitempty"`
}

const (
	FallbackGroupKey   = "uncategorized"
	FallbackGroupTitle = "Other"
)

// NormalizeName is the comparison form of a display name: trimmed and lower-cased.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameName reports whether two display names refer to the same entity.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
