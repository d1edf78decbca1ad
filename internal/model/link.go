package model

import (
	"slices"
	"strings"
	"time"
)

// Link represents a saved bookmark with metadata.
type Link struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	Description string    `json:"description,omitempty"`
	Domain      string    `json:"domain,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	IsFavorite  bool      `json:"isFavorite"`
	CustomOrder *int64    `json:"customOrder,omitempty"`
}

// Clone returns a deep copy of the link.
func (l *Link) Clone() *Link {
	c := *l
	c.Tags = slices.Clone(l.Tags)
	if l.CustomOrder != nil {
		order := *l.CustomOrder
		c.CustomOrder = &order
	}
	return &c
}

// HasTag reports whether the link carries the tag name exactly.
func (l *Link) HasTag(name string) bool {
	return slices.Contains(l.Tags, name)
}

// HasAllTags reports whether the link carries every one of names.
func (l *Link) HasAllTags(names []string) bool {
	for _, name := range names {
		if !l.HasTag(name) {
			return false
		}
	}
	return true
}

// Order returns the custom order, treating an absent value as 0.
func (l *Link) Order() int64 {
	if l.CustomOrder == nil {
		return 0
	}
	return *l.CustomOrder
}

// LinkForm is the user-supplied data for creating or editing a link.
type LinkForm struct {
	Title       string   `json:"title" validate:"max=1024"`
	URL         string   `json:"url" validate:"required,notblank,weburl"`
	Tags        []string `json:"tags" validate:"dive,notblank"`
	Description string   `json:"description"`
}

// Validate checks the form before it is handed to the link store.
func (f *LinkForm) Validate() error {
	return Validate(f)
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries. Order and duplicates are preserved.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, tag := range parts {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			result = append(result, tag)
		}
	}
	return result
}
