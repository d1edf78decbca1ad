package model

import (
	"fmt"
	"strings"
)

// SortBy selects the key the link view is ordered by.
type SortBy string

const (
	SortByDate      SortBy = "date"
	SortByTitle     SortBy = "title"
	SortByURL       SortBy = "url"
	SortByFavorites SortBy = "favorites"
	SortByCustom    SortBy = "custom"
)

// SortOrder is the direction applied to the sort comparison.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortKeys lists every SortBy in the order the UI cycles through them.
var SortKeys = []SortBy{SortByDate, SortByTitle, SortByURL, SortByFavorites, SortByCustom}

// ParseSortBy parses a sort key name. An empty string yields SortByDate.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByDate:
		return SortByDate, nil
	case SortByTitle:
		return SortByTitle, nil
	case SortByURL:
		return SortByURL, nil
	case SortByFavorites:
		return SortByFavorites, nil
	case SortByCustom:
		return SortByCustom, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseSortOrder parses asc or desc. An empty string yields SortDesc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortDesc:
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Next returns the sort key after s in SortKeys, wrapping around.
func (s SortBy) Next() SortBy {
	for i, k := range SortKeys {
		if k == s {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortByDate
}

// Flip returns the opposite direction.
func (o SortOrder) Flip() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}
