package linkstore

import (
	"slices"
	"strings"

	"github.com/bunchhieng/linkvault/internal/model"
)

// View returns the links matching the current filters in display order.
// The returned links are copies.
func (s *Store) View() []*model.Link {
	return cloneLinks(Recompute(s.links, s.filters))
}

// TagsWithCounts returns every tag with the number of links carrying it.
func (s *Store) TagsWithCounts() []model.TagCount {
	return CountTags(s.tags, s.links)
}

// Links returns copies of all links in collection order.
func (s *Store) Links() []*model.Link {
	return cloneLinks(s.links)
}

// Tags returns all tags in creation order.
func (s *Store) Tags() []model.Tag {
	return slices.Clone(s.tags)
}

// Link returns a copy of link id.
func (s *Store) Link(id string) (*model.Link, bool) {
	link := s.find(id)
	if link == nil {
		return nil, false
	}
	return link.Clone(), true
}

// TagByName returns the tag with the given name.
func (s *Store) TagByName(name string) (model.Tag, bool) {
	if i := s.tagIndex(name); i >= 0 {
		return s.tags[i], true
	}
	return model.Tag{}, false
}

// Filters returns the current filter state.
func (s *Store) Filters() Filters {
	f := s.filters
	f.SelectedTags = slices.Clone(f.SelectedTags)
	return f
}

// SetSearchQuery sets the free-text filter.
func (s *Store) SetSearchQuery(q string) {
	s.filters.Query = q
}

// SetSortBy sets the sort key.
func (s *Store) SetSortBy(by model.SortBy) {
	s.filters.SortBy = by
}

// SetSortOrder sets the sort direction.
func (s *Store) SetSortOrder(order model.SortOrder) {
	s.filters.SortOrder = order
}

// ToggleTagSelection adds name to the tag filter, or removes it if present.
func (s *Store) ToggleTagSelection(name string) {
	if i := slices.Index(s.filters.SelectedTags, name); i >= 0 {
		s.filters.SelectedTags = slices.Delete(s.filters.SelectedTags, i, i+1)
		return
	}
	s.filters.SelectedTags = append(s.filters.SelectedTags, name)
}

// ClearFilters resets the query and the tag selection. Sorting is kept.
func (s *Store) ClearFilters() {
	s.filters.Query = ""
	s.filters.SelectedTags = nil
}

// ResolveID returns the id of the single link whose id starts with prefix,
// case-insensitively. An exact match always wins.
func (s *Store) ResolveID(prefix string) (string, bool) {
	if s.index(prefix) >= 0 {
		return prefix, true
	}
	lower := strings.ToLower(prefix)
	match := ""
	for _, link := range s.links {
		if strings.HasPrefix(strings.ToLower(link.ID), lower) {
			if match != "" {
				return "", false
			}
			match = link.ID
		}
	}
	return match, match != ""
}

func cloneLinks(links []*model.Link) []*model.Link {
	out := make([]*model.Link, len(links))
	for i, link := range links {
		out[i] = link.Clone()
	}
	return out
}
