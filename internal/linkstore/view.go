package linkstore

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bunchhieng/linkvault/internal/model"
)

// Filters is the transient view state applied by Recompute.
type Filters struct {
	Query        string
	SelectedTags []string
	SortBy       model.SortBy
	SortOrder    model.SortOrder
}

// Recompute filters and sorts links without modifying them or their order.
//
// A non-blank query keeps links whose title, URL, description or any tag
// contains it, case-insensitively. Selected tags must all be present on a
// link. Sorting is stable; desc reverses the comparison.
func Recompute(links []*model.Link, f Filters) []*model.Link {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*model.Link, 0, len(links))
	for _, link := range links {
		if query != "" && !matchesQuery(link, query) {
			continue
		}
		if len(f.SelectedTags) > 0 && !link.HasAllTags(f.SelectedTags) {
			continue
		}
		out = append(out, link)
	}

	compare := comparator(f.SortBy)
	desc := f.SortOrder != model.SortAsc
	if f.SortBy == model.SortByFavorites {
		// favorites read top-down in the default direction
		desc = !desc
	}
	slices.SortStableFunc(out, func(a, b *model.Link) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func matchesQuery(link *model.Link, query string) bool {
	if strings.Contains(strings.ToLower(link.Title), query) ||
		strings.Contains(strings.ToLower(link.URL), query) ||
		strings.Contains(strings.ToLower(link.Description), query) {
		return true
	}
	for _, tag := range link.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func comparator(by model.SortBy) func(a, b *model.Link) int {
	switch by {
	case model.SortByTitle:
		return func(a, b *model.Link) int { return strings.Compare(a.Title, b.Title) }
	case model.SortByURL:
		return func(a, b *model.Link) int { return strings.Compare(a.URL, b.URL) }
	case model.SortByFavorites:
		return func(a, b *model.Link) int {
			if a.IsFavorite != b.IsFavorite {
				if a.IsFavorite {
					return -1
				}
				return 1
			}
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case model.SortByCustom:
		return func(a, b *model.Link) int { return cmp.Compare(a.Order(), b.Order()) }
	default:
		return func(a, b *model.Link) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

// CountTags annotates each tag with how many links carry its name, ordered
// by count descending. Ties keep the tags' original order.
func CountTags(tags []model.Tag, links []*model.Link) []model.TagCount {
	counts := make(map[string]int, len(tags))
	for _, link := range links {
		seen := make(map[string]bool, len(link.Tags))
		for _, name := range link.Tags {
			if !seen[name] {
				seen[name] = true
				counts[name]++
			}
		}
	}

	out := make([]model.TagCount, len(tags))
	for i, tag := range tags {
		out[i] = model.TagCount{Tag: tag, Count: counts[tag.Name]}
	}
	slices.SortStableFunc(out, func(a, b model.TagCount) int { return cmp.Compare(b.Count, a.Count) })
	return out
}
