// Package linkstore owns the in-memory link and tag collections, applies
// every mutation, writes both collections through to storage after each one,
// and derives the filtered, sorted views shown to the user.
//
// A Store is driven by a single actor and is not safe for concurrent use.
package linkstore

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/bunchhieng/linkvault/internal/model"
	"github.com/bunchhieng/linkvault/internal/storage"
	"github.com/bunchhieng/linkvault/internal/urlnorm"
	"go.uber.org/zap"
)

// Persister is the persistence surface the store writes through to.
type Persister interface {
	SaveLinks(ctx context.Context, links []*model.Link) error
	SaveTags(ctx context.Context, tags []model.Tag) error
	LoadLinks(ctx context.Context) []*model.Link
	LoadTags(ctx context.Context) []model.Tag
	Clear(ctx context.Context) error
}

// ImportResult reports how many records an import loaded.
type ImportResult struct {
	Links int `json:"linksCount"`
	Tags  int `json:"tagsCount"`
}

// Store holds links in collection order (newest insert first) and tags in
// creation order.
type Store struct {
	persist Persister
	links   []*model.Link
	tags    []model.Tag
	filters Filters

	log       *zap.Logger
	now       func() time.Time
	pickColor func() string
	newID     func() string
	lastErr   error
}

// Open creates a Store and loads both collections from p.
func Open(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{persist: p}
	defaults(s)
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("linkstore")
	s.links = p.LoadLinks(ctx)
	s.tags = p.LoadTags(ctx)
	s.log.Debug("loaded", zap.Int("links", len(s.links)), zap.Int("tags", len(s.tags)))
	return s
}

// Add creates a link from form and puts it first in the collection. Unknown
// tag names become new tags. The returned link is a copy.
func (s *Store) Add(ctx context.Context, form model.LinkForm) *model.Link {
	norm := urlnorm.Normalize(form.URL)
	now := s.now()
	order := now.UnixMilli()

	link := &model.Link{
		ID:          s.newID(),
		Title:       titleOrFallback(form.Title, norm),
		URL:         norm.URL,
		Tags:        tagList(form.Tags),
		CreatedAt:   now,
		Description: form.Description,
		Domain:      norm.Domain,
		Favicon:     norm.FaviconURL,
		IsFavorite:  false,
		CustomOrder: &order,
	}

	s.links = slices.Insert(s.links, 0, link)
	s.ensureTags(form.Tags)
	s.save(ctx)
	return link.Clone()
}

// Update replaces the title, URL, tags and description of link id and
// re-derives its domain and favicon. Other fields are preserved. Unknown ids
// are ignored.
func (s *Store) Update(ctx context.Context, id string, form model.LinkForm) {
	link := s.find(id)
	if link == nil {
		return
	}
	norm := urlnorm.Normalize(form.URL)
	link.Title = titleOrFallback(form.Title, norm)
	link.URL = norm.URL
	link.Tags = tagList(form.Tags)
	link.Description = form.Description
	link.Domain = norm.Domain
	link.Favicon = norm.FaviconURL

	s.ensureTags(form.Tags)
	s.save(ctx)
}

// Delete removes link id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.links = slices.Delete(s.links, i, i+1)
	s.save(ctx)
}

// DeleteTag removes tag id, strips its name from every link and from the
// tag selection. Links themselves are kept. Unknown ids are ignored.
func (s *Store) DeleteTag(ctx context.Context, id string) {
	i := slices.IndexFunc(s.tags, func(t model.Tag) bool { return t.ID == id })
	if i < 0 {
		return
	}
	name := s.tags[i].Name
	s.tags = slices.Delete(s.tags, i, i+1)

	for _, link := range s.links {
		link.Tags = slices.DeleteFunc(link.Tags, func(t string) bool { return t == name })
	}
	s.filters.SelectedTags = slices.DeleteFunc(s.filters.SelectedTags, func(t string) bool { return t == name })
	s.save(ctx)
}

// ToggleFavorite flips the favorite flag of link id.
func (s *Store) ToggleFavorite(ctx context.Context, id string) {
	link := s.find(id)
	if link == nil {
		return
	}
	link.IsFavorite = !link.IsFavorite
	s.save(ctx)
}

// Reorder moves draggedID so that it sits immediately before targetID, then
// rewrites every CustomOrder to the link's new index and switches the view
// to custom order. Missing or equal ids leave everything unchanged.
func (s *Store) Reorder(ctx context.Context, draggedID, targetID string) {
	if draggedID == targetID {
		return
	}
	from := s.index(draggedID)
	if from < 0 || s.index(targetID) < 0 {
		return
	}

	dragged := s.links[from]
	s.links = slices.Delete(s.links, from, from+1)
	to := s.index(targetID)
	s.links = slices.Insert(s.links, to, dragged)

	for i, link := range s.links {
		order := int64(i)
		link.CustomOrder = &order
	}
	s.filters.SortBy = model.SortByCustom
	s.save(ctx)
}

// Export returns the current links and tags as pretty-printed JSON.
func (s *Store) Export() (string, error) {
	return storage.EncodeSnapshot(storage.Snapshot{Links: s.links, Tags: s.tags})
}

// Import replaces both collections with the snapshot in text. On error the
// store is unchanged and the error wraps model.ErrMalformedImport.
func (s *Store) Import(ctx context.Context, text string) (ImportResult, error) {
	snap, err := storage.DecodeSnapshot(text)
	if err != nil {
		s.log.Warn("import rejected", zap.Error(err))
		return ImportResult{}, err
	}
	s.links = snap.Links
	s.tags = snap.Tags
	s.save(ctx)
	return ImportResult{Links: len(snap.Links), Tags: len(snap.Tags)}, nil
}

// Reset empties both collections, restores default filters and removes the
// persisted data.
func (s *Store) Reset(ctx context.Context) {
	s.links = []*model.Link{}
	s.tags = []model.Tag{}
	s.filters = Filters{SortBy: model.SortByDate, SortOrder: model.SortDesc}
	s.recordErr(s.persist.Clear(ctx))
}

// LastPersistError returns the error from the most recent failed write, or
// nil if the last write succeeded.
func (s *Store) LastPersistError() error {
	return s.lastErr
}

// save writes both collections through. Failures are logged and remembered;
// the in-memory state stays authoritative.
func (s *Store) save(ctx context.Context) {
	err := errors.Join(
		s.persist.SaveLinks(ctx, s.links),
		s.persist.SaveTags(ctx, s.tags),
	)
	s.recordErr(err)
}

func (s *Store) recordErr(err error) {
	s.lastErr = err
	if err != nil {
		s.log.Warn("write-through failed, keeping in-memory state", zap.Error(err))
	}
}

// ensureTags creates a tag for every name not yet known.
func (s *Store) ensureTags(names []string) {
	for _, name := range names {
		if s.tagIndex(name) >= 0 {
			continue
		}
		s.tags = append(s.tags, model.Tag{ID: s.newID(), Name: name, Color: s.pickColor()})
	}
}

func (s *Store) find(id string) *model.Link {
	if i := s.index(id); i >= 0 {
		return s.links[i]
	}
	return nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.links, func(l *model.Link) bool { return l.ID == id })
}

func (s *Store) tagIndex(name string) int {
	return slices.IndexFunc(s.tags, func(t model.Tag) bool { return t.Name == name })
}

func titleOrFallback(title string, norm urlnorm.Result) string {
	switch {
	case title != "":
		return title
	case norm.Domain != "":
		return norm.Domain
	default:
		return norm.URL
	}
}

func tagList(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}
