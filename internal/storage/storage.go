package storage

import (
	"context"
	"time"

	"github.com/bunchhieng/linkvault/internal/model"
)

// Keys under which the two collections are persisted.
const (
	LinksKey = "linkvault_links"
	TagsKey  = "linkvault_tags"
)

// KV is a local key-value store holding text values.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the store.
	Close() error
}

// Inspector is implemented by KV stores that can describe their contents.
type Inspector interface {
	// Keys lists the stored keys.
	Keys(ctx context.Context) ([]string, error)

	// UpdatedAt returns when key was last written, or the zero time if absent.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// Snapshot is the full link and tag dataset, serialized as a unit for
// export, import and persistence.
type Snapshot struct {
	Links []*model.Link `json:"links"`
	Tags  []model.Tag   `json:"tags"`
}
