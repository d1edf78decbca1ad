package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bunchhieng/linkvault/internal/model"
	"go.uber.org/zap"
)

// Gateway persists the link and tag collections as JSON text in a KV.
// Reads never fail: a missing or corrupt value loads as an empty collection.
type Gateway struct {
	kv  KV
	log *zap.Logger
}

// NewGateway wraps kv. A nil logger disables diagnostics.
func NewGateway(kv KV, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{kv: kv, log: log.Named("storage")}
}

// SaveLinks writes the full link collection.
func (g *Gateway) SaveLinks(ctx context.Context, links []*model.Link) error {
	if links == nil {
		links = []*model.Link{}
	}
	return g.save(ctx, LinksKey, links)
}

// SaveTags writes the full tag collection.
func (g *Gateway) SaveTags(ctx context.Context, tags []model.Tag) error {
	if tags == nil {
		tags = []model.Tag{}
	}
	return g.save(ctx, TagsKey, tags)
}

// LoadLinks reads the link collection.
func (g *Gateway) LoadLinks(ctx context.Context) []*model.Link {
	var links []*model.Link
	if !g.load(ctx, LinksKey, &links) {
		return []*model.Link{}
	}
	out := make([]*model.Link, 0, len(links))
	repaired := false
	for _, link := range links {
		if link == nil {
			repaired = true
			continue
		}
		if repairLink(link) {
			repaired = true
		}
		out = append(out, link)
	}
	if repaired {
		g.writeBack(ctx, LinksKey, out)
	}
	return out
}

// LoadTags reads the tag collection.
func (g *Gateway) LoadTags(ctx context.Context) []model.Tag {
	var tags []model.Tag
	if !g.load(ctx, TagsKey, &tags) || tags == nil {
		return []model.Tag{}
	}
	repaired := false
	for i := range tags {
		if repairTag(&tags[i]) {
			repaired = true
		}
	}
	if repaired {
		g.writeBack(ctx, TagsKey, tags)
	}
	return tags
}

// Clear removes both collections.
func (g *Gateway) Clear(ctx context.Context) error {
	for _, key := range []string{LinksKey, TagsKey} {
		if err := g.kv.Remove(ctx, key); err != nil {
			g.log.Error("clear failed", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
		}
	}
	return nil
}

func (g *Gateway) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		g.log.Error("encode failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.kv.Set(ctx, key, string(data)); err != nil {
		g.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	g.log.Debug("saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// writeBack persists a collection repaired during load so generated ids
// stay stable across sessions. Failure leaves the loaded value in use.
func (g *Gateway) writeBack(ctx context.Context, key string, v any) {
	if err := g.save(ctx, key, v); err != nil {
		return
	}
	g.log.Info("repaired stored records", zap.String("key", key))
}

func (g *Gateway) load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := g.kv.Get(ctx, key)
	if err != nil {
		g.log.Warn("load failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		g.log.Warn("stored value is corrupt, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
