package entitycache

import (
	"context"

	"go.uber.org/zap"
)

// Store is the persistence surface for one cache kind.
type Store interface {
	LoadCache(ctx context.Context, kind string) (map[string]string, error)
	SaveCache(ctx context.Context, kind string, entries map[string]string) error
}

// Cache is a persistent key→value cache for one entity kind, loaded once at
// run start and flushed once at run end. A cached empty string is the
// "looked up, found nothing" sentinel, so fruitless lookups are not repeated.
type Cache struct {
	kind    string
	entries map[string]string
	dirty   map[string]string
}

func Load(ctx context.Context, store Store, kind string) (*Cache, error) {
	entries, err := store.LoadCache(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &Cache{
		kind:    kind,
		entries: entries,
		dirty:   make(map[string]string),
	}, nil
}

// Get returns the cached value. The sentinel counts as present.
func (c *Cache) Get(id string) (string, bool) {
	v, ok := c.entries[id]
	return v, ok
}

func (c *Cache) Put(id, value string) {
	if existing, ok := c.entries[id]; ok && existing == value {
		return
	}
	c.entries[id] = value
	c.dirty[id] = value
}

// Fill resolves every id not already cached, one at a time. A resolver error
// is recoverable: it is logged and the id stays unresolved for the next run.
// An empty result with no error is cached as the sentinel.
func (c *Cache) Fill(ctx context.Context, ids []string, resolve func(ctx context.Context, id string) (string, error)) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := c.entries[id]; ok {
			continue
		}

		value, err := resolve(ctx, id)
		if err != nil {
			zap.L().Warn("enrichment lookup failed, leaving unresolved",
				zap.String("kind", c.kind), zap.String("id", id), zap.Error(err))
			continue
		}
		c.Put(id, value)
	}
}

// FillBatch resolves all missing ids with a single batch resolver. Ids absent
// from the resolver's answer are cached as the sentinel.
func (c *Cache) FillBatch(ctx context.Context, ids []string, resolve func(ctx context.Context, ids []string) (map[string]string, error)) {
	var missing []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := c.entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return
	}

	resolved, err := resolve(ctx, missing)
	if err != nil {
		zap.L().Warn("batch enrichment lookup failed, leaving unresolved",
			zap.String("kind", c.kind), zap.Int("count", len(missing)), zap.Error(err))
		return
	}
	for _, id := range missing {
		c.Put(id, resolved[id])
	}
}

// Flush persists the entries added or changed during this run.
func (c *Cache) Flush(ctx context.Context, store Store) error {
	return store.SaveCache(ctx, c.kind, c.dirty)
}
