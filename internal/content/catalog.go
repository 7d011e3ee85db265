package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/metrics"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

// Item is one schemaless catalog entry. "id" is always set.
type Item map[string]any

// CatalogSnapshot is a copy of a catalog's items.
type CatalogSnapshot struct {
	Items     []Item
	Source    Source
	LoadedAt  time.Time
	LastError error
}

// Catalog serves a read-only collection (awards, navigation) that is only
// written by the offline seeder. Like a Controller it falls back to the
// bundled fixture while the collection is empty.
type Catalog struct {
	collection string
	store      store.DocumentStore
	seeds      *seed.Loader
	logger     logger.Logger

	mu       sync.RWMutex
	items    []Item
	source   Source
	loadedAt time.Time
	lastErr  error
}

func NewCatalog(collection string, s store.DocumentStore, seeds *seed.Loader, log logger.Logger) *Catalog {
	return &Catalog{
		collection: collection,
		store:      s,
		seeds:      seeds,
		logger:     log,
		source:     SourceNone,
	}
}

func (c *Catalog) Kind() string { return c.collection }

func (c *Catalog) Load(ctx context.Context) error {
	if c.store == nil {
		return c.failed(store.ErrNotConfigured)
	}

	docs, err := c.store.List(ctx, c.collection)
	if err != nil {
		return c.failed(err)
	}

	if len(docs) == 0 {
		raws, err := c.seeds.Load(c.collection)
		if err != nil {
			return c.failed(err)
		}
		items := make([]Item, 0, len(raws))
		for i, raw := range raws {
			item, err := decodeItem(raw, fmt.Sprint(i))
			if err != nil {
				return c.failed(err)
			}
			items = append(items, item)
		}
		c.set(items, SourceSeed)
		return nil
	}

	items := make([]Item, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeItem(doc.Data, "")
		if err != nil {
			c.logger.Warn("skipping malformed document",
				logger.String("kind", c.collection),
				logger.String("id", doc.ID),
				logger.Error(err))
			continue
		}
		item["id"] = doc.ID
		items = append(items, item)
	}
	c.set(items, SourceStore)
	return nil
}

func (c *Catalog) Snapshot() CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return CatalogSnapshot{
		Items:     items,
		Source:    c.source,
		LoadedAt:  c.loadedAt,
		LastError: c.lastErr,
	}
}

// decodeItem decodes a JSON object. fallbackID is used when it has no "id".
func decodeItem(raw []byte, fallbackID string) (Item, error) {
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	if item == nil {
		item = Item{}
	}
	if id, _ := item["id"].(string); id == "" && fallbackID != "" {
		item["id"] = fallbackID
	}
	return item, nil
}

func (c *Catalog) set(items []Item, src Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.source = src
	c.loadedAt = time.Now()
	c.lastErr = nil
	metrics.RecordContentLoad(c.collection, string(src))
}

func (c *Catalog) failed(err error) error {
	metrics.RecordContentLoad(c.collection, "error")
	c.logger.Error("failed to load catalog",
		logger.String("kind", c.collection),
		logger.Error(err))

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	return fmt.Errorf("load %s: %w", c.collection, err)
}
