package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/metrics"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

// ErrMissingID is returned by Update and Delete when no Id is given.
var ErrMissingID = errors.New("record id is required")

// Snapshot is a copy of a controller's list as of its last successful load.
type Snapshot[R any] struct {
	Items     []R
	Source    Source
	LoadedAt  time.Time
	LastError error // last load or write failure, nil once a load succeeds
}

// Controller mediates between one collection and the admin list/form.
//
// Every successful mutation ends with invalidateAndReload: the list is
// always re-read in full from the store, never patched in memory.
type Controller[R Record[R]] struct {
	kind   string
	store  store.DocumentStore
	seed   SeedFunc[R]
	logger logger.Logger
	now    func() time.Time

	mu       sync.RWMutex
	items    []R
	source   Source
	loadedAt time.Time
	lastErr  error
	started  uint64 // loads started
	applied  uint64 // generation of the load currently shown

	seedMu sync.Mutex
}

// NewController creates a controller for R's collection.
// s may be nil when no store is configured; every operation then fails
// with store.ErrNotConfigured.
func NewController[R Record[R]](s store.DocumentStore, seed SeedFunc[R], log logger.Logger) *Controller[R] {
	var zero R
	if seed == nil {
		seed = func() ([]R, error) { return nil, nil }
	}
	return &Controller[R]{
		kind:   zero.Kind(),
		store:  s,
		seed:   seed,
		logger: log,
		now:    time.Now,
		source: SourceNone,
	}
}

// Kind returns the collection name.
func (c *Controller[R]) Kind() string { return c.kind }

// Load reads the whole collection. An empty collection is replaced by the
// bundled seed for display only, nothing is written. On failure the list
// keeps its previous content.
func (c *Controller[R]) Load(ctx context.Context) error {
	gen := c.begin()

	if c.store == nil {
		return c.loadFailed(gen, store.ErrNotConfigured)
	}

	docs, err := c.store.List(ctx, c.kind)
	if err != nil {
		return c.loadFailed(gen, err)
	}

	if len(docs) == 0 {
		items, err := c.seed()
		if err != nil {
			return c.loadFailed(gen, fmt.Errorf("seed fallback: %w", err))
		}
		c.apply(gen, items, SourceSeed)
		c.logger.Debug("collection empty, showing bundled seed",
			logger.String("kind", c.kind),
			logger.Int("count", len(items)))
		return nil
	}

	items := make([]R, 0, len(docs))
	for _, doc := range docs {
		r, err := domain.Normalize[R](doc.Data)
		if err != nil {
			c.logger.Warn("skipping malformed document",
				logger.String("kind", c.kind),
				logger.String("id", doc.ID),
				logger.Error(err))
			continue
		}
		items = append(items, r.WithIdentity(doc.ID))
	}
	c.apply(gen, items, SourceStore)
	return nil
}

// Create validates draft, inserts it and reloads. No store call is made
// when a required field is missing.
func (c *Controller[R]) Create(ctx context.Context, draft R) (string, error) {
	if err := draft.Validate(); err != nil {
		metrics.RecordContentWrite(c.kind, "create", err)
		return "", err
	}

	payload, err := Payload(draft)
	if err != nil {
		return "", err
	}

	id, err := c.write("create", "", func(s store.DocumentStore) (string, error) {
		return s.Insert(ctx, c.kind, payload)
	})
	if err != nil {
		return "", err
	}

	c.invalidateAndReload(ctx, "create")
	return id, nil
}

// Update overwrites the document at id with draft's fields.
func (c *Controller[R]) Update(ctx context.Context, id string, draft R) error {
	if id == "" {
		return ErrMissingID
	}
	if err := draft.Validate(); err != nil {
		metrics.RecordContentWrite(c.kind, "update", err)
		return err
	}

	payload, err := Payload(draft)
	if err != nil {
		return err
	}

	if _, err := c.write("update", id, func(s store.DocumentStore) (string, error) {
		return id, s.Replace(ctx, c.kind, id, payload)
	}); err != nil {
		return err
	}

	c.invalidateAndReload(ctx, "update")
	return nil
}

// Delete removes the document at id. An unknown id is not an error.
func (c *Controller[R]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if _, err := c.write("delete", id, func(s store.DocumentStore) (string, error) {
		return id, s.Delete(ctx, c.kind, id)
	}); err != nil {
		return err
	}

	c.invalidateAndReload(ctx, "delete")
	return nil
}

// SeedFromBundled persists the bundled seed, one insert per record, when the
// live collection is empty. It is a no-op (0, nil) on a non-empty collection.
// Inserts are independent: a failure part-way leaves the records written so far.
func (c *Controller[R]) SeedFromBundled(ctx context.Context) (int, error) {
	c.seedMu.Lock()
	defer c.seedMu.Unlock()

	if c.store == nil {
		return 0, c.writeFailed("seed", "", store.ErrNotConfigured)
	}

	docs, err := c.store.List(ctx, c.kind)
	if err != nil {
		return 0, c.writeFailed("seed", "", err)
	}
	if len(docs) > 0 {
		c.logger.Info("collection already seeded, skipping",
			logger.String("kind", c.kind),
			logger.Int("count", len(docs)))
		return 0, nil
	}

	items, err := c.seed()
	if err != nil {
		return 0, c.writeFailed("seed", "", err)
	}

	inserted := 0
	for _, r := range items {
		payload, err := Payload(r)
		if err != nil {
			return inserted, err
		}
		if _, err := c.store.Insert(ctx, c.kind, payload); err != nil {
			c.invalidateAndReload(ctx, "seed")
			return inserted, c.writeFailed("seed", "", err)
		}
		inserted++
	}

	metrics.RecordContentWrite(c.kind, "seed", nil)
	c.logger.Info("collection seeded from bundled fixture",
		logger.String("kind", c.kind),
		logger.Int("inserted", inserted))

	c.invalidateAndReload(ctx, "seed")
	return inserted, nil
}

// Snapshot returns a copy of the current list.
func (c *Controller[R]) Snapshot() Snapshot[R] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]R, len(c.items))
	copy(items, c.items)
	return Snapshot[R]{
		Items:     items,
		Source:    c.source,
		LoadedAt:  c.loadedAt,
		LastError: c.lastErr,
	}
}

// write runs one store mutation and records its outcome.
func (c *Controller[R]) write(op, id string, fn func(store.DocumentStore) (string, error)) (string, error) {
	if c.store == nil {
		return "", c.writeFailed(op, id, store.ErrNotConfigured)
	}
	newID, err := fn(c.store)
	if err != nil {
		return "", c.writeFailed(op, id, err)
	}
	metrics.RecordContentWrite(c.kind, op, nil)
	c.logger.Info("content written",
		logger.String("kind", c.kind),
		logger.String("op", op),
		logger.String("id", newID))
	return newID, nil
}

func (c *Controller[R]) writeFailed(op, id string, err error) error {
	metrics.RecordContentWrite(c.kind, op, err)
	c.logger.Error("content write failed",
		logger.String("kind", c.kind),
		logger.String("op", op),
		logger.String("id", id),
		logger.Error(err))

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	return fmt.Errorf("%s %s: %w", op, c.kind, err)
}

// invalidateAndReload re-reads the collection after a successful write.
// A failed reload does not undo the write; it shows up in Snapshot().LastError.
func (c *Controller[R]) invalidateAndReload(ctx context.Context, op string) {
	if err := c.Load(ctx); err != nil {
		c.logger.Warn("reload after write failed, list may be stale",
			logger.String("kind", c.kind),
			logger.String("op", op),
			logger.Error(err))
	}
}

func (c *Controller[R]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
	return c.started
}

// apply installs a load result unless a newer load already did.
func (c *Controller[R]) apply(gen uint64, items []R, src Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < c.applied {
		return
	}
	c.applied = gen
	c.items = items
	c.source = src
	c.loadedAt = c.now()
	c.lastErr = nil
	metrics.RecordContentLoad(c.kind, string(src))
}

func (c *Controller[R]) loadFailed(gen uint64, err error) error {
	metrics.RecordContentLoad(c.kind, "error")
	c.logger.Error("failed to load collection",
		logger.String("kind", c.kind),
		logger.Error(err))

	c.mu.Lock()
	if gen >= c.applied {
		c.lastErr = err
	}
	c.mu.Unlock()

	return fmt.Errorf("load %s: %w", c.kind, err)
}
