package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

// payloadFunc turns one fixture item into a write payload without an id.
type payloadFunc func(raw json.RawMessage) ([]byte, error)

func typedPayload[R Record[R]](raw json.RawMessage) ([]byte, error) {
	r, err := domain.Normalize[R](raw)
	if err != nil {
		return nil, err
	}
	return Payload(r)
}

// rawPayload keeps a catalog item as-is, minus its id.
func rawPayload(raw json.RawMessage) ([]byte, error) {
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	delete(item, "id")
	return json.Marshal(item)
}

var payloads = map[string]payloadFunc{
	domain.CollectionNews:    typedPayload[domain.News],
	domain.CollectionMatches: typedPayload[domain.Match],
	domain.CollectionVideos:  typedPayload[domain.Video],
	CollectionAwards:         rawPayload,
	CollectionNav:            rawPayload,
}

// SeedAll writes every bundled fixture to s, one atomic batch per
// collection, skipping collections that already hold documents. Collections
// are seeded concurrently. It returns the number of documents written per
// collection; the first failure cancels the collections still in flight.
func SeedAll(ctx context.Context, s store.DocumentStore, l *seed.Loader, log logger.Logger) (map[string]int, error) {
	if s == nil {
		return nil, store.ErrNotConfigured
	}

	var (
		mu       sync.Mutex
		inserted = make(map[string]int, len(seed.Collections))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, coll := range seed.Collections {
		g.Go(func() error {
			n, err := seedCollection(ctx, s, l, coll)
			if err != nil {
				return fmt.Errorf("seed %s: %w", coll, err)
			}
			mu.Lock()
			inserted[coll] = n
			mu.Unlock()

			if n == 0 {
				log.Info("collection already populated, skipped", logger.String("collection", coll))
			} else {
				log.Info("collection seeded", logger.String("collection", coll), logger.Int("count", n))
			}
			return nil
		})
	}

	err := g.Wait()
	return inserted, err
}

func seedCollection(ctx context.Context, s store.DocumentStore, l *seed.Loader, coll string) (int, error) {
	existing, err := s.List(ctx, coll)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	raws, err := l.Load(coll)
	if err != nil || len(raws) == 0 {
		return 0, err
	}

	toPayload, ok := payloads[coll]
	if !ok {
		toPayload = rawPayload
	}
	batch := make([][]byte, 0, len(raws))
	for i, raw := range raws {
		data, err := toPayload(raw)
		if err != nil {
			return 0, fmt.Errorf("fixture item %d: %w", i, err)
		}
		batch = append(batch, data)
	}

	ids, err := s.InsertMany(ctx, coll, batch)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
