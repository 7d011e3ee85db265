package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/pitch/internal/store"
)

// Store handles Redis operations for document collections
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		now:    time.Now,
	}
}

// List retrieves all documents of a collection in insertion order
func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	ids, err := s.client.ZRange(ctx, CollectionKey(collection), 0, -1).Result()
	if err != nil {
		return nil, wrapErr("failed to list collection", err)
	}

	if len(ids) == 0 {
		return []store.Document{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = DocumentKey(collection, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, wrapErr("failed to get documents", err)
	}

	docs := make([]store.Document, 0, len(ids))
	for i, v := range values {
		// Index entry without a value: skip it, Delete removes both
		str, ok := v.(string)
		if !ok {
			continue
		}
		docs = append(docs, store.Document{ID: ids[i], Data: []byte(str)})
	}

	return docs, nil
}

// Get retrieves a document by ID
func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	data, err := s.client.Get(ctx, DocumentKey(collection, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, wrapErr("failed to get document", err)
	}
	return store.Document{ID: id, Data: data}, nil
}

// Insert stores a new document under a fresh ID
func (s *Store) Insert(ctx context.Context, collection string, data []byte) (string, error) {
	ids, err := s.InsertMany(ctx, collection, [][]byte{data})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// InsertMany stores multiple documents in one MULTI/EXEC transaction
func (s *Store) InsertMany(ctx context.Context, collection string, data [][]byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}

	pipe := s.client.TxPipeline()
	base := s.now().UnixMicro()
	ids := make([]string, 0, len(data))

	for i, d := range data {
		id := store.NewID()
		pipe.Set(ctx, DocumentKey(collection, id), d, 0)
		pipe.ZAdd(ctx, CollectionKey(collection), redis.Z{
			Score:  float64(base + int64(i)),
			Member: id,
		})
		ids = append(ids, id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, wrapErr("failed to insert documents", err)
	}

	return ids, nil
}

// Replace overwrites an existing document (SET XX)
func (s *Store) Replace(ctx context.Context, collection, id string, data []byte) error {
	ok, err := s.client.SetXX(ctx, DocumentKey(collection, id), data, 0).Result()
	if err != nil {
		return wrapErr("failed to replace document", err)
	}
	if !ok {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes a document and its index entry
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, DocumentKey(collection, id))
	pipe.ZRem(ctx, CollectionKey(collection), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrapErr("failed to delete document", err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return wrapErr("ping failed", err)
	}
	return nil
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

// wrapErr tags a Redis error with the store error it maps to.
func wrapErr(msg string, err error) error {
	reply := err.Error()
	for _, prefix := range []string{"NOPERM", "NOAUTH", "WRONGPASS", "READONLY"} {
		if strings.HasPrefix(reply, prefix) {
			return fmt.Errorf("%s: %w: %w", msg, store.ErrPermissionDenied, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", msg, store.ErrUnavailable, err)
}
