package content

import (
	"context"
	"sync"
	"testing/fstest"

	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/store/memory"
)

var testLog = logger.New("error", false)

// countingStore wraps a memory store, counts writes and can fail any op.
type countingStore struct {
	*memory.Store

	mu       sync.Mutex
	inserts  int
	replaces int
	deletes  int
	lists    int
	fail     map[string]error // op name -> error
}

func newCountingStore() *countingStore {
	return &countingStore{Store: memory.New(), fail: map[string]error{}}
}

func (s *countingStore) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

func (s *countingStore) hit(op string, counter *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	return s.fail[op]
}

func (s *countingStore) List(ctx context.Context, coll string) ([]store.Document, error) {
	if err := s.hit("list", &s.lists); err != nil {
		return nil, err
	}
	return s.Store.List(ctx, coll)
}

func (s *countingStore) Insert(ctx context.Context, coll string, data []byte) (string, error) {
	if err := s.hit("insert", &s.inserts); err != nil {
		return "", err
	}
	return s.Store.Insert(ctx, coll, data)
}

func (s *countingStore) Replace(ctx context.Context, coll, id string, data []byte) error {
	if err := s.hit("replace", &s.replaces); err != nil {
		return err
	}
	return s.Store.Replace(ctx, coll, id, data)
}

func (s *countingStore) Delete(ctx context.Context, coll, id string) error {
	if err := s.hit("delete", &s.deletes); err != nil {
		return err
	}
	return s.Store.Delete(ctx, coll, id)
}

func (s *countingStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserts + s.replaces + s.deletes
}

func fixtures(files map[string]string) *seed.Loader {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name+".json"] = &fstest.MapFile{Data: []byte(body)}
	}
	return seed.NewLoaderFS(fsys)
}
