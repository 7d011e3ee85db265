package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MrSnakeDoc/pitch/internal/store"
)

type entry struct {
	seq  uint64
	data []byte
}

// Store keeps collections in process memory.
// It backs the "memory" driver and the test suites.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]entry // collection -> ID -> entry
	seq         uint64
}

// New creates an empty memory store
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]entry),
	}
}

// List returns all documents of a collection in insertion order
func (s *Store) List(_ context.Context, collection string) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[collection]
	docs := make([]store.Document, 0, len(coll))
	seqs := make(map[string]uint64, len(coll))
	for id, e := range coll {
		docs = append(docs, store.Document{ID: id, Data: clone(e.data)})
		seqs[id] = e.seq
	}
	sort.Slice(docs, func(i, j int) bool { return seqs[docs[i].ID] < seqs[docs[j].ID] })
	return docs, nil
}

// Get retrieves a document by ID
func (s *Store) Get(_ context.Context, collection, id string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	return store.Document{ID: id, Data: clone(e.data)}, nil
}

// Insert adds a document under a fresh ID
func (s *Store) Insert(_ context.Context, collection string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(collection, data), nil
}

// InsertMany adds all documents under a single lock
func (s *Store) InsertMany(_ context.Context, collection string, data [][]byte) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(data))
	for _, d := range data {
		ids = append(ids, s.insertLocked(collection, d))
	}
	return ids, nil
}

func (s *Store) insertLocked(collection string, data []byte) string {
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]entry)
		s.collections[collection] = coll
	}
	s.seq++
	id := store.NewID()
	coll[id] = entry{seq: s.seq, data: clone(data)}
	return id
}

// Replace overwrites an existing document
func (s *Store) Replace(_ context.Context, collection, id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	e.data = clone(data)
	s.collections[collection][id] = e
	return nil
}

// Delete removes a document from a collection
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

// Count returns the number of documents in a collection
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.collections[collection])
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
