// Package storetest holds the behaviour every store.DocumentStore backend must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/pitch/internal/store"
)

// Run exercises a backend. open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) store.DocumentStore) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s store.DocumentStore)
	}{
		{"empty collection", testEmpty},
		{"insert then get and list", testInsertGetList},
		{"list keeps insertion order", testOrder},
		{"replace overwrites", testReplace},
		{"replace unknown id", testReplaceMissing},
		{"delete", testDelete},
		{"delete unknown id", testDeleteMissing},
		{"insert many", testInsertMany},
		{"collections are isolated", testIsolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			defer func() { _ = s.Close() }()
			tt.fn(t, s)
		})
	}
}

func testEmpty(t *testing.T, s store.DocumentStore) {
	docs, err := s.List(context.Background(), "news")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("List() on empty collection returned %d docs", len(docs))
	}
	if _, err := s.Get(context.Background(), "news", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() missing error = %v, want ErrNotFound", err)
	}
}

func testInsertGetList(t *testing.T, s store.DocumentStore) {
	ctx := context.Background()
	id, err := s.Insert(ctx, "news", []byte(`{"title":"a"}`))
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id == "" {
		t.Fatal("Insert() returned empty id")
	}

	doc, err := s.Get(ctx, "news", id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(doc.Data) != `{"title":"a"}` {
		t.Errorf("Get() data = %s", doc.Data)
	}

	docs, err := s.List(ctx, "news")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Errorf("List() = %+v, want single doc %s", docs, id)
	}
}

func testOrder(t *testing.T, s store.DocumentStore) {
	ctx := context.Background()
	var ids []string
	for _, body := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		id, err := s.Insert(ctx, "matches", []byte(body))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		ids = append(ids, id)
	}

	docs, err := s.List(ctx, "matches")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != len(ids) {
		t.Fatalf("List() returned %d docs, want %d", len(docs), len(ids))
	}
	for i := range ids {
		if docs[i].ID != ids[i] {
			t.Errorf("List()[%d] = %s, want %s", i, docs[i].ID, ids[i])
		}
	}
}

func testReplace(t *testing.T, s store.DocumentStore) {
	ctx := context.Background()
	id, err := s.Insert(ctx, "videos", []byte(`{"src":"a","extra":true}`))
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Replace(ctx, "videos", id, []byte(`{"src":"b"}`)); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	doc, err := s.Get(ctx, "videos", id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(doc.Data) != `{"src":"b"}` {
		t.Errorf("Replace() left %s, want full overwrite", doc.Data)
	}
}

func testReplaceMissing(t *testing.T, s store.DocumentStore) {
	err := s.Replace(context.Background(), "videos", "nope", []byte(`{}`))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Replace() unknown id error = %v, want ErrNotFound", err)
	}
	docs, _ := s.List(context.Background(), "videos")
	if len(docs) != 0 {
		t.Errorf("Replace() on unknown id created a document")
	}
}

func testDelete(t *testing.T, s store.DocumentStore) {
	ctx := context.Background()
	keep, _ := s.Insert(ctx, "news", []byte(`{"title":"keep"}`))
	drop, _ := s.Insert(ctx, "news", []byte(`{"title":"drop"}`))

	if err := s.Delete(ctx, "news", drop); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	docs, err := s.List(ctx, "news")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != keep {
		t.Errorf("List() after delete = %+v, want only %s", docs, keep)
	}
	if _, err := s.Get(ctx, "news", drop); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() deleted doc error = %v, want ErrNotFound", err)
	}
}

func testDeleteMissing(t *testing.T, s store.DocumentStore) {
	if err := s.Delete(context.Background(), "news", "nope"); err != nil {
		t.Errorf("Delete() unknown id error = %v, want nil", err)
	}
}

func testInsertMany(t *testing.T, s store.DocumentStore) {
	ctx := context.Background()
	ids, err := s.InsertMany(ctx, "awards", [][]byte{[]byte(`{"a":1}`), []byte(`{"a":2}`)})
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("InsertMany() ids = %v, want two distinct ids", ids)
	}
	docs, _ := s.List(ctx, "awards")
	if len(docs) != 2 {
		t.Errorf("List() after InsertMany = %d docs, want 2", len(docs))
	}
}

func testIsolation(t *testing.T, s store.DocumentStore) {
	ctx := context.Background()
	if _, err := s.Insert(ctx, "news", []byte(`{}`)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	docs, _ := s.List(ctx, "matches")
	if len(docs) != 0 {
		t.Errorf("List(matches) saw %d docs inserted into news", len(docs))
	}
}
