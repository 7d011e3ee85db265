package memory

import (
	"testing"

	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/store/storetest"
)

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.DocumentStore { return New() })
}

func TestListReturnsCopies(t *testing.T) {
	s := New()
	id, _ := s.Insert(t.Context(), "news", []byte(`{"title":"a"}`))

	docs, _ := s.List(t.Context(), "news")
	docs[0].Data[2] = 'X'

	doc, _ := s.Get(t.Context(), "news", id)
	if string(doc.Data) != `{"title":"a"}` {
		t.Errorf("mutating a listed document changed the store: %s", doc.Data)
	}
	if s.Count("news") != 1 {
		t.Errorf("Count() = %d, want 1", s.Count("news"))
	}
}
