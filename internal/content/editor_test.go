package content

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

func TestEditorCreateLifecycle(t *testing.T) {
	s := newCountingStore()
	c := NewController[domain.News](s, nil, testLog)
	e := c.NewEditor()
	ctx := context.Background()

	if e.State() != StateEmpty {
		t.Fatalf("initial state = %v", e.State())
	}
	if _, err := e.Submit(ctx); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("Submit from Empty: %v", err)
	}

	if err := e.StartCreate(); err != nil {
		t.Fatal(err)
	}
	if err := e.SetDraft(domain.News{ID: "sneaky", Title: "t", Description: "d"}); err != nil {
		t.Fatal(err)
	}
	if e.Draft().ID != "" {
		t.Errorf("SetDraft changed id to %q", e.Draft().ID)
	}

	id, err := e.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if e.State() != StateEmpty {
		t.Errorf("state after success = %v, want empty", e.State())
	}
	if e.Draft() != (domain.News{}) {
		t.Errorf("draft not cleared: %+v", e.Draft())
	}
	if items := c.Snapshot().Items; len(items) != 1 || items[0].ID != id {
		t.Errorf("items = %+v", items)
	}
}

func TestEditorFailureKeepsDraft(t *testing.T) {
	s := newCountingStore()
	c := NewController[domain.News](s, nil, testLog)
	e := c.NewEditor()
	ctx := context.Background()

	_ = e.StartCreate()
	draft := domain.News{Title: "typed", Description: "by the admin", Image: "/x.png"}
	_ = e.SetDraft(draft)

	s.failOn("insert", store.ErrPermissionDenied)
	if _, err := e.Submit(ctx); !errors.Is(err, store.ErrPermissionDenied) {
		t.Fatalf("Submit err = %v", err)
	}
	if e.State() != StateEditing {
		t.Errorf("state = %v, want editing", e.State())
	}
	if e.Draft() != draft {
		t.Errorf("draft lost: %+v", e.Draft())
	}
	if Classify(e.Err()) != ClassPermission {
		t.Errorf("Err class = %q", Classify(e.Err()))
	}

	// Retry succeeds once the store recovers.
	s.failOn("insert", nil)
	if _, err := e.Submit(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if e.Err() != nil {
		t.Errorf("Err after success = %v", e.Err())
	}
}

func TestEditorValidationKeepsDraft(t *testing.T) {
	c := NewController[domain.Match](newCountingStore(), nil, testLog)
	e := c.NewEditor()

	_ = e.StartCreate()
	_ = e.SetDraft(domain.Match{Team1: "Pitch FC"})

	_, err := e.Submit(context.Background())
	ve, ok := domain.AsValidation(err)
	if !ok || ve.Field != "team2" {
		t.Fatalf("err = %v, want team2 required", err)
	}
	if e.State() != StateEditing || e.Draft().Team1 != "Pitch FC" {
		t.Errorf("state %v draft %+v", e.State(), e.Draft())
	}
}

func TestEditorEditKeepsId(t *testing.T) {
	s := newCountingStore()
	c := NewController[domain.News](s, nil, testLog)
	ctx := context.Background()

	id, err := c.Create(ctx, domain.News{Title: "old", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}

	e := c.NewEditor()
	if err := e.StartEdit(c.Snapshot().Items[0]); err != nil {
		t.Fatal(err)
	}
	_ = e.SetDraft(domain.News{Title: "new", Description: "d"})

	got, err := e.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got != id {
		t.Errorf("Submit id = %q, want %q", got, id)
	}
	if items := c.Snapshot().Items; len(items) != 1 || items[0].Title != "new" {
		t.Errorf("items = %+v", items)
	}
}

// blockingStore holds inserts until released.
type blockingStore struct {
	*countingStore
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) Insert(ctx context.Context, coll string, data []byte) (string, error) {
	s.entered <- struct{}{}
	<-s.release
	return s.countingStore.Insert(ctx, coll, data)
}

func TestEditorRejectsDuplicateSubmit(t *testing.T) {
	bs := &blockingStore{
		countingStore: newCountingStore(),
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	c := NewController[domain.News](bs, nil, testLog)
	e := c.NewEditor()
	ctx := context.Background()

	_ = e.StartCreate()
	_ = e.SetDraft(domain.News{Title: "t", Description: "d"})

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(ctx)
		done <- err
	}()

	<-bs.entered
	if e.State() != StateSubmitting {
		t.Errorf("state = %v, want submitting", e.State())
	}
	if _, err := e.Submit(ctx); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("second Submit = %v, want ErrSubmitInFlight", err)
	}
	if err := e.StartCreate(); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("StartCreate while submitting = %v", err)
	}

	close(bs.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if bs.Count(domain.CollectionNews) != 1 {
		t.Errorf("inserted %d docs, want 1", bs.Count(domain.CollectionNews))
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{StateEmpty: "empty", StateEditing: "editing", StateSubmitting: "submitting", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
