package seed

import (
	"testing"
	"testing/fstest"
)

func TestBundledFixtures(t *testing.T) {
	l := NewLoader("")

	for _, coll := range Collections {
		t.Run(coll, func(t *testing.T) {
			items, err := l.Load(coll)
			if err != nil {
				t.Fatalf("Load(%s) error = %v", coll, err)
			}
			if len(items) == 0 {
				t.Errorf("Load(%s) returned no items", coll)
			}
		})
	}
}

func TestLoadMissingFixture(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{})

	items, err := l.Load("news")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if items != nil {
		t.Errorf("Load() = %v, want nil for a missing fixture", items)
	}
}

func TestLoadMalformedFixture(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{
		"news.json": {Data: []byte(`{"not":"an array"}`)},
	})

	if _, err := l.Load("news"); err == nil {
		t.Error("Load() should fail on a fixture that is not an array")
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	items, err := l.Load("matches")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Load() from empty dir = %d items, want 0", len(items))
	}
}
