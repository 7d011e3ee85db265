// Package seed loads the bundled JSON fixtures used as first-run content.
package seed

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed fixtures/*.json
var bundled embed.FS

// Collections lists every collection that ships with a fixture file.
var Collections = []string{"news", "matches", "videos", "awards", "navData"}

// Loader reads fixture arrays, one <collection>.json file per collection.
type Loader struct {
	fsys fs.FS
}

// NewLoader returns a loader over dir, or over the bundled fixtures when dir is empty.
func NewLoader(dir string) *Loader {
	if dir == "" {
		sub, err := fs.Sub(bundled, "fixtures")
		if err != nil {
			// fixtures/ is embedded at build time
			panic(err)
		}
		return &Loader{fsys: sub}
	}
	return &Loader{fsys: os.DirFS(dir)}
}

// NewLoaderFS returns a loader over an arbitrary filesystem.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load returns the raw items of a collection's fixture.
// A collection without a fixture file has no seed: nil, nil.
func (l *Loader) Load(collection string) ([]json.RawMessage, error) {
	data, err := fs.ReadFile(l.fsys, collection+".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s fixture: %w", collection, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s fixture: %w", collection, err)
	}

	return items, nil
}
