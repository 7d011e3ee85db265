// Package content owns the admin lifecycle of the site's editable collections
// (news, matches, videos) and the read-only catalogs (awards, navigation).
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/seed"
)

// Record is implemented by domain.News, domain.Match and domain.Video.
type Record[R any] interface {
	Kind() string
	Identity() string
	WithIdentity(id string) R
	Validate() error
}

// Loadable is anything the content reloader can refresh.
type Loadable interface {
	Kind() string
	Load(ctx context.Context) error
}

// Source tells where a list was last materialized from.
type Source string

const (
	SourceNone  Source = "none"  // never loaded successfully
	SourceStore Source = "store" // durable documents
	SourceSeed  Source = "seed"  // display-only bundled fixture
)

// Payload encodes a record for writing. The Id is never part of a payload.
func Payload[R Record[R]](r R) ([]byte, error) {
	data, err := json.Marshal(r.WithIdentity(""))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.Kind(), err)
	}
	return data, nil
}

// SeedFunc returns the normalized bundled records of a kind.
type SeedFunc[R any] func() ([]R, error)

// SeedFromLoader normalizes a collection's fixture. Items keep the Id the
// fixture gives them; items without one get their position as Id.
func SeedFromLoader[R Record[R]](l *seed.Loader, collection string) SeedFunc[R] {
	return func() ([]R, error) {
		raws, err := l.Load(collection)
		if err != nil {
			return nil, err
		}

		out := make([]R, 0, len(raws))
		for i, raw := range raws {
			r, err := domain.Normalize[R](raw)
			if err != nil {
				return nil, fmt.Errorf("%s fixture item %d: %w", collection, i, err)
			}
			if r.Identity() == "" {
				r = r.WithIdentity(strconv.Itoa(i))
			}
			out = append(out, r)
		}
		return out, nil
	}
}
