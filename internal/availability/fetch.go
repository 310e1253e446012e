// internal/availability/fetch.go
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Getter is the transport the fetcher needs.
// device.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// FetchError wraps any failure to obtain a module listing.
// A FetchError never reaches the cache.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("availability fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher performs the remote module-listing check.
type Fetcher struct {
	getter   Getter
	path     string
	specific string
	now      func() time.Time
}

// NewFetcher builds a fetcher. now may be nil (time.Now).
func NewFetcher(getter Getter, path, specific string, now func() time.Time) *Fetcher {
	if now == nil {
		now = time.Now
	}
	return &Fetcher{getter: getter, path: path, specific: specific, now: now}
}

// FetchAvailability issues one request and derives a snapshot from it.
func (f *Fetcher) FetchAvailability(ctx context.Context) (Snapshot, error) {
	body, err := f.getter.Get(ctx, f.path)
	if err != nil {
		return Snapshot{}, &FetchError{Path: f.path, Err: err}
	}

	s, err := ParseModules(body, f.specific)
	if err != nil {
		return Snapshot{}, &FetchError{Path: f.path, Err: err}
	}
	s.CapturedAt = f.now()
	return s, nil
}

// ParseModules derives availability flags from a module listing.
// The listing is either a JSON array of names or a JSON object keyed by name.
// Any other valid JSON value counts as an empty listing.
// CapturedAt is left zero.
func ParseModules(body []byte, specific string) (Snapshot, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode module listing: %w", err)
	}

	var s Snapshot
	switch v := raw.(type) {
	case []any:
		s.SensorsAvailable = len(v) > 0
		for _, item := range v {
			if name, ok := item.(string); ok && name == specific {
				s.SpecificAvailable = true
				break
			}
		}
	case map[string]any:
		s.SensorsAvailable = len(v) > 0
		_, s.SpecificAvailable = v[specific]
	}
	return s, nil
}
