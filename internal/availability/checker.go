// internal/availability/checker.go
package availability

import (
	"context"
	"errors"
	"log"
	"time"
)

// Remote yields snapshots from the device. Fetcher satisfies it.
type Remote interface {
	FetchAvailability(ctx context.Context) (Snapshot, error)
}

// Checker runs one availability check per call:
// fresh cache => use it; otherwise ask the device;
// device unreachable => fail open without touching the cache.
type Checker struct {
	cache  *Cache
	remote Remote
	ttl    time.Duration
	now    func() time.Time
}

// NewChecker builds a checker. ttl <= 0 means DefaultTTL; now may be nil.
func NewChecker(cache *Cache, remote Remote, ttl time.Duration, now func() time.Time) *Checker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Checker{cache: cache, remote: remote, ttl: ttl, now: now}
}

// Check performs one check. It never fails: errors degrade to fail-open.
func (c *Checker) Check(ctx context.Context) Result {
	at := c.now()

	if s, ok := c.cache.Read(); ok {
		if s.CapturedAt.After(at) {
			// Clock stepped back or the store came from another host.
			// Drop it, or the remote answer would be rejected as out of order.
			log.Printf("availability: cached snapshot is in the future (captured=%d now=%d), discarding",
				s.CapturedAt.UnixMilli(), at.UnixMilli())
			if err := c.cache.Clear(); err != nil {
				log.Printf("availability: cache clear failed: %v", err)
			}
		} else if IsFresh(s, at, c.ttl) {
			return Result{
				Snapshot: s,
				Source:   SourceCache,
				At:       at,
				Age:      at.Sub(s.CapturedAt),
			}
		}
	}

	s, err := c.remote.FetchAvailability(ctx)
	if err != nil {
		return Result{
			Snapshot: FailOpen(at),
			Source:   SourceFailOpen,
			At:       at,
			Err:      err,
		}
	}

	if err := c.cache.Write(s); err != nil {
		// The fetched answer is still correct; only its persistence failed.
		if errors.Is(err, ErrOutOfOrder) {
			log.Printf("availability: stale remote snapshot not cached (captured=%d)", s.CapturedAt.UnixMilli())
		} else {
			log.Printf("availability: cache write failed: %v", err)
		}
	}

	age := at.Sub(s.CapturedAt)
	if age < 0 {
		age = 0
	}
	return Result{
		Snapshot: s,
		Source:   SourceRemote,
		At:       at,
		Age:      age,
	}
}

// ClearCache drops the cached snapshot; the next Check goes remote.
func (c *Checker) ClearCache() error {
	return c.cache.Clear()
}
