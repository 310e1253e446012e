// internal/availability/cache.go
package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tamzrod/sensor-dashboard/internal/kvstore"
)

// DefaultTTL is how long a cached snapshot is trusted.
const DefaultTTL = 60 * time.Second

// Persisted keys. The specific-sensor key is derived from the module name,
// e.g. SCD30 => "scd30-available".
const (
	KeySensorsAvailable = "sensors-available"
	KeyTimestamp        = "sensors-cache-timestamp"
)

// ErrOutOfOrder is returned by Write for a snapshot older than the stored one.
var ErrOutOfOrder = errors.New("availability cache: snapshot older than stored snapshot")

// Cache owns the persisted Snapshot.
// No other component writes its keys.
type Cache struct {
	mu          sync.Mutex
	store       kvstore.Store
	specificKey string
}

// NewCache builds a cache over store for the designated module name.
func NewCache(store kvstore.Store, specificModule string) *Cache {
	return &Cache{
		store:       store,
		specificKey: SpecificKey(specificModule),
	}
}

// SpecificKey returns the storage key for a module's availability flag.
func SpecificKey(module string) string {
	return strings.ToLower(module) + "-available"
}

func (c *Cache) keys() []string {
	return []string{KeySensorsAvailable, c.specificKey, KeyTimestamp}
}

// Read returns the stored snapshot.
// Missing, unreadable, or malformed state is reported as absent.
func (c *Cache) Read() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *Cache) read() (Snapshot, bool) {
	sensors, ok := c.get(KeySensorsAvailable)
	if !ok {
		return Snapshot{}, false
	}
	specific, ok := c.get(c.specificKey)
	if !ok {
		return Snapshot{}, false
	}
	ts, ok := c.get(KeyTimestamp)
	if !ok {
		return Snapshot{}, false
	}

	sa, ok := parseFlag(sensors)
	if !ok {
		return Snapshot{}, false
	}
	sp, ok := parseFlag(specific)
	if !ok {
		return Snapshot{}, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
	if err != nil || ms < 0 {
		return Snapshot{}, false
	}

	return Snapshot{
		SensorsAvailable:  sa,
		SpecificAvailable: sp,
		CapturedAt:        time.UnixMilli(ms),
	}, true
}

func (c *Cache) get(key string) (string, bool) {
	v, ok, err := c.store.Get(key)
	if err != nil {
		return "", false
	}
	return v, ok
}

// Write replaces the stored snapshot with s in one storage batch.
func (c *Cache) Write(s Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := s.CapturedAt.UnixMilli()
	if prev, ok := c.read(); ok && ms < prev.CapturedAt.UnixMilli() {
		return ErrOutOfOrder
	}

	if err := c.store.SetAll(map[string]string{
		KeySensorsAvailable: strconv.FormatBool(s.SensorsAvailable),
		c.specificKey:       strconv.FormatBool(s.SpecificAvailable),
		KeyTimestamp:        strconv.FormatInt(ms, 10),
	}); err != nil {
		return fmt.Errorf("availability cache: write: %w", err)
	}
	return nil
}

// Clear removes the snapshot. A following Read reports absent.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(c.keys()...); err != nil {
		return fmt.Errorf("availability cache: clear: %w", err)
	}
	return nil
}

// IsFresh reports whether s is younger than ttl at now.
func IsFresh(s Snapshot, now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CapturedAt) < ttl
}

func parseFlag(v string) (bool, bool) {
	switch v {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
