// internal/readings/readings.go
package readings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Getter is the transport the fetcher needs.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Values maps module name => field name => numeric reading.
type Values map[string]map[string]float64

// Result is produced by one readings poll.
type Result struct {
	Values Values
	At     time.Time
	Err    error // non-nil means the poll failed and Values is nil
}

// Fetcher pulls the latest readings from the device.
type Fetcher struct {
	getter Getter
	path   string
	now    func() time.Time
}

func NewFetcher(getter Getter, path string, now func() time.Time) *Fetcher {
	if now == nil {
		now = time.Now
	}
	return &Fetcher{getter: getter, path: path, now: now}
}

// Fetch performs one request. It never panics on odd payloads:
// non-object modules and non-numeric fields are dropped.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	res := Result{At: f.now()}

	body, err := f.getter.Get(ctx, f.path)
	if err != nil {
		res.Err = err
		return res
	}

	vals, err := Parse(body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Values = vals
	return res
}

// Parse decodes a latest-readings document.
func Parse(body []byte) (Values, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("readings: decode: %w", err)
	}

	out := make(Values, len(raw))
	for module, v := range raw {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		m := make(map[string]float64, len(fields))
		for name, fv := range fields {
			if n, ok := fv.(float64); ok {
				m[name] = n
			}
		}
		out[module] = m
	}
	return out, nil
}

// Format renders one reading the way the dashboard cards show it.
func Format(field string, v float64) string {
	switch field {
	case "temperature":
		return fmt.Sprintf("%.1f°C", v)
	case "humidity", "relative_humidity":
		return fmt.Sprintf("%.1f%%", v)
	case "pressure":
		return fmt.Sprintf("%.1f hPa", v)
	case "co2", "eco2":
		return plain(v) + " ppm"
	case "tvoc":
		return plain(v) + " ppb"
	default:
		return plain(v)
	}
}

// plain prints v without an exponent: 1e6 is "1000000".
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ---- board ----

// Field is one formatted reading.
type Field struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Module groups the fields of one sensor module, sorted by name.
type Module struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// View is the JSON shape of the board.
type View struct {
	Modules     []Module `json:"modules"`
	UpdatedAtMs int64    `json:"updated_at_ms,omitempty"`
	LastError   string   `json:"last_error,omitempty"`
}

// Board holds the last good readings.
// A failed poll records its error but keeps the previous values.
type Board struct {
	mu        sync.RWMutex
	values    Values
	updatedAt time.Time
	lastErr   error
}

func NewBoard() *Board { return &Board{} }

func (b *Board) Update(res Result) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastErr = res.Err
	if res.Err != nil {
		return
	}
	b.values = res.Values
	b.updatedAt = res.At
}

// View returns a sorted, formatted copy of the board.
func (b *Board) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v := View{Modules: []Module{}}
	if !b.updatedAt.IsZero() {
		v.UpdatedAtMs = b.updatedAt.UnixMilli()
	}
	if b.lastErr != nil {
		v.LastError = b.lastErr.Error()
	}

	names := make([]string, 0, len(b.values))
	for name := range b.values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fields := b.values[name]
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := Module{Name: name, Fields: make([]Field, 0, len(keys))}
		for _, k := range keys {
			m.Fields = append(m.Fields, Field{Name: k, Value: fields[k], Display: Format(k, fields[k])})
		}
		v.Modules = append(v.Modules, m)
	}
	return v
}
