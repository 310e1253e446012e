// internal/sysinfo/sysinfo.go
package sysinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Device endpoints. Each answers a JSON string.
const (
	PathVersion  = "/api/version"
	PathHostname = "/api/hostname"
	PathMAC      = "/api/wlan/mac"
)

// Getter is the transport the reader needs. device.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Info is the system panel. A field that failed to load is empty and
// its error is listed under Errors by field name.
type Info struct {
	Version  string            `json:"version"`
	Hostname string            `json:"hostname"`
	MAC      string            `json:"mac"`
	Errors   map[string]string `json:"errors,omitempty"`
}

type Reader struct {
	getter Getter
}

func NewReader(getter Getter) *Reader {
	return &Reader{getter: getter}
}

// Read loads all three fields concurrently. Fields fail independently.
func (r *Reader) Read(ctx context.Context) Info {
	var (
		info Info
		mu   sync.Mutex
		g    errgroup.Group
	)

	fields := []struct {
		name string
		path string
		dst  *string
	}{
		{"version", PathVersion, &info.Version},
		{"hostname", PathHostname, &info.Hostname},
		{"mac", PathMAC, &info.MAC},
	}

	for _, f := range fields {
		f := f
		g.Go(func() error {
			v, err := r.getString(ctx, f.path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if info.Errors == nil {
					info.Errors = make(map[string]string)
				}
				info.Errors[f.name] = err.Error()
				return nil
			}
			*f.dst = v
			return nil
		})
	}
	_ = g.Wait()

	return info
}

func (r *Reader) getString(ctx context.Context, path string) (string, error) {
	body, err := r.getter.Get(ctx, path)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		return "", fmt.Errorf("sysinfo: decode %s: %w", path, err)
	}
	return s, nil
}
