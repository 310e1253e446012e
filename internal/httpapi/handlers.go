// internal/httpapi/handlers.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/tamzrod/sensor-dashboard/internal/alarm"
	"github.com/tamzrod/sensor-dashboard/internal/availability"
	"github.com/tamzrod/sensor-dashboard/internal/logs"
	"github.com/tamzrod/sensor-dashboard/internal/nav"
	"github.com/tamzrod/sensor-dashboard/internal/readings"
	"github.com/tamzrod/sensor-dashboard/internal/sysinfo"
)

// CacheClearer drops the stored availability snapshot.
// *availability.Checker satisfies it.
type CacheClearer interface {
	ClearCache() error
}

// LogReader fetches the normalized device log. *logs.Reader satisfies it.
type LogReader interface {
	Read(ctx context.Context) (logs.Log, error)
}

// AlarmReader reads and snoozes the CO2 alarm. *alarm.Reader satisfies it.
type AlarmReader interface {
	Read(ctx context.Context) (alarm.View, error)
	Snooze(ctx context.Context) error
}

// SystemReader loads the system panel. *sysinfo.Reader satisfies it.
type SystemReader interface {
	Read(ctx context.Context) sysinfo.Info
}

// PollPeriodClient reads and sets the space-state poll period.
// *spacestate.Client satisfies it.
type PollPeriodClient interface {
	PollPeriod(ctx context.Context) (int, error)
	SetPollPeriod(ctx context.Context, input string) (int, error)
}

// DeviceViews are the on-demand device pages. Nil members are not routed.
type DeviceViews struct {
	Logs   LogReader
	Alarm  AlarmReader
	System SystemReader
	Space  PollPeriodClient
}

// Server holds the state the dashboard routes read from.
// The orchestrator pushes results in; handlers only read.
type Server struct {
	menu   *nav.Menu
	cache  CacheClearer
	board  *readings.Board
	device DeviceViews

	mu   sync.RWMutex
	last *availability.Result
}

func NewServer(menu *nav.Menu, cache CacheClearer, board *readings.Board, device DeviceViews) *Server {
	return &Server{menu: menu, cache: cache, board: board, device: device}
}

// SetAvailability records the most recent availability check.
func (s *Server) SetAvailability(res availability.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &res
}

// HeaderHandler renders the navigation header include for ?path=.
func (s *Server) HeaderHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" || !strings.HasPrefix(path, "/") {
		path = "/"
	}

	var buf bytes.Buffer
	if err := s.menu.Render(&buf, path); err != nil {
		log.Printf("httpapi: header render failed (path=%s): %v", path, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// NavHandler returns the menu entries as JSON, with ?path= marked active.
func (s *Server) NavHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.menu.Entries(r.URL.Query().Get("path")))
}

// AvailabilityHandler returns the last availability result.
// Before the first check it answers 503.
func (s *Server) AvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		http.Error(w, "availability not checked yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, last.View())
}

// ClearCacheHandler forces the next check to ask the device.
func (s *Server) ClearCacheHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.ClearCache(); err != nil {
		log.Printf("httpapi: cache clear failed: %v", err)
		http.Error(w, "cache clear failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReadingsHandler returns the latest readings board.
func (s *Server) ReadingsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.View())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: encode response: %v", err)
	}
}
