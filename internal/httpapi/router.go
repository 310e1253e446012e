// internal/httpapi/router.go
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every dashboard route onto a gorilla/mux router.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods("GET")

	r.HandleFunc("/includes/header.html", s.HeaderHandler).Methods("GET")
	r.HandleFunc("/api/nav", s.NavHandler).Methods("GET")
	r.HandleFunc("/api/availability", s.AvailabilityHandler).Methods("GET")
	r.HandleFunc("/api/availability/cache", s.ClearCacheHandler).Methods("DELETE")
	r.HandleFunc("/api/readings/latest", s.ReadingsHandler).Methods("GET")

	if s.device.Logs != nil {
		r.HandleFunc("/api/logs", s.LogsHandler).Methods("GET")
	}
	if s.device.Alarm != nil {
		r.HandleFunc("/api/alarm", s.AlarmHandler).Methods("GET")
		r.HandleFunc("/api/alarm/snooze", s.SnoozeHandler).Methods("PUT")
	}
	if s.device.System != nil {
		r.HandleFunc("/api/system", s.SystemHandler).Methods("GET")
	}
	if s.device.Space != nil {
		r.HandleFunc("/api/space/poll-period", s.PollPeriodHandler).Methods("GET")
		r.HandleFunc("/api/space/poll-period/{seconds}", s.SetPollPeriodHandler).Methods("PUT")
	}

	return r
}
