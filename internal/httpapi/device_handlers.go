// internal/httpapi/device_handlers.go
package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tamzrod/sensor-dashboard/internal/spacestate"
)

type errorBody struct {
	Error string `json:"error"`
}

// deviceError answers 502 for a failed device request.
func deviceError(w http.ResponseWriter, route string, err error) {
	log.Printf("httpapi: device request failed (route=%s): %v", route, err)
	writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
}

// LogsHandler returns the device log as normalized text.
func (s *Server) LogsHandler(w http.ResponseWriter, r *http.Request) {
	l, err := s.device.Logs.Read(r.Context())
	if err != nil {
		deviceError(w, "logs", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// AlarmHandler returns the combined CO2 alarm state.
func (s *Server) AlarmHandler(w http.ResponseWriter, r *http.Request) {
	v, err := s.device.Alarm.Read(r.Context())
	if err != nil {
		deviceError(w, "alarm", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// SnoozeHandler snoozes the CO2 alarm.
func (s *Server) SnoozeHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.device.Alarm.Snooze(r.Context()); err != nil {
		deviceError(w, "alarm/snooze", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SystemHandler returns version, hostname and MAC address.
func (s *Server) SystemHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.device.System.Read(r.Context()))
}

type pollPeriodBody struct {
	Seconds  int  `json:"poll_period_seconds"`
	Disabled bool `json:"disabled"`
}

// PollPeriodHandler returns the current space-state poll period.
func (s *Server) PollPeriodHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.device.Space.PollPeriod(r.Context())
	if err != nil {
		deviceError(w, "space/poll-period", err)
		return
	}
	writeJSON(w, http.StatusOK, pollPeriodBody{Seconds: n, Disabled: n == spacestate.PollPeriodDisabled})
}

// SetPollPeriodHandler validates {seconds} and forwards it to the device.
func (s *Server) SetPollPeriodHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.device.Space.SetPollPeriod(r.Context(), mux.Vars(r)["seconds"])
	if err != nil {
		if spacestate.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		deviceError(w, "space/poll-period", err)
		return
	}
	writeJSON(w, http.StatusOK, pollPeriodBody{Seconds: n, Disabled: n == spacestate.PollPeriodDisabled})
}
