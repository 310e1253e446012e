// internal/alarm/alarm.go
package alarm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tamzrod/sensor-dashboard/internal/readings"
)

// Device endpoints.
const (
	PathStatus          = "/api/sensors/alarm/status"
	PathThreshold       = "/api/sensors/alarm/threshold"
	PathResetThreshold  = "/api/sensors/alarm/reset_threshold"
	PathSnoozeRemaining = "/api/sensors/alarm/snooze_remaining"
	PathSnooze          = "/api/sensors/alarm/snooze"
)

// StatusSnoozed is the device status code for a snoozed alarm.
const StatusSnoozed = 2

// Getter is the transport the reader needs. device.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string) ([]byte, error)
}

type statusPayload struct {
	Status     *int   `json:"status"`
	StatusText string `json:"status_text"`
	Active     bool   `json:"active"`
}

// View is the combined CO2 alarm state as the sensors page shows it.
type View struct {
	Available         bool     `json:"available"`
	Status            *int     `json:"status,omitempty"`
	StatusText        string   `json:"status_text,omitempty"`
	Active            bool     `json:"active"`
	Snoozed           bool     `json:"snoozed"`
	SnoozeRemainingS  *float64 `json:"snooze_remaining_s,omitempty"`
	ThresholdPPM      *float64 `json:"threshold_ppm"`
	ResetThresholdPPM *float64 `json:"reset_threshold_ppm"`
	CurrentCO2PPM     *float64 `json:"current_co2_ppm"`
	Details           []string `json:"details"`
}

// Reader assembles a View from the alarm and readings endpoints.
type Reader struct {
	getter       Getter
	module       string // module whose co2 field is the current reading
	readingsPath string
}

func NewReader(getter Getter, module, readingsPath string) *Reader {
	return &Reader{getter: getter, module: module, readingsPath: readingsPath}
}

// Read fetches status, both thresholds, the snooze remainder (only while
// snoozed) and the current CO2 reading. Any failed request fails the read.
func (r *Reader) Read(ctx context.Context) (View, error) {
	var st statusPayload
	if err := r.getJSON(ctx, PathStatus, &st); err != nil {
		return View{}, err
	}

	var threshold, reset *float64
	if err := r.getJSON(ctx, PathThreshold, &threshold); err != nil {
		return View{}, err
	}
	if err := r.getJSON(ctx, PathResetThreshold, &reset); err != nil {
		return View{}, err
	}

	var snooze *float64
	if st.Status != nil && *st.Status == StatusSnoozed {
		if err := r.getJSON(ctx, PathSnoozeRemaining, &snooze); err != nil {
			return View{}, err
		}
	}

	body, err := r.getter.Get(ctx, r.readingsPath)
	if err != nil {
		return View{}, err
	}
	vals, err := readings.Parse(body)
	if err != nil {
		return View{}, err
	}
	var co2 *float64
	if v, ok := vals[r.module]["co2"]; ok {
		co2 = &v
	}

	return build(st, threshold, reset, snooze, co2), nil
}

// Snooze asks the device to snooze the CO2 alarm.
func (r *Reader) Snooze(ctx context.Context) error {
	_, err := r.getter.Put(ctx, PathSnooze)
	return err
}

func (r *Reader) getJSON(ctx context.Context, path string, into any) error {
	body, err := r.getter.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("alarm: decode %s: %w", path, err)
	}
	return nil
}

func build(st statusPayload, threshold, reset, snooze, co2 *float64) View {
	v := View{
		Available:         st.Status != nil,
		Status:            st.Status,
		StatusText:        st.StatusText,
		Active:            st.Active,
		ThresholdPPM:      threshold,
		ResetThresholdPPM: reset,
		CurrentCO2PPM:     co2,
		Details:           []string{},
	}
	if !v.Available {
		v.Details = append(v.Details, "Alarm information not available")
		return v
	}

	v.Snoozed = *st.Status == StatusSnoozed
	if v.Snoozed {
		v.SnoozeRemainingS = snooze
	}

	status := strconv.Itoa(*st.Status)
	if st.StatusText != "" {
		status += " - " + st.StatusText
	}
	v.Details = append(v.Details, "Status: "+status)
	if v.Snoozed && snooze != nil {
		v.Details = append(v.Details, "Snooze Remaining: "+plain(snooze)+" seconds")
	}
	v.Details = append(v.Details,
		"Threshold: "+plain(nonZero(threshold))+" ppm",
		"Reset Threshold: "+plain(nonZero(reset))+" ppm",
		"Current CO2: "+plain(co2)+" ppm",
	)
	return v
}

// nonZero treats an unset (zero) threshold as missing.
func nonZero(p *float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	return p
}

func plain(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
