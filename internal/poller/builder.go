// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/tamzrod/sensor-dashboard/internal/availability"
	cfg "github.com/tamzrod/sensor-dashboard/internal/config"
	"github.com/tamzrod/sensor-dashboard/internal/readings"
)

// BuildAvailability wires the availability checker to its tick interval.
// Assumes config has already been validated and normalized.
func BuildAvailability(a cfg.AvailabilityConfig, checker *availability.Checker) (*Poller[availability.Result], error) {
	return New[availability.Result](
		Config{
			Name:     "availability",
			Interval: time.Duration(a.IntervalMs) * time.Millisecond,
		},
		checker.Check,
	)
}

// BuildReadings wires the live-readings fetcher to its tick interval.
func BuildReadings(r cfg.ReadingsConfig, f *readings.Fetcher) (*Poller[readings.Result], error) {
	return New[readings.Result](
		Config{
			Name:     "readings",
			Interval: time.Duration(r.IntervalMs) * time.Millisecond,
		},
		f.Fetch,
	)
}
