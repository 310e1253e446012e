// internal/status/snapshot.go
package status

import "github.com/tamzrod/sensor-dashboard/internal/availability"

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health            uint16
	SensorsAvailable  uint16
	SpecificAvailable uint16
	Source            uint16
	CacheAgeSeconds   uint16
}

// FromResult projects one availability check onto the status block.
func FromResult(res availability.Result) Snapshot {
	s := Snapshot{
		Health:            HealthOK,
		SensorsAvailable:  boolReg(res.Snapshot.SensorsAvailable),
		SpecificAvailable: boolReg(res.Snapshot.SpecificAvailable),
		Source:            uint16(res.Source),
	}
	if res.Source == availability.SourceFailOpen {
		s.Health = HealthFailOpen
	}

	age := res.Age.Seconds()
	switch {
	case age <= 0:
		s.CacheAgeSeconds = 0
	case age >= MaxAgeSeconds:
		s.CacheAgeSeconds = MaxAgeSeconds
	default:
		s.CacheAgeSeconds = uint16(age)
	}
	return s
}

func boolReg(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
