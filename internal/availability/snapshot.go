// internal/availability/snapshot.go
package availability

import "time"

// Snapshot is the cached answer to "which sensor pages exist".
// Both flags always come from the same remote check.
type Snapshot struct {
	SensorsAvailable  bool
	SpecificAvailable bool
	CapturedAt        time.Time
}

// FailOpen is applied whenever availability cannot be determined.
// It is never written to the cache.
func FailOpen(at time.Time) Snapshot {
	return Snapshot{
		SensorsAvailable:  true,
		SpecificAvailable: true,
		CapturedAt:        at,
	}
}

// Source says where a Result's snapshot came from.
type Source uint8

const (
	SourceUnknown  Source = 0
	SourceCache    Source = 1
	SourceRemote   Source = 2
	SourceFailOpen Source = 3
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	case SourceFailOpen:
		return "fail-open"
	default:
		return "unknown"
	}
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Source) UnmarshalText(b []byte) error {
	switch string(b) {
	case "cache":
		*s = SourceCache
	case "remote":
		*s = SourceRemote
	case "fail-open":
		*s = SourceFailOpen
	default:
		*s = SourceUnknown
	}
	return nil
}

// Result is produced by one availability check.
type Result struct {
	Snapshot Snapshot
	Source   Source
	At       time.Time     // when the check ran
	Age      time.Duration // At - Snapshot.CapturedAt, zero for fail-open
	Err      error         // non-nil only for SourceFailOpen
}

// View is the JSON shape of a Result.
type View struct {
	SensorsAvailable  bool   `json:"sensors_available"`
	SpecificAvailable bool   `json:"specific_available"`
	CapturedAtMs      int64  `json:"captured_at_ms"`
	Source            Source `json:"source"`
	CheckedAtMs       int64  `json:"checked_at_ms"`
	AgeMs             int64  `json:"age_ms"`
	Error             string `json:"error,omitempty"`
}

func (r Result) View() View {
	v := View{
		SensorsAvailable:  r.Snapshot.SensorsAvailable,
		SpecificAvailable: r.Snapshot.SpecificAvailable,
		CapturedAtMs:      r.Snapshot.CapturedAt.UnixMilli(),
		Source:            r.Source,
		CheckedAtMs:       r.At.UnixMilli(),
		AgeMs:             r.Age.Milliseconds(),
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return v
}
