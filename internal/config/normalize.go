// internal/config/normalize.go
package config

import "strings"

// Defaults mirror the device firmware's own dashboard.
const (
	DefaultListen          = ":8080"
	DefaultTimeoutMs       = 3000
	DefaultModulesPath     = "/api/sensors/modules"
	DefaultSpecificModule  = "SCD30"
	DefaultTTLMs           = 60000
	DefaultIntervalMs      = 60000
	DefaultReadingsPath    = "/api/sensors/readings/latest"
	DefaultReadingsMs      = 5000
	DefaultSensorsGroupID  = "nav-sensors"
	DefaultSpecificEntryID = "scd30-nav-link"
	DefaultMQTTClientID    = "sensor-dashboard"
	DeviceNameMaxChars     = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	d := &cfg.Dashboard

	if d.Listen == "" {
		d.Listen = DefaultListen
	}

	d.Device.BaseURL = strings.TrimRight(d.Device.BaseURL, "/")
	if d.Device.TimeoutMs == 0 {
		d.Device.TimeoutMs = DefaultTimeoutMs
	}

	a := &d.Availability
	if a.ModulesPath == "" {
		a.ModulesPath = DefaultModulesPath
	}
	if a.SpecificModule == "" {
		a.SpecificModule = DefaultSpecificModule
	}
	if a.TTLMs == 0 {
		a.TTLMs = DefaultTTLMs
	}
	if a.IntervalMs == 0 {
		a.IntervalMs = DefaultIntervalMs
	}

	r := &d.Readings
	if r.Path == "" {
		r.Path = DefaultReadingsPath
	}
	if r.IntervalMs == 0 {
		r.IntervalMs = DefaultReadingsMs
	}

	if d.Nav.SensorsGroupID == "" {
		d.Nav.SensorsGroupID = DefaultSensorsGroupID
	}
	if d.Nav.SpecificEntryID == "" {
		d.Nav.SpecificEntryID = DefaultSpecificEntryID
	}

	if m := d.Exports.Modbus; m != nil {
		// ASCII already validated; truncate to the status block capacity.
		if len(m.DeviceName) > DeviceNameMaxChars {
			m.DeviceName = m.DeviceName[:DeviceNameMaxChars]
		}
		if m.TimeoutMs == 0 {
			m.TimeoutMs = DefaultTimeoutMs
		}
	}

	if q := d.Exports.MQTT; q != nil && q.ClientID == "" {
		q.ClientID = DefaultMQTTClientID
	}
}
