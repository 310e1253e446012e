// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tamzrod/sensor-dashboard/internal/status"
)

// maxBaseSlot keeps the whole status block inside the 16-bit address space.
const maxBaseSlot = (65535 - status.SlotsPerDevice) / status.SlotsPerDevice

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are allowed wherever Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	d := cfg.Dashboard

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if d.Device.BaseURL == "" {
		return fmt.Errorf("device: base_url is required")
	}
	u, err := url.Parse(d.Device.BaseURL)
	if err != nil {
		return fmt.Errorf("device: base_url %q: %w", d.Device.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("device: base_url %q must use http or https", d.Device.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("device: base_url %q has no host", d.Device.BaseURL)
	}
	if d.Device.TimeoutMs < 0 {
		return fmt.Errorf("device: timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// AVAILABILITY + READINGS
	// ------------------------------------------------------------

	a := d.Availability
	if a.TTLMs < 0 {
		return fmt.Errorf("availability: ttl_ms must be >= 0")
	}
	if a.IntervalMs < 0 {
		return fmt.Errorf("availability: interval_ms must be >= 0")
	}
	if a.ModulesPath != "" && !strings.HasPrefix(a.ModulesPath, "/") {
		return fmt.Errorf("availability: modules_path %q must start with /", a.ModulesPath)
	}
	if strings.ContainsAny(a.SpecificModule, " \t\r\n") {
		return fmt.Errorf("availability: specific_module %q must not contain whitespace", a.SpecificModule)
	}

	r := d.Readings
	if r.IntervalMs < 0 {
		return fmt.Errorf("readings: interval_ms must be >= 0")
	}
	if r.Path != "" && !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("readings: path %q must start with /", r.Path)
	}

	// ------------------------------------------------------------
	// NAV
	// ------------------------------------------------------------

	if d.Nav.SensorsGroupID != "" && d.Nav.SensorsGroupID == d.Nav.SpecificEntryID {
		return fmt.Errorf("nav: sensors_group_id and specific_entry_id must differ (both %q)", d.Nav.SensorsGroupID)
	}

	// ------------------------------------------------------------
	// EXPORTS (OPT-IN)
	// ------------------------------------------------------------

	if m := d.Exports.Modbus; m != nil {
		if m.Endpoint == "" {
			return fmt.Errorf("exports.modbus: endpoint is required")
		}
		if m.BaseSlot > maxBaseSlot {
			return fmt.Errorf("exports.modbus: base_slot %d out of range (max %d)", m.BaseSlot, maxBaseSlot)
		}
		// device_name sanity (ASCII only)
		for i := 0; i < len(m.DeviceName); i++ {
			if m.DeviceName[i] > 0x7F {
				return fmt.Errorf("exports.modbus: device_name must contain ASCII characters only")
			}
		}
		if m.TimeoutMs < 0 {
			return fmt.Errorf("exports.modbus: timeout_ms must be >= 0")
		}
	}

	if q := d.Exports.MQTT; q != nil {
		if q.Broker == "" {
			return fmt.Errorf("exports.mqtt: broker is required")
		}
		if q.Topic == "" {
			return fmt.Errorf("exports.mqtt: topic is required")
		}
		if strings.ContainsAny(q.Topic, "+#") {
			return fmt.Errorf("exports.mqtt: topic %q must not contain wildcards", q.Topic)
		}
	}

	return nil
}
