// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to build a minimal valid config quickly
func minimal(baseURL string) *Config {
	return &Config{
		Dashboard: DashboardConfig{
			Device: DeviceConfig{BaseURL: baseURL},
		},
	}
}

// ---- tests ----

func TestValidate_MinimalOK(t *testing.T) {
	if err := Validate(minimal("http://hid.local")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingBaseURL(t *testing.T) {
	if err := Validate(minimal("")); err == nil {
		t.Fatalf("expected error for missing base_url, got nil")
	}
}

func TestValidate_BadScheme(t *testing.T) {
	if err := Validate(minimal("ftp://hid.local")); err == nil {
		t.Fatalf("expected scheme error, got nil")
	}
}

func TestValidate_NegativeInterval(t *testing.T) {
	cfg := minimal("http://hid.local")
	cfg.Dashboard.Availability.IntervalMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_SameNavIDs(t *testing.T) {
	cfg := minimal("http://hid.local")
	cfg.Dashboard.Nav = NavConfig{SensorsGroupID: "x", SpecificEntryID: "x"}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected nav id collision error, got nil")
	}
}

func TestValidate_ModbusNonASCIIName(t *testing.T) {
	cfg := minimal("http://hid.local")
	cfg.Dashboard.Exports.Modbus = &ModbusExportConfig{
		Endpoint:   "127.0.0.1:502",
		DeviceName: "héllo",
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected device_name error, got nil")
	}
}

func TestValidate_MQTTWildcardTopic(t *testing.T) {
	cfg := minimal("http://hid.local")
	cfg.Dashboard.Exports.MQTT = &MQTTExportConfig{
		Broker: "tcp://localhost:1883",
		Topic:  "hid/+/availability",
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected wildcard topic error, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := minimal("http://hid.local/")
	cfg.Dashboard.Exports.Modbus = &ModbusExportConfig{
		Endpoint:   "127.0.0.1:502",
		DeviceName: "A-VERY-LONG-DEVICE-NAME",
	}
	Normalize(cfg)

	d := cfg.Dashboard
	if d.Device.BaseURL != "http://hid.local" {
		t.Fatalf("base_url not trimmed: %q", d.Device.BaseURL)
	}
	if d.Availability.TTLMs != DefaultTTLMs || d.Availability.IntervalMs != DefaultIntervalMs {
		t.Fatalf("availability defaults not applied: %+v", d.Availability)
	}
	if d.Availability.SpecificModule != "SCD30" {
		t.Fatalf("specific module default: got=%q", d.Availability.SpecificModule)
	}
	if d.Nav.SensorsGroupID != DefaultSensorsGroupID || d.Nav.SpecificEntryID != DefaultSpecificEntryID {
		t.Fatalf("nav defaults not applied: %+v", d.Nav)
	}
	if len(d.Exports.Modbus.DeviceName) != DeviceNameMaxChars {
		t.Fatalf("device_name not truncated: %q", d.Exports.Modbus.DeviceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	body := []byte("dashboard:\n  device:\n    base_url: http://from-file\n  availability:\n    specific_module: BME280\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv(EnvDeviceURL, "http://from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Dashboard.Device.BaseURL != "http://from-env" {
		t.Fatalf("env override not applied: %q", cfg.Dashboard.Device.BaseURL)
	}
	if cfg.Dashboard.Availability.SpecificModule != "BME280" {
		t.Fatalf("yaml value lost: %q", cfg.Dashboard.Availability.SpecificModule)
	}
}

func TestValidate_ModbusBaseSlotRange(t *testing.T) {
	cfg := minimal("http://hid.local")
	cfg.Dashboard.Exports.Modbus = &ModbusExportConfig{Endpoint: "127.0.0.1:502", BaseSlot: 3275}
	if err := Validate(cfg); err != nil {
		t.Fatalf("base_slot 3275 should fit: %v", err)
	}

	cfg.Dashboard.Exports.Modbus.BaseSlot = 3276
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected base_slot range error, got nil")
	}
}
