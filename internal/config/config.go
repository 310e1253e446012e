// internal/config/config.go
package config

type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type DashboardConfig struct {
	Listen       string             `yaml:"listen"`
	Device       DeviceConfig       `yaml:"device"`
	Availability AvailabilityConfig `yaml:"availability"`
	Readings     ReadingsConfig     `yaml:"readings"`
	Nav          NavConfig          `yaml:"nav"`
	Exports      ExportsConfig      `yaml:"exports"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- AVAILABILITY ----

type AvailabilityConfig struct {
	ModulesPath    string `yaml:"modules_path"`
	SpecificModule string `yaml:"specific_module"` // e.g. SCD30
	TTLMs          int    `yaml:"ttl_ms"`
	IntervalMs     int    `yaml:"interval_ms"`
	CacheFile      string `yaml:"cache_file"` // empty => in-memory
}

// ---- READINGS ----

type ReadingsConfig struct {
	Path       string `yaml:"path"`
	IntervalMs int    `yaml:"interval_ms"`
	Disabled   bool   `yaml:"disabled"`
}

// ---- NAV ----

type NavConfig struct {
	SensorsGroupID  string `yaml:"sensors_group_id"`
	SpecificEntryID string `yaml:"specific_entry_id"`
}

// ---- EXPORTS ----

type ExportsConfig struct {
	Modbus *ModbusExportConfig `yaml:"modbus"` // optional, opt-in
	MQTT   *MQTTExportConfig   `yaml:"mqtt"`   // optional, opt-in
}

type ModbusExportConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	DeviceName string `yaml:"device_name"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

type MQTTExportConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
}
