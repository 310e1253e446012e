// internal/writer/types.go
package writer

import "github.com/tamzrod/sensor-dashboard/internal/availability"

// StatusPlan is one Modbus status block destination.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
	TimeoutMs  int
}

// MQTTPlan is one MQTT topic destination.
type MQTTPlan struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// Plan is the fully-built export plan. Nil members are disabled.
type Plan struct {
	Status *StatusPlan
	MQTT   *MQTTPlan
}

// Writer delivers availability results somewhere outside the dashboard.
type Writer interface {
	Write(res availability.Result) error
}
