// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/sensor-dashboard/internal/config"
	wmodbus "github.com/tamzrod/sensor-dashboard/internal/writer/modbus"
	wmqtt "github.com/tamzrod/sensor-dashboard/internal/writer/mqtt"
)

// BuildPlan converts the exports config into a Writer Plan.
// Assumes config has already been validated and normalized.
func BuildPlan(e cfg.ExportsConfig) Plan {
	var plan Plan

	if m := e.Modbus; m != nil {
		plan.Status = &StatusPlan{
			Endpoint:   m.Endpoint,
			UnitID:     m.UnitID,
			BaseSlot:   m.BaseSlot,
			DeviceName: m.DeviceName,
			TimeoutMs:  m.TimeoutMs,
		}
	}

	if q := e.MQTT; q != nil {
		plan.MQTT = &MQTTPlan{
			Broker:   q.Broker,
			ClientID: q.ClientID,
			Username: q.Username,
			Password: q.Password,
			Topic:    q.Topic,
		}
	}

	return plan
}

// Build sets up every enabled export and returns one fan-out Writer.
// Endpoints are not dialed here; an export that is down surfaces as a
// Write error and is retried on the next result.
// With nothing enabled the writer is a no-op.
func Build(plan Plan) (Writer, func() error, error) {
	var named []Named
	var closers []func() error

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	if sp := plan.Status; sp != nil {
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: sp.Endpoint,
			Timeout:  time.Duration(sp.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		closers = append(closers, c.Close)

		sw, _ := NewStatusWriter(plan, c)
		named = append(named, Named{Name: "modbus", Writer: sw})
	}

	if mp := plan.MQTT; mp != nil {
		p, err := wmqtt.New(wmqtt.Config{
			Broker:   mp.Broker,
			ClientID: mp.ClientID,
			Username: mp.Username,
			Password: mp.Password,
			Topic:    mp.Topic,
		})
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		closers = append(closers, p.Close)
		named = append(named, Named{Name: "mqtt", Writer: p})
	}

	return New(named...), closeAll, nil
}
