// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sensor-dashboard/internal/availability"
	"github.com/tamzrod/sensor-dashboard/internal/status"
)

// endpointClient is the exact contract the status writer uses.
// wmodbus.EndpointClient satisfies it.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// statusWriter delivers availability into a Modbus status block.
// It receives a result and writes it verbatim. No interpretation.
type statusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

// liveSlots are the slots rewritten incrementally, in write order.
var liveSlots = []struct {
	slot int
	name string
	get  func(status.Snapshot) uint16
}{
	{status.SlotHealthCode, "health", func(s status.Snapshot) uint16 { return s.Health }},
	{status.SlotSensorsAvailable, "sensors", func(s status.Snapshot) uint16 { return s.SensorsAvailable }},
	{status.SlotSpecificAvailable, "specific", func(s status.Snapshot) uint16 { return s.SpecificAvailable }},
	{status.SlotSource, "source", func(s status.Snapshot) uint16 { return s.Source }},
	{status.SlotCacheAgeSeconds, "age", func(s status.Snapshot) uint16 { return s.CacheAgeSeconds }},
}

// NewStatusWriter builds a status writer if status export is enabled.
// If plan.Status is nil, status is disabled.
func NewStatusWriter(plan Plan, cli endpointClient) (*statusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	return &statusWriter{
		plan:     plan.Status,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{Health: status.HealthUnknown},
		nameRegs: encodeDeviceNameRegs(plan.Status.DeviceName),
	}, true
}

func (sw *statusWriter) Write(res availability.Result) error {
	return sw.WriteStatus(status.FromResult(res))
}

// WriteStatus delivers a status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *statusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(unitID, baseAddr, sw.fullBlockRegs(s)); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string
	next := sw.last

	for _, ls := range liveSlots {
		want := ls.get(s)
		if ls.get(sw.last) == want {
			continue
		}
		if err := sw.cli.WriteRegisters(unitID, baseAddr+uint16(ls.slot), []uint16{want}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", ls.slot, ls.name, err))
			continue
		}
		setSlot(&next, ls.slot, want)
	}
	sw.last = next

	if len(errs) > 0 {
		// Partial failure: re-assert the whole block on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func setSlot(s *status.Snapshot, slot int, v uint16) {
	switch slot {
	case status.SlotHealthCode:
		s.Health = v
	case status.SlotSensorsAvailable:
		s.SensorsAvailable = v
	case status.SlotSpecificAvailable:
		s.SpecificAvailable = v
	case status.SlotSource:
		s.Source = v
	case status.SlotCacheAgeSeconds:
		s.CacheAgeSeconds = v
	}
}

func (sw *statusWriter) baseAddr() uint16 {
	// Each dashboard owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *statusWriter) fullBlockRegs(s status.Snapshot) []uint16 {
	// Live slots from the snapshot; reserved slots stay zero.
	regs := status.Encode(s)

	// Device name always lives at the end of the block
	for i := 0; i < status.SlotDeviceNameSlots && i < len(sw.nameRegs); i++ {
		regs[status.SlotDeviceNameStart+i] = sw.nameRegs[i]
	}

	return regs
}

// encodeDeviceNameRegs packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func encodeDeviceNameRegs(name string) []uint16 {
	out := make([]uint16, status.SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > status.DeviceNameMaxChars {
		b = b[:status.DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < status.DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
