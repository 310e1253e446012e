// internal/status/encode.go
package status

// Encode converts a Snapshot into the live slots of a status block.
// Reserved and device-name slots are left zero.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotSensorsAvailable] = s.SensorsAvailable
	regs[SlotSpecificAvailable] = s.SpecificAvailable
	regs[SlotSource] = s.Source
	regs[SlotCacheAgeSeconds] = s.CacheAgeSeconds

	return regs
}
