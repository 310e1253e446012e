// internal/status/constants.go
package status

// Availability Status Block layout constants.
// These values define the exported register layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per dashboard.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the availability health state.
const SlotHealthCode = 0

// SlotSensorsAvailable holds 1 when any sensor module is present.
const SlotSensorsAvailable = 1

// SlotSpecificAvailable holds 1 when the designated sensor module is present.
const SlotSpecificAvailable = 2

// SlotSource holds where the snapshot came from (see availability.Source).
const SlotSource = 3

// SlotCacheAgeSeconds holds the snapshot age in seconds, saturating.
const SlotCacheAgeSeconds = 4

// ---- RESERVED RANGE ----

// Slots 5–10 are reserved for future use.
const SlotReservedStart = 5
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// MaxAgeSeconds is the saturation value of SlotCacheAgeSeconds.
const MaxAgeSeconds = 65535

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state, before the first check.
const HealthUnknown uint16 = 0

// HealthOK means the flags were determined (from cache or device).
const HealthOK uint16 = 1

// HealthFailOpen means the device could not be asked and flags are forced on.
const HealthFailOpen uint16 = 2
