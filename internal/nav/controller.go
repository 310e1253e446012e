// internal/nav/controller.go
package nav

import "github.com/tamzrod/sensor-dashboard/internal/availability"

// Surface is the presentation layer the controller drives.
type Surface interface {
	SetHidden(id string, hidden bool)
}

// Controller maps an availability snapshot onto two nav entries.
// It holds no state of its own.
type Controller struct {
	surface Surface
	groupID string
	entryID string
}

func NewController(surface Surface, groupID, entryID string) *Controller {
	return &Controller{surface: surface, groupID: groupID, entryID: entryID}
}

// Apply hides the sensors group iff no sensors are available and the
// specific-sensor entry iff that sensor is absent. Idempotent.
func (c *Controller) Apply(s availability.Snapshot) {
	c.surface.SetHidden(c.groupID, !s.SensorsAvailable)
	c.surface.SetHidden(c.entryID, !s.SpecificAvailable)
}
