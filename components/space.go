package components

import (
	"github.com/automoto/digrunner/physics"
	"github.com/yohamta/donburi"
)

// SpaceData holds the physics engine and the events drained from its last step.
type SpaceData struct {
	Engine physics.Engine
	Events []physics.Event
}

var Space = donburi.NewComponentType[SpaceData]()

// BodyData links an entity to its shape in the engine.
type BodyData struct {
	Handle physics.Handle
	Sensor bool
}

// Solid reports whether the body takes part in collision response.
func (b *BodyData) Solid() bool {
	return b.Handle != 0 && !b.Sensor
}

var Body = donburi.NewComponentType[BodyData]()
