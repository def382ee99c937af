package systems

import (
	"github.com/yohamta/donburi/ecs"
)

// StepPhysics advances the engine by one fixed tick. It runs last in the
// update phase so detection sees the events of this tick's step.
func StepPhysics(e *ecs.ECS) {
	eng := Engine(e)
	if eng == nil {
		return
	}
	eng.Step(clock(e).Seconds())
}

// DrainEvents moves the engine's queued events onto the space for the
// detection systems. Events of removed bodies are drained even while the game
// is not running so nothing stale reaches the next tick.
func DrainEvents(e *ecs.ECS) {
	sp := space(e)
	if sp == nil || sp.Engine == nil {
		return
	}
	sp.Events = sp.Engine.Drain()
}
