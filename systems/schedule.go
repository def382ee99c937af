package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Phase orders the systems of one tick.
type Phase int

const (
	PhaseDespawn Phase = iota
	PhaseInput
	PhaseUpdate
	PhaseDetection
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseDespawn:
		return "despawn"
	case PhaseInput:
		return "input"
	case PhaseUpdate:
		return "update"
	case PhaseDetection:
		return "detection"
	}
	return "unknown"
}

// Schedule collects systems per phase and installs them on an ECS with
// ApplyDeferred barriers after the despawn, update and detection phases.
type Schedule struct {
	phases [phaseCount][]ecs.System
}

func NewSchedule() *Schedule {
	return &Schedule{}
}

func (s *Schedule) Add(p Phase, systems ...ecs.System) *Schedule {
	s.phases[p] = append(s.phases[p], systems...)
	return s
}

// Systems returns the flattened tick in execution order.
func (s *Schedule) Systems() []ecs.System {
	var out []ecs.System
	for p := Phase(0); p < phaseCount; p++ {
		out = append(out, s.phases[p]...)
		switch p {
		case PhaseDespawn, PhaseUpdate, PhaseDetection:
			out = append(out, ApplyDeferred)
		}
	}
	return out
}

func (s *Schedule) Install(e *ecs.ECS) {
	for _, system := range s.Systems() {
		e.AddSystem(system)
	}
}

// ApplyDeferred runs every queued structural change in push order. Changes
// queued while applying run in the same barrier.
func ApplyDeferred(e *ecs.ECS) {
	cmds := commands(e)
	if cmds == nil {
		return
	}
	for len(cmds.Pending) > 0 {
		pending := cmds.Pending
		cmds.Pending = nil
		for _, fn := range pending {
			fn(e.World)
		}
	}
}

// Defer queues fn for the next barrier. Without a session it runs at once.
func Defer(e *ecs.ECS, fn func(donburi.World)) {
	if cmds := commands(e); cmds != nil {
		cmds.Push(fn)
		return
	}
	fn(e.World)
}

// DespawnLater marks an entity for the next despawn phase.
func DespawnLater(e *ecs.ECS, entity donburi.Entity) {
	Defer(e, func(w donburi.World) {
		if !w.Valid(entity) {
			return
		}
		entry := w.Entry(entity)
		if !entry.HasComponent(tags.DespawnPending) {
			entry.AddComponent(tags.DespawnPending)
		}
	})
}

func commands(e *ecs.ECS) *components.CommandsData {
	entry, ok := components.Commands.First(e.World)
	if !ok {
		return nil
	}
	return components.Commands.Get(entry)
}

// DefaultSchedule is the simulation tick. Gameplay systems only run while the
// level is Running; streaming, collider bookkeeping and contact tracking always
// run so nothing stale survives a pause or a reload.
func DefaultSchedule() *Schedule {
	return NewSchedule().
		Add(PhaseDespawn,
			Despawn,
		).
		Add(PhaseInput,
			AdvanceClock,
			UpdateControl,
		).
		Add(PhaseUpdate,
			UpdateStreaming,
			UpdateFade,
			WhenRunning(UpdateLevelSelection),
			WhenRunning(UpdateWater),
			WhenRunning(UpdateDig),
			WhenRunning(UpdatePlayerMovement),
			WhenRunning(UpdatePatrol),
			WhenRunning(UpdateInvulnerable),
			WhenRunning(UpdateDying),
			UpdateTemporary,
			UpdateColliders,
			WhenRunning(StepPhysics),
		).
		Add(PhaseDetection,
			DrainEvents,
			UpdateGroundContacts,
			UpdateGroundDetection,
			UpdateClimbRange,
			WhenRunning(UpdateStomp),
			WhenRunning(UpdateEnemyHits),
			WhenRunning(UpdateChests),
			WhenRunning(UpdateDoors),
			WhenRunning(UpdateEndTriggers),
		)
}

// AdvanceClock counts ticks.
func AdvanceClock(e *ecs.ECS) {
	if entry, ok := components.Clock.First(e.World); ok {
		components.Clock.Get(entry).Tick++
	}
}
