package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func events(e *ecs.ECS) []physics.Event {
	if sp := space(e); sp != nil {
		return sp.Events
	}
	return nil
}

// entryOf returns the entry of a live entity, nil once it was removed.
func entryOf(e *ecs.ECS, entity donburi.Entity) *donburi.Entry {
	if !e.World.Valid(entity) {
		return nil
	}
	return e.World.Entry(entity)
}

// UpdateGroundContacts feeds started and stopped events into the ground
// sensors. A contact starts only against a solid body; a stop always removes,
// even when the other body is already gone.
func UpdateGroundContacts(e *ecs.ECS) {
	components.GroundSensor.Each(e.World, func(entry *donburi.Entry) {
		components.GroundSensor.Get(entry).Changed = false
	})

	for _, ev := range events(e) {
		trackGround(e, ev, ev.A, ev.B)
		trackGround(e, ev, ev.B, ev.A)
	}
}

func trackGround(e *ecs.ECS, ev physics.Event, sensorEntity, other donburi.Entity) {
	sensorEntry := entryOf(e, sensorEntity)
	if sensorEntry == nil || !sensorEntry.HasComponent(components.GroundSensor) {
		return
	}
	sensor := components.GroundSensor.Get(sensorEntry)

	switch ev.Kind {
	case physics.Started:
		otherEntry := entryOf(e, other)
		if other == sensor.Detector || otherEntry == nil || !otherEntry.HasComponent(components.Body) {
			return
		}
		if !components.Body.Get(otherEntry).Solid() {
			return
		}
		if sensor.Contacts.Insert(other) {
			sensor.Changed = true
		}
	case physics.Stopped:
		if sensor.Contacts.Remove(other) {
			sensor.Changed = true
		}
	}
}

// UpdateGroundDetection derives OnGround from the sensor contacts and marks the
// landing and take-off edges. Only sensors whose contacts changed this tick are
// read; a missing sensor means airborne. Landing ends a jump.
func UpdateGroundDetection(e *ecs.ECS) {
	components.GroundDetection.Each(e.World, func(entry *donburi.Entry) {
		gd := components.GroundDetection.Get(entry)
		was := gd.OnGround

		on := false
		if sensorEntry := entryOf(e, gd.Sensor); sensorEntry != nil && sensorEntry.HasComponent(components.GroundSensor) {
			sensor := components.GroundSensor.Get(sensorEntry)
			if !sensor.Changed {
				gd.Landed = false
				gd.LeftGround = false
				return
			}
			on = !sensor.Contacts.Empty()
		}
		gd.OnGround = on
		gd.Landed = on && !was
		gd.LeftGround = !on && was

		if gd.Landed && entry.HasComponent(components.Movement) {
			components.Movement.Get(entry).Jumping = false
		}
	})
}

// UpdateClimbRange tracks the climbable areas each climber overlaps.
func UpdateClimbRange(e *ecs.ECS) {
	for _, ev := range events(e) {
		trackClimbable(e, ev, ev.A, ev.B)
		trackClimbable(e, ev, ev.B, ev.A)
	}
}

func trackClimbable(e *ecs.ECS, ev physics.Event, climberEntity, other donburi.Entity) {
	climberEntry := entryOf(e, climberEntity)
	if climberEntry == nil || !climberEntry.HasComponent(components.Climber) {
		return
	}
	climber := components.Climber.Get(climberEntry)

	switch ev.Kind {
	case physics.Started:
		if otherEntry := entryOf(e, other); otherEntry != nil && otherEntry.HasComponent(tags.Climbable) {
			climber.Intersecting.Insert(other)
		}
	case physics.Stopped:
		climber.Intersecting.Remove(other)
	}
}
