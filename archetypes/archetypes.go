package archetypes

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Session = newArchetype(
		components.Streaming,
		components.Clock,
		components.Control,
		components.Commands,
		components.Notices,
	)
	Space = newArchetype(
		components.Space,
	)
	Project = newArchetype(
		components.Project,
	)
	Level = newArchetype(
		components.Level,
		components.LevelColliders,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Collider,
		components.Body,
		components.Owner,
	)
	Ladder = newArchetype(
		tags.Climbable,
		components.Collider,
		components.Body,
		components.Owner,
	)
	Player = newArchetype(
		tags.Player,
		components.Body,
		components.Owner,
		components.Movement,
		components.Intent,
		components.Life,
		components.Items,
		components.GroundDetection,
		components.Climber,
		components.Swimmer,
	)
	GroundSensor = newArchetype(
		components.GroundSensor,
		components.Body,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Body,
		components.Owner,
		components.Movement,
		components.Life,
		components.Damage,
		components.Patrol,
		components.Swimmer,
	)
	Chest = newArchetype(
		tags.Chest,
		components.Body,
		components.Owner,
		components.Items,
	)
	Door = newArchetype(
		tags.Door,
		components.Body,
		components.Owner,
		components.Items,
	)
	End = newArchetype(
		tags.End,
		components.Body,
		components.Owner,
	)
	Fader = newArchetype(
		tags.Fader,
		components.Fade,
	)
	Popup = newArchetype(
		components.Popup,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.World.Create(
		append(a.components, cs...)...,
	))
	return e
}
