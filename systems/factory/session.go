package factory

import (
	"time"

	"github.com/automoto/digrunner/archetypes"
	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateSession(ecs *ecs.ECS, machine *streaming.Machine) *donburi.Entry {
	session := archetypes.Session.Spawn(ecs)
	components.Streaming.SetValue(session, components.StreamingData{Machine: machine})
	components.Clock.SetValue(session, components.ClockData{
		Delta: time.Duration(cfg.TickDelta() * float64(time.Second)),
	})
	return session
}

func CreateSpace(ecs *ecs.ECS, engine physics.Engine) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{Engine: engine})
	return space
}

func CreateProject(ecs *ecs.ECS, world *leveldata.World, source leveldata.Source) *donburi.Entry {
	project := archetypes.Project.Spawn(ecs)
	components.Project.SetValue(project, components.ProjectData{World: world, Source: source})
	return project
}
