package factory

import (
	"github.com/automoto/digrunner/archetypes"
	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlayer spawns the player at a level object together with its ground
// sensor.
func CreatePlayer(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, obj leveldata.Object) *donburi.Entry {
	level := components.Level.Get(levelEntry).Data
	player := archetypes.Player.Spawn(ecs)

	half := physics.Vec{X: cfg.Player.CollisionWidth / 2, Y: cfg.Player.CollisionHeight / 2}
	h := engine.AddBody(physics.BodyDef{
		Owner:       player.Entity(),
		Kind:        physics.Dynamic,
		Center:      physics.Vec{X: level.OriginX + obj.X, Y: level.OriginY + obj.Y},
		HalfExtents: half,
		Friction:    cfg.Player.Friction,
		Category:    physics.CategoryPlayer,
		Mask:        physics.CategoryAll,
	})
	components.Body.SetValue(player, components.BodyData{Handle: h})
	components.Owner.SetValue(player, components.OwnerData{Level: levelEntry.Entity()})
	components.Movement.SetValue(player, components.MovementData{
		Speed:     cfg.Player.Speed,
		JumpSpeed: cfg.Player.JumpSpeed,
		FacingX:   1,
	})
	components.Life.SetValue(player, components.NewLife(cfg.Player.Life))
	components.Climber.SetValue(player, components.ClimberData{Intersecting: components.ContactSet{}})

	sensor := CreateGroundSensor(ecs, engine, player, half)
	components.GroundDetection.SetValue(player, components.GroundDetectionData{Sensor: sensor.Entity()})
	return player
}

// CreateGroundSensor attaches a thin sensor along the bottom edge of the
// detector's body. It reports walls, doors and enemies underfoot.
func CreateGroundSensor(ecs *ecs.ECS, engine physics.Engine, detector *donburi.Entry, detectorHalf physics.Vec) *donburi.Entry {
	sensor := archetypes.GroundSensor.Spawn(ecs)
	h := engine.AddSensor(components.Body.Get(detector).Handle, physics.SensorDef{
		Owner:       sensor.Entity(),
		Offset:      physics.Vec{Y: -detectorHalf.Y},
		HalfExtents: physics.Vec{X: detectorHalf.X / 2, Y: cfg.Player.SensorHeight / 2},
		Category:    physics.CategorySensor,
		Mask:        physics.CategoryWall | physics.CategoryEnemy,
	})
	components.Body.SetValue(sensor, components.BodyData{Handle: h, Sensor: true})
	components.GroundSensor.SetValue(sensor, components.GroundSensorData{
		Detector: detector.Entity(),
		Contacts: components.ContactSet{},
	})
	return sensor
}
