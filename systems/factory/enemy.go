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

// CreateEnemy spawns a kinematic enemy. A non-zero patrol distance makes it
// walk between its spawn point and that many units to the right.
func CreateEnemy(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, obj leveldata.Object) *donburi.Entry {
	level := components.Level.Get(levelEntry).Data
	enemy := archetypes.Enemy.Spawn(ecs)

	start := physics.Vec{X: level.OriginX + obj.X, Y: level.OriginY + obj.Y}
	h := engine.AddBody(physics.BodyDef{
		Owner:       enemy.Entity(),
		Kind:        physics.Kinematic,
		Center:      start,
		HalfExtents: physics.Vec{X: cfg.Enemy.CollisionWidth / 2, Y: cfg.Enemy.CollisionHeight / 2},
		Category:    physics.CategoryEnemy,
		Mask:        physics.CategoryAll,
	})
	components.Body.SetValue(enemy, components.BodyData{Handle: h})
	components.Owner.SetValue(enemy, components.OwnerData{Level: levelEntry.Entity()})
	components.Movement.SetValue(enemy, components.MovementData{Speed: cfg.Enemy.Speed, FacingX: 1})
	components.Life.SetValue(enemy, components.NewLife(cfg.Enemy.Life))
	components.Damage.SetValue(enemy, components.DamageData{Amount: cfg.Enemy.Damage})

	patrol := components.PatrolData{Points: []physics.Vec{start}, Forward: true}
	if obj.Patrol != 0 {
		patrol.Points = append(patrol.Points, physics.Vec{X: start.X + obj.Patrol, Y: start.Y})
		patrol.Index = 1
	}
	components.Patrol.SetValue(enemy, patrol)
	return enemy
}
