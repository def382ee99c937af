package factory

import (
	"github.com/automoto/digrunner/archetypes"
	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the level entity with a fresh occupancy index. Colliders
// are built later by the collider system.
func CreateLevel(ecs *ecs.ECS, level *leveldata.Level) *donburi.Entry {
	entry := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(entry, components.LevelData{
		ID:    level.ID,
		Data:  level,
		Index: gridmesh.NewIndex(level.CellsWide, level.CellsHigh, level.Cells),
		Ready: true,
	})
	components.LevelColliders.SetValue(entry, components.LevelCollidersData{})
	return entry
}

// worldRect converts a mesh rectangle of a level into a world-space box.
func worldRect(level *leveldata.Level, rect gridmesh.MeshRect) (center, half physics.Vec) {
	cx, cy := rect.Center(level.GridSize)
	hx, hy := rect.HalfExtents(level.GridSize)
	return physics.Vec{X: level.OriginX + cx, Y: level.OriginY + cy}, physics.Vec{X: hx, Y: hy}
}

// CreateWallCollider spawns a static friction box for one mesh rectangle.
func CreateWallCollider(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, rect gridmesh.MeshRect) *donburi.Entry {
	level := components.Level.Get(levelEntry).Data
	wall := archetypes.Wall.Spawn(ecs)

	center, half := worldRect(level, rect)
	h := engine.AddBody(physics.BodyDef{
		Owner:       wall.Entity(),
		Kind:        physics.Static,
		Center:      center,
		HalfExtents: half,
		Friction:    cfg.Level.WallFriction,
		Category:    physics.CategoryWall,
		Mask:        physics.CategoryAll,
	})

	components.Collider.SetValue(wall, components.ColliderData{Rect: rect})
	components.Body.SetValue(wall, components.BodyData{Handle: h})
	components.Owner.SetValue(wall, components.OwnerData{Level: levelEntry.Entity()})
	return wall
}

// CreateLadder spawns a climbable sensor over one merged ladder rectangle.
func CreateLadder(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, rect gridmesh.MeshRect) *donburi.Entry {
	level := components.Level.Get(levelEntry).Data
	ladder := archetypes.Ladder.Spawn(ecs)

	center, half := worldRect(level, rect)
	h := engine.AddBody(physics.BodyDef{
		Owner:       ladder.Entity(),
		Kind:        physics.Static,
		Center:      center,
		HalfExtents: half,
		Sensor:      true,
		Category:    physics.CategoryTrigger,
		Mask:        physics.CategoryPlayer,
	})

	components.Collider.SetValue(ladder, components.ColliderData{Rect: rect})
	components.Body.SetValue(ladder, components.BodyData{Handle: h, Sensor: true})
	components.Owner.SetValue(ladder, components.OwnerData{Level: levelEntry.Entity()})
	return ladder
}

// IsWallCollider reports whether entry is a merged wall collider.
func IsWallCollider(entry *donburi.Entry) bool {
	return entry.HasComponent(tags.Wall) && entry.HasComponent(components.Collider)
}
