package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// RebuildColliders replaces the wall colliders of a level with a fresh mesh of
// its live solid cells. The new colliders exist before the old ones are
// removed, so a body resting on an untouched wall keeps a ground contact the
// whole time. Ladders are built with the first mesh and never change.
//
// A level that is not ready keeps its rebuild pending: it is marked dirty and
// RebuildColliders reports false.
func RebuildColliders(e *ecs.ECS, levelEntry *donburi.Entry) bool {
	eng := Engine(e)
	if eng == nil || !levelEntry.Valid() {
		return false
	}
	level := components.Level.Get(levelEntry)
	if !level.Ready || level.Index == nil {
		components.LevelColliders.Get(levelEntry).Dirty = true
		return false
	}

	rects := gridmesh.Build(level.Index)
	fresh := make([]donburi.Entity, 0, len(rects))
	for _, rect := range rects {
		fresh = append(fresh, factory.CreateWallCollider(e, eng, levelEntry, rect).Entity())
	}

	lc := components.LevelColliders.Get(levelEntry)
	old := lc.Colliders
	lc.Colliders = fresh
	if !lc.Built {
		lc.Ladders = buildLadders(e, levelEntry)
	}
	lc.Dirty = false
	lc.Built = true
	lc.Generation++
	generation := lc.Generation

	for _, entity := range old {
		removeEntity(e, entity)
	}

	if n := notices(e); n != nil {
		n.CollidersChanged = append(n.CollidersChanged, components.CollidersChanged{
			LevelID:    level.ID,
			Count:      len(fresh),
			Generation: generation,
		})
	}
	logger.Debug("colliders rebuilt",
		zap.String("level", level.ID),
		zap.Int("count", len(fresh)),
		zap.Int("removed", len(old)),
		zap.Int("generation", generation))
	return true
}

func buildLadders(e *ecs.ECS, levelEntry *donburi.Entry) []donburi.Entity {
	level := components.Level.Get(levelEntry)
	cells := make(map[gridmesh.GridCoord]struct{})
	for _, c := range level.Index.Cells(gridmesh.Ladder) {
		cells[c] = struct{}{}
	}
	if len(cells) == 0 {
		return nil
	}

	eng := Engine(e)
	var ladders []donburi.Entity
	for _, rect := range gridmesh.BuildCells(level.Index.Width(), level.Index.Height(), cells) {
		ladders = append(ladders, factory.CreateLadder(e, eng, levelEntry, rect).Entity())
	}
	return ladders
}

// UpdateColliders rebuilds every level whose occupancy changed this tick.
func UpdateColliders(e *ecs.ECS) {
	var dirty []*donburi.Entry
	components.LevelColliders.Each(e.World, func(entry *donburi.Entry) {
		lc := components.LevelColliders.Get(entry)
		if lc.Built && lc.Dirty {
			dirty = append(dirty, entry)
		}
	})
	for _, entry := range dirty {
		RebuildColliders(e, entry)
	}
}
