package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateWater flags swimmers whose center lies in a water cell of the selected
// level.
func UpdateWater(e *ecs.ECS) {
	var level *components.LevelData
	if entry := SelectedLevel(e); entry != nil {
		level = components.Level.Get(entry)
	}
	components.Swimmer.Each(e.World, func(entry *donburi.Entry) {
		swimmer := components.Swimmer.Get(entry)
		swimmer.InWater = false
		if level == nil {
			return
		}
		pos, ok := Position(e, entry)
		if !ok || !level.Contains(pos.X, pos.Y) {
			return
		}
		swimmer.InWater = level.Index.Is(level.GridCoordOf(pos.X, pos.Y), gridmesh.Water)
	})
}
