package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLevelSelection selects the level the player stands in. The selection
// is kept while the player is outside every level.
func UpdateLevelSelection(e *ecs.ECS) {
	s := Session(e)
	player, ok := tags.Player.First(e.World)
	if s == nil || !ok {
		return
	}
	pos, ok := Position(e, player)
	if !ok {
		return
	}
	components.Level.Each(e.World, func(entry *donburi.Entry) {
		level := components.Level.Get(entry)
		if level.Contains(pos.X, pos.Y) {
			s.Selected = level.ID
		}
	})
}

// SelectedLevel returns the entry of the selected level, nil if none.
func SelectedLevel(e *ecs.ECS) *donburi.Entry {
	s := Session(e)
	if s == nil || s.Selected == "" {
		return nil
	}
	var found *donburi.Entry
	components.Level.Each(e.World, func(entry *donburi.Entry) {
		if found == nil && components.Level.Get(entry).ID == s.Selected {
			found = entry
		}
	})
	return found
}
