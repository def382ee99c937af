package systems

import (
	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/systems/factory"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// withTag returns a lookup matching live entities that carry tag and have not
// been marked for despawn.
func withTag(e *ecs.ECS, tag *donburi.ComponentType[donburi.Tag]) func(donburi.Entity) (*donburi.Entry, bool) {
	return func(entity donburi.Entity) (*donburi.Entry, bool) {
		entry := entryOf(e, entity)
		if entry == nil || !entry.HasComponent(tag) || entry.HasComponent(tags.DespawnPending) {
			return nil, false
		}
		return entry, true
	}
}

// playerStarts calls fn for every entity with tag that started touching the
// player this tick.
func playerStarts(e *ecs.ECS, tag *donburi.ComponentType[donburi.Tag], fn func(player, other *donburi.Entry)) {
	player, err := single(e.World, tags.Player)
	if err != nil {
		return
	}
	lookup := withTag(e, tag)
	for _, ev := range events(e) {
		if ev.Kind != physics.Started {
			continue
		}
		other, _, p, ok := physics.MatchEither(ev, lookup)
		if !ok || p != player.Entity() {
			continue
		}
		fn(player, other)
	}
}

// ShowPopup spawns a popup and moves the session into ShowingPopup.
func ShowPopup(e *ecs.ECS, title, text string, items []leveldata.Item) {
	var timer *components.Timer
	if cfg.Streaming.PopupTimeout > 0 {
		t := components.NewTimer(cfg.Streaming.PopupTimeout)
		timer = &t
	}
	Defer(e, func(donburi.World) {
		factory.CreatePopup(e, title, text, items, timer)
		if s := Session(e); s != nil {
			s.Machine.ShowPopup()
		}
	})
}

// UpdateChests hands a chest's items to the player who touches it and removes
// the chest.
func UpdateChests(e *ecs.ECS) {
	playerStarts(e, tags.Chest, func(player, chest *donburi.Entry) {
		found := components.Items.Get(chest).List
		components.Items.Get(player).Add(found...)
		logger.Info("chest opened", zap.Int("items", len(found)))
		DespawnLater(e, chest.Entity())
		ShowPopup(e, "Chest opened", "You found", found)
	})
}

// UpdateDoors opens a door for a player holding every required item and
// consumes them. Otherwise the required items are shown.
func UpdateDoors(e *ecs.ECS) {
	playerStarts(e, tags.Door, func(player, door *donburi.Entry) {
		required := components.Items.Get(door).List
		inventory := components.Items.Get(player)
		if !inventory.ContainsAll(required) {
			ShowPopup(e, "Closed door", "You should have the following items", required)
			return
		}
		inventory.RemoveAll(required)
		logger.Info("door opened")
		DespawnLater(e, door.Entity())
	})
}

// UpdateEndTriggers finishes the level when the player reaches an end.
func UpdateEndTriggers(e *ecs.ECS) {
	ended := false
	playerStarts(e, tags.End, func(_, _ *donburi.Entry) {
		ended = true
	})
	if !ended {
		return
	}
	if s := Session(e); s != nil && s.Machine.EndLevel() {
		logger.Info("level ended", zap.String("level", s.Selected))
	}
}
