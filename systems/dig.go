package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdateDig removes the destructible cell diagonally below the player on the
// requested side and marks the level for a collider rebuild.
func UpdateDig(e *ecs.ECS) {
	player, ok := tags.Player.First(e.World)
	if !ok || player.HasComponent(components.Dying) {
		return
	}
	intent := components.Intent.Get(player)
	if !intent.DigLeft && !intent.DigRight {
		return
	}

	levelEntry := SelectedLevel(e)
	if levelEntry == nil {
		return
	}
	pos, ok := Position(e, player)
	if !ok {
		return
	}

	level := components.Level.Get(levelEntry)
	at := level.GridCoordOf(pos.X, pos.Y)
	target := gridmesh.GridCoord{X: at.X + 1, Y: at.Y - 1}
	if intent.DigLeft {
		target.X = at.X - 1
	}
	if !level.Index.Is(target, gridmesh.SolidDestructible) {
		return
	}

	level.Index.Destroy(target)
	components.LevelColliders.Get(levelEntry).Dirty = true
	logger.Debug("dig", zap.String("level", level.ID), zap.Int("x", target.X), zap.Int("y", target.Y))
}
