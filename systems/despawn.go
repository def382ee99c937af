package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Despawn removes every entity marked with DespawnPending.
func Despawn(e *ecs.ECS) {
	var doomed []donburi.Entity
	tags.DespawnPending.Each(e.World, func(entry *donburi.Entry) {
		doomed = append(doomed, entry.Entity())
	})
	for _, entity := range doomed {
		removeEntity(e, entity)
	}
}

// removeEntity deletes an entity together with its physics shapes and its
// ground sensor.
func removeEntity(e *ecs.ECS, entity donburi.Entity) {
	if !e.World.Valid(entity) {
		return
	}
	entry := e.World.Entry(entity)

	if entry.HasComponent(components.GroundDetection) {
		sensor := components.GroundDetection.Get(entry).Sensor
		if sensor != entity {
			removeEntity(e, sensor)
		}
	}
	if h := bodyHandle(entry); h != 0 {
		if eng := Engine(e); eng != nil {
			eng.Remove(h)
		}
	}
	logger.Debug("despawn", zap.Uint64("entity", uint64(entity)))
	e.World.Remove(entity)
}

// removeLevel deletes a level and every entity it owns.
func removeLevel(e *ecs.ECS, level donburi.Entity) {
	var owned []donburi.Entity
	components.Owner.Each(e.World, func(entry *donburi.Entry) {
		if components.Owner.Get(entry).Level == level {
			owned = append(owned, entry.Entity())
		}
	})
	for _, entity := range owned {
		removeEntity(e, entity)
	}
	removeEntity(e, level)
}
