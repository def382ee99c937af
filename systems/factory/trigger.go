package factory

import (
	"github.com/automoto/digrunner/archetypes"
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

func objectBox(level *leveldata.Level, obj leveldata.Object) (center, half physics.Vec) {
	return physics.Vec{X: level.OriginX + obj.X, Y: level.OriginY + obj.Y}, physics.Vec{X: obj.W / 2, Y: obj.H / 2}
}

// parseItems maps item names, keeping unknown names as ItemUnknown.
func parseItems(levelID string, obj leveldata.Object) []leveldata.Item {
	items := make([]leveldata.Item, 0, len(obj.Items))
	for _, name := range obj.Items {
		item, ok := leveldata.ParseItem(name)
		if !ok {
			logger.Warn("unknown item",
				zap.String("level", levelID),
				zap.Uint32("object", obj.ID),
				zap.String("item", name))
		}
		items = append(items, item)
	}
	return items
}

func addTriggerBody(engine physics.Engine, entry *donburi.Entry, level *leveldata.Level, obj leveldata.Object) {
	center, half := objectBox(level, obj)
	h := engine.AddBody(physics.BodyDef{
		Owner:       entry.Entity(),
		Kind:        physics.Static,
		Center:      center,
		HalfExtents: half,
		Sensor:      true,
		Category:    physics.CategoryTrigger,
		Mask:        physics.CategoryPlayer,
	})
	components.Body.SetValue(entry, components.BodyData{Handle: h, Sensor: true})
}

// CreateChest spawns a chest trigger holding the object's items.
func CreateChest(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, obj leveldata.Object) *donburi.Entry {
	level := components.Level.Get(levelEntry)
	chest := archetypes.Chest.Spawn(ecs)
	addTriggerBody(engine, chest, level.Data, obj)
	components.Owner.SetValue(chest, components.OwnerData{Level: levelEntry.Entity()})
	components.Items.SetValue(chest, components.ItemsData{List: parseItems(level.ID, obj)})
	return chest
}

// CreateDoor spawns a solid door that opens for a player holding its items.
func CreateDoor(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, obj leveldata.Object) *donburi.Entry {
	level := components.Level.Get(levelEntry)
	door := archetypes.Door.Spawn(ecs)

	center, half := objectBox(level.Data, obj)
	h := engine.AddBody(physics.BodyDef{
		Owner:       door.Entity(),
		Kind:        physics.Static,
		Center:      center,
		HalfExtents: half,
		Category:    physics.CategoryWall,
		Mask:        physics.CategoryAll,
	})
	components.Body.SetValue(door, components.BodyData{Handle: h})
	components.Owner.SetValue(door, components.OwnerData{Level: levelEntry.Entity()})
	components.Items.SetValue(door, components.ItemsData{List: parseItems(level.ID, obj)})
	return door
}

// CreateEnd spawns the trigger that finishes the level.
func CreateEnd(ecs *ecs.ECS, engine physics.Engine, levelEntry *donburi.Entry, obj leveldata.Object) *donburi.Entry {
	level := components.Level.Get(levelEntry)
	end := archetypes.End.Spawn(ecs)
	addTriggerBody(engine, end, level.Data, obj)
	components.Owner.SetValue(end, components.OwnerData{Level: levelEntry.Entity()})
	return end
}
