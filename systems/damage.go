package systems

import (
	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdateStomp damages every enemy under the player's feet whenever the
// player's ground contacts change. Enemies with no life left are despawned.
func UpdateStomp(e *ecs.ECS) {
	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		sensorEntry := entryOf(e, components.GroundDetection.Get(entry).Sensor)
		if sensorEntry == nil {
			return
		}
		sensor := components.GroundSensor.Get(sensorEntry)
		if !sensor.Changed {
			return
		}
		for _, other := range sensor.Contacts.Sorted() {
			enemy := entryOf(e, other)
			if enemy == nil || !enemy.HasComponent(tags.Enemy) || enemy.HasComponent(tags.DespawnPending) {
				continue
			}
			life := components.Life.Get(enemy)
			life.Hit(cfg.Enemy.StompDamage)
			logger.Debug("stomp", zap.Uint64("enemy", uint64(other)), zap.Int("life", life.Current))
			if life.IsDead() {
				DespawnLater(e, other)
			}
		}
	})
}

func enemyDamage(e *ecs.ECS) func(donburi.Entity) (components.DamageData, bool) {
	return func(entity donburi.Entity) (components.DamageData, bool) {
		entry := entryOf(e, entity)
		if entry == nil || !entry.HasComponent(tags.Enemy) {
			return components.DamageData{}, false
		}
		return *components.Damage.Get(entry), true
	}
}

// UpdateEnemyHits applies the damage of the first enemy that touched the
// player this tick. An enemy being stomped in the same tick does no damage.
// A surviving player turns invulnerable to enemies; a dead one starts dying.
func UpdateEnemyHits(e *ecs.ECS) {
	player, err := single(e.World, tags.Player)
	if err != nil {
		return
	}
	if player.HasComponent(components.Dying) || IsInvulnerable(player) {
		return
	}

	var underfoot components.ContactSet
	if sensor := entryOf(e, components.GroundDetection.Get(player).Sensor); sensor != nil {
		underfoot = components.GroundSensor.Get(sensor).Contacts
	}

	lookup := enemyDamage(e)
	for _, ev := range events(e) {
		if ev.Kind != physics.Started {
			continue
		}
		damage, enemy, other, ok := physics.MatchEither(ev, lookup)
		if !ok || other != player.Entity() || underfoot.Contains(enemy) {
			continue
		}

		life := components.Life.Get(player)
		life.Hit(damage.Amount)
		logger.Info("player hit", zap.Int("damage", damage.Amount), zap.Int("life", life.Current))
		if life.IsDead() {
			startDying(e, player)
		} else {
			MakeInvulnerable(e, player, cfg.Player.Invulnerable, physics.CategoryEnemy)
		}
		return
	}
}

func startDying(e *ecs.ECS, entry *donburi.Entry) {
	entity := entry.Entity()
	Defer(e, func(w donburi.World) {
		if !w.Valid(entity) {
			return
		}
		target := w.Entry(entity)
		if target.HasComponent(components.Dying) {
			return
		}
		target.AddComponent(components.Dying)
		components.Dying.SetValue(target, components.DyingData{Timer: components.NewTimer(cfg.Player.DeathDelay)})
	})
}

// UpdateDying reports the player's death once the death delay has elapsed.
func UpdateDying(e *ecs.ECS) {
	dt := clock(e).Delta
	died := false
	components.Dying.Each(e.World, func(entry *donburi.Entry) {
		if components.Dying.Get(entry).Timer.Tick(dt) && entry.HasComponent(tags.Player) {
			died = true
		}
	})
	if died {
		if s := Session(e); s != nil {
			s.Machine.Die()
		}
	}
}
