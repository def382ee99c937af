package systems

import (
	"time"

	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// MakeInvulnerable clears categories from the entity's collision mask for d.
// Calling it again while the window is open restarts the timer.
func MakeInvulnerable(e *ecs.ECS, entry *donburi.Entry, d time.Duration, cleared physics.Category) {
	eng := Engine(e)
	h := bodyHandle(entry)
	if eng == nil || h == 0 {
		return
	}
	if entry.HasComponent(components.Invulnerable) {
		components.Invulnerable.Get(entry).Timer.Reset()
		return
	}

	saved := eng.Mask(h)
	eng.SetMask(h, saved&^cleared)

	entity := entry.Entity()
	Defer(e, func(w donburi.World) {
		if !w.Valid(entity) {
			return
		}
		target := w.Entry(entity)
		if target.HasComponent(components.Invulnerable) {
			return
		}
		target.AddComponent(components.Invulnerable)
		components.Invulnerable.SetValue(target, components.InvulnerableData{
			Timer:     components.NewTimer(d),
			SavedMask: saved,
			Cleared:   cleared,
		})
	})
}

// IsInvulnerable reports whether the entity's mask is currently reduced.
func IsInvulnerable(entry *donburi.Entry) bool {
	return entry.HasComponent(components.Invulnerable)
}

// UpdateInvulnerable restores the saved mask once a window elapses.
func UpdateInvulnerable(e *ecs.ECS) {
	dt := clock(e).Delta
	var done []*donburi.Entry
	components.Invulnerable.Each(e.World, func(entry *donburi.Entry) {
		if components.Invulnerable.Get(entry).Timer.Tick(dt) {
			done = append(done, entry)
		}
	})

	eng := Engine(e)
	for _, entry := range done {
		inv := components.Invulnerable.Get(entry)
		if h := bodyHandle(entry); eng != nil && h != 0 {
			eng.SetMask(h, inv.SavedMask)
		}
		entity := entry.Entity()
		Defer(e, func(w donburi.World) {
			if w.Valid(entity) {
				w.Entry(entity).RemoveComponent(components.Invulnerable)
			}
		})
	}
}
