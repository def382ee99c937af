package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/automoto/digrunner/systems/factory"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// InstallHooks wires the streaming machine of the session to the world. Call it
// once after the session, space and project entities exist and before the
// machine is started.
func InstallHooks(e *ecs.ECS) error {
	entry, err := single(e.World, components.Streaming)
	if err != nil {
		return err
	}
	m := components.Streaming.Get(entry).Machine
	log := logger.Named("streaming")

	m.OnTransition(func(from, to streaming.State) {
		log.Info("state changed", zap.Stringer("from", from), zap.Stringer("to", to))
	})
	m.OnEnter(streaming.Loading, func() { beginLoading(e) })
	m.OnEnter(streaming.Running, func() { removeFaders(e) })

	for _, s := range []streaming.State{streaming.Paused, streaming.ShowingPopup} {
		m.OnEnter(s, func() { pauseTimers(e, true) })
		m.OnExit(s, func() { pauseTimers(e, false) })
	}
	m.OnEnter(streaming.Disabled, func() {
		if s := Session(e); s != nil {
			s.Selected = ""
		}
	})
	return nil
}

// beginLoading clears the previous level set and asks the source for every
// level of the project.
func beginLoading(e *ecs.ECS) {
	clearLevels(e)
	removeAll(e, components.Popup)

	if _, ok := tags.Fader.First(e.World); !ok {
		factory.CreateFader(e)
	}

	project, err := single(e.World, components.Project)
	if err != nil {
		logger.Error("no project to load", zap.Error(err))
		return
	}
	p := components.Project.Get(project)
	m := Session(e).Machine
	for _, ref := range p.World.Levels {
		m.SpawnTriggered(ref.ID)
		p.Source.Request(ref)
	}
}

// UpdateStreaming spawns levels as their files arrive, builds their colliders
// once every level is in, and advances the fade towards Running.
func UpdateStreaming(e *ecs.ECS) {
	s := Session(e)
	if s == nil {
		return
	}
	switch s.Machine.State() {
	case streaming.Loading:
		pollLevels(e, s.Machine)
	case streaming.Loaded:
		if !s.Machine.Fading() {
			var unbuilt []*donburi.Entry
			components.Level.Each(e.World, func(entry *donburi.Entry) {
				if !components.LevelColliders.Get(entry).Built {
					unbuilt = append(unbuilt, entry)
				}
			})
			built := true
			for _, entry := range unbuilt {
				built = RebuildColliders(e, entry) && built
			}
			if built {
				s.Machine.MeshBuilt()
			}
		}
		s.Machine.AdvanceFade(clock(e).Delta)
	}
}

func pollLevels(e *ecs.ECS, m *streaming.Machine) {
	project, err := single(e.World, components.Project)
	if err != nil {
		return
	}
	source := components.Project.Get(project).Source
	for _, id := range m.Pending() {
		level, ok, err := source.Poll(id)
		if !ok {
			continue
		}
		if err != nil {
			// The level stays pending; a restart requests it again.
			logger.Error("level failed to load", zap.String("level", id), zap.Error(err))
			continue
		}
		spawnLevel(e, level)
		m.Spawned(id)
	}
}

// spawnLevel creates the level entity and every object placed in it.
func spawnLevel(e *ecs.ECS, level *leveldata.Level) *donburi.Entry {
	for _, code := range level.UnknownCodes {
		logger.Warn("unknown cell code", zap.String("level", level.ID), zap.Int("code", code))
	}

	entry := factory.CreateLevel(e, level)
	eng := Engine(e)
	for _, obj := range level.Objects {
		switch obj.Class {
		case leveldata.ClassPlayer:
			if _, ok := tags.Player.First(e.World); ok {
				logger.Warn("extra player ignored", zap.String("level", level.ID), zap.Uint32("object", obj.ID))
				continue
			}
			factory.CreatePlayer(e, eng, entry, obj)
		case leveldata.ClassEnemy:
			factory.CreateEnemy(e, eng, entry, obj)
		case leveldata.ClassChest:
			factory.CreateChest(e, eng, entry, obj)
		case leveldata.ClassDoor:
			factory.CreateDoor(e, eng, entry, obj)
		case leveldata.ClassEnd:
			factory.CreateEnd(e, eng, entry, obj)
		default:
			logger.Warn("unknown object class",
				zap.String("level", level.ID),
				zap.Uint32("object", obj.ID),
				zap.String("class", obj.Class))
		}
	}
	logger.Debug("level spawned", zap.String("level", level.ID), zap.Int("objects", len(level.Objects)))
	return entry
}

// UpdateFade mirrors the machine's overlay opacity onto the fader.
func UpdateFade(e *ecs.ECS) {
	s := Session(e)
	if s == nil {
		return
	}
	alpha := s.Machine.FadeAlpha()
	tags.Fader.Each(e.World, func(entry *donburi.Entry) {
		components.Fade.Get(entry).Alpha = alpha
	})
}

func removeFaders(e *ecs.ECS) {
	tags.Fader.Each(e.World, func(entry *donburi.Entry) {
		DespawnLater(e, entry.Entity())
	})
}

// removeAll deletes every entity carrying c right away.
func removeAll[T any](e *ecs.ECS, c *donburi.ComponentType[T]) {
	var doomed []donburi.Entity
	c.Each(e.World, func(entry *donburi.Entry) {
		doomed = append(doomed, entry.Entity())
	})
	for _, entity := range doomed {
		removeEntity(e, entity)
	}
}

// pauseTimers freezes or resumes every gameplay timer.
func pauseTimers(e *ecs.ECS, paused bool) {
	set := func(t *components.Timer) {
		if paused {
			t.Pause()
		} else {
			t.Resume()
		}
	}
	components.Invulnerable.Each(e.World, func(entry *donburi.Entry) {
		set(&components.Invulnerable.Get(entry).Timer)
	})
	components.Dying.Each(e.World, func(entry *donburi.Entry) {
		set(&components.Dying.Get(entry).Timer)
	})
	components.Temporary.Each(e.World, func(entry *donburi.Entry) {
		// Popups time out while they are shown.
		if entry.HasComponent(components.Popup) {
			return
		}
		set(&components.Temporary.Get(entry).Timer)
	})
}
