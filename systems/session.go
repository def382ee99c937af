package systems

import (
	"errors"
	"fmt"

	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	ErrNoEntity         = errors.New("no entity")
	ErrMultipleEntities = errors.New("multiple entities")
)

// single returns the only entity carrying c.
func single[T any](w donburi.World, c *donburi.ComponentType[T]) (*donburi.Entry, error) {
	var (
		found *donburi.Entry
		count int
	)
	c.Each(w, func(entry *donburi.Entry) {
		count++
		if found == nil {
			found = entry
		}
	})
	switch count {
	case 0:
		return nil, fmt.Errorf("%s: %w", c.Name(), ErrNoEntity)
	case 1:
		return found, nil
	default:
		return nil, fmt.Errorf("%s: %d found: %w", c.Name(), count, ErrMultipleEntities)
	}
}

// Session returns the session singleton, nil before the scene created it.
func Session(e *ecs.ECS) *components.StreamingData {
	entry, ok := components.Streaming.First(e.World)
	if !ok {
		return nil
	}
	return components.Streaming.Get(entry)
}

// State returns the streaming state, Disabled without a session.
func State(e *ecs.ECS) streaming.State {
	if s := Session(e); s != nil && s.Machine != nil {
		return s.Machine.State()
	}
	return streaming.Disabled
}

func IsRunning(e *ecs.ECS) bool {
	return State(e) == streaming.Running
}

// WhenRunning wraps a system to skip execution unless the level is running.
func WhenRunning(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if !IsRunning(e) {
			return
		}
		system(e)
	}
}

func clock(e *ecs.ECS) *components.ClockData {
	entry, ok := components.Clock.First(e.World)
	if !ok {
		return &components.ClockData{}
	}
	return components.Clock.Get(entry)
}

// Engine returns the physics engine, nil before the space exists.
func Engine(e *ecs.ECS) physics.Engine {
	entry, ok := components.Space.First(e.World)
	if !ok {
		return nil
	}
	return components.Space.Get(entry).Engine
}

func space(e *ecs.ECS) *components.SpaceData {
	entry, ok := components.Space.First(e.World)
	if !ok {
		return nil
	}
	return components.Space.Get(entry)
}

func notices(e *ecs.ECS) *components.NoticesData {
	entry, ok := components.Notices.First(e.World)
	if !ok {
		return nil
	}
	return components.Notices.Get(entry)
}

// bodyHandle returns the physics handle of an entity, zero if it has none.
func bodyHandle(entry *donburi.Entry) physics.Handle {
	if entry == nil || !entry.Valid() || !entry.HasComponent(components.Body) {
		return 0
	}
	return components.Body.Get(entry).Handle
}

// Position returns the world-space center of an entity's body.
func Position(e *ecs.ECS, entry *donburi.Entry) (physics.Vec, bool) {
	h := bodyHandle(entry)
	eng := Engine(e)
	if h == 0 || eng == nil {
		return physics.Vec{}, false
	}
	return eng.Position(h), true
}
