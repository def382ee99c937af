package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateControl applies the session requests collected by the input glue and
// clears them.
func UpdateControl(e *ecs.ECS) {
	entry, ok := components.Control.First(e.World)
	if !ok {
		return
	}
	control := components.Control.Get(entry)
	s := Session(e)
	if s == nil {
		return
	}

	if control.TogglePause {
		s.Machine.TogglePause()
	}
	if control.Dismiss && s.Machine.State() == streaming.ShowingPopup {
		removeAll(e, components.Popup)
		s.Machine.DismissPopup()
	}
	if control.Restart {
		RestartLevel(e)
	}
	if control.Quit {
		QuitSession(e)
	}

	*control = components.ControlData{}
}

// RestartLevel respawns every level. It does nothing while no level exists.
func RestartLevel(e *ecs.ECS) bool {
	if _, ok := components.Level.First(e.World); !ok {
		return false
	}
	s := Session(e)
	if s == nil {
		return false
	}
	return s.Machine.Restart()
}

// QuitSession leaves gameplay and tears the level set down.
func QuitSession(e *ecs.ECS) {
	s := Session(e)
	if s == nil {
		return
	}
	s.Machine.Quit()
	clearLevels(e)
	removeAll(e, components.Popup)
	removeFaders(e)
	s.Quit = true
	logger.Info("session quit")
}

func clearLevels(e *ecs.ECS) {
	var levels []donburi.Entity
	components.Level.Each(e.World, func(entry *donburi.Entry) {
		levels = append(levels, entry.Entity())
	})
	for _, level := range levels {
		removeLevel(e, level)
	}
}
