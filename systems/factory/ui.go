package factory

import (
	"github.com/automoto/digrunner/archetypes"
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateFader spawns the opaque loading overlay.
func CreateFader(ecs *ecs.ECS) *donburi.Entry {
	fader := archetypes.Fader.Spawn(ecs)
	components.Fade.SetValue(fader, components.FadeData{Alpha: 1})
	return fader
}

// CreatePopup spawns an informational popup. A non-nil timer makes it close on
// its own.
func CreatePopup(ecs *ecs.ECS, title, text string, items []leveldata.Item, timer *components.Timer) *donburi.Entry {
	popup := archetypes.Popup.Spawn(ecs)
	components.Popup.SetValue(popup, components.PopupData{
		Title: title,
		Text:  text,
		Items: append([]leveldata.Item(nil), items...),
	})
	if timer != nil {
		popup.AddComponent(components.Temporary)
		components.Temporary.SetValue(popup, components.TemporaryData{Timer: *timer})
	}
	return popup
}
