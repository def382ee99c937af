package systems

import (
	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateTemporary despawns entities whose lifetime elapsed. A popup closing
// this way leaves ShowingPopup once no other popup remains.
func UpdateTemporary(e *ecs.ECS) {
	dt := clock(e).Delta
	var expired []*donburi.Entry
	components.Temporary.Each(e.World, func(entry *donburi.Entry) {
		if components.Temporary.Get(entry).Timer.Tick(dt) {
			expired = append(expired, entry)
		}
	})
	if len(expired) == 0 {
		return
	}

	popups := 0
	components.Popup.Each(e.World, func(*donburi.Entry) { popups++ })
	for _, entry := range expired {
		if entry.HasComponent(components.Popup) {
			popups--
		}
		removeEntity(e, entry.Entity())
	}

	if s := Session(e); s != nil && popups == 0 && s.Machine.State() == streaming.ShowingPopup {
		s.Machine.DismissPopup()
	}
}
