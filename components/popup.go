package components

import (
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/yohamta/donburi"
)

type PopupData struct {
	Title string
	Text  string
	Items []leveldata.Item
}

var Popup = donburi.NewComponentType[PopupData]()

// TemporaryData despawns its entity when the timer elapses.
type TemporaryData struct {
	Timer Timer
}

var Temporary = donburi.NewComponentType[TemporaryData]()
