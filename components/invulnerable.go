package components

import (
	"github.com/automoto/digrunner/physics"
	"github.com/yohamta/donburi"
)

// InvulnerableData is a window during which Cleared is removed from the
// entity's collision mask. SavedMask is restored when the timer elapses.
type InvulnerableData struct {
	Timer     Timer
	SavedMask physics.Category
	Cleared   physics.Category
}

var Invulnerable = donburi.NewComponentType[InvulnerableData]()
