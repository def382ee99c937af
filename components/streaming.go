package components

import (
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/yohamta/donburi"
)

// StreamingData is the session singleton: the streaming state machine and the
// level the player is currently in.
type StreamingData struct {
	Machine  *streaming.Machine
	Selected string

	// Quit is set once the session left gameplay for good.
	Quit bool
}

var Streaming = donburi.NewComponentType[StreamingData]()

// FadeData is the overlay shown while the level loads and fades in.
type FadeData struct {
	Alpha float32
}

var Fade = donburi.NewComponentType[FadeData]()
