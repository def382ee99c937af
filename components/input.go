package components

import "github.com/yohamta/donburi"

// IntentData is what the player asked for this tick. MoveX and MoveY are in
// [-1, 1]; the one-shot fields are true only on the tick of the press.
type IntentData struct {
	MoveX    float64
	MoveY    float64
	Jump     bool
	DigLeft  bool
	DigRight bool
}

// Vertical reports whether up or down is held.
func (i *IntentData) Vertical() bool {
	return i.MoveY != 0
}

var Intent = donburi.NewComponentType[IntentData]()

// ControlData carries one-shot session requests from the input glue.
type ControlData struct {
	TogglePause bool
	Restart     bool
	Dismiss     bool
	Quit        bool
}

var Control = donburi.NewComponentType[ControlData]()
