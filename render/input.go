package render

import (
	"github.com/automoto/digrunner/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionDigLeft
	ActionDigRight
	ActionPause
	ActionDismiss
	ActionRestart
	ActionQuit
	ActionDebug
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// AnalogDeadzone is the left stick travel (0.0 to 1.0) ignored as noise.
const AnalogDeadzone = 0.25

// Bindings maps every action to its keys and gamepad buttons.
var Bindings = map[ActionID]InputBinding{
	ActionMoveLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	ActionMoveRight: {
		Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	ActionMoveUp: {
		Keys:                   []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
	},
	ActionMoveDown: {
		Keys:                   []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
	},
	ActionJump: {
		Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyX},
		// A / Cross button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
	ActionDigLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyQ, ebiten.KeyZ},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopLeft},
	},
	ActionDigRight: {
		Keys:                   []ebiten.Key{ebiten.KeyE, ebiten.KeyC},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopRight},
	},
	ActionPause: {
		Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
		// Start / Options button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
	},
	ActionDismiss: {
		Keys: []ebiten.Key{ebiten.KeyEnter},
		// B / Circle button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight},
	},
	ActionRestart: {
		Keys:                   []ebiten.Key{ebiten.KeyR},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterLeft},
	},
	ActionQuit: {
		Keys: []ebiten.Key{ebiten.KeyF10},
	},
	ActionDebug: {
		Keys: []ebiten.Key{ebiten.KeyF3},
	},
}

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Input holds the pressed state of every action for this and the previous
// frame.
type Input struct {
	Current  [ActionCount]bool
	Previous [ActionCount]bool
}

// Poll reads keyboard, gamepad buttons and the left analog stick.
func (in *Input) Poll() {
	// Swap buffers: current becomes previous, then zero out current
	in.Previous = in.Current
	in.Current = [ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				in.Current[actionID] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					in.Current[actionID] = true
				}
			}
		}
	}

	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		if horizontal < -AnalogDeadzone {
			in.Current[ActionMoveLeft] = true
		}
		if horizontal > AnalogDeadzone {
			in.Current[ActionMoveRight] = true
		}
		// Stick Y grows downward.
		if vertical < -AnalogDeadzone {
			in.Current[ActionMoveUp] = true
		}
		if vertical > AnalogDeadzone {
			in.Current[ActionMoveDown] = true
		}
	}
}

func (in *Input) Pressed(id ActionID) bool {
	return in.Current[id]
}

func (in *Input) JustPressed(id ActionID) bool {
	return in.Current[id] && !in.Previous[id]
}

// Apply writes this frame's intent and session requests. Either target may
// be nil.
func (in *Input) Apply(intent *components.IntentData, control *components.ControlData) {
	if intent != nil {
		*intent = components.IntentData{
			MoveX:    axis(in.Pressed(ActionMoveLeft), in.Pressed(ActionMoveRight)),
			MoveY:    axis(in.Pressed(ActionMoveDown), in.Pressed(ActionMoveUp)),
			Jump:     in.JustPressed(ActionJump),
			DigLeft:  in.JustPressed(ActionDigLeft),
			DigRight: in.JustPressed(ActionDigRight),
		}
	}
	if control != nil {
		control.TogglePause = control.TogglePause || in.JustPressed(ActionPause)
		control.Dismiss = control.Dismiss || in.JustPressed(ActionDismiss) || in.JustPressed(ActionJump)
		control.Restart = control.Restart || in.JustPressed(ActionRestart)
		control.Quit = control.Quit || in.JustPressed(ActionQuit)
	}
}

func axis(negative, positive bool) float64 {
	switch {
	case negative && !positive:
		return -1
	case positive && !negative:
		return 1
	}
	return 0
}
