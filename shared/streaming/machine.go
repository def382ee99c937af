// Package streaming sequences level loading: spawn requests, spawn
// acknowledgements, the initial mesh build, the fade-in and the running
// simulation with its pause, popup, end and death states. It holds no ECS
// state so the sequencing can be driven and tested on its own.
package streaming

import (
	"sort"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type State int

const (
	Disabled State = iota
	Loading
	Loaded
	Running
	Paused
	LevelEnded
	Died
	ShowingPopup
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "Disabled"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case LevelEnded:
		return "LevelEnded"
	case Died:
		return "Died"
	case ShowingPopup:
		return "ShowingPopup"
	}
	return "Unknown"
}

// Suspended reports whether pausable timers are frozen in s.
func (s State) Suspended() bool {
	return s == Paused || s == ShowingPopup
}

// Transition is called with the previous and the new state.
type Transition func(from, to State)

// Machine is the level streaming state machine. Every event method returns
// whether it was accepted in the current state; rejected events change nothing.
type Machine struct {
	state State

	pending   map[string]struct{}
	triggered bool

	fade         *gween.Tween
	fadeDuration time.Duration
	fadeElapsed  time.Duration
	fadeAlpha    float32

	enter       map[State][]func()
	exit        map[State][]func()
	transitions []Transition
}

func New(fadeDuration time.Duration) *Machine {
	return &Machine{
		state:        Disabled,
		pending:      make(map[string]struct{}),
		fadeDuration: fadeDuration,
		fadeAlpha:    1,
		enter:        make(map[State][]func()),
		exit:         make(map[State][]func()),
	}
}

func (m *Machine) State() State { return m.state }

// OnEnter registers fn to run after the machine enters s.
func (m *Machine) OnEnter(s State, fn func()) {
	m.enter[s] = append(m.enter[s], fn)
}

// OnExit registers fn to run before the machine leaves s.
func (m *Machine) OnExit(s State, fn func()) {
	m.exit[s] = append(m.exit[s], fn)
}

// OnTransition registers fn to run on every state change, after the exit
// hooks of the old state and before the enter hooks of the new one.
func (m *Machine) OnTransition(fn Transition) {
	m.transitions = append(m.transitions, fn)
}

func (m *Machine) set(to State) {
	from := m.state
	for _, fn := range m.exit[from] {
		fn()
	}
	m.state = to
	for _, fn := range m.transitions {
		fn(from, to)
	}
	for _, fn := range m.enter[to] {
		fn()
	}
}

// Start enters Loading from Disabled.
func (m *Machine) Start() bool {
	if m.state != Disabled {
		return false
	}
	m.resetLoading()
	m.set(Loading)
	return true
}

func (m *Machine) resetLoading() {
	m.pending = make(map[string]struct{})
	m.triggered = false
	m.fade = nil
	m.fadeElapsed = 0
	m.fadeAlpha = 1
}

// SpawnTriggered records that the level id started spawning.
func (m *Machine) SpawnTriggered(id string) bool {
	if m.state != Loading {
		return false
	}
	m.pending[id] = struct{}{}
	m.triggered = true
	return true
}

// Spawned records that the level id finished spawning. The machine moves to
// Loaded once nothing is pending and at least one spawn was triggered.
func (m *Machine) Spawned(id string) bool {
	if m.state != Loading {
		return false
	}
	if _, ok := m.pending[id]; !ok {
		return false
	}
	delete(m.pending, id)
	if m.triggered && len(m.pending) == 0 {
		m.set(Loaded)
	}
	return true
}

// Pending returns the ids still spawning, sorted.
func (m *Machine) Pending() []string {
	ids := make([]string, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MeshBuilt starts the fade once the initial colliders exist.
func (m *Machine) MeshBuilt() bool {
	if m.state != Loaded || m.fade != nil {
		return false
	}
	m.fade = gween.New(1, 0, float32(m.fadeDuration.Seconds()), ease.Linear)
	m.fadeElapsed = 0
	m.fadeAlpha = 1
	return true
}

// Fading reports whether the fade has started and not yet finished.
func (m *Machine) Fading() bool {
	return m.state == Loaded && m.fade != nil
}

// FadeAlpha is the opacity of the loading overlay, 1 while loading and 0 once
// the level is visible.
func (m *Machine) FadeAlpha() float32 {
	switch m.state {
	case Loading:
		return 1
	case Loaded:
		return m.fadeAlpha
	}
	return 0
}

// AdvanceFade moves the fade forward by dt and enters Running once the whole
// fade duration has elapsed.
func (m *Machine) AdvanceFade(dt time.Duration) bool {
	if !m.Fading() {
		return false
	}
	m.fadeElapsed += dt
	m.fadeAlpha, _ = m.fade.Set(float32(m.fadeElapsed.Seconds()))
	if m.fadeElapsed < m.fadeDuration {
		return false
	}
	m.fade = nil
	m.fadeAlpha = 0
	m.set(Running)
	return true
}

func (m *Machine) Pause() bool {
	if m.state != Running {
		return false
	}
	m.set(Paused)
	return true
}

func (m *Machine) Resume() bool {
	if m.state != Paused {
		return false
	}
	m.set(Running)
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (m *Machine) TogglePause() bool {
	if m.state == Paused {
		return m.Resume()
	}
	return m.Pause()
}

func (m *Machine) ShowPopup() bool {
	if m.state != Running {
		return false
	}
	m.set(ShowingPopup)
	return true
}

func (m *Machine) DismissPopup() bool {
	if m.state != ShowingPopup {
		return false
	}
	m.set(Running)
	return true
}

func (m *Machine) EndLevel() bool {
	if m.state != Running {
		return false
	}
	m.set(LevelEnded)
	return true
}

func (m *Machine) Die() bool {
	if m.state != Running {
		return false
	}
	m.set(Died)
	return true
}

// Restart goes through Disabled back into Loading. It is accepted once the
// level is playable or finished, never while a load is in progress.
func (m *Machine) Restart() bool {
	switch m.state {
	case Running, Paused, ShowingPopup, LevelEnded, Died:
	default:
		return false
	}
	m.set(Disabled)
	return m.Start()
}

// Quit leaves gameplay.
func (m *Machine) Quit() bool {
	if m.state == Disabled {
		return false
	}
	m.resetLoading()
	m.set(Disabled)
	return true
}
