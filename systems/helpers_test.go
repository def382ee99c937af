package systems

import (
	"testing"
	"time"

	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/physics/resolvengine"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/automoto/digrunner/systems/factory"
	"github.com/automoto/digrunner/tags"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const testGrid = 16.0

// memorySource serves prebuilt levels.
type memorySource struct {
	levels    map[string]*leveldata.Level
	requested map[string]bool
}

func (m *memorySource) Request(ref leveldata.LevelRef) {
	m.requested[ref.ID] = true
}

func (m *memorySource) Poll(id string) (*leveldata.Level, bool, error) {
	if !m.requested[id] {
		return nil, false, nil
	}
	delete(m.requested, id)
	l := *m.levels[id]
	return &l, true, nil
}

// levelOf reads rows top to bottom: '#' stone, 'd' dirt, 'H' ladder, '~' water.
// The level's bottom-left corner sits at the world origin.
func levelOf(id string, objects []leveldata.Object, rows ...string) *leveldata.Level {
	level := &leveldata.Level{
		ID:        id,
		CellsHigh: len(rows),
		GridSize:  testGrid,
		Cells:     make(map[gridmesh.GridCoord]gridmesh.CellKind),
		Objects:   objects,
	}
	for i, row := range rows {
		if len(row) > level.CellsWide {
			level.CellsWide = len(row)
		}
		y := len(rows) - 1 - i
		for x, ch := range row {
			c := gridmesh.GridCoord{X: x, Y: y}
			switch ch {
			case '#':
				level.Cells[c] = gridmesh.SolidIndestructible
			case 'd':
				level.Cells[c] = gridmesh.SolidDestructible
			case 'H':
				level.Cells[c] = gridmesh.Ladder
			case '~':
				level.Cells[c] = gridmesh.Water
			}
		}
	}
	return level
}

// object places a spawnable centered on cell (x, y), resting on its floor.
func object(id uint32, class string, x, y int, w, h float64) leveldata.Object {
	return leveldata.Object{
		ID:    id,
		Class: class,
		X:     (float64(x) + 0.5) * testGrid,
		Y:     float64(y)*testGrid + h/2,
		W:     w,
		H:     h,
	}
}

type harness struct {
	t       *testing.T
	ecs     *ecs.ECS
	machine *streaming.Machine
	engine  physics.Engine
	level   *leveldata.Level
}

// newHarness builds a session around one level and ticks it until Running.
func newHarness(t *testing.T, level *leveldata.Level) *harness {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	machine := streaming.New(0)
	bounds := physics.Rect{
		Min: physics.Vec{X: -64, Y: -64},
		Max: physics.Vec{X: level.PixelWidth() + 64, Y: level.PixelHeight() + 64},
	}
	engine := resolvengine.New(bounds, 16, physics.Vec{Y: -600})

	factory.CreateSession(e, machine)
	factory.CreateSpace(e, engine)
	world := &leveldata.World{Levels: []leveldata.LevelRef{{
		ID:     level.ID,
		Width:  level.PixelWidth(),
		Height: level.PixelHeight(),
	}}}
	source := &memorySource{
		levels:    map[string]*leveldata.Level{level.ID: level},
		requested: make(map[string]bool),
	}
	factory.CreateProject(e, world, source)
	require.NoError(t, InstallHooks(e))
	DefaultSchedule().Install(e)
	require.True(t, machine.Start())

	h := &harness{t: t, ecs: e, machine: machine, engine: engine, level: level}
	for i := 0; i < 5 && machine.State() != streaming.Running; i++ {
		h.tick()
	}
	require.Equal(t, streaming.Running, machine.State())
	return h
}

func (h *harness) tick() {
	h.ecs.Update()
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.tick()
	}
}

func (h *harness) player() *donburi.Entry {
	h.t.Helper()
	entry, ok := tags.Player.First(h.ecs.World)
	require.True(h.t, ok, "player exists")
	return entry
}

func (h *harness) control() *components.ControlData {
	entry, _ := components.Control.First(h.ecs.World)
	return components.Control.Get(entry)
}

func count[T any](h *harness, c *donburi.ComponentType[T]) int {
	n := 0
	c.Each(h.ecs.World, func(*donburi.Entry) { n++ })
	return n
}

func (h *harness) levelEntry() *donburi.Entry {
	entry, ok := components.Level.First(h.ecs.World)
	require.True(h.t, ok)
	return entry
}

func (h *harness) clockDelta() time.Duration {
	return clock(h.ecs).Delta
}
