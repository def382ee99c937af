package scenes

import (
	"os"
	"testing"
	"time"

	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/automoto/digrunner/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func newTestSimulation(t *testing.T, backend string) *Simulation {
	t.Helper()
	noFade := time.Duration(0)
	sim, err := NewSimulation(Options{
		FS:           os.DirFS("../assets"),
		WorldPath:    "levels/digrunner.world",
		Backend:      backend,
		FadeDuration: &noFade,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sim.Close() })
	return sim
}

func runUntil(sim *Simulation, state streaming.State, limit int) {
	for i := 0; i < limit && sim.State() != state; i++ {
		sim.Update()
	}
}

func TestSimulationStreamsEveryLevel(t *testing.T) {
	for _, backend := range []string{cfg.BackendResolv, cfg.BackendChipmunk} {
		t.Run(backend, func(t *testing.T) {
			sim := newTestSimulation(t, backend)
			assert.Equal(t, streaming.Loading, sim.State())

			runUntil(sim, streaming.Running, 10)
			require.Equal(t, streaming.Running, sim.State())

			levels := 0
			components.Level.Each(sim.ECS().World, func(entry *donburi.Entry) {
				levels++
				assert.True(t, components.LevelColliders.Get(entry).Built)
			})
			assert.Equal(t, len(sim.World().Levels), levels)
			require.NotNil(t, sim.Player())

			for i := 0; i < 60; i++ {
				sim.Update()
			}
			assert.True(t, components.GroundDetection.Get(sim.Player()).OnGround)
			_, faders := tags.Fader.First(sim.ECS().World)
			assert.False(t, faders)
		})
	}
}

func TestSimulationRestart(t *testing.T) {
	sim := newTestSimulation(t, cfg.BackendResolv)
	runUntil(sim, streaming.Running, 10)
	first := sim.Player().Entity()

	sim.Control().Restart = true
	sim.Update()
	assert.NotEqual(t, streaming.Running, sim.State())

	runUntil(sim, streaming.Running, 10)
	require.Equal(t, streaming.Running, sim.State())
	assert.False(t, sim.ECS().World.Valid(first))
	assert.NotNil(t, sim.Player())
}

func TestSimulationQuit(t *testing.T) {
	sim := newTestSimulation(t, cfg.BackendResolv)
	runUntil(sim, streaming.Running, 10)

	sim.Control().Quit = true
	sim.Update()
	assert.True(t, sim.Quit())
	assert.Equal(t, streaming.Disabled, sim.State())
	assert.Nil(t, sim.Player())
}

func TestNewSimulationErrors(t *testing.T) {
	_, err := NewSimulation(Options{FS: os.DirFS("../assets"), WorldPath: "levels/missing.world"})
	assert.Error(t, err)

	_, err = NewSimulation(Options{
		FS:        os.DirFS("../assets"),
		WorldPath: "levels/digrunner.world",
		Backend:   "box2d",
	})
	assert.ErrorContains(t, err, "box2d")
}

func TestWorldBounds(t *testing.T) {
	world := &leveldata.World{Levels: []leveldata.LevelRef{
		{ID: "a", X: 0, Y: 0, Width: 320, Height: 192},
		{ID: "b", X: 320, Y: 64, Width: 160, Height: 64},
	}}
	r := WorldBounds(world, 10)
	assert.Equal(t, -10.0, r.Min.X)
	assert.Equal(t, -202.0, r.Min.Y)
	assert.Equal(t, 490.0, r.Max.X)
	assert.Equal(t, 10.0, r.Max.Y)
}

func TestDrainColliderChanges(t *testing.T) {
	sim := newTestSimulation(t, cfg.BackendResolv)
	runUntil(sim, streaming.Running, 10)

	changes := sim.DrainColliderChanges()
	require.Len(t, changes, len(sim.World().Levels))
	for _, c := range changes {
		assert.Equal(t, 1, c.Generation)
		assert.Positive(t, c.Count)
	}
	assert.Empty(t, sim.DrainColliderChanges())
}
