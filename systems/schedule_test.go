package systems

import (
	"errors"
	"testing"

	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/automoto/digrunner/systems/factory"
	"github.com/automoto/digrunner/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func TestScheduleRunsPhasesInOrder(t *testing.T) {
	var got []string
	rec := func(name string) ecs.System {
		return func(*ecs.ECS) { got = append(got, name) }
	}

	e := ecs.NewECS(donburi.NewWorld())
	NewSchedule().
		Add(PhaseDetection, rec("detect")).
		Add(PhaseUpdate, rec("update-1"), rec("update-2")).
		Add(PhaseInput, rec("input")).
		Add(PhaseDespawn, rec("despawn")).
		Install(e)
	e.Update()

	assert.Equal(t, []string{"despawn", "input", "update-1", "update-2", "detect"}, got)
}

func TestScheduleBarriers(t *testing.T) {
	s := NewSchedule().Add(PhaseInput, func(*ecs.ECS) {})
	// One input system plus barriers after despawn, update and detection.
	assert.Len(t, s.Systems(), 4)
}

func TestDeferredChangesWaitForBarrier(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateSession(e, streaming.New(0))

	var target donburi.Entity
	var sameTick, nextPhase bool
	NewSchedule().
		Add(PhaseUpdate,
			func(e *ecs.ECS) {
				target = e.World.Create(tags.Enemy)
				DespawnLater(e, target)
			},
			func(e *ecs.ECS) {
				sameTick = e.World.Entry(target).HasComponent(tags.DespawnPending)
			},
		).
		Add(PhaseDetection, func(e *ecs.ECS) {
			nextPhase = e.World.Entry(target).HasComponent(tags.DespawnPending)
		}).
		Install(e)

	e.Update()
	assert.False(t, sameTick, "deferred change is invisible before the barrier")
	assert.True(t, nextPhase, "deferred change is applied at the update barrier")
}

func TestDespawnRemovesMarkedEntities(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateSession(e, streaming.New(0))
	doomed := e.World.Create(tags.Enemy)
	kept := e.World.Create(tags.Enemy)

	DespawnLater(e, doomed)
	ApplyDeferred(e)
	Despawn(e)

	assert.False(t, e.World.Valid(doomed))
	assert.True(t, e.World.Valid(kept))
}

func TestSingle(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())

	_, err := single(e.World, components.Project)
	assert.True(t, errors.Is(err, ErrNoEntity))

	factory.CreateProject(e, nil, nil)
	entry, err := single(e.World, components.Project)
	require.NoError(t, err)
	assert.NotNil(t, entry)

	factory.CreateProject(e, nil, nil)
	_, err = single(e.World, components.Project)
	assert.True(t, errors.Is(err, ErrMultipleEntities))
}

func TestRestartWithoutLevelIsNoop(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	machine := streaming.New(0)
	factory.CreateSession(e, machine)

	assert.False(t, RestartLevel(e))
	assert.Equal(t, streaming.Disabled, machine.State())
}

func TestWhenRunningSkipsOtherStates(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	machine := streaming.New(0)
	factory.CreateSession(e, machine)

	calls := 0
	sys := WhenRunning(func(*ecs.ECS) { calls++ })
	sys(e)
	assert.Zero(t, calls)

	machine.Start()
	machine.SpawnTriggered("a")
	machine.Spawned("a")
	machine.MeshBuilt()
	machine.AdvanceFade(0)
	require.Equal(t, streaming.Running, machine.State())
	sys(e)
	assert.Equal(t, 1, calls)
}
