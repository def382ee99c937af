package systems

import (
	"testing"

	"github.com/automoto/digrunner/components"
	"github.com/automoto/digrunner/physics"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// contactWorld is a player with a ground sensor and two solid bodies, wired
// without a physics engine so events can be fed by hand.
type contactWorld struct {
	ecs     *ecs.ECS
	space   *components.SpaceData
	player  donburi.Entity
	sensor  donburi.Entity
	floorA  donburi.Entity
	floorB  donburi.Entity
	trigger donburi.Entity
}

func newContactWorld() *contactWorld {
	w := donburi.NewWorld()
	e := ecs.NewECS(w)

	spaceEntry := w.Entry(w.Create(components.Space))
	cw := &contactWorld{ecs: e, space: components.Space.Get(spaceEntry)}

	cw.player = w.Create(components.GroundDetection)
	cw.sensor = w.Create(components.GroundSensor, components.Body)
	components.GroundDetection.SetValue(w.Entry(cw.player), components.GroundDetectionData{Sensor: cw.sensor})
	components.GroundSensor.SetValue(w.Entry(cw.sensor), components.GroundSensorData{
		Detector: cw.player,
		Contacts: components.ContactSet{},
	})
	components.Body.SetValue(w.Entry(cw.sensor), components.BodyData{Handle: 1, Sensor: true})

	solid := func(h physics.Handle, sensor bool) donburi.Entity {
		entity := w.Create(components.Body)
		components.Body.SetValue(w.Entry(entity), components.BodyData{Handle: h, Sensor: sensor})
		return entity
	}
	cw.floorA = solid(2, false)
	cw.floorB = solid(3, false)
	cw.trigger = solid(4, true)
	return cw
}

func (cw *contactWorld) detect(events ...physics.Event) *components.GroundDetectionData {
	cw.space.Events = events
	UpdateGroundContacts(cw.ecs)
	UpdateGroundDetection(cw.ecs)
	return components.GroundDetection.Get(cw.ecs.World.Entry(cw.player))
}

func started(a, b donburi.Entity) physics.Event {
	return physics.Event{Kind: physics.Started, A: a, B: b}
}

func stopped(a, b donburi.Entity) physics.Event {
	return physics.Event{Kind: physics.Stopped, A: a, B: b}
}

func TestStartAndStopInOneTickLeavesAir(t *testing.T) {
	cw := newContactWorld()

	gd := cw.detect(started(cw.sensor, cw.floorA), stopped(cw.floorA, cw.sensor))
	assert.False(t, gd.OnGround)
	assert.False(t, gd.Landed)
	assert.True(t, components.GroundSensor.Get(cw.ecs.World.Entry(cw.sensor)).Contacts.Empty())
}

func TestGroundHeldUntilEveryContactStops(t *testing.T) {
	cw := newContactWorld()

	gd := cw.detect(started(cw.sensor, cw.floorA), started(cw.floorB, cw.sensor))
	assert.True(t, gd.OnGround)
	assert.True(t, gd.Landed)

	gd = cw.detect(stopped(cw.sensor, cw.floorA))
	assert.True(t, gd.OnGround)
	assert.False(t, gd.Landed)
	assert.False(t, gd.LeftGround)

	gd = cw.detect(stopped(cw.sensor, cw.floorB))
	assert.False(t, gd.OnGround)
	assert.True(t, gd.LeftGround)
}

func TestGroundIgnoresSensorsAndOwnBody(t *testing.T) {
	cw := newContactWorld()

	gd := cw.detect(started(cw.sensor, cw.trigger), started(cw.sensor, cw.player))
	assert.False(t, gd.OnGround)
}

func TestStopFromRemovedBodyStillClears(t *testing.T) {
	cw := newContactWorld()
	cw.detect(started(cw.sensor, cw.floorA))

	cw.ecs.World.Remove(cw.floorA)
	gd := cw.detect(stopped(cw.sensor, cw.floorA))
	assert.False(t, gd.OnGround)
	assert.True(t, gd.LeftGround)
}

func TestStartFromRemovedBodyIsIgnored(t *testing.T) {
	cw := newContactWorld()
	cw.ecs.World.Remove(cw.floorB)

	gd := cw.detect(started(cw.sensor, cw.floorB))
	assert.False(t, gd.OnGround)
}

func TestQuietTickKeepsGroundAndClearsEdges(t *testing.T) {
	cw := newContactWorld()

	gd := cw.detect(started(cw.sensor, cw.floorA))
	assert.True(t, gd.Landed)

	gd = cw.detect()
	assert.True(t, gd.OnGround)
	assert.False(t, gd.Landed)
	assert.False(t, gd.LeftGround)

	gd = cw.detect(started(cw.sensor, cw.floorA))
	assert.True(t, gd.OnGround)
	assert.False(t, gd.Landed, "a repeated start changes nothing")
	assert.False(t, components.GroundSensor.Get(cw.ecs.World.Entry(cw.sensor)).Changed)

	gd = cw.detect(stopped(cw.sensor, cw.floorA))
	assert.True(t, gd.LeftGround)
	gd = cw.detect()
	assert.False(t, gd.OnGround)
	assert.False(t, gd.LeftGround)
}

func TestRemovedSensorMeansAirborne(t *testing.T) {
	cw := newContactWorld()
	cw.detect(started(cw.sensor, cw.floorA))

	cw.ecs.World.Remove(cw.sensor)
	gd := cw.detect()
	assert.False(t, gd.OnGround)
	assert.True(t, gd.LeftGround)
}
