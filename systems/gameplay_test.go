package systems

import (
	"testing"

	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/automoto/digrunner/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

var floorRows = []string{
	"#......#",
	"#......#",
	"#......#",
	"#dddddd#",
	"########",
}

func playerAt(x, y int) leveldata.Object {
	return object(1, leveldata.ClassPlayer, x, y, cfg.Player.CollisionWidth, cfg.Player.CollisionHeight)
}

func TestPlayerLandsOnFloor(t *testing.T) {
	h := newHarness(t, levelOf("floor", []leveldata.Object{playerAt(2, 3)}, floorRows...))
	h.ticks(60)

	gd := components.GroundDetection.Get(h.player())
	assert.True(t, gd.OnGround)
	pos, ok := Position(h.ecs, h.player())
	require.True(t, ok)
	assert.InDelta(t, 2*testGrid+cfg.Player.CollisionHeight/2, pos.Y, 1e-3)
	assert.Equal(t, "floor", Session(h.ecs).Selected)
}

func TestDigKeepsGroundContact(t *testing.T) {
	h := newHarness(t, levelOf("dig", []leveldata.Object{playerAt(2, 2)}, floorRows...))
	h.ticks(10)
	require.True(t, components.GroundDetection.Get(h.player()).OnGround)

	level := components.Level.Get(h.levelEntry())

	components.Intent.Get(h.player()).DigRight = true
	h.tick()
	components.Intent.Get(h.player()).DigRight = false

	assert.False(t, level.Index.Solid(gridmesh.GridCoord{X: 3, Y: 1}))
	lc := components.LevelColliders.Get(h.levelEntry())
	assert.Equal(t, 2, lc.Generation)
	assert.False(t, lc.Dirty)
	hole := gridmesh.GridCoord{X: 3, Y: 1}
	tags.Wall.Each(h.ecs.World, func(entry *donburi.Entry) {
		assert.False(t, components.Collider.Get(entry).Rect.Contains(hole), "no collider over the hole")
	})
	assert.Equal(t, len(lc.Colliders), count(h, tags.Wall))

	n := notices(h.ecs).CollidersChanged
	require.NotEmpty(t, n)
	assert.Equal(t, components.CollidersChanged{LevelID: "dig", Count: len(lc.Colliders), Generation: 2}, n[len(n)-1])

	for i := 0; i < 10; i++ {
		h.tick()
		gd := components.GroundDetection.Get(h.player())
		require.True(t, gd.OnGround, "tick %d", i)
		require.False(t, gd.Landed, "tick %d", i)
	}
}

func TestDigIgnoresIndestructibleCells(t *testing.T) {
	h := newHarness(t, levelOf("stone", []leveldata.Object{playerAt(1, 2)}, floorRows...))
	h.ticks(10)

	components.Intent.Get(h.player()).DigLeft = true
	h.tick()

	assert.True(t, components.Level.Get(h.levelEntry()).Index.Solid(gridmesh.GridCoord{X: 0, Y: 1}))
	assert.Equal(t, 1, components.LevelColliders.Get(h.levelEntry()).Generation)
}

func TestRebuildWaitsForReadyLevel(t *testing.T) {
	h := newHarness(t, levelOf("wait", []leveldata.Object{playerAt(2, 2)}, floorRows...))
	h.ticks(10)

	level := components.Level.Get(h.levelEntry())
	lc := components.LevelColliders.Get(h.levelEntry())
	level.Ready = false
	require.True(t, level.Index.Destroy(gridmesh.GridCoord{X: 5, Y: 1}))
	lc.Dirty = true

	h.ticks(3)
	assert.Equal(t, 1, lc.Generation)
	assert.True(t, lc.Dirty, "rebuild stays pending")
	assert.False(t, RebuildColliders(h.ecs, h.levelEntry()))

	level.Ready = true
	h.tick()
	assert.Equal(t, 2, lc.Generation)
	assert.False(t, lc.Dirty)
	hole := gridmesh.GridCoord{X: 5, Y: 1}
	tags.Wall.Each(h.ecs.World, func(entry *donburi.Entry) {
		assert.False(t, components.Collider.Get(entry).Rect.Contains(hole), "no collider over the hole")
	})
}

func TestEnemyHitMakesInvulnerable(t *testing.T) {
	enemy := object(2, leveldata.ClassEnemy, 4, 2, cfg.Enemy.CollisionWidth, cfg.Enemy.CollisionHeight)
	h := newHarness(t, levelOf("hit", []leveldata.Object{playerAt(2, 2), enemy}, floorRows...))
	h.ticks(5)

	player := h.player()
	components.Intent.Get(player).MoveX = 1
	for i := 0; i < 60 && !IsInvulnerable(player); i++ {
		h.tick()
	}
	require.True(t, IsInvulnerable(player))
	assert.Equal(t, cfg.Player.Life-cfg.Enemy.Damage, components.Life.Get(player).Current)
	assert.Zero(t, h.engine.Mask(bodyHandle(player))&physics.CategoryEnemy)

	// Step back so the restored mask does not start a new contact.
	components.Intent.Get(player).MoveX = -1
	h.ticks(15)
	components.Intent.Get(player).MoveX = 0

	elapsed := components.Invulnerable.Get(player).Timer.Elapsed
	h.control().TogglePause = true
	h.tick()
	require.Equal(t, streaming.Paused, h.machine.State())
	h.ticks(200)
	assert.True(t, IsInvulnerable(player))
	assert.Equal(t, elapsed, components.Invulnerable.Get(player).Timer.Elapsed)

	h.control().TogglePause = true
	h.tick()
	require.Equal(t, streaming.Running, h.machine.State())
	h.ticks(int(cfg.Player.Invulnerable/h.clockDelta()) + 2)
	assert.False(t, IsInvulnerable(player))
	assert.Equal(t, physics.CategoryAll, h.engine.Mask(bodyHandle(player)))
	assert.Equal(t, cfg.Player.Life-cfg.Enemy.Damage, components.Life.Get(player).Current)
}

func TestLethalHitEndsInDied(t *testing.T) {
	enemy := object(2, leveldata.ClassEnemy, 4, 2, cfg.Enemy.CollisionWidth, cfg.Enemy.CollisionHeight)
	h := newHarness(t, levelOf("death", []leveldata.Object{playerAt(2, 2), enemy}, floorRows...))
	player := h.player()
	components.Life.Get(player).Current = 1

	components.Intent.Get(player).MoveX = 1
	for i := 0; i < 60 && !player.HasComponent(components.Dying); i++ {
		h.tick()
	}
	require.True(t, player.HasComponent(components.Dying))
	assert.Equal(t, streaming.Running, h.machine.State())

	h.ticks(int(cfg.Player.DeathDelay/h.clockDelta()) + 2)
	assert.Equal(t, streaming.Died, h.machine.State())
}

func TestPatrolLeavesPointItSitsOn(t *testing.T) {
	enemy := object(2, leveldata.ClassEnemy, 3, 2, cfg.Enemy.CollisionWidth, cfg.Enemy.CollisionHeight)
	enemy.Patrol = 32
	h := newHarness(t, levelOf("patrol", []leveldata.Object{playerAt(1, 2), enemy}, floorRows...))

	entry, ok := tags.Enemy.First(h.ecs.World)
	require.True(t, ok)
	patrol := components.Patrol.Get(entry)
	handle := bodyHandle(entry)
	require.Len(t, patrol.Points, 2)

	for _, index := range []int{1, 0} {
		target := patrol.Points[index]
		patrol.Index = index
		h.engine.SetPosition(handle, target)
		h.engine.SetVelocity(handle, physics.Vec{})

		h.tick()
		assert.Equal(t, 1-index, patrol.Index, "turns after reaching point %d", index)
		assert.NotZero(t, h.engine.Velocity(handle).X)
		assert.NotEqual(t, target, h.engine.Position(handle))
	}
}

func TestStompKillsEnemy(t *testing.T) {
	rows := []string{
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#ddddd#",
		"#######",
	}
	enemy := object(2, leveldata.ClassEnemy, 3, 2, cfg.Enemy.CollisionWidth, cfg.Enemy.CollisionHeight)
	h := newHarness(t, levelOf("stomp", []leveldata.Object{playerAt(3, 4), enemy}, rows...))

	h.ticks(60)
	assert.Zero(t, count(h, tags.Enemy))
	assert.Equal(t, cfg.Player.Life, components.Life.Get(h.player()).Current)
	assert.True(t, components.GroundDetection.Get(h.player()).OnGround)
}

func TestChestGivesItemsAndShowsPopup(t *testing.T) {
	chest := object(2, leveldata.ClassChest, 4, 2, 16, 16)
	chest.Items = []string{"Key", "Boots"}
	h := newHarness(t, levelOf("chest", []leveldata.Object{playerAt(2, 2), chest}, floorRows...))

	components.Intent.Get(h.player()).MoveX = 1
	for i := 0; i < 60 && h.machine.State() == streaming.Running; i++ {
		h.tick()
	}
	require.Equal(t, streaming.ShowingPopup, h.machine.State())
	components.Intent.Get(h.player()).MoveX = 0

	items := components.Items.Get(h.player())
	assert.Equal(t, []leveldata.Item{leveldata.ItemKey, leveldata.ItemBoots}, items.List)
	assert.Equal(t, 1, count(h, components.Popup))

	h.tick()
	assert.Zero(t, count(h, tags.Chest))

	h.control().Dismiss = true
	h.tick()
	assert.Equal(t, streaming.Running, h.machine.State())
	assert.Zero(t, count(h, components.Popup))
}

func TestDoorRequiresItems(t *testing.T) {
	door := object(2, leveldata.ClassDoor, 4, 2, 16, 32)
	door.Items = []string{"Key"}

	t.Run("locked", func(t *testing.T) {
		h := newHarness(t, levelOf("locked", []leveldata.Object{playerAt(2, 2), door}, floorRows...))
		components.Intent.Get(h.player()).MoveX = 1
		for i := 0; i < 60 && h.machine.State() == streaming.Running; i++ {
			h.tick()
		}
		require.Equal(t, streaming.ShowingPopup, h.machine.State())
		assert.Equal(t, 1, count(h, tags.Door))

		popup, ok := components.Popup.First(h.ecs.World)
		require.True(t, ok)
		assert.Equal(t, []leveldata.Item{leveldata.ItemKey}, components.Popup.Get(popup).Items)
	})

	t.Run("open", func(t *testing.T) {
		h := newHarness(t, levelOf("open", []leveldata.Object{playerAt(2, 2), door}, floorRows...))
		components.Items.Get(h.player()).Add(leveldata.ItemKey, leveldata.ItemGem)
		components.Intent.Get(h.player()).MoveX = 1
		for i := 0; i < 30; i++ {
			h.tick()
		}
		assert.Equal(t, streaming.Running, h.machine.State())
		assert.Zero(t, count(h, tags.Door))
		assert.Equal(t, []leveldata.Item{leveldata.ItemGem}, components.Items.Get(h.player()).List)
	})
}

func TestEndTriggerEndsLevel(t *testing.T) {
	end := object(2, leveldata.ClassEnd, 5, 2, 16, 32)
	h := newHarness(t, levelOf("end", []leveldata.Object{playerAt(2, 2), end}, floorRows...))

	components.Intent.Get(h.player()).MoveX = 1
	for i := 0; i < 90 && h.machine.State() == streaming.Running; i++ {
		h.tick()
	}
	assert.Equal(t, streaming.LevelEnded, h.machine.State())
}

func TestClimbLadder(t *testing.T) {
	rows := []string{
		"#.....#",
		"#..H..#",
		"#..H..#",
		"#..H..#",
		"#ddddd#",
		"#######",
	}
	h := newHarness(t, levelOf("ladder", []leveldata.Object{playerAt(3, 2)}, rows...))
	h.ticks(10)

	player := h.player()
	start, _ := Position(h.ecs, player)
	require.False(t, components.Climber.Get(player).Intersecting.Empty())

	components.Intent.Get(player).MoveY = 1
	h.ticks(10)
	assert.True(t, components.Climber.Get(player).Climbing)
	now, _ := Position(h.ecs, player)
	assert.Greater(t, now.Y, start.Y)

	components.Intent.Get(player).MoveY = 0
	h.ticks(5)
	held, _ := Position(h.ecs, player)
	h.ticks(5)
	after, _ := Position(h.ecs, player)
	assert.InDelta(t, held.Y, after.Y, 1e-6, "no gravity while climbing")
}

func TestWaterSlowsPlayer(t *testing.T) {
	rows := []string{
		"#......#",
		"#......#",
		"#.~~~~.#",
		"#dddddd#",
		"########",
	}
	h := newHarness(t, levelOf("water", []leveldata.Object{playerAt(3, 2)}, rows...))
	h.ticks(5)

	player := h.player()
	assert.True(t, components.Swimmer.Get(player).InWater)

	components.Intent.Get(player).MoveX = 1
	h.tick()
	v := h.engine.Velocity(bodyHandle(player))
	assert.InDelta(t, cfg.Player.Speed*cfg.Player.WaterPenalty, v.X, 1e-6)
}

func TestRestartRespawnsLevel(t *testing.T) {
	h := newHarness(t, levelOf("restart", []leveldata.Object{playerAt(2, 2)}, floorRows...))
	h.ticks(10)
	walls := count(h, tags.Wall)

	components.Intent.Get(h.player()).DigRight = true
	h.tick()
	require.False(t, components.Level.Get(h.levelEntry()).Index.Solid(gridmesh.GridCoord{X: 3, Y: 1}))

	old := h.player().Entity()
	h.control().Restart = true
	h.tick()
	assert.False(t, h.ecs.World.Valid(old))

	for i := 0; i < 5 && h.machine.State() != streaming.Running; i++ {
		h.tick()
	}
	require.Equal(t, streaming.Running, h.machine.State())
	assert.True(t, components.Level.Get(h.levelEntry()).Index.Solid(gridmesh.GridCoord{X: 3, Y: 1}))
	assert.Equal(t, walls, count(h, tags.Wall))
	assert.Equal(t, 1, count(h, tags.Player))
	assert.Equal(t, 1, count(h, components.Level))
}

func TestFaderFollowsMachine(t *testing.T) {
	h := newHarness(t, levelOf("fade", []leveldata.Object{playerAt(2, 2)}, floorRows...))
	h.tick()
	assert.Zero(t, count(h, tags.Fader), "fader leaves once running")

	h.control().Restart = true
	h.tick()
	require.Equal(t, streaming.Loaded, h.machine.State())
	fader, ok := tags.Fader.First(h.ecs.World)
	require.True(t, ok)
	assert.Equal(t, float32(1), components.Fade.Get(fader).Alpha)

	h.tick()
	require.Equal(t, streaming.Running, h.machine.State())
	h.tick()
	assert.Zero(t, count(h, tags.Fader))
}
