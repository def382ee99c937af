package scenes

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/physics/cpengine"
	"github.com/automoto/digrunner/physics/resolvengine"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/automoto/digrunner/shared/streaming"
	"github.com/automoto/digrunner/systems"
	"github.com/automoto/digrunner/systems/factory"
	"github.com/automoto/digrunner/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Options selects where levels come from and how they are simulated. Zero
// fields fall back to the loaded configuration.
type Options struct {
	FS           fs.FS
	WorldPath    string
	Backend      string
	Async        bool
	FadeDuration *time.Duration
}

// Simulation is the headless game world: the ECS, its tick schedule and the
// streaming machine driving level loads.
type Simulation struct {
	ecs     *ecs.ECS
	machine *streaming.Machine
	world   *leveldata.World
	watcher *leveldata.Watcher
}

// NewSimulation opens the project, creates the physics engine and starts
// loading every level.
func NewSimulation(opts Options) (*Simulation, error) {
	if opts.WorldPath == "" {
		opts.WorldPath = cfg.Level.WorldPath
	}
	if opts.Backend == "" {
		opts.Backend = cfg.Physics.Backend
	}
	fade := cfg.Streaming.FadeDuration
	if opts.FadeDuration != nil {
		fade = *opts.FadeDuration
	}

	world, err := leveldata.OpenWorld(opts.FS, opts.WorldPath)
	if err != nil {
		return nil, fmt.Errorf("opening world: %w", err)
	}
	engine, err := NewEngine(opts.Backend, world)
	if err != nil {
		return nil, err
	}

	var source leveldata.Source
	if opts.Async {
		source = leveldata.NewAsyncLoader(opts.FS, cfg.Level.CollisionLayer)
	} else {
		source = leveldata.NewLoader(opts.FS, cfg.Level.CollisionLayer)
	}

	e := ecs.NewECS(donburi.NewWorld())
	machine := streaming.New(fade)
	factory.CreateSession(e, machine)
	factory.CreateSpace(e, engine)
	factory.CreateProject(e, world, source)
	if err := systems.InstallHooks(e); err != nil {
		return nil, fmt.Errorf("installing streaming hooks: %w", err)
	}
	systems.DefaultSchedule().Install(e)

	logger.Info("simulation created",
		zap.String("world", opts.WorldPath),
		zap.String("backend", opts.Backend),
		zap.Int("levels", len(world.Levels)))

	machine.Start()
	return &Simulation{ecs: e, machine: machine, world: world}, nil
}

// NewEngine creates the physics backend named by backend, sized to hold
// every level of world.
func NewEngine(backend string, world *leveldata.World) (physics.Engine, error) {
	gravity := physics.Vec{Y: cfg.Physics.Gravity}
	switch backend {
	case cfg.BackendResolv:
		return resolvengine.New(WorldBounds(world, cfg.Physics.Margin), cfg.Physics.CellSize, gravity), nil
	case cfg.BackendChipmunk:
		return cpengine.New(gravity), nil
	}
	return nil, fmt.Errorf("unknown physics backend %q", backend)
}

// WorldBounds is the union of all level rectangles in world space (Y up),
// grown by margin on every side.
func WorldBounds(world *leveldata.World, margin float64) physics.Rect {
	var r physics.Rect
	for i, ref := range world.Levels {
		lr := physics.Rect{
			Min: physics.Vec{X: ref.X, Y: -(ref.Y + ref.Height)},
			Max: physics.Vec{X: ref.X + ref.Width, Y: -ref.Y},
		}
		if i == 0 {
			r = lr
			continue
		}
		r.Min.X = min(r.Min.X, lr.Min.X)
		r.Min.Y = min(r.Min.Y, lr.Min.Y)
		r.Max.X = max(r.Max.X, lr.Max.X)
		r.Max.Y = max(r.Max.Y, lr.Max.Y)
	}
	r.Min.X -= margin
	r.Min.Y -= margin
	r.Max.X += margin
	r.Max.Y += margin
	return r
}

// Watch restarts the level set whenever watcher reports a changed file.
func (s *Simulation) Watch(watcher *leveldata.Watcher) {
	s.watcher = watcher
}

// Update runs one fixed tick.
func (s *Simulation) Update() {
	if s.watcher != nil && s.watcher.Changed() {
		logger.Info("level files changed, restarting")
		systems.RestartLevel(s.ecs)
	}
	s.ecs.Update()
}

// Close stops the file watcher, if any.
func (s *Simulation) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func (s *Simulation) ECS() *ecs.ECS { return s.ecs }

func (s *Simulation) State() streaming.State { return s.machine.State() }

func (s *Simulation) World() *leveldata.World { return s.world }

// Quit reports whether the session has been quit.
func (s *Simulation) Quit() bool {
	if session := systems.Session(s.ecs); session != nil {
		return session.Quit
	}
	return false
}

// Control returns the session requests the input glue fills in.
func (s *Simulation) Control() *components.ControlData {
	entry, ok := components.Control.First(s.ecs.World)
	if !ok {
		return nil
	}
	return components.Control.Get(entry)
}

// Intent returns the player's intent, nil while no player exists.
func (s *Simulation) Intent() *components.IntentData {
	entry, ok := tags.Player.First(s.ecs.World)
	if !ok {
		return nil
	}
	return components.Intent.Get(entry)
}

// Player returns the player entry, nil while no player exists.
func (s *Simulation) Player() *donburi.Entry {
	entry, ok := tags.Player.First(s.ecs.World)
	if !ok {
		return nil
	}
	return entry
}

// DrainColliderChanges returns and clears the collider rebuild notices queued
// since the last call.
func (s *Simulation) DrainColliderChanges() []components.CollidersChanged {
	entry, ok := components.Notices.First(s.ecs.World)
	if !ok {
		return nil
	}
	n := components.Notices.Get(entry)
	out := n.CollidersChanged
	n.CollidersChanged = nil
	return out
}
