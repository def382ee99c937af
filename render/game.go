// Package render is the ebitengine front end: it polls input into the
// simulation and draws the world as flat debug shapes.
package render

import (
	"fmt"
	"image/color"

	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/fonts"
	"github.com/automoto/digrunner/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"golang.org/x/image/colornames"
)

// Game adapts a Simulation to ebiten.Game. Each Update is one fixed tick.
type Game struct {
	sim   *scenes.Simulation
	input Input

	// lastRebuild describes the most recent collider rebuild for the debug line.
	lastRebuild string
}

func NewGame(sim *scenes.Simulation) *Game {
	Install(sim.ECS())
	return &Game{sim: sim}
}

func (g *Game) Update() error {
	g.input.Poll()
	if g.input.JustPressed(ActionDebug) {
		cfg.C.Debug = !cfg.C.Debug
	}
	g.input.Apply(g.sim.Intent(), g.sim.Control())

	g.sim.Update()
	for _, n := range g.sim.DrainColliderChanges() {
		g.lastRebuild = fmt.Sprintf("%s: %d colliders (gen %d)", n.LevelID, n.Count, n.Generation)
	}
	if g.sim.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)
	g.sim.ECS().Draw(screen)
	if cfg.C.Debug && g.lastRebuild != "" {
		text.Draw(screen, g.lastRebuild, fonts.Small.Get(), 4, screen.Bounds().Dy()-6, colornames.Yellow)
	}
}

func (g *Game) Layout(width, height int) (int, int) {
	return cfg.C.Width, cfg.C.Height
}
