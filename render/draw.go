package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/digrunner/components"
	cfg "github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/fonts"
	"github.com/automoto/digrunner/physics"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/systems"
	"github.com/automoto/digrunner/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/colornames"
)

const (
	LayerWorld ecs.LayerID = iota
	LayerOverlay
)

var cellColors = map[gridmesh.CellKind]color.RGBA{
	gridmesh.SolidIndestructible: colornames.Slategray,
	gridmesh.SolidDestructible:   colornames.Sienna,
	gridmesh.Ladder:              colornames.Burlywood,
	gridmesh.Water:               colornames.Steelblue,
}

// camera maps world space (Y up) onto the screen, centred on focus.
type camera struct {
	focus  physics.Vec
	width  float64
	height float64
}

func (c camera) point(p physics.Vec) (float32, float32) {
	return float32(p.X - c.focus.X + c.width/2), float32(c.focus.Y - p.Y + c.height/2)
}

func (c camera) rect(r physics.Rect) (x, y, w, h float32) {
	x, y = c.point(physics.Vec{X: r.Min.X, Y: r.Max.Y})
	return x, y, float32(r.Max.X - r.Min.X), float32(r.Max.Y - r.Min.Y)
}

// cameraFor follows the player, or the selected level while no player exists.
func cameraFor(e *ecs.ECS, screen *ebiten.Image) camera {
	c := camera{width: float64(screen.Bounds().Dx()), height: float64(screen.Bounds().Dy())}
	if entry, ok := tags.Player.First(e.World); ok {
		if p, ok := systems.Position(e, entry); ok {
			c.focus = p
			return c
		}
	}
	if entry := systems.SelectedLevel(e); entry != nil {
		data := components.Level.Get(entry).Data
		c.focus = physics.Vec{X: data.OriginX + data.PixelWidth()/2, Y: data.OriginY + data.PixelHeight()/2}
	}
	return c
}

func bounds(e *ecs.ECS, entry *donburi.Entry) (physics.Rect, bool) {
	eng := systems.Engine(e)
	if eng == nil || !entry.HasComponent(components.Body) {
		return physics.Rect{}, false
	}
	return eng.Bounds(components.Body.Get(entry).Handle), true
}

// DrawLevel fills every live cell of every spawned level.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	cam := cameraFor(e, screen)
	components.Level.Each(e.World, func(entry *donburi.Entry) {
		level := components.Level.Get(entry)
		if level.Index == nil {
			return
		}
		for c, kind := range level.Index.Occupied() {
			clr, ok := cellColors[kind]
			if !ok {
				continue
			}
			x, y, w, h := cam.rect(cellRect(level, c))
			vector.FillRect(screen, x, y, w, h, clr, false)
		}
	})
}

// cellRect is the world-space square covered by cell c of level.
func cellRect(level *components.LevelData, c gridmesh.GridCoord) physics.Rect {
	grid := level.Data.GridSize
	lo := physics.Vec{X: level.Data.OriginX + float64(c.X)*grid, Y: level.Data.OriginY + float64(c.Y)*grid}
	return physics.Rect{Min: lo, Max: physics.Vec{X: lo.X + grid, Y: lo.Y + grid}}
}

// DrawColliders outlines the merged wall and ladder colliders and marks the
// cells dug out of each level.
func DrawColliders(e *ecs.ECS, screen *ebiten.Image) {
	if !cfg.C.Debug {
		return
	}
	cam := cameraFor(e, screen)
	stroke := func(clr color.Color) func(*donburi.Entry) {
		return func(entry *donburi.Entry) {
			if r, ok := bounds(e, entry); ok {
				x, y, w, h := cam.rect(r)
				vector.StrokeRect(screen, x, y, w, h, 1, clr, false)
			}
		}
	}
	tags.Wall.Each(e.World, stroke(colornames.Yellow))
	tags.Climbable.Each(e.World, stroke(colornames.Orange))

	components.Level.Each(e.World, func(entry *donburi.Entry) {
		level := components.Level.Get(entry)
		if level.Index == nil {
			return
		}
		for _, c := range level.Index.Destroyed() {
			x, y, w, h := cam.rect(cellRect(level, c))
			vector.StrokeLine(screen, x, y, x+w, y+h, 1, colornames.Sienna, false)
			vector.StrokeLine(screen, x+w, y, x, y+h, 1, colornames.Sienna, false)
		}
	})
}

// DrawActors draws the player, enemies and triggers as filled boxes.
func DrawActors(e *ecs.ECS, screen *ebiten.Image) {
	cam := cameraFor(e, screen)
	var tick uint64
	if entry, ok := components.Clock.First(e.World); ok {
		tick = components.Clock.Get(entry).Tick
	}
	fill := func(clr color.RGBA) func(*donburi.Entry) {
		return func(entry *donburi.Entry) {
			r, ok := bounds(e, entry)
			if !ok {
				return
			}
			c := clr
			// Blink while invulnerable.
			if systems.IsInvulnerable(entry) && (tick/6)%2 == 0 {
				c = color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: 85}
			}
			x, y, w, h := cam.rect(r)
			vector.FillRect(screen, x, y, w, h, c, false)
		}
	}
	tags.Door.Each(e.World, fill(colornames.Saddlebrown))
	tags.Chest.Each(e.World, fill(colornames.Gold))
	tags.End.Each(e.World, fill(colornames.Limegreen))
	tags.Enemy.Each(e.World, fill(colornames.Crimson))
	tags.Player.Each(e.World, fill(colornames.Dodgerblue))
}

// DrawHUD shows the player's life and items and the streaming state.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	face := fonts.Small.Get()
	lines := []string{systems.State(e).String()}
	if entry, ok := tags.Player.First(e.World); ok {
		life := components.Life.Get(entry)
		lines = append(lines, fmt.Sprintf("life %d/%d", life.Current, life.Max))
		if items := components.Items.Get(entry).List; len(items) > 0 {
			lines = append(lines, "items "+itemList(items))
		}
	}
	if cfg.C.Debug {
		if s := systems.Session(e); s != nil && s.Selected != "" {
			lines = append(lines, "level "+s.Selected)
		}
	}
	for i, line := range lines {
		text.Draw(screen, line, face, 4, 14+i*14, colornames.White)
	}
}

// DrawPopup draws the open popup in a centred box.
func DrawPopup(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Popup.First(e.World)
	if !ok {
		return
	}
	popup := components.Popup.Get(entry)

	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	boxW, boxH := width*0.6, height*0.4
	boxX, boxY := (width-boxW)/2, (height-boxH)/2
	vector.FillRect(screen, boxX, boxY, boxW, boxH, color.RGBA{A: 220}, false)
	vector.StrokeRect(screen, boxX, boxY, boxW, boxH, 2, colornames.White, false)

	x, y := int(boxX)+12, int(boxY)+24
	text.Draw(screen, popup.Title, fonts.Title.Get(), x, y, colornames.Gold)
	text.Draw(screen, popup.Text, fonts.Body.Get(), x, y+24, colornames.White)
	if len(popup.Items) > 0 {
		text.Draw(screen, itemList(popup.Items), fonts.Body.Get(), x, y+44, colornames.Lightgreen)
	}
	text.Draw(screen, "Enter to continue", fonts.Small.Get(), x, int(boxY+boxH)-10, colornames.Gray)
}

// DrawFade covers the screen with the loading fade.
func DrawFade(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := tags.Fader.First(e.World)
	if !ok {
		return
	}
	alpha := components.Fade.Get(entry).Alpha
	if alpha <= 0 {
		return
	}
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: uint8(alpha * 255)}, false)
}

// Install registers every renderer on e.
func Install(e *ecs.ECS) {
	e.AddRenderer(LayerWorld, DrawLevel)
	e.AddRenderer(LayerWorld, DrawColliders)
	e.AddRenderer(LayerWorld, DrawActors)
	e.AddRenderer(LayerOverlay, DrawHUD)
	e.AddRenderer(LayerOverlay, DrawPopup)
	e.AddRenderer(LayerOverlay, DrawFade)
}

func itemList[T fmt.Stringer](items []T) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.String()
	}
	return strings.Join(names, ", ")
}
