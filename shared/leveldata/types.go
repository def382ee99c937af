// Package leveldata provides TMX level parsing for the simulation and the viewer.
// It has no dependencies on ebitengine, donburi, or a physics backend, pure data only.
package leveldata

import (
	"errors"

	"github.com/automoto/digrunner/shared/gridmesh"
)

var (
	ErrNoLevels         = errors.New("no levels found")
	ErrNoCollisionLayer = errors.New("collision layer missing")
)

// Object classes understood by the simulation.
const (
	ClassPlayer = "Player"
	ClassEnemy  = "Enemy"
	ClassChest  = "Chest"
	ClassDoor   = "Door"
	ClassEnd    = "End"
)

// EntitiesGroup is the object group that holds spawnable objects.
const EntitiesGroup = "Entities"

// World lists the levels of one project and where they sit in world space.
type World struct {
	Levels []LevelRef
}

// LevelRef locates a level file. X and Y are the map's top-left corner in the
// world file's pixel space, where Y grows downward.
type LevelRef struct {
	ID            string
	Path          string
	X, Y          float64
	Width, Height float64
}

// Level is the collision-relevant content of one TMX map.
type Level struct {
	ID        string
	CellsWide int
	CellsHigh int
	GridSize  float64

	// OriginX, OriginY is the level's bottom-left corner in world space (Y up).
	OriginX, OriginY float64

	Cells   map[gridmesh.GridCoord]gridmesh.CellKind
	Objects []Object

	// UnknownCodes lists cell codes that did not map to a known kind.
	UnknownCodes []int
}

// PixelWidth returns the level width in world units.
func (l *Level) PixelWidth() float64 { return float64(l.CellsWide) * l.GridSize }

// PixelHeight returns the level height in world units.
func (l *Level) PixelHeight() float64 { return float64(l.CellsHigh) * l.GridSize }

// Contains reports whether the world-space point lies inside the level bounds.
func (l *Level) Contains(x, y float64) bool {
	return x >= l.OriginX && x < l.OriginX+l.PixelWidth() &&
		y >= l.OriginY && y < l.OriginY+l.PixelHeight()
}

// Object is a spawnable entity placed in a level. X and Y are the object's
// center relative to the level origin, Y up.
type Object struct {
	ID     uint32
	Class  string
	X, Y   float64
	W, H   float64
	Items  []string
	Patrol float64
	Text   string
}
