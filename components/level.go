package components

import (
	"github.com/automoto/digrunner/shared/gamemath"
	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	ID    string
	Data  *leveldata.Level
	Index *gridmesh.Index
	Ready bool
}

// Contains reports whether a world-space point lies inside the level.
func (l *LevelData) Contains(x, y float64) bool {
	return l.Data != nil && l.Data.Contains(x, y)
}

// GridCoordOf converts a world-space point to the level's cell coordinates.
func (l *LevelData) GridCoordOf(x, y float64) gridmesh.GridCoord {
	return gridmesh.GridCoord{
		X: gamemath.FloorDiv(x-l.Data.OriginX, l.Data.GridSize),
		Y: gamemath.FloorDiv(y-l.Data.OriginY, l.Data.GridSize),
	}
}

var Level = donburi.NewComponentType[LevelData]()

// LevelCollidersData tracks the merged wall colliders spawned for a level.
type LevelCollidersData struct {
	Colliders  []donburi.Entity
	Ladders    []donburi.Entity
	Dirty      bool
	Built      bool
	Generation int
}

var LevelColliders = donburi.NewComponentType[LevelCollidersData]()

// ColliderData is the mesh rectangle a wall or ladder collider was built from.
type ColliderData struct {
	Rect gridmesh.MeshRect
}

var Collider = donburi.NewComponentType[ColliderData]()

// OwnerData points a spawned entity at the level it belongs to.
type OwnerData struct {
	Level donburi.Entity
}

var Owner = donburi.NewComponentType[OwnerData]()

// ProjectData is the loaded world manifest and the source its levels come from.
type ProjectData struct {
	World  *leveldata.World
	Source leveldata.Source
}

var Project = donburi.NewComponentType[ProjectData]()
