// Package gridmesh turns a level's collision grid into axis-aligned rectangles.
// It has no dependencies on ebitengine, donburi, or a physics backend, pure data only.
package gridmesh

import "sort"

// GridCoord is a level-local cell address. The origin is the level's bottom-left
// cell and Y grows upward.
type GridCoord struct {
	X, Y int
}

// CellKind classifies an occupied cell of the collision layer.
type CellKind int

const (
	CellUnknown CellKind = iota
	SolidIndestructible
	SolidDestructible
	Ladder
	Water
)

// Kind codes used by the level files.
const (
	CodeDirt   = 1
	CodeLadder = 2
	CodeStone  = 3
	CodeWater  = 4
)

func (k CellKind) String() string {
	switch k {
	case SolidIndestructible:
		return "stone"
	case SolidDestructible:
		return "dirt"
	case Ladder:
		return "ladder"
	case Water:
		return "water"
	}
	return "unknown"
}

// IsSolid reports whether cells of this kind take part in meshing.
func (k CellKind) IsSolid() bool {
	return k == SolidIndestructible || k == SolidDestructible
}

// KindFromCode maps a level file kind code to a CellKind. Unrecognised codes
// return CellUnknown and false.
func KindFromCode(code int) (CellKind, bool) {
	switch code {
	case CodeDirt:
		return SolidDestructible, true
	case CodeLadder:
		return Ladder, true
	case CodeStone:
		return SolidIndestructible, true
	case CodeWater:
		return Water, true
	}
	return CellUnknown, false
}

// Index is the occupancy of one level's collision layer. Cells are fixed for the
// lifetime of the index; gameplay can only remove destructible ones.
type Index struct {
	width, height int
	cells         map[GridCoord]CellKind
	destroyed     map[GridCoord]struct{}
}

// NewIndex copies cells into a new index. Cells outside the grid and unknown
// cells are dropped.
func NewIndex(width, height int, cells map[GridCoord]CellKind) *Index {
	ix := &Index{
		width:     width,
		height:    height,
		cells:     make(map[GridCoord]CellKind, len(cells)),
		destroyed: make(map[GridCoord]struct{}),
	}
	for c, k := range cells {
		if k == CellUnknown || !ix.InBounds(c) {
			continue
		}
		ix.cells[c] = k
	}
	return ix
}

func (ix *Index) Width() int  { return ix.width }
func (ix *Index) Height() int { return ix.height }

// InBounds reports whether c lies inside the grid.
func (ix *Index) InBounds(c GridCoord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < ix.width && c.Y < ix.height
}

// Kind returns the kind of the cell at c, excluding destroyed cells.
func (ix *Index) Kind(c GridCoord) (CellKind, bool) {
	if _, gone := ix.destroyed[c]; gone {
		return CellUnknown, false
	}
	k, ok := ix.cells[c]
	return k, ok
}

// Solid reports whether c currently holds a solid cell.
func (ix *Index) Solid(c GridCoord) bool {
	k, ok := ix.Kind(c)
	return ok && k.IsSolid()
}

// Is reports whether c currently holds a cell of the given kind.
func (ix *Index) Is(c GridCoord, kind CellKind) bool {
	k, ok := ix.Kind(c)
	return ok && k == kind
}

// Occupied returns every live cell, i.e. the source cells minus the destroyed set.
func (ix *Index) Occupied() map[GridCoord]CellKind {
	out := make(map[GridCoord]CellKind, len(ix.cells)-len(ix.destroyed))
	for c, k := range ix.cells {
		if _, gone := ix.destroyed[c]; gone {
			continue
		}
		out[c] = k
	}
	return out
}

// Cells returns the live cells of one kind ordered by row then column.
func (ix *Index) Cells(kind CellKind) []GridCoord {
	var out []GridCoord
	for c, k := range ix.cells {
		if k != kind {
			continue
		}
		if _, gone := ix.destroyed[c]; gone {
			continue
		}
		out = append(out, c)
	}
	sortCoords(out)
	return out
}

// Destroy removes a destructible cell. It returns false when c is not a live
// SolidDestructible cell, so repeated digs of the same cell are no-ops.
func (ix *Index) Destroy(c GridCoord) bool {
	if !ix.Is(c, SolidDestructible) {
		return false
	}
	ix.destroyed[c] = struct{}{}
	return true
}

// Destroyed returns the destroyed set ordered by row then column.
func (ix *Index) Destroyed() []GridCoord {
	out := make([]GridCoord, 0, len(ix.destroyed))
	for c := range ix.destroyed {
		out = append(out, c)
	}
	sortCoords(out)
	return out
}

func sortCoords(cs []GridCoord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
