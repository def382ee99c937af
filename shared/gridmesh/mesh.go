package gridmesh

// Plate is a maximal horizontal run of solid cells in one row. Left and Right
// are inclusive.
type Plate struct {
	Row, Left, Right int
}

// MeshRect is a merged rectangle of cells. All bounds are inclusive and Bottom
// is the lowest row.
type MeshRect struct {
	Left, Right, Top, Bottom int
}

// Width returns the rectangle width in cells.
func (r MeshRect) Width() int { return r.Right - r.Left + 1 }

// Height returns the rectangle height in cells.
func (r MeshRect) Height() int { return r.Top - r.Bottom + 1 }

// Contains reports whether c lies inside the rectangle.
func (r MeshRect) Contains(c GridCoord) bool {
	return c.X >= r.Left && c.X <= r.Right && c.Y >= r.Bottom && c.Y <= r.Top
}

// Center returns the rectangle center in world units relative to the level origin.
func (r MeshRect) Center(gridSize float64) (x, y float64) {
	half := gridSize / 2
	return float64(r.Left+r.Right+1) * half, float64(r.Bottom+r.Top+1) * half
}

// HalfExtents returns half the rectangle size in world units.
func (r MeshRect) HalfExtents(gridSize float64) (hx, hy float64) {
	half := gridSize / 2
	return float64(r.Width()) * half, float64(r.Height()) * half
}

// span identifies a plate across rows. Two plates only continue the same
// rectangle when both edges match exactly.
type span struct {
	left, right int
}

// BuildPlates runs the row pass. The column at x == width is treated as empty
// so a run touching the right edge is always closed.
func BuildPlates(width, height int, solid func(GridCoord) bool) [][]Plate {
	rows := make([][]Plate, 0, height)
	for y := 0; y < height; y++ {
		var row []Plate
		start := -1
		for x := 0; x <= width; x++ {
			occupied := x < width && solid(GridCoord{X: x, Y: y})
			switch {
			case occupied && start < 0:
				start = x
			case !occupied && start >= 0:
				row = append(row, Plate{Row: y, Left: start, Right: x - 1})
				start = -1
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// MergePlates runs the column pass over the rows produced by BuildPlates.
// A synthetic empty row after the last one closes rectangles touching the top
// edge. Rectangles are emitted in the order their last plate appears in the
// row where they close, so the output only depends on the input.
func MergePlates(rows [][]Plate) []MeshRect {
	var rects []MeshRect
	open := make(map[span]*MeshRect)
	var prev []Plate

	for y := 0; y <= len(rows); y++ {
		var cur []Plate
		if y < len(rows) {
			cur = rows[y]
		}

		present := make(map[span]struct{}, len(cur))
		for _, p := range cur {
			present[span{p.Left, p.Right}] = struct{}{}
		}

		for _, p := range prev {
			key := span{p.Left, p.Right}
			if _, ok := present[key]; ok {
				continue
			}
			if r, ok := open[key]; ok {
				rects = append(rects, *r)
				delete(open, key)
			}
		}

		for _, p := range cur {
			key := span{p.Left, p.Right}
			if r, ok := open[key]; ok {
				r.Top++
				continue
			}
			open[key] = &MeshRect{Left: p.Left, Right: p.Right, Bottom: y, Top: y}
		}
		prev = cur
	}
	return rects
}

// Build meshes the live solid cells of an index.
func Build(ix *Index) []MeshRect {
	return MergePlates(BuildPlates(ix.Width(), ix.Height(), ix.Solid))
}

// BuildCells meshes an explicit set of solid cells on a width x height grid.
func BuildCells(width, height int, cells map[GridCoord]struct{}) []MeshRect {
	return MergePlates(BuildPlates(width, height, func(c GridCoord) bool {
		_, ok := cells[c]
		return ok
	}))
}
