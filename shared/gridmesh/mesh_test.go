package gridmesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseGrid reads rows top to bottom, so the last string is row 0.
func parseGrid(rows ...string) (int, int, map[GridCoord]CellKind) {
	height := len(rows)
	width := 0
	cells := make(map[GridCoord]CellKind)
	for i, row := range rows {
		if len(row) > width {
			width = len(row)
		}
		y := height - 1 - i
		for x, ch := range row {
			switch ch {
			case '#':
				cells[GridCoord{x, y}] = SolidIndestructible
			case 'd':
				cells[GridCoord{x, y}] = SolidDestructible
			case 'H':
				cells[GridCoord{x, y}] = Ladder
			case '~':
				cells[GridCoord{x, y}] = Water
			}
		}
	}
	return width, height, cells
}

func indexOf(rows ...string) *Index {
	w, h, cells := parseGrid(rows...)
	return NewIndex(w, h, cells)
}

// requireExactCover checks that rects cover every solid cell once and nothing else.
func requireExactCover(t *testing.T, ix *Index, rects []MeshRect) {
	t.Helper()
	covered := make(map[GridCoord]int)
	for _, r := range rects {
		require.LessOrEqual(t, r.Left, r.Right)
		require.LessOrEqual(t, r.Bottom, r.Top)
		for y := r.Bottom; y <= r.Top; y++ {
			for x := r.Left; x <= r.Right; x++ {
				covered[GridCoord{x, y}]++
			}
		}
	}
	for y := 0; y < ix.Height(); y++ {
		for x := 0; x < ix.Width(); x++ {
			c := GridCoord{x, y}
			if ix.Solid(c) {
				assert.Equal(t, 1, covered[c], "solid cell %v", c)
			} else {
				assert.Zero(t, covered[c], "empty cell %v", c)
			}
		}
	}
}

func TestBuildPlates(t *testing.T) {
	ix := indexOf(
		"##.##",
		".###.",
	)
	rows := BuildPlates(ix.Width(), ix.Height(), ix.Solid)
	require.Len(t, rows, 2)
	assert.Equal(t, []Plate{{Row: 0, Left: 1, Right: 3}}, rows[0])
	assert.Equal(t, []Plate{{Row: 1, Left: 0, Right: 1}, {Row: 1, Left: 3, Right: 4}}, rows[1])
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		grid []string
		want []MeshRect
	}{
		{
			name: "empty level",
			grid: []string{"....", "...."},
			want: nil,
		},
		{
			name: "single row",
			grid: []string{"......", "#####."},
			want: []MeshRect{{Left: 0, Right: 4, Bottom: 0, Top: 0}},
		},
		{
			name: "row touching right edge",
			grid: []string{"..###"},
			want: []MeshRect{{Left: 2, Right: 4, Bottom: 0, Top: 0}},
		},
		{
			name: "stacked identical rows merge",
			grid: []string{".###.", ".###."},
			want: []MeshRect{{Left: 1, Right: 3, Bottom: 0, Top: 1}},
		},
		{
			name: "narrowing row starts a new rect",
			grid: []string{".##..", ".###."},
			want: []MeshRect{
				{Left: 1, Right: 3, Bottom: 0, Top: 0},
				{Left: 1, Right: 2, Bottom: 1, Top: 1},
			},
		},
		{
			name: "fully solid level",
			grid: []string{"###", "###", "###"},
			want: []MeshRect{{Left: 0, Right: 2, Bottom: 0, Top: 2}},
		},
		{
			name: "two chains diverge",
			grid: []string{
				"##...",
				"##.##",
				"##.##",
			},
			want: []MeshRect{
				{Left: 3, Right: 4, Bottom: 0, Top: 1},
				{Left: 0, Right: 1, Bottom: 0, Top: 2},
			},
		},
		{
			name: "ladders and water are not meshed",
			grid: []string{"~~H", "ddd"},
			want: []MeshRect{{Left: 0, Right: 2, Bottom: 0, Top: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := indexOf(tt.grid...)
			got := Build(ix)
			assert.Equal(t, tt.want, got)
			requireExactCover(t, ix, got)
		})
	}
}

func TestBuildRandomGridsCoverExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 200; i++ {
		w, h := 1+rng.Intn(12), 1+rng.Intn(12)
		cells := make(map[GridCoord]CellKind)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if rng.Intn(3) > 0 {
					cells[GridCoord{x, y}] = SolidIndestructible
				}
			}
		}
		ix := NewIndex(w, h, cells)
		rects := Build(ix)
		requireExactCover(t, ix, rects)
		assert.Equal(t, rects, Build(ix), "rebuild must be deterministic")
	}
}

func TestDigRebuildMatchesReducedGrid(t *testing.T) {
	ix := indexOf(
		"dddd",
		"dddd",
		"dddd",
	)
	require.Len(t, Build(ix), 1)

	hole := GridCoord{X: 1, Y: 1}
	require.True(t, ix.Destroy(hole))
	dug := Build(ix)
	for _, r := range dug {
		assert.False(t, r.Contains(hole))
	}
	requireExactCover(t, ix, dug)

	reduced := indexOf(
		"dddd",
		"d.dd",
		"dddd",
	)
	assert.Equal(t, Build(reduced), dug)
	assert.Equal(t, dug, Build(ix))
}

func TestMeshRectWorldGeometry(t *testing.T) {
	r := MeshRect{Left: 2, Right: 4, Bottom: 1, Top: 1}
	cx, cy := r.Center(16)
	assert.Equal(t, 56.0, cx)
	assert.Equal(t, 24.0, cy)

	hx, hy := r.HalfExtents(16)
	assert.Equal(t, 24.0, hx)
	assert.Equal(t, 8.0, hy)
}
