package leveldata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/digrunner/shared/gridmesh"
	"github.com/lafriks/go-tiled"
)

// LoadLevel parses a TMX file and returns its collision grid and objects. The
// tile layer at collisionLayer is authoritative for collision. It takes an
// fs.FS so callers can pass embed.FS or os.DirFS.
func LoadLevel(fsys fs.FS, ref LevelRef, collisionLayer int) (*Level, error) {
	levelMap, err := tiled.LoadFile(ref.Path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", ref.Path, err)
	}
	if collisionLayer < 0 || collisionLayer >= len(levelMap.Layers) {
		return nil, fmt.Errorf("%s layer %d of %d: %w", ref.Path, collisionLayer, len(levelMap.Layers), ErrNoCollisionLayer)
	}

	level := &Level{
		ID:        ref.ID,
		CellsWide: levelMap.Width,
		CellsHigh: levelMap.Height,
		GridSize:  float64(levelMap.TileWidth),
		Cells:     make(map[gridmesh.GridCoord]gridmesh.CellKind),
	}
	level.OriginX = ref.X
	level.OriginY = -(ref.Y + level.PixelHeight())

	layer := levelMap.Layers[collisionLayer]
	unknown := make(map[int]struct{})
	for row := 0; row < levelMap.Height; row++ {
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[row*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}

			code := int(tile.ID) + 1
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				if c := tilesetTile.Properties.GetInt("cell"); c != 0 {
					code = c
				}
			}

			kind, ok := gridmesh.KindFromCode(code)
			if !ok {
				unknown[code] = struct{}{}
			}
			// Tiled rows run top-down, grid rows run bottom-up.
			level.Cells[gridmesh.GridCoord{X: x, Y: levelMap.Height - 1 - row}] = kind
		}
	}
	for code := range unknown {
		level.UnknownCodes = append(level.UnknownCodes, code)
	}
	sort.Ints(level.UnknownCodes)

	for _, og := range levelMap.ObjectGroups {
		if og.Name != EntitiesGroup {
			continue
		}
		for _, o := range og.Objects {
			class := o.Class
			if class == "" {
				class = o.Type //nolint:staticcheck // older TMX files use type=
			}
			level.Objects = append(level.Objects, Object{
				ID:     o.ID,
				Class:  class,
				X:      o.X + o.Width/2,
				Y:      level.PixelHeight() - (o.Y + o.Height/2),
				W:      o.Width,
				H:      o.Height,
				Items:  SplitItems(o.Properties.GetString("items")),
				Patrol: o.Properties.GetFloat("patrol"),
				Text:   o.Properties.GetString("text"),
			})
		}
	}

	// Stable order keeps entity spawning reproducible.
	sort.SliceStable(level.Objects, func(i, j int) bool {
		return level.Objects[i].ID < level.Objects[j].ID
	})

	return level, nil
}

type worldFile struct {
	Maps []struct {
		FileName string  `json:"fileName"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		Width    float64 `json:"width"`
		Height   float64 `json:"height"`
	} `json:"maps"`
	Type string `json:"type"`
}

// LoadWorld parses a Tiled .world file. Map paths are resolved relative to the
// world file.
func LoadWorld(fsys fs.FS, worldPath string) (*World, error) {
	data, err := fs.ReadFile(fsys, worldPath)
	if err != nil {
		return nil, fmt.Errorf("read world %s: %w", worldPath, err)
	}

	var wf worldFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse world %s: %w", worldPath, err)
	}
	if len(wf.Maps) == 0 {
		return nil, fmt.Errorf("world %s: %w", worldPath, ErrNoLevels)
	}

	dir := path.Dir(worldPath)
	world := &World{}
	for _, m := range wf.Maps {
		world.Levels = append(world.Levels, LevelRef{
			ID:     stem(m.FileName),
			Path:   path.Join(dir, m.FileName),
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}
	return world, nil
}

// DiscoverWorld builds a world from every .tmx file in levelsDir, laid out left
// to right in name order. It is used when a project has no .world file.
func DiscoverWorld(fsys fs.FS, levelsDir string) (*World, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", levelsDir, ErrNoLevels)
	}
	sort.Strings(matches)

	world := &World{}
	x := 0.0
	for _, p := range matches {
		levelMap, err := tiled.LoadFile(p, tiled.WithFileSystem(fsys))
		if err != nil {
			return nil, fmt.Errorf("load TMX %s: %w", p, err)
		}
		w := float64(levelMap.Width * levelMap.TileWidth)
		h := float64(levelMap.Height * levelMap.TileHeight)
		world.Levels = append(world.Levels, LevelRef{
			ID:     stem(p),
			Path:   p,
			X:      x,
			Width:  w,
			Height: h,
		})
		x += w
	}
	return world, nil
}

// OpenWorld loads worldPath when it names a .world file and otherwise treats it
// as a directory of TMX files.
func OpenWorld(fsys fs.FS, worldPath string) (*World, error) {
	if strings.HasSuffix(worldPath, ".world") {
		return LoadWorld(fsys, worldPath)
	}
	return DiscoverWorld(fsys, worldPath)
}

// Find returns the reference with the given id.
func (w *World) Find(id string) (LevelRef, bool) {
	for _, ref := range w.Levels {
		if ref.ID == id {
			return ref, true
		}
	}
	return LevelRef{}, false
}

func stem(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
