package assets

import (
	"embed"
	"io/fs"
	"os"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// FS returns the embedded level files. Paths are rooted at the assets
// directory, e.g. "levels/cave.tmx".
func FS() fs.FS {
	return assetFS
}

// DirFS serves level files from disk instead, so edits show up on the next
// restart without rebuilding. dir must be the assets directory.
func DirFS(dir string) fs.FS {
	return os.DirFS(dir)
}
