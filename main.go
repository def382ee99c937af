package main

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/digrunner/assets"
	"github.com/automoto/digrunner/config"
	"github.com/automoto/digrunner/fonts"
	"github.com/automoto/digrunner/logger"
	"github.com/automoto/digrunner/render"
	"github.com/automoto/digrunner/scenes"
	"github.com/automoto/digrunner/shared/leveldata"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func loadFonts(path string) error {
	if path == "" {
		return nil
	}
	ttf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := fonts.LoadFontWithSize(fonts.Body, ttf, 12); err != nil {
		return err
	}
	if err := fonts.LoadFontWithSize(fonts.Title, ttf, 20); err != nil {
		return err
	}
	return fonts.LoadFontWithSize(fonts.Small, ttf, 10)
}

func main() {
	config.ParseFlags()
	if err := config.Load(""); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(config.Logging.Level, config.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := loadFonts(config.C.Font); err != nil {
		logger.Warn("falling back to bitmap font", zap.String("font", config.C.Font), zap.Error(err))
	}

	// Watched levels are read from disk so edits are picked up on restart.
	var levels fs.FS = assets.FS()
	if config.Level.Watch {
		levels = assets.DirFS(filepath.Dir(config.Level.WatchDir))
	}

	sim, err := scenes.NewSimulation(scenes.Options{FS: levels, Async: true})
	if err != nil {
		logger.Fatal("failed to create simulation", zap.Error(err))
	}
	defer sim.Close()

	if config.Level.Watch {
		watcher, err := leveldata.NewWatcher(config.Level.WatchDir)
		if err != nil {
			logger.Fatal("failed to watch levels", zap.String("dir", config.Level.WatchDir), zap.Error(err))
		}
		sim.Watch(watcher)
	}

	ebiten.SetWindowSize(int(float64(config.C.Width)*config.C.Scale), int(float64(config.C.Height)*config.C.Scale))
	ebiten.SetWindowTitle("digrunner")
	ebiten.SetTPS(config.Physics.TickRate)

	if err := ebiten.RunGame(render.NewGame(sim)); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
