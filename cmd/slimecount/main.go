package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"chosenoffset.com/slimecount/internal/assets"
	"chosenoffset.com/slimecount/internal/audio"
	"chosenoffset.com/slimecount/internal/config"
	"chosenoffset.com/slimecount/internal/game"
	"chosenoffset.com/slimecount/internal/logging"
	ebitenrender "chosenoffset.com/slimecount/internal/render/ebiten"
	"chosenoffset.com/slimecount/internal/session"
)

func main() {
	configDir := flag.String("config", ".", "directory containing slimecount.json")
	flag.Parse()

	bootLog := logging.New(os.Stderr, zerolog.InfoLevel, true)

	cfg, err := config.Load(*configDir)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(os.Stderr, level, true)

	initial, err := cfg.RoundDefaults()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid round defaults")
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	images := assets.NewLoader(cfg.Assets.Dir, assets.DefaultFiles(), loader.LoadImage, logger)
	images.Start()

	music, err := audio.Load(filepath.Join(cfg.Assets.Dir, cfg.Audio.File), cfg.Audio.Enabled)
	switch {
	case errors.Is(err, audio.ErrDisabled):
		logger.Info().Msg("audio disabled")
	case err != nil:
		logger.Warn().Err(err).Msg("music unavailable, playing silently")
	}

	controller, err := session.NewController(session.Options{
		Assets:       images,
		Music:        music,
		FadeDuration: cfg.Audio.FadeDuration,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session")
	}
	defer controller.Close()

	g := game.New(controller, images, renderer, inputMgr, cfg.Round.Durations, initial, logger)

	// The window scales the fixed logical screen from Layout.
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	logger.Info().Str("assets", cfg.Assets.Dir).Msg("starting game")
	if err := engine.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game loop failed")
	}
}
