package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/slimecount/internal/assets"
	"chosenoffset.com/slimecount/internal/audio"
	"chosenoffset.com/slimecount/internal/config"
	"chosenoffset.com/slimecount/internal/logging"
	"chosenoffset.com/slimecount/internal/session"
	"chosenoffset.com/slimecount/internal/tui"
)

func main() {
	configDir := flag.String("config", ".", "directory containing slimecount.json")
	logPath := flag.String("log", "slimecount-tui.log", "log file (the terminal is taken by the game)")
	flag.Parse()

	if err := run(*configDir, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir, logPath string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)

	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, level, false)

	initial, err := cfg.RoundDefaults()
	if err != nil {
		return err
	}

	colors := assets.NewLoader(cfg.Assets.Dir, assets.DefaultFiles(), tui.LoadColor, logger)
	colors.Start()

	music, err := audio.Load(filepath.Join(cfg.Assets.Dir, cfg.Audio.File), cfg.Audio.Enabled)
	if err != nil && !errors.Is(err, audio.ErrDisabled) {
		logger.Warn().Err(err).Msg("music unavailable, playing silently")
	}

	controller, err := session.NewController(session.Options{
		Assets:       colors,
		Music:        music,
		FadeDuration: cfg.Audio.FadeDuration,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info().Str("assets", cfg.Assets.Dir).Msg("starting terminal game")
	app := tui.New(screen, controller, colors, cfg.Round.Durations, initial, logger)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
