package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lightswitch/assets"
	"github.com/milk9111/lightswitch/config"
	"github.com/milk9111/lightswitch/sound"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the scene config (embedded default when missing)")
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	watch := flag.Bool("watch", true, "reload the config file when it changes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	zerolog.SetGlobalLevel(logLevel(cfg.LogLevel, *debug))

	var watcher *config.Watcher
	if *watch {
		watcher, err = config.NewWatcher(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config hot reload disabled")
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Debug().Strs("tracks", assets.Audio()).Msg("embedded audio")
	engine := sound.NewEngine(logger)
	game := NewGame(GameOptions{
		Config:     cfg,
		ConfigPath: *configPath,
		Logger:     logger,
		Debug:      *debug,
		Opener:     engine,
		Synth:      sound.NewSynth(engine),
		Watcher:    watcher,
	})

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("game exited")
	}
}
