package main

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/rockstorm/internal/audio"
	"github.com/tomz197/rockstorm/internal/config"
	"github.com/tomz197/rockstorm/internal/level"
	"github.com/tomz197/rockstorm/internal/loop"
	"github.com/tomz197/rockstorm/internal/object"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("ROCKSTORM_CONFIG", "rockstorm.toml"))
	if err != nil {
		return err
	}
	// The canvas owns the terminal, so logs never go to stderr here.
	log, err := config.NewLogger(cfg.Logging.WithFile(config.DefaultLogFile))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	levels := level.Defaults()
	if cfg.Game.LevelsFile != "" {
		if levels, err = level.LoadFile(cfg.Game.LevelsFile); err != nil {
			return err
		}
	}

	mixer := audio.NewMixer(cfg.Paths.Assets, log.Named("audio"))
	if err := mixer.Initialize(); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
	}
	defer mixer.Close()

	sess, err := loop.NewSession(loop.Options{
		Screen:       object.NewScreen(cfg.Game.Width, cfg.Game.Height),
		Levels:       levels,
		SettingsPath: cfg.Paths.Settings,
		Sounds:       mixer,
		Logger:       log,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	return loop.Run(sess, loop.IO{
		In:  bufio.NewReader(os.Stdin),
		Out: os.Stdout,
	}, cfg.Game.FPS)
}
