// Package main runs the game in the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/config"
	"github.com/cory-johannsen/sosaria/internal/server"
	"github.com/cory-johannsen/sosaria/internal/tui"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty = defaults and SOSARIA_* env)")
	seed := flag.Int64("seed", 0, "world seed; overrides game.seed when non-zero")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	app, cleanup, err := initializeApp(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing: %v", err)
	}
	defer cleanup()
	logger := app.Logger

	if cfg.Game.StartParty {
		if err := app.Game.CreatePremadeParty(); err != nil {
			logger.Fatal("creating party", zap.Error(err))
		}
		if err := app.Game.StartGame(ctx); err != nil {
			logger.Fatal("starting game", zap.Error(err))
		}
	}

	lc := server.NewLifecycle(logger)
	lc.Add("tui", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			return tui.Run(ctx, app.Game, app.Store, logger)
		},
	})

	logger.Info("sosaria ready",
		zap.String("save_driver", cfg.Game.SaveDriver),
		zap.Int64("seed", cfg.Game.Seed),
		zap.Duration("startup", time.Since(start)),
	)
	if err := lc.Run(ctx); err != nil {
		logger.Error("exited with error", zap.Error(err))
	}
}
