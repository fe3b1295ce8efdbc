package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/config"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/save"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
	"github.com/cory-johannsen/sosaria/internal/observability"
	"github.com/cory-johannsen/sosaria/internal/scripting"
	"github.com/cory-johannsen/sosaria/internal/storage/postgres"
	"github.com/cory-johannsen/sosaria/internal/storage/sqlite"
)

// App is everything main needs to run a session.
type App struct {
	Config config.Config
	Logger *zap.Logger
	Game   *gameserver.Game
	Store  save.Store
}

func newApp(cfg config.Config, logger *zap.Logger, game *gameserver.Game, store save.Store) *App {
	return &App{Config: cfg, Logger: logger, Game: game, Store: store}
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideTracer(ctx context.Context, cfg config.Config, logger *zap.Logger) (trace.Tracer, func(), error) {
	shutdown, err := observability.SetupTracing(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up tracing: %w", err)
	}
	cleanup := func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("flushing traces", zap.Error(err))
		}
	}
	if !cfg.Telemetry.Enabled {
		return observability.NoopTracer(), cleanup, nil
	}
	return observability.Tracer("game"), cleanup, nil
}

func provideRoller(logger *zap.Logger) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
}

func provideRules() (*ruleset.Rules, error) {
	return ruleset.Default()
}

func provideScripts(cfg config.Config, roller *dice.Roller, logger *zap.Logger) (*scripting.Manager, func(), error) {
	mgr := scripting.NewManager(roller, logger)
	if cfg.Game.ScriptDir != "" {
		if err := mgr.Load(cfg.Game.ScriptDir); err != nil {
			mgr.Close()
			return nil, nil, fmt.Errorf("loading scripts: %w", err)
		}
	}
	return mgr, mgr.Close, nil
}

func provideStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (save.Store, func(), error) {
	switch cfg.Game.SaveDriver {
	case config.SaveDriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("save store ready",
			zap.String("driver", cfg.Game.SaveDriver),
			zap.String("host", cfg.Database.Host),
		)
		return pool.Saves(), pool.Close, nil
	default:
		store, err := sqlite.Open(cfg.Game.SavePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("opening save file: %w", err)
		}
		logger.Info("save store ready",
			zap.String("driver", cfg.Game.SaveDriver),
			zap.String("path", cfg.Game.SavePath),
		)
		return store, func() { _ = store.Close() }, nil
	}
}

// provideGame builds the orchestrator and points the script party module
// at whichever party the game currently holds.
func provideGame(
	cfg config.Config,
	rules *ruleset.Rules,
	roller *dice.Roller,
	gen *world.Generator,
	tracer trace.Tracer,
	logger *zap.Logger,
	scripts *scripting.Manager,
) *gameserver.Game {
	g := gameserver.NewGame(gameserver.Deps{
		Rules:        rules,
		Roller:       roller,
		Generator:    gen,
		Logger:       logger,
		Tracer:       tracer,
		Hooks:        scripts,
		Seed:         cfg.Game.Seed,
		StartingGold: cfg.Game.StartingGold,
		StartingFood: cfg.Game.StartingFood,
	})
	scripts.PartyGold = func() int { return g.Party().Gold() }
	scripts.GrantGold = func(n int) { g.Party().AddGold(n) }
	scripts.HasMark = func(mark string) bool { return g.Party().Marks.Has(mark) }
	scripts.AddMark = func(mark string) { g.Party().Marks.Put(mark) }
	return g
}
