//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/sosaria/internal/config"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

func initializeApp(ctx context.Context, cfg config.Config) (*App, func(), error) {
	wire.Build(
		provideLogger,
		provideTracer,
		provideRoller,
		provideRules,
		world.NewGenerator,
		provideScripts,
		provideStore,
		provideGame,
		newApp,
	)
	return nil, nil, nil
}
