package world

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// DeriveSeed mixes mapID into the world seed so every map can be regenerated
// on its own.
func DeriveSeed(seed int64, mapID string) int64 {
	return seed ^ int64(xxhash.Sum64String(mapID))
}

// Generator builds complete atlases, tracing and logging each map.
type Generator struct {
	tracer trace.Tracer
	logger *zap.Logger
}

// NewGenerator returns a Generator. A nil tracer or logger falls back to a no-op.
func NewGenerator(tracer trace.Tracer, logger *zap.Logger) *Generator {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("sosaria/world")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{tracer: tracer, logger: logger}
}

// Generate builds the overworld, every town and every dungeon level for seed.
//
// Postcondition: the atlas holds 1 + len(Towns) + len(Dungeons)*DungeonDepth
// maps and every location resolves.
func (g *Generator) Generate(ctx context.Context, seed int64) (*Atlas, error) {
	ctx, span := g.tracer.Start(ctx, "world.generate")
	defer span.End()
	start := time.Now()

	maps := make([]*GameMap, 0, 1+len(Towns)+len(Dungeons)*DungeonDepth)
	maps = append(maps, g.build(ctx, OverworldID, func() *GameMap {
		return GenerateOverworld(DeriveSeed(seed, OverworldID))
	}))
	for _, s := range Towns {
		id, name := TownMapID(s.Key), s.Name
		maps = append(maps, g.build(ctx, id, func() *GameMap {
			return GenerateTown(DeriveSeed(seed, id), id, name)
		}))
	}
	for _, s := range Dungeons {
		for level := 1; level <= DungeonDepth; level++ {
			id := DungeonMapID(s.Key, level)
			name := fmt.Sprintf("%s, level %d", s.Name, level)
			maps = append(maps, g.build(ctx, id, func() *GameMap {
				return GenerateDungeonLevel(DeriveSeed(seed, id), id, name, level)
			}))
		}
	}

	atlas, err := NewAtlas(seed, maps)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("building atlas: %w", err)
	}
	if err := atlas.ValidateLocations(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("validating atlas: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("world.seed", seed),
		attribute.Int("world.map_count", atlas.MapCount()),
		attribute.Int64("world.generation_ms", time.Since(start).Milliseconds()),
	)
	g.logger.Info("world generated",
		zap.Int64("seed", seed),
		zap.Int("maps", atlas.MapCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return atlas, nil
}

func (g *Generator) build(ctx context.Context, id string, gen func() *GameMap) *GameMap {
	_, span := g.tracer.Start(ctx, "world.generate_map", trace.WithAttributes(attribute.String("map.id", id)))
	defer span.End()
	m := gen()
	span.SetAttributes(attribute.String("map.kind", string(m.Kind)))
	g.logger.Debug("map generated", zap.String("map", id), zap.String("kind", string(m.Kind)))
	return m
}
