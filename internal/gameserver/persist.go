package gameserver

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/save"
)

// SaveData snapshots the running game.
//
// Precondition: State() is Overworld, Town or Dungeon.
func (g *Game) SaveData() (save.Data, error) {
	switch g.state {
	case StateOverworld, StateTown, StateDungeon:
	default:
		return save.Data{}, fmt.Errorf("saving in state %s: %w", g.state, ErrWrongState)
	}
	return save.Data{
		Version: save.FormatVersion,
		Seed:    g.seed,
		State:   g.state.String(),
		Party:   g.party.State(),
		Deltas:  g.atlas.Deltas(),
	}, nil
}

// ApplySaveData replaces the running game with a snapshot: the world is
// regenerated from the saved seed and the recorded tile changes are
// replayed on top.
//
// Precondition: data.State names the exploration state of the saved map.
// Postcondition: on error the game is unchanged.
func (g *Game) ApplySaveData(ctx context.Context, data save.Data) error {
	if g.state == StateCombat || g.state == StateShop {
		return fmt.Errorf("loading in state %s: %w", g.state, ErrWrongState)
	}
	if data.Version != save.FormatVersion {
		return fmt.Errorf("%w: %d", save.ErrUnsupportedVersion, data.Version)
	}
	ctx, span := g.tracer.Start(ctx, "game.load", trace.WithAttributes(
		attribute.Int64("world.seed", data.Seed),
		attribute.String("map.id", data.Party.MapID),
	))
	defer span.End()

	p, err := party.FromState(data.Party, g.rules)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("restoring party: %w", err)
	}
	if p.Size() == 0 {
		return ErrEmptyParty
	}
	atlas, err := g.generator.Generate(ctx, data.Seed)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("regenerating world: %w", err)
	}
	if err := atlas.ApplyDeltas(data.Deltas); err != nil {
		span.RecordError(err)
		return fmt.Errorf("replaying tile changes: %w", err)
	}
	m, ok := atlas.Get(p.MapID)
	if !ok {
		return fmt.Errorf("saved map %q does not exist", p.MapID)
	}
	if !m.InBounds(p.X, p.Y) {
		return fmt.Errorf("saved position (%d,%d) is off map %q", p.X, p.Y, p.MapID)
	}
	state := stateFor(m)
	if data.State != state.String() {
		return fmt.Errorf("saved state %q does not match map %q (%s)", data.State, m.ID, state)
	}

	g.seed = data.Seed
	g.party = p
	g.atlas = atlas
	g.current = m
	g.encounter, g.shop = nil, nil
	g.refreshSight()

	g.setState(state)
	if g.listener.OnMapChanged != nil {
		g.listener.OnMapChanged(m)
	}
	if g.listener.OnPartyMoved != nil {
		g.listener.OnPartyMoved(p.X, p.Y)
	}
	g.logger.Info("game restored",
		zap.Int64("seed", data.Seed),
		zap.String("map", m.ID),
		zap.Int("day", p.DayCount),
	)
	g.message("Your journey resumes.")
	return nil
}

// SaveTo writes the running game into slot of store.
func (g *Game) SaveTo(ctx context.Context, store save.Store, slot string) error {
	data, err := g.SaveData()
	if err != nil {
		return err
	}
	if err := store.Save(ctx, slot, data); err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	g.logger.Info("game saved", zap.String("slot", slot))
	g.message(fmt.Sprintf("Game saved to %q.", slot))
	return nil
}

// LoadFrom restores the game stored in slot.
func (g *Game) LoadFrom(ctx context.Context, store save.Store, slot string) error {
	data, err := store.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("loading slot %q: %w", slot, err)
	}
	return g.ApplySaveData(ctx, data)
}
