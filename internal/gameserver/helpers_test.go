package gameserver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/sosaria/internal/game/combat"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
)

const testSeed = 4242

// recorder collects listener notifications.
type recorder struct {
	messages []string
	states   []gameserver.State
	maps     []string
	outcomes []combat.State
}

func (r *recorder) listener() gameserver.Listener {
	return gameserver.Listener{
		OnMessage:      func(msg string) { r.messages = append(r.messages, msg) },
		OnStateChanged: func(_, to gameserver.State) { r.states = append(r.states, to) },
		OnMapChanged:   func(m *world.GameMap) { r.maps = append(r.maps, m.ID) },
		OnCombatEnded:  func(s combat.State) { r.outcomes = append(r.outcomes, s) },
	}
}

// newGame builds a started game with the premade party on the overworld.
// src drives every runtime roll.
func newGame(t *testing.T, src dice.Source) (*gameserver.Game, *recorder) {
	t.Helper()
	g := gameserver.NewGame(gameserver.Deps{
		Rules:        ruleset.MustDefault(),
		Roller:       dice.NewLoggedRoller(src, nil),
		Logger:       zaptest.NewLogger(t),
		Seed:         testSeed,
		StartingGold: 100,
		StartingFood: 200,
	})
	rec := &recorder{}
	g.SetListener(rec.listener())
	require.NoError(t, g.CreatePremadeParty())
	require.NoError(t, g.StartGame(context.Background()))
	return g, rec
}

// standAt teleports the party to (x, y) on the current map, turning that
// tile into ground.
func standAt(g *gameserver.Game, x, y int, ground world.Terrain) {
	m := g.CurrentMap()
	m.SetTerrain(x, y, ground)
	g.Party().X, g.Party().Y = x, y
}

// siteOf returns the first overworld location leading to a map of kind.
func siteOf(t *testing.T, g *gameserver.Game, kind world.Kind) world.Location {
	t.Helper()
	ow := g.Atlas().Overworld()
	for _, loc := range ow.Locations {
		if m, ok := g.Atlas().Get(loc.TargetMapID); ok && m.Kind == kind {
			return loc
		}
	}
	t.Fatalf("no %s on the overworld", kind)
	return world.Location{}
}

// walkInto steps the party onto loc from the west.
func walkInto(t *testing.T, g *gameserver.Game, loc world.Location) gameserver.MoveResult {
	t.Helper()
	ow := g.Atlas().Overworld()
	x, y := ow.Wrap(loc.X-1, loc.Y)
	standAt(g, x, y, world.Grass)
	return g.MoveParty(world.East)
}

func enterSite(t *testing.T, g *gameserver.Game, kind world.Kind) world.Location {
	t.Helper()
	loc := siteOf(t, g, kind)
	res := walkInto(t, g, loc)
	require.True(t, res.OK, res.Message)
	require.Equal(t, loc.TargetMapID, g.CurrentMap().ID)
	return loc
}

func enterTownByID(t *testing.T, g *gameserver.Game, townID string) {
	t.Helper()
	loc, ok := g.Atlas().Overworld().LocationFor(townID)
	require.True(t, ok, townID)
	res := walkInto(t, g, loc)
	require.True(t, res.OK, res.Message)
	require.Equal(t, gameserver.StateTown, g.State())
}

// stepUpTo places the party beside a counter of shopType and enters the shop.
func stepUpTo(t *testing.T, g *gameserver.Game, shopType string) {
	t.Helper()
	m := g.CurrentMap()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile, _ := m.Tile(x, y)
			if tile.Terrain != world.Counter {
				continue
			}
			st, _, ok := world.ParseShopEntity(tile.EntityID)
			if !ok || st != shopType {
				continue
			}
			for _, d := range []world.Direction{world.North, world.South, world.East, world.West} {
				dx, dy := d.Delta()
				if m.Terrain(x+dx, y+dy) != world.Floor {
					continue
				}
				g.Party().X, g.Party().Y = x+dx, y+dy
				res := g.EnterShop()
				require.True(t, res.OK, res.Message)
				require.Equal(t, shopType, g.CurrentShop().Type)
				return
			}
		}
	}
	t.Fatalf("no %s counter in %s", shopType, m.ID)
}
