package gameserver

import (
	"context"
	"errors"

	"github.com/cory-johannsen/sosaria/internal/game/npc"
)

// StartCombatWith starts an encounter against the given monsters.
func (g *Game) StartCombatWith(ctx context.Context, monsters []*npc.Instance) error {
	switch g.state {
	case StateOverworld, StateTown, StateDungeon:
	default:
		return ErrWrongState
	}
	if len(monsters) == 0 {
		return errors.New("no monsters to fight")
	}
	return g.startCombat(ctx, monsters)
}
