package gameserver

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/combat"
	"github.com/cory-johannsen/sosaria/internal/game/npc"
	"github.com/cory-johannsen/sosaria/internal/game/quest"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// Encounter odds, in percent per step.
const (
	overworldDayChance   = 5
	overworldNightChance = 8
	dungeonBaseChance    = 15
	dungeonLevelChance   = 2
)

// EncounterChance returns the per-step odds of a random encounter for the
// party's current surroundings. Towns never roll.
func (g *Game) EncounterChance() int {
	if g.current == nil {
		return 0
	}
	switch g.current.Kind {
	case world.KindDungeon:
		return dungeonBaseChance + dungeonLevelChance*g.current.DungeonLevel
	case world.KindOverworld:
		if g.party.IsNight() {
			return overworldNightChance
		}
		return overworldDayChance
	}
	return 0
}

// rollEncounter rolls for a random encounter and starts one on success.
func (g *Game) rollEncounter() bool {
	pct := g.EncounterChance()
	if pct == 0 {
		return false
	}
	if !g.roller.Chance("encounter", pct) {
		return false
	}
	return g.beginEncounter(context.Background()) == nil
}

// spawnMonsters picks a group of 1 to 2×partySize monsters suited to the
// current map.
func (g *Game) spawnMonsters() []*npc.Instance {
	habitat := npc.HabitatOverworld
	if g.current.Kind == world.KindDungeon {
		habitat = npc.HabitatDungeon
	}
	pool := g.rules.Monsters.Candidates(habitat, g.party.DungeonLevel+1)
	if len(pool) == 0 {
		return nil
	}
	n := g.roller.Between("monster count", 1, 2*max(g.party.Size(), 1))
	out := make([]*npc.Instance, 0, n)
	for range n {
		tmpl := pool[g.roller.Intn(len(pool))]
		out = append(out, npc.NewInstance(tmpl, g.roller.Source()))
	}
	return out
}

// StartEncounter forces a random encounter in the current surroundings.
//
// Precondition: State() is Overworld or Dungeon.
func (g *Game) StartEncounter(ctx context.Context) error {
	if g.state != StateOverworld && g.state != StateDungeon {
		return ErrWrongState
	}
	return g.beginEncounter(ctx)
}

func (g *Game) beginEncounter(ctx context.Context) error {
	monsters := g.spawnMonsters()
	if len(monsters) == 0 {
		g.logger.Warn("no monsters for encounter", zap.String("map", g.current.ID))
		return fmt.Errorf("no monsters live on %s", g.current.ID)
	}
	return g.startCombat(ctx, monsters)
}

func (g *Game) startCombat(ctx context.Context, monsters []*npc.Instance) error {
	terrain := g.current.Terrain(g.party.X, g.party.Y)
	_, span := g.tracer.Start(ctx, "game.encounter", trace.WithAttributes(
		attribute.String("map.id", g.current.ID),
		attribute.Int("monsters", len(monsters)),
		attribute.String("terrain", terrain.String()),
	))
	g.encSpan = span

	g.logger.Info("encounter started",
		zap.String("map", g.current.ID),
		zap.Int("monsters", len(monsters)),
		zap.String("first", monsters[0].Name),
	)
	g.setState(StateCombat)
	g.message(fmt.Sprintf("You are attacked by %s!", describeGroup(monsters)))

	g.encounter = combat.StartCombat(g.party.Members(), monsters, terrain, g.roller, combat.Options{
		Spells:   g.rules,
		Logger:   g.logger,
		Listener: g.combatListener(),
	})
	g.settleCombat()
	return nil
}

func (g *Game) combatListener() combat.Listener {
	return combat.Listener{
		OnMessage: func(msg string) {
			if g.listener.OnCombatMessage != nil {
				g.listener.OnCombatMessage(msg)
			}
		},
		OnTurnChanged: func(c combat.Combatant) {
			if g.listener.OnTurnChanged != nil {
				g.listener.OnTurnChanged(c)
			}
		},
		OnMonsterKilled: func(m *npc.Instance) {
			for _, id := range quest.OnMonsterKilled(g.party, g.rules.Quests, m.TemplateID) {
				g.questReady(id)
			}
		},
	}
}

func describeGroup(monsters []*npc.Instance) string {
	if len(monsters) == 1 {
		return "a " + monsters[0].Name
	}
	return fmt.Sprintf("%d monsters led by a %s", len(monsters), monsters[0].Name)
}

// Attack orders the current player to attack monster index target.
func (g *Game) Attack(target int) combat.ActionResult {
	return g.act(combat.Attack(target))
}

// Cast orders the current player to cast spellID at grid cell (x, y).
func (g *Game) Cast(spellID string, x, y int) combat.ActionResult {
	return g.act(combat.Cast(spellID, x, y))
}

// Pass skips the current player's turn.
func (g *Game) Pass() combat.ActionResult {
	return g.act(combat.Pass())
}

// Flee makes the current player try to break away.
func (g *Game) Flee() combat.ActionResult {
	return g.act(combat.Flee())
}

func (g *Game) act(a combat.Action) combat.ActionResult {
	if g.state != StateCombat || g.encounter == nil {
		return combat.ActionResult{Message: "You are not in combat."}
	}
	res := g.encounter.ExecutePlayerAction(a)
	g.settleCombat()
	return res
}

// settleCombat resolves the encounter once it has ended.
func (g *Game) settleCombat() {
	if g.encounter == nil || !g.encounter.IsOver() {
		return
	}
	enc := g.encounter
	g.encounter = nil
	outcome := enc.State()

	if g.encSpan != nil {
		g.encSpan.SetAttributes(attribute.String("outcome", outcome.String()))
		if outcome == combat.StateDefeat {
			g.encSpan.SetStatus(codes.Error, "party defeated")
		}
		g.encSpan.End()
		g.encSpan = nil
	}
	g.logger.Info("encounter ended", zap.Stringer("outcome", outcome))

	if g.party.AllDead() || outcome == combat.StateDefeat {
		g.notifyCombatEnded(outcome)
		g.checkWipe()
		if g.state != StateGameOver {
			g.setState(StateGameOver)
		}
		return
	}

	rw := enc.Rewards()
	if rw.Gold > 0 || rw.Experience > 0 {
		g.party.AddGold(rw.Gold)
		g.message(fmt.Sprintf("Victory spoils: %d gold, %d experience.", rw.Gold, rw.Experience))
	}
	for _, id := range rw.Loot {
		if def, ok := g.rules.Items.Item(id); ok {
			g.party.Inventory.AddDef(def)
			g.message(fmt.Sprintf("Found %s.", def.Name))
		} else {
			g.logger.Warn("loot names unknown item", zap.String("item", id))
		}
	}
	g.setState(stateFor(g.current))
	g.notifyCombatEnded(outcome)
}

func (g *Game) notifyCombatEnded(outcome combat.State) {
	if g.listener.OnCombatEnded != nil {
		g.listener.OnCombatEnded(outcome)
	}
}
