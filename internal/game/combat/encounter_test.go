package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/combat"
	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/npc"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

func newCharacter(t testing.TB, classID string, alloc character.Allocation) *character.Character {
	t.Helper()
	r := ruleset.MustDefault()
	race, _ := r.Race("human")
	class, ok := r.Class(classID)
	require.True(t, ok, classID)
	c, err := character.New("Hero", race, class, alloc)
	require.NoError(t, err)
	return c
}

func fighter(t testing.TB) *character.Character {
	return newCharacter(t, "fighter", character.Allocation{Strength: 15, Dexterity: 10, Intelligence: 10, Wisdom: 10})
}

func wizard(t testing.TB) *character.Character {
	return newCharacter(t, "wizard", character.Allocation{Strength: 10, Dexterity: 10, Intelligence: 20, Wisdom: 10})
}

func monster(t testing.TB, id string) *npc.Instance {
	t.Helper()
	tmpl, ok := ruleset.MustDefault().Monsters.Get(id)
	require.True(t, ok, id)
	return npc.NewInstance(tmpl, dice.NewSeededSource(1))
}

func start(members []*character.Character, monsters []*npc.Instance, src dice.Source, l combat.Listener) *combat.Encounter {
	return combat.StartCombat(members, monsters, world.Grass, dice.NewLoggedRoller(src, nil), combat.Options{
		Spells:   ruleset.MustDefault(),
		Listener: l,
	})
}

func TestGoblinEndToEnd(t *testing.T) {
	hero := fighter(t)
	gob := monster(t, "goblin")
	e := start([]*character.Character{hero}, []*npc.Instance{gob}, dice.NewSeededSource(7), combat.Listener{})
	require.Equal(t, combat.StateActive, e.State())

	players, monsters := e.Players(), e.Monsters()
	e.MoveTo(monsters[0], world.Point{X: players[0].Position().X + 1, Y: players[0].Position().Y})

	for i := 0; i < 500 && e.State() == combat.StateActive; i++ {
		hero.Heal(hero.MaxHP())
		if e.CurrentPlayer() == nil {
			t.Fatalf("no player turn while combat is active")
		}
		res := e.ExecutePlayerAction(combat.Attack(0))
		require.True(t, res.OK, res.Message)
		if res.Killed {
			assert.True(t, gob.Status.Has(condition.Dead))
			assert.Zero(t, gob.CurrentHP)
			assert.Equal(t, 10, hero.XP)
			break
		}
		assert.Zero(t, hero.XP)
	}
	assert.Equal(t, combat.StateVictory, e.State())
	assert.Nil(t, e.Current())

	rw := e.Rewards()
	assert.GreaterOrEqual(t, rw.Gold, 6)
	assert.LessOrEqual(t, rw.Gold, 12)
	assert.Equal(t, 10, rw.Experience)
}

func TestInitiativeIsPermutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		members := []*character.Character{fighter(t), wizard(t)}
		n := rapid.IntRange(1, 8).Draw(rt, "monsters")
		var mons []*npc.Instance
		for i := 0; i < n; i++ {
			mons = append(mons, monster(t, "giant_rat"))
		}
		e := start(members, mons, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), combat.Listener{})

		order := e.Order()
		if len(order) != len(members)+n {
			rt.Fatalf("order has %d combatants, want %d", len(order), len(members)+n)
		}
		seen := map[combat.Combatant]bool{}
		for _, c := range order {
			if seen[c] {
				rt.Fatalf("%s appears twice", c.Name())
			}
			seen[c] = true
		}
		if cur := e.Current(); cur != nil && !cur.CanAct() {
			rt.Fatalf("current combatant %s cannot act", cur.Name())
		}
	})
}

func TestInitiativeDescendingAndStableOnTies(t *testing.T) {
	a, b, c := fighter(t), fighter(t), fighter(t)
	a.Stats.SetDexterity(10)
	b.Stats.SetDexterity(14)
	c.Stats.SetDexterity(10)
	mons := []*npc.Instance{monster(t, "giant_rat"), monster(t, "goblin"), monster(t, "giant_rat")}

	// Every d20 rolls 1, so initiative is decided by dexterity and speed alone.
	e := start([]*character.Character{a, b, c}, mons, dice.NewFixedSource(0), combat.Listener{})
	ps, ms := e.Players(), e.Monsters()
	want := []combat.Combatant{ps[1], ps[0], ps[2], ms[0], ms[2], ms[1]}
	assert.Equal(t, want, e.Order())
	assert.Same(t, ps[1], e.CurrentPlayer())
}

func TestPlacement(t *testing.T) {
	var mons []*npc.Instance
	for i := 0; i < 8; i++ {
		mons = append(mons, monster(t, "giant_rat"))
	}
	e := start([]*character.Character{fighter(t), fighter(t)}, mons, dice.NewFixedSource(0), combat.Listener{})
	ps := e.Players()
	assert.Equal(t, world.Point{X: 1, Y: 2}, ps[0].Position())
	assert.Equal(t, world.Point{X: 1, Y: 3}, ps[1].Position())
	ms := e.Monsters()
	assert.Equal(t, world.Point{X: 9, Y: 2}, ms[0].Position())
	assert.Equal(t, world.Point{X: 9, Y: 8}, ms[6].Position())
	assert.Equal(t, world.Point{X: 8, Y: 2}, ms[7].Position())
	assert.Equal(t, world.Forest, e.Cell(0, 0))
	assert.Equal(t, world.Grass, e.Cell(5, 5))
}

func TestAttackOutOfRangeChangesNothing(t *testing.T) {
	hero := fighter(t)
	gob := monster(t, "goblin")
	e := start([]*character.Character{hero}, []*npc.Instance{gob}, dice.NewFixedSource(99), combat.Listener{})
	require.NotNil(t, e.CurrentPlayer())

	hp := gob.CurrentHP
	cur := e.Current()
	res := e.ExecutePlayerAction(combat.Attack(0))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "out of range")
	assert.Equal(t, hp, gob.CurrentHP)
	assert.Same(t, cur, e.Current())

	res = e.ExecutePlayerAction(combat.Attack(3))
	assert.False(t, res.OK)
}

func TestFlee(t *testing.T) {
	t.Run("success ends the encounter", func(t *testing.T) {
		var ended []combat.State
		hero := fighter(t)
		e := start([]*character.Character{hero}, []*npc.Instance{monster(t, "goblin")}, dice.NewFixedSource(0),
			combat.Listener{OnCombatEnded: func(s combat.State) { ended = append(ended, s) }})
		res := e.ExecutePlayerAction(combat.Flee())
		assert.True(t, res.OK)
		assert.Equal(t, combat.StateFled, e.State())
		assert.Equal(t, []combat.State{combat.StateFled}, ended)
		assert.False(t, e.ExecutePlayerAction(combat.Pass()).OK)
	})

	t.Run("failure only consumes the turn", func(t *testing.T) {
		hero := fighter(t)
		e := start([]*character.Character{hero}, []*npc.Instance{monster(t, "goblin")}, dice.NewFixedSource(99), combat.Listener{})
		require.NotNil(t, e.CurrentPlayer())
		res := e.ExecutePlayerAction(combat.Flee())
		assert.True(t, res.OK)
		assert.Contains(t, res.Message, "fails to escape")
		assert.Equal(t, combat.StateActive, e.State())
		assert.Len(t, e.Players(), 1)
		assert.Same(t, hero, e.CurrentPlayer().Character)
		assert.Equal(t, world.Point{X: 8, Y: 2}, e.Monsters()[0].Position(), "goblin steps toward the party")
	})
}

func TestMonsterKillsLastPlayer(t *testing.T) {
	hero := fighter(t)
	hero.TakeDamage(hero.MaxHP() - 1)
	var ended combat.State
	e := start([]*character.Character{hero}, []*npc.Instance{monster(t, "goblin")}, dice.NewFixedSource(99),
		combat.Listener{OnCombatEnded: func(s combat.State) { ended = s }})
	e.MoveTo(e.Monsters()[0], world.Point{X: 2, Y: 2})

	res := e.ExecutePlayerAction(combat.Pass())
	assert.True(t, res.OK)
	assert.True(t, hero.IsDead())
	assert.Equal(t, combat.StateDefeat, e.State())
	assert.Equal(t, combat.StateDefeat, ended)
	assert.Zero(t, e.Rewards().Gold)
}

func TestSleepingMonsterIsPassedOver(t *testing.T) {
	gob := monster(t, "goblin")
	e := start([]*character.Character{fighter(t)}, []*npc.Instance{gob}, dice.NewFixedSource(99), combat.Listener{})
	gob.Status = gob.Status.With(condition.Asleep)
	pos := e.Monsters()[0].Position()

	require.True(t, e.ExecutePlayerAction(combat.Pass()).OK)
	assert.NotNil(t, e.CurrentPlayer())
	assert.True(t, gob.Status.Has(condition.Asleep))
	assert.Equal(t, pos, e.Monsters()[0].Position())
}

func TestMonsterStallsWhenStepIsBlocked(t *testing.T) {
	tests := []struct {
		name  string
		block func(t *testing.T, e *combat.Encounter, cell world.Point)
	}{
		{
			name: "obstacle",
			block: func(t *testing.T, e *combat.Encounter, cell world.Point) {
				e.PlaceObstacle(cell, world.Mountain)
			},
		},
		{
			name: "occupied cell",
			block: func(t *testing.T, e *combat.Encounter, cell world.Point) {
				blocker := e.Monsters()[1]
				e.MoveTo(blocker, cell)
				blocker.SetStatus(blocker.Status().With(condition.Asleep))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mons := []*npc.Instance{monster(t, "goblin"), monster(t, "goblin")}
			e := start([]*character.Character{fighter(t)}, mons, dice.NewFixedSource(99), combat.Listener{})
			require.NotNil(t, e.CurrentPlayer())
			require.Equal(t, world.Point{X: 1, Y: 2}, e.Players()[0].Position())

			mover := e.Monsters()[0]
			e.MoveTo(mover, world.Point{X: 5, Y: 2})
			tt.block(t, e, world.Point{X: 4, Y: 2})

			require.True(t, e.ExecutePlayerAction(combat.Pass()).OK)
			assert.Equal(t, world.Point{X: 5, Y: 2}, mover.Position())
			assert.Equal(t, combat.StateActive, e.State())
		})
	}
}

func TestPoisonKillsMonsterAtTurnStart(t *testing.T) {
	gob := monster(t, "goblin")
	var killed []*npc.Instance
	e := start([]*character.Character{fighter(t)}, []*npc.Instance{gob}, dice.NewFixedSource(99),
		combat.Listener{OnMonsterKilled: func(m *npc.Instance) { killed = append(killed, m) }})
	gob.CurrentHP = 1
	gob.Status = gob.Status.With(condition.Poisoned)

	require.True(t, e.ExecutePlayerAction(combat.Pass()).OK)
	assert.Equal(t, combat.StateVictory, e.State())
	assert.Equal(t, []*npc.Instance{gob}, killed)
}

func TestCast(t *testing.T) {
	newEncounter := func(t *testing.T) (*combat.Encounter, *character.Character) {
		w := wizard(t)
		e := start([]*character.Character{w}, []*npc.Instance{monster(t, "goblin")}, dice.NewFixedSource(99), combat.Listener{})
		require.NotNil(t, e.CurrentPlayer())
		return e, w
	}

	t.Run("rejections spend nothing", func(t *testing.T) {
		e, w := newEncounter(t)
		mp := w.CurrentMP()
		assert.False(t, e.ExecutePlayerAction(combat.Cast("no_such_spell", 2, 2)).OK)
		assert.False(t, e.ExecutePlayerAction(combat.Cast("heal", 1, 2)).OK, "wizards cannot heal")
		assert.False(t, e.ExecutePlayerAction(combat.Cast("magic_missile", 10, 10)).OK)
		assert.Equal(t, mp, w.CurrentMP())

		w.SpendMana(w.CurrentMP())
		res := e.ExecutePlayerAction(combat.Cast("magic_missile", 2, 2))
		assert.False(t, res.OK)
		assert.Equal(t, "Not enough mana.", res.Message)
	})

	t.Run("damage on empty cell hits nothing", func(t *testing.T) {
		e, w := newEncounter(t)
		mp := w.CurrentMP()
		res := e.ExecutePlayerAction(combat.Cast("magic_missile", 3, 3))
		assert.True(t, res.OK)
		assert.Contains(t, res.Message, "hits nothing")
		assert.Equal(t, mp-3, w.CurrentMP())
	})

	t.Run("damage on occupied cell", func(t *testing.T) {
		e, _ := newEncounter(t)
		mc := e.Monsters()[0]
		e.MoveTo(mc, world.Point{X: 4, Y: 2})
		before, _ := mc.HP()
		res := e.ExecutePlayerAction(combat.Cast("magic_missile", 4, 2))
		assert.True(t, res.OK)
		assert.True(t, res.Hit)
		after, _ := mc.HP()
		assert.Equal(t, before-res.Damage, after)
		assert.Positive(t, res.Damage)
	})
}

func TestCastSupportSpells(t *testing.T) {
	cleric := func(t *testing.T) *character.Character {
		return newCharacter(t, "cleric", character.Allocation{Strength: 10, Dexterity: 10, Intelligence: 10, Wisdom: 20})
	}
	druid := func(t *testing.T) *character.Character {
		c := newCharacter(t, "druid", character.Allocation{Strength: 10, Dexterity: 10, Intelligence: 10, Wisdom: 20})
		c.Level = 2
		return c
	}

	tests := []struct {
		name    string
		caster  func(t *testing.T) *character.Character
		spell   string
		cost    int
		target  func(e *combat.Encounter) world.Point
		message string
		check   func(t *testing.T, e *combat.Encounter, res combat.ActionResult)
	}{
		{
			name:    "heal restores the target",
			caster:  cleric,
			spell:   "heal",
			cost:    4,
			target:  func(e *combat.Encounter) world.Point { return e.Players()[0].Position() },
			message: "recovers 5 HP",
			check: func(t *testing.T, e *combat.Encounter, res combat.ActionResult) {
				cur, maxHP := e.Players()[0].HP()
				assert.Equal(t, maxHP, cur)
				assert.False(t, res.Hit)
			},
		},
		{
			name:    "heal on empty ground",
			caster:  cleric,
			spell:   "heal",
			cost:    4,
			target:  func(*combat.Encounter) world.Point { return world.Point{X: 3, Y: 3} },
			message: "empty ground",
			check: func(t *testing.T, e *combat.Encounter, res combat.ActionResult) {
				cur, maxHP := e.Players()[0].HP()
				assert.Equal(t, maxHP-5, cur)
			},
		},
		{
			name:    "sleep puts the monster out of the fight",
			caster:  druid,
			spell:   "sleep",
			cost:    5,
			target:  func(e *combat.Encounter) world.Point { return e.Monsters()[0].Position() },
			message: "is asleep",
			check: func(t *testing.T, e *combat.Encounter, res combat.ActionResult) {
				mc := e.Monsters()[0]
				assert.True(t, res.Hit)
				assert.True(t, mc.Status().Has(condition.Asleep))
				assert.Equal(t, world.Point{X: 4, Y: 2}, mc.Position(), "a sleeping monster does not move")
			},
		},
		{
			name:    "status on empty ground hits nothing",
			caster:  druid,
			spell:   "sleep",
			cost:    5,
			target:  func(*combat.Encounter) world.Point { return world.Point{X: 3, Y: 3} },
			message: "hits nothing",
			check: func(t *testing.T, e *combat.Encounter, res combat.ActionResult) {
				assert.False(t, res.Hit)
				assert.False(t, e.Monsters()[0].Status().Has(condition.Asleep))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.caster(t)
			c.TakeDamage(5)
			e := start([]*character.Character{c}, []*npc.Instance{monster(t, "goblin")}, dice.NewFixedSource(99), combat.Listener{})
			require.NotNil(t, e.CurrentPlayer())
			e.MoveTo(e.Monsters()[0], world.Point{X: 4, Y: 2})
			mp := c.CurrentMP()

			cell := tt.target(e)
			res := e.ExecutePlayerAction(combat.Cast(tt.spell, cell.X, cell.Y))
			require.True(t, res.OK, res.Message)
			assert.Contains(t, res.Message, tt.message)
			assert.Equal(t, mp-tt.cost, c.CurrentMP())
			tt.check(t, e, res)
		})
	}
}

func TestCombatLogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := combat.StartCombat([]*character.Character{fighter(t)}, []*npc.Instance{monster(t, "goblin")}, world.Grass,
		dice.NewLoggedRoller(dice.NewFixedSource(0), nil), combat.Options{Logger: zap.New(core)})
	e.ExecutePlayerAction(combat.Flee())
	require.Equal(t, 1, logs.FilterMessage("combat ended").Len())
	assert.Equal(t, "fled", logs.FilterMessage("combat ended").All()[0].ContextMap()["outcome"])
}
