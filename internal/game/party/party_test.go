package party_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

func newMember(t *testing.T, name string) *character.Character {
	t.Helper()
	r := ruleset.MustDefault()
	race, _ := r.Race("human")
	class, _ := r.Class("fighter")
	c, err := character.New(name, race, class, character.Allocation{Strength: 15, Dexterity: 10, Intelligence: 10, Wisdom: 10})
	require.NoError(t, err)
	return c
}

func TestParty_AddMemberLimit(t *testing.T) {
	p := party.New(100, 50)
	for i := 0; i < party.MaxMembers; i++ {
		require.NoError(t, p.AddMember(newMember(t, "Member")))
	}
	assert.ErrorIs(t, p.AddMember(newMember(t, "Extra")), party.ErrPartyFull)
	assert.Equal(t, party.MaxMembers, p.Size())
}

func TestParty_LivingMembersAndAllDead(t *testing.T) {
	p := party.New(0, 0)
	assert.True(t, p.AllDead())

	a, b := newMember(t, "Iolo"), newMember(t, "Shamino")
	require.NoError(t, p.AddMember(a))
	require.NoError(t, p.AddMember(b))
	a.TakeDamage(a.MaxHP())
	assert.Equal(t, []*character.Character{b}, p.LivingMembers())
	assert.False(t, p.AllDead())

	b.TakeDamage(b.MaxHP())
	assert.True(t, p.AllDead())
}

func TestParty_RemoveMember(t *testing.T) {
	p := party.New(0, 0)
	a, b := newMember(t, "Iolo"), newMember(t, "Dupre")
	require.NoError(t, p.AddMember(a))
	require.NoError(t, p.AddMember(b))

	got, ok := p.RemoveMember(0)
	require.True(t, ok)
	assert.Same(t, a, got)
	first, _ := p.Member(0)
	assert.Same(t, b, first)
	_, ok = p.RemoveMember(5)
	assert.False(t, ok)
}

func TestParty_PurseNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := party.New(rapid.IntRange(-10, 500).Draw(rt, "gold"), rapid.IntRange(-10, 500).Draw(rt, "food"))
		ops := rapid.SliceOfN(rapid.IntRange(-200, 200), 0, 30).Draw(rt, "ops")
		for i, n := range ops {
			switch i % 4 {
			case 0:
				p.AddGold(n)
			case 1:
				before := p.Gold()
				if p.SpendGold(n) {
					assert.Equal(rt, before-n, p.Gold())
				} else {
					assert.Equal(rt, before, p.Gold())
				}
			case 2:
				p.AddFood(n)
			case 3:
				p.ConsumeFood(n)
			}
			if p.Gold() < 0 || p.Food() < 0 {
				rt.Fatalf("purse went negative: gold=%d food=%d", p.Gold(), p.Food())
			}
		}
	})
}

func TestParty_AdvanceTimeMealsAndDays(t *testing.T) {
	p := party.New(0, 10)
	require.NoError(t, p.AddMember(newMember(t, "Iolo")))
	require.NoError(t, p.AddMember(newMember(t, "Dupre")))

	rep := p.AdvanceTime(party.TurnsPerMeal)
	assert.Equal(t, 2, rep.FoodConsumed)
	assert.Equal(t, 8, p.Food())
	assert.False(t, rep.Starved)

	rep = p.AdvanceTime(party.TurnsPerDay - party.TurnsPerMeal)
	assert.Equal(t, 1, rep.NewDays)
	assert.Equal(t, 1, p.DayCount)
	assert.True(t, rep.Starved)
	assert.Zero(t, p.Food())
	for _, c := range p.Members() {
		assert.Less(t, c.CurrentHP(), c.MaxHP())
	}
}

func TestParty_NightAndMoons(t *testing.T) {
	p := party.New(0, 1000)
	assert.False(t, p.IsNight())
	p.AdvanceTime(party.TurnsPerHalfDay)
	assert.True(t, p.IsNight())
	assert.Equal(t, 1, p.FeluccaPhase)
	p.AdvanceTime(party.TurnsPerHalfDay)
	assert.False(t, p.IsNight())
	assert.Equal(t, 1, p.TrammelPhase)
	assert.Equal(t, 2, p.FeluccaPhase)
}

func TestParty_DayCountInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := party.New(0, 0)
		for _, n := range rapid.SliceOfN(rapid.IntRange(0, 300), 1, 10).Draw(rt, "steps") {
			p.AdvanceTime(n)
			if p.DayCount != p.TurnCount/party.TurnsPerDay {
				rt.Fatalf("day %d at turn %d", p.DayCount, p.TurnCount)
			}
			if p.TrammelPhase < 0 || p.TrammelPhase >= party.MoonPhases || p.FeluccaPhase < 0 || p.FeluccaPhase >= party.MoonPhases {
				rt.Fatalf("moon phase out of range: %d %d", p.TrammelPhase, p.FeluccaPhase)
			}
		}
	})
}

func TestParty_SortedLists(t *testing.T) {
	p := party.New(0, 0)
	p.Marks.Put("king")
	p.Marks.Put("fire")
	p.CompletedQuests.Put("b")
	p.CompletedQuests.Put("a")
	assert.Equal(t, []string{"fire", "king"}, p.MarkList())
	assert.Equal(t, []string{"a", "b"}, p.CompletedList())
}

func TestParty_StateRoundTrip(t *testing.T) {
	r := ruleset.MustDefault()
	p := party.New(321, 45)
	require.NoError(t, p.AddMember(newMember(t, "Dupre")))
	require.NoError(t, p.AddMember(newMember(t, "Geoffrey")))
	p.X, p.Y = 12, 30
	p.Facing = world.Northeast
	p.MapID = "dungeon_deceit_l2"
	p.DungeonLevel = 2
	p.HasShip = true
	p.AdvanceTime(450)
	p.Marks.Put("mark_of_fire")
	p.CompletedQuests.Put("kill_rats_britain")
	p.ActiveQuests["cull_orcs_yew"] = &party.QuestProgress{QuestID: "cull_orcs_yew", KillCount: 3}
	def, ok := r.Items.Item("healing_potion")
	require.True(t, ok)
	p.Inventory.AddDef(def)

	restored, err := party.FromState(p.State(), r)
	require.NoError(t, err)

	assert.Equal(t, p.State(), restored.State())
	assert.Equal(t, 2, restored.Size())
	assert.Equal(t, 1, restored.Inventory.Len())
	assert.Equal(t, 3, restored.ActiveQuests["cull_orcs_yew"].KillCount)
}

func TestParty_FromStateRejectsUnknownClass(t *testing.T) {
	st := party.State{Members: []character.State{{Name: "Ghost", ClassID: "necromancer", MaxHP: 10, CurrentHP: 10}}}
	_, err := party.FromState(st, ruleset.MustDefault())
	assert.Error(t, err)
}

func TestParty_FromStateRejectsOversizedParty(t *testing.T) {
	st := party.State{Members: make([]character.State, party.MaxMembers+1)}
	_, err := party.FromState(st, ruleset.MustDefault())
	assert.ErrorIs(t, err, party.ErrPartyFull)
}

func TestParty_FromStateNormalises(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := party.State{
			Gold:         rapid.IntRange(-100, 100).Draw(rt, "gold"),
			Food:         rapid.IntRange(-100, 100).Draw(rt, "food"),
			TurnCount:    rapid.IntRange(0, 10000).Draw(rt, "turn"),
			DayCount:     rapid.IntRange(-5, 500).Draw(rt, "day"),
			TrammelPhase: rapid.IntRange(-20, 20).Draw(rt, "trammel"),
			Facing:       world.Direction(rapid.StringMatching(`[a-z]{0,6}`).Draw(rt, "facing")),
		}
		p, err := party.FromState(st, ruleset.MustDefault())
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if p.Gold() < 0 || p.Food() < 0 {
			rt.Fatalf("negative purse gold=%d food=%d", p.Gold(), p.Food())
		}
		if p.DayCount != p.TurnCount/party.TurnsPerDay {
			rt.Fatalf("day %d does not match turn %d", p.DayCount, p.TurnCount)
		}
		if p.TrammelPhase < 0 || p.TrammelPhase >= party.MoonPhases {
			rt.Fatalf("trammel phase %d out of range", p.TrammelPhase)
		}
		if !p.Facing.IsStandard() {
			rt.Fatalf("facing %q not standard", p.Facing)
		}
	})
}
