package ruleset_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
)

func TestDefault_LoadsEmbeddedContent(t *testing.T) {
	r, err := ruleset.Default()
	require.NoError(t, err)

	fighter, ok := r.Class("fighter")
	require.True(t, ok)
	assert.False(t, fighter.IsCaster())
	assert.Len(t, r.Classes(), 8)
	assert.Len(t, r.Races(), 5)

	human, ok := r.Race("human")
	require.True(t, ok)
	assert.Equal(t, ruleset.StatMods{}, human.Modifiers)

	goblin, ok := r.Monsters.Get("goblin")
	require.True(t, ok)
	assert.Equal(t, 20, goblin.BaseHP)
	assert.Equal(t, 1, goblin.Defense)
	assert.Equal(t, 10, goblin.Experience)

	q, ok := r.Quests.Get("kill_rats_britain")
	require.True(t, ok)
	assert.Equal(t, ruleset.QuestKill, q.Kind)
	assert.Equal(t, "giant_rat", q.Target)
	assert.Equal(t, 5, q.Count)
	assert.Equal(t, ruleset.QuestReward{Gold: 50, Experience: 25}, q.Reward)

	again, err := ruleset.Default()
	require.NoError(t, err)
	assert.Same(t, r, again)
}

func TestRules_LookupsAreFallible(t *testing.T) {
	r := ruleset.MustDefault()
	_, ok := r.Class("necromancer")
	assert.False(t, ok)
	_, ok = r.Race("orc")
	assert.False(t, ok)
	_, ok = r.Spell("wish")
	assert.False(t, ok)
	_, ok = r.Quests.Get("nope")
	assert.False(t, ok)
}

func TestSpellsFor_RespectsClassAndLevel(t *testing.T) {
	r := ruleset.MustDefault()
	assert.Empty(t, r.SpellsFor("fighter", 10))

	lvl1 := r.SpellsFor("wizard", 1)
	require.Len(t, lvl1, 1)
	assert.Equal(t, "magic_missile", lvl1[0].ID)

	lvl5 := r.SpellsFor("wizard", 5)
	ids := make([]string, 0, len(lvl5))
	for _, s := range lvl5 {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"magic_missile", "sleep", "fireball", "paralyze"}, ids)

	sleep, ok := r.Spell("sleep")
	require.True(t, ok)
	assert.Equal(t, condition.Asleep, sleep.Status)
}

func TestClass_CanUse(t *testing.T) {
	r := ruleset.MustDefault()
	wizard, _ := r.Class("wizard")
	fighter, _ := r.Class("fighter")
	sword, _ := r.Items.Item("sword")
	staff, _ := r.Items.Item("staff")
	plate, _ := r.Items.Item("plate_armor")
	shield, _ := r.Items.Item("small_shield")
	potion, _ := r.Items.Item("healing_potion")

	assert.False(t, wizard.CanUse(sword))
	assert.True(t, wizard.CanUse(staff))
	assert.False(t, wizard.CanUse(plate))
	assert.False(t, wizard.CanUse(shield))
	assert.True(t, fighter.CanUse(sword))
	assert.True(t, fighter.CanUse(plate))
	assert.True(t, fighter.CanUse(shield))
	assert.False(t, fighter.CanUse(potion))
}

func TestLoad_RejectsDanglingReferences(t *testing.T) {
	base := map[string]string{
		"content/classes.yaml":  "- {id: fighter, name: Fighter, base_hp: 10, weapons: ['*']}\n",
		"content/races.yaml":    "- {id: human, name: Human}\n",
		"content/spells.yaml":   "- {id: zap, name: Zap, mana_cost: 1, classes: [wizard], effect: damage, damage_min: 1, damage_max: 2, range: 1}\n",
		"content/quests.yaml":   "[]\n",
		"content/items.yaml":    "[]\n",
		"content/monsters.yaml": "[]\n",
	}
	fsys := fstest.MapFS{}
	for k, v := range base {
		fsys[k] = &fstest.MapFile{Data: []byte(v)}
	}
	_, err := ruleset.Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown class")

	fsys["content/spells.yaml"] = &fstest.MapFile{Data: []byte("[]\n")}
	r, err := ruleset.Load(fsys)
	require.NoError(t, err)
	assert.Len(t, r.Classes(), 1)

	delete(fsys, "content/races.yaml")
	_, err = ruleset.Load(fsys)
	assert.Error(t, err)
}

func TestQuestDef_Validate(t *testing.T) {
	assert.Error(t, (&ruleset.QuestDef{ID: "q", Name: "Q", Kind: ruleset.QuestKill, Target: "rat"}).Validate())
	assert.Error(t, (&ruleset.QuestDef{ID: "q", Name: "Q", Kind: ruleset.QuestFetch}).Validate())
	assert.Error(t, (&ruleset.QuestDef{ID: "q", Name: "Q", Kind: "escort"}).Validate())
	assert.NoError(t, (&ruleset.QuestDef{ID: "q", Name: "Q", Kind: ruleset.QuestExplore, Target: "dungeon_wrong_l1"}).Validate())
}

func TestProperty_Spell_CastableByLevelGate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		min := rapid.IntRange(1, 10).Draw(rt, "min")
		level := rapid.IntRange(1, 25).Draw(rt, "level")
		s := &ruleset.Spell{ID: "s", Name: "S", MinLevel: min, Classes: []string{"wizard"}}
		assert.Equal(rt, level >= min, s.CastableBy("wizard", level))
		assert.False(rt, s.CastableBy("fighter", level))
	})
}

func TestCanUse_NonEquipment(t *testing.T) {
	c := &ruleset.Class{ID: "x", Name: "X", BaseHP: 1, Weapons: []string{"*"}, MaxArmor: 9, Shields: true}
	assert.False(t, c.CanUse(&inventory.ItemDef{ID: "k", Kind: inventory.KindKey}))
}
