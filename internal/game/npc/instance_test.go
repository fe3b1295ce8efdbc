package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/npc"
)

func TestNewInstance_RollsHPWithinVariance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tmpl := goblin()
		tmpl.HPVariance = rapid.IntRange(0, 10).Draw(rt, "variance")
		inst := npc.NewInstance(tmpl, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))
		assert.GreaterOrEqual(rt, inst.MaxHP, tmpl.BaseHP)
		assert.LessOrEqual(rt, inst.MaxHP, tmpl.BaseHP+tmpl.HPVariance)
		assert.Equal(rt, inst.MaxHP, inst.CurrentHP)
		assert.Same(rt, tmpl, inst.Template())
	})
}

func TestInstance_TakeDamage_KillsAtZero(t *testing.T) {
	inst := npc.NewInstance(goblin(), dice.NewFixedSource(0))
	assert.Equal(t, 20, inst.CurrentHP)
	assert.Equal(t, 5, inst.TakeDamage(5))
	assert.False(t, inst.IsDead())
	assert.Equal(t, 15, inst.TakeDamage(99))
	assert.True(t, inst.IsDead())
	assert.True(t, inst.Status.Has(condition.Dead))
	assert.Equal(t, 0, inst.Heal(10), "dead monsters stay dead")
	assert.Equal(t, "dead", inst.HealthDescription())
}

func TestInstance_Heal_Clamps(t *testing.T) {
	inst := npc.NewInstance(goblin(), dice.NewFixedSource(0))
	inst.TakeDamage(3)
	assert.Equal(t, 3, inst.Heal(50))
	assert.Equal(t, inst.MaxHP, inst.CurrentHP)
	assert.Equal(t, "unharmed", inst.HealthDescription())
}

func TestInstance_UniqueIDs(t *testing.T) {
	a := npc.NewInstance(goblin(), dice.NewFixedSource(0))
	b := npc.NewInstance(goblin(), dice.NewFixedSource(0))
	assert.NotEqual(t, a.ID, b.ID)
}
