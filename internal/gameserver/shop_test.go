package gameserver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
)

func townGame(t *testing.T) *gameserver.Game {
	t.Helper()
	g, _ := newGame(t, dice.NewFixedSource(99))
	enterTownByID(t, g, world.TownMapID("britain"))
	return g
}

func TestEnterShop_NeedsCounter(t *testing.T) {
	g, _ := newGame(t, dice.NewFixedSource(99))
	assert.False(t, g.EnterShop().OK)
	enterTownByID(t, g, world.TownMapID("britain"))
	assert.False(t, g.EnterShop().OK)
	assert.Nil(t, g.CurrentShop())
	assert.False(t, g.LeaveShop().OK)
}

func TestWeaponShop_BuyAndSell(t *testing.T) {
	g := townGame(t)
	stepUpTo(t, g, world.ShopWeapon)
	assert.Equal(t, gameserver.StateShop, g.State())
	assert.Equal(t, gameserver.MoveWrongState, g.MoveParty(world.North).Outcome)

	stock := g.ShopInventory()
	require.NotEmpty(t, stock)
	assert.Equal(t, "dagger", stock[0].ID)

	res := g.Buy("dagger")
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 90, g.Party().Gold())
	assert.Equal(t, 1, g.Party().Inventory.Len())

	assert.False(t, g.Buy("plate_armor").OK)
	g.Party().SetPurse(5, g.Party().Food())
	assert.False(t, g.Buy("dagger").OK)
	assert.Equal(t, 5, g.Party().Gold())

	res = g.Sell(0)
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 10, g.Party().Gold())
	assert.Zero(t, g.Party().Inventory.Len())
	assert.False(t, g.Sell(0).OK)

	require.True(t, g.LeaveShop().OK)
	assert.Equal(t, gameserver.StateTown, g.State())
	assert.Nil(t, g.CurrentShop())
}

func TestShop_QuestItemsAreNotForSale(t *testing.T) {
	g := townGame(t)
	idol, ok := g.Rules().Items.Item("golden_idol")
	require.True(t, ok)
	g.Party().Inventory.AddDef(idol)
	stepUpTo(t, g, world.ShopArmor)
	assert.False(t, g.Sell(0).OK)
	assert.Equal(t, 1, g.Party().Inventory.Len())
}

func TestTavern_SellsFood(t *testing.T) {
	g := townGame(t)
	stepUpTo(t, g, world.ShopTavern)
	food := g.Party().Food()

	res := g.BuyFood()
	require.True(t, res.OK, res.Message)
	assert.Equal(t, food+gameserver.FoodRation, g.Party().Food())
	assert.Equal(t, 100-gameserver.FoodPrice, g.Party().Gold())
	assert.False(t, g.HealMember(0).OK)
	assert.False(t, g.Sell(0).OK)
}

func TestHealer_Services(t *testing.T) {
	g := townGame(t)
	stepUpTo(t, g, world.ShopHealer)
	g.Party().SetPurse(1000, g.Party().Food())
	members := g.Party().Members()

	assert.False(t, g.HealMember(0).OK)
	members[0].TakeDamage(7)
	require.True(t, g.HealMember(0).OK)
	assert.Equal(t, members[0].MaxHP(), members[0].CurrentHP())

	assert.False(t, g.CurePoison(1).OK)
	members[1].Status = members[1].Status.With(condition.Poisoned)
	require.True(t, g.CurePoison(1).OK)
	assert.False(t, members[1].Status.Has(condition.Poisoned))

	assert.False(t, g.ResurrectMember(2).OK)
	members[2].TakeDamage(members[2].CurrentHP())
	require.True(t, members[2].IsDead())
	require.True(t, g.ResurrectMember(2).OK)
	assert.False(t, members[2].IsDead())
	assert.Equal(t, 1, members[2].CurrentHP())

	spent := gameserver.HealPrice + gameserver.CurePrice + gameserver.ResurrectPrice
	assert.Equal(t, 1000-spent, g.Party().Gold())
	assert.False(t, g.ResurrectMember(7).OK)
}

func TestInn_RestsTheParty(t *testing.T) {
	g := townGame(t)
	stepUpTo(t, g, world.ShopInn)
	lead, _ := g.Party().Member(0)
	lead.TakeDamage(5)
	turns := g.Party().TurnCount

	res := g.StayAtInn()
	require.True(t, res.OK, res.Message)
	assert.Equal(t, lead.MaxHP(), lead.CurrentHP())
	assert.Equal(t, 100-4*gameserver.InnPricePerHead, g.Party().Gold())
	assert.Equal(t, turns+100, g.Party().TurnCount)

	g.Party().SetPurse(0, g.Party().Food())
	assert.False(t, g.StayAtInn().OK)
}

func TestInn_PoisonedMemberSurvivesTheNight(t *testing.T) {
	g := townGame(t)
	stepUpTo(t, g, world.ShopInn)
	m, _ := g.Party().Member(1)
	m.Status = m.Status.With(condition.Poisoned)
	m.TakeDamage(3)

	require.True(t, g.StayAtInn().OK)
	assert.False(t, m.IsDead())
	assert.Equal(t, m.MaxHP(), m.CurrentHP())
	assert.Equal(t, 4, len(g.Party().LivingMembers()))
}

func TestGuild_QuestLifecycle(t *testing.T) {
	g := townGame(t)
	stepUpTo(t, g, world.ShopGuild)

	var offered []string
	for _, q := range g.GuildQuests() {
		offered = append(offered, q.ID)
	}
	assert.Contains(t, offered, "kill_rats_britain")
	assert.False(t, g.AcceptQuest("cull_orcs_yew").OK)

	require.True(t, g.AcceptQuest("kill_rats_britain").OK)
	assert.False(t, g.AcceptQuest("kill_rats_britain").OK)
	assert.False(t, g.TurnInQuest("kill_rats_britain").OK)

	g.Party().ActiveQuests["kill_rats_britain"].KillCount = 5
	res := g.TurnInQuest("kill_rats_britain")
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 150, g.Party().Gold())
	assert.True(t, g.Party().CompletedQuests.Has("kill_rats_britain"))
	assert.False(t, g.TurnInQuest("no_such_quest").OK)
}
