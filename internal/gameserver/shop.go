package gameserver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/quest"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// Service prices, in gold.
const (
	FoodPrice       = 10
	FoodRation      = 25
	HealPrice       = 20
	CurePrice       = 15
	ResurrectPrice  = 250
	InnPricePerHead = 10
	innTurns        = 100
)

// Shop is the establishment the party is standing at.
type Shop struct {
	Type string
	Name string
}

// ShopResult reports a shop transaction.
type ShopResult struct {
	OK      bool
	Message string
}

func refuse(msg string) ShopResult { return ShopResult{Message: msg} }

// CurrentShop returns the shop the party is in, or nil.
func (g *Game) CurrentShop() *Shop { return g.shop }

// EnterShop steps up to a counter next to the party.
//
// Precondition: State() == StateTown.
// Postcondition: on success State() == StateShop and CurrentShop() is set.
func (g *Game) EnterShop() ShopResult {
	if g.state != StateTown {
		return refuse("There is no shop here.")
	}
	for _, dir := range []world.Direction{world.North, world.East, world.South, world.West} {
		dx, dy := dir.Delta()
		t, ok := g.current.Tile(g.party.X+dx, g.party.Y+dy)
		if !ok || t.Terrain != world.Counter {
			continue
		}
		shopType, name, ok := world.ParseShopEntity(t.EntityID)
		if !ok {
			continue
		}
		g.shop = &Shop{Type: shopType, Name: name}
		g.logger.Debug("shop entered", zap.String("type", shopType), zap.String("name", name))
		g.setState(StateShop)
		msg := fmt.Sprintf("Welcome to %s!", name)
		g.message(msg)
		return ShopResult{OK: true, Message: msg}
	}
	return refuse("There is no counter within reach.")
}

// LeaveShop returns to the town.
func (g *Game) LeaveShop() ShopResult {
	if g.state != StateShop {
		return refuse("You are not in a shop.")
	}
	g.shop = nil
	g.setState(StateTown)
	return ShopResult{OK: true, Message: "You step back into the street."}
}

func (g *Game) inShop(types ...string) bool {
	if g.state != StateShop || g.shop == nil {
		return false
	}
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if g.shop.Type == t {
			return true
		}
	}
	return false
}

// ShopInventory lists what the current shop sells, cheapest first.
func (g *Game) ShopInventory() []*inventory.ItemDef {
	if !g.inShop() {
		return nil
	}
	return g.rules.Items.ForShop(g.shop.Type)
}

// Buy purchases one itemID into the shared inventory.
func (g *Game) Buy(itemID string) ShopResult {
	if !g.inShop() {
		return refuse("You are not in a shop.")
	}
	var def *inventory.ItemDef
	for _, d := range g.ShopInventory() {
		if d.ID == itemID {
			def = d
			break
		}
	}
	if def == nil {
		return refuse("We don't sell that here.")
	}
	if !g.party.SpendGold(def.Price) {
		return refuse(fmt.Sprintf("The %s costs %d gold. You cannot afford it.", def.Name, def.Price))
	}
	g.party.Inventory.AddDef(def)
	g.logger.Info("item bought", zap.String("item", def.ID), zap.Int("price", def.Price))
	return ShopResult{OK: true, Message: fmt.Sprintf("You buy the %s for %d gold.", def.Name, def.Price)}
}

// SellPrice is what a shop pays for def.
func SellPrice(def *inventory.ItemDef) int { return def.Price / 2 }

// Sell trades the inventory item at index for half its price. Taverns and
// inns buy nothing, and nobody buys quest items.
func (g *Game) Sell(index int) ShopResult {
	if !g.inShop(world.ShopWeapon, world.ShopArmor, world.ShopHealer, world.ShopGuild) {
		return refuse("Nobody here is buying.")
	}
	it, ok := g.party.Inventory.At(index)
	if !ok {
		return refuse("You have no such item.")
	}
	if it.Def.Kind == inventory.KindQuest {
		return refuse(fmt.Sprintf("The %s is not for sale.", it.Name()))
	}
	g.party.Inventory.RemoveAt(index)
	price := SellPrice(it.Def)
	g.party.AddGold(price)
	g.logger.Info("item sold", zap.String("item", it.ID()), zap.Int("price", price))
	return ShopResult{OK: true, Message: fmt.Sprintf("You sell the %s for %d gold.", it.Name(), price)}
}

// BuyFood buys FoodRation rations at a tavern.
func (g *Game) BuyFood() ShopResult {
	if !g.inShop(world.ShopTavern) {
		return refuse("Food is sold at the tavern.")
	}
	if !g.party.SpendGold(FoodPrice) {
		return refuse("You cannot afford a meal.")
	}
	g.party.AddFood(FoodRation)
	return ShopResult{OK: true, Message: fmt.Sprintf("You buy %d rations for %d gold.", FoodRation, FoodPrice)}
}

func (g *Game) healerTarget(member int) (*character.Character, ShopResult, bool) {
	if !g.inShop(world.ShopHealer) {
		return nil, refuse("Find a healer first."), false
	}
	c, ok := g.party.Member(member)
	if !ok {
		return nil, refuse("There is no such companion."), false
	}
	return c, ShopResult{}, true
}

// HealMember restores one living member to full health.
func (g *Game) HealMember(member int) ShopResult {
	c, res, ok := g.healerTarget(member)
	if !ok {
		return res
	}
	if c.IsDead() {
		return refuse(fmt.Sprintf("%s is beyond simple healing.", c.Name))
	}
	if c.CurrentHP() == c.MaxHP() {
		return refuse(fmt.Sprintf("%s is not wounded.", c.Name))
	}
	if !g.party.SpendGold(HealPrice) {
		return refuse(fmt.Sprintf("Healing costs %d gold.", HealPrice))
	}
	c.Heal(c.MaxHP())
	return ShopResult{OK: true, Message: fmt.Sprintf("%s is fully healed.", c.Name)}
}

// CurePoison removes poison from one member.
func (g *Game) CurePoison(member int) ShopResult {
	c, res, ok := g.healerTarget(member)
	if !ok {
		return res
	}
	if !c.Status.Has(condition.Poisoned) || c.IsDead() {
		return refuse(fmt.Sprintf("%s is not poisoned.", c.Name))
	}
	if !g.party.SpendGold(CurePrice) {
		return refuse(fmt.Sprintf("A cure costs %d gold.", CurePrice))
	}
	c.Status = c.Status.Without(condition.Poisoned)
	return ShopResult{OK: true, Message: fmt.Sprintf("%s is cured.", c.Name)}
}

// ResurrectMember brings a dead member back with 1 HP.
func (g *Game) ResurrectMember(member int) ShopResult {
	c, res, ok := g.healerTarget(member)
	if !ok {
		return res
	}
	if !c.IsDead() {
		return refuse(fmt.Sprintf("%s still lives.", c.Name))
	}
	if !g.party.SpendGold(ResurrectPrice) {
		return refuse(fmt.Sprintf("Resurrection costs %d gold.", ResurrectPrice))
	}
	c.Revive(1)
	g.logger.Info("member resurrected", zap.String("name", c.Name))
	return ShopResult{OK: true, Message: fmt.Sprintf("%s returns to the living!", c.Name)}
}

// StayAtInn rests the party overnight for InnPricePerHead per living member.
func (g *Game) StayAtInn() ShopResult {
	if !g.inShop(world.ShopInn) {
		return refuse("You need an inn for that.")
	}
	living := g.party.LivingMembers()
	cost := InnPricePerHead * len(living)
	if !g.party.SpendGold(cost) {
		return refuse(fmt.Sprintf("A night here costs %d gold.", cost))
	}
	g.sleepFor(innTurns)
	return ShopResult{OK: true, Message: "You sleep soundly and wake refreshed."}
}

// GuildQuests lists the quests this town's guild offers the party now.
func (g *Game) GuildQuests() []*ruleset.QuestDef {
	if !g.inShop(world.ShopGuild) {
		return nil
	}
	return quest.AvailableFrom(g.party, g.rules.Quests, g.current.ID)
}

// AcceptQuest takes on a quest offered by this guild.
func (g *Game) AcceptQuest(id string) ShopResult {
	if !g.inShop(world.ShopGuild) {
		return refuse("Quests are handed out at the guild.")
	}
	var q *ruleset.QuestDef
	for _, def := range g.GuildQuests() {
		if def.ID == id {
			q = def
			break
		}
	}
	if q == nil || !quest.Accept(g.party, g.rules.Quests, id) {
		return refuse("That quest is not on offer.")
	}
	g.logger.Info("quest accepted", zap.String("quest", id))
	return ShopResult{OK: true, Message: fmt.Sprintf("Quest accepted: %s.", q.Name)}
}

// TurnInQuest collects the reward for a completed quest.
func (g *Game) TurnInQuest(id string) ShopResult {
	if !g.inShop(world.ShopGuild) {
		return refuse("Rewards are paid at the guild.")
	}
	q, ok := g.rules.Quests.Get(id)
	if !ok {
		return refuse("No such quest.")
	}
	rw, ok := quest.TurnIn(g.party, g.rules.Quests, g.rules.Items, id)
	if !ok {
		return refuse(fmt.Sprintf("%s is not finished yet.", q.Name))
	}
	g.logger.Info("quest completed", zap.String("quest", id), zap.Int("gold", rw.Gold))
	msg := fmt.Sprintf("%s complete! You receive %d gold and %d experience.", q.Name, rw.Gold, rw.Experience)
	if rw.Item != nil {
		msg += fmt.Sprintf(" You are given the %s.", rw.Item.Name())
	}
	return ShopResult{OK: true, Message: msg}
}
