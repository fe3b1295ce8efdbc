package gameserver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// Search and lock tuning.
const (
	chestGoldMin    = 10
	chestGoldMax    = 50
	chestTrapChance = 20
	lockPickPerDex  = 3
	restTurns       = 50
)

// SearchResult reports what a search turned up.
type SearchResult struct {
	OK      bool
	Message string
	Gold    int
	Trapped bool
}

// Search examines the 3×3 area around the party for hidden doors. When
// none turns up, a chest under the party is opened instead. It takes one
// turn.
//
// Precondition: State() is Town or Dungeon.
func (g *Game) Search() SearchResult {
	if g.state != StateTown && g.state != StateDungeon {
		return SearchResult{Message: "There is nothing to search here."}
	}
	m := g.current
	res := SearchResult{OK: true, Message: "You find nothing."}
	doors := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := g.party.X+dx, g.party.Y+dy
			if m.InBounds(x, y) && m.Terrain(x, y) == world.SecretDoor {
				m.SetTerrain(x, y, world.Door)
				doors++
			}
		}
	}
	switch {
	case doors > 0:
		res.Message = "You find a hidden door!"
		g.message(res.Message)
	case m.Terrain(g.party.X, g.party.Y) == world.Chest:
		g.openChest(g.party.X, g.party.Y, &res)
	}
	g.passTime(1)
	g.checkWipe()
	return res
}

func (g *Game) openChest(x, y int, res *SearchResult) {
	gold := g.roller.Between("chest gold", chestGoldMin, chestGoldMax) * max(1, g.current.DungeonLevel)
	g.party.AddGold(gold)
	res.Gold += gold
	g.current.SetTerrain(x, y, world.Floor)
	res.Message = fmt.Sprintf("You open a chest and find %d gold.", gold)
	g.message(res.Message)
	if g.roller.Chance("chest trap", chestTrapChance) {
		if c := g.randomLiving("chest victim"); c != nil {
			dmg := g.roller.Between("chest trap", 1, trapDamageMax)
			c.TakeDamage(dmg)
			res.Trapped = true
			g.message(fmt.Sprintf("The chest was trapped! %s takes %d damage.", c.Name, dmg))
		}
	}
}

// Rest restores every living member to full health and mana. It is only
// possible in town and takes half a day.
//
// Precondition: State() == StateTown.
func (g *Game) Rest() error {
	if g.state != StateTown {
		return ErrWrongState
	}
	g.sleepFor(restTurns)
	g.message("The party rests and recovers.")
	return nil
}

// OpenDoor tries to unlock the locked door in direction dir. A key from the
// shared inventory always works and is used up; otherwise the most dexterous
// member attempts to pick the lock.
func (g *Game) OpenDoor(dir world.Direction) MoveResult {
	if g.state != StateTown && g.state != StateDungeon {
		return MoveResult{Outcome: MoveWrongState, Message: "There is no door here."}
	}
	if !dir.IsStandard() {
		return MoveResult{Outcome: MoveBadDirection, Message: "That is not a direction."}
	}
	dx, dy := dir.Delta()
	x, y := g.party.X+dx, g.party.Y+dy
	if !g.current.InBounds(x, y) || g.current.Terrain(x, y) != world.LockedDoor {
		return MoveResult{Outcome: MoveBlocked, Message: "There is no locked door there."}
	}
	defer g.passTime(1)

	if i := g.keyIndex(); i >= 0 {
		key, _ := g.party.Inventory.RemoveAt(i)
		g.current.SetTerrain(x, y, world.Door)
		g.message(fmt.Sprintf("The %s turns the lock.", key.Name()))
		return MoveResult{OK: true, Outcome: MoveOK}
	}

	picker := g.bestPicker()
	if picker == nil {
		return MoveResult{Outcome: MoveLocked, Message: "No one can pick the lock."}
	}
	if g.roller.Chance("pick lock", picker.Stats.Dexterity()*lockPickPerDex) {
		g.current.SetTerrain(x, y, world.Door)
		g.message(fmt.Sprintf("%s picks the lock.", picker.Name))
		return MoveResult{OK: true, Outcome: MoveOK}
	}
	return MoveResult{Outcome: MoveLocked, Message: fmt.Sprintf("%s fails to pick the lock.", picker.Name)}
}

func (g *Game) keyIndex() int {
	for i, it := range g.party.Inventory.Items() {
		if it.Def.Kind == inventory.KindKey {
			return i
		}
	}
	return -1
}

func (g *Game) bestPicker() *character.Character {
	var best *character.Character
	for _, c := range g.party.LivingMembers() {
		if !c.CanAct() {
			continue
		}
		if best == nil || c.Stats.Dexterity() > best.Stats.Dexterity() {
			best = c
		}
	}
	return best
}

func (g *Game) exploring() bool {
	switch g.state {
	case StateOverworld, StateTown, StateDungeon, StateShop:
		return true
	}
	return false
}

// Equip moves the item at invIndex of the shared inventory onto member.
// Whatever the slot held returns to the inventory.
//
// Postcondition: on error the party is unchanged.
func (g *Game) Equip(member, invIndex int) error {
	if !g.exploring() {
		return ErrWrongState
	}
	c, ok := g.party.Member(member)
	if !ok {
		return fmt.Errorf("no party member %d", member)
	}
	it, ok := g.party.Inventory.At(invIndex)
	if !ok {
		return fmt.Errorf("no inventory item %d", invIndex)
	}
	prev, err := c.Equip(it)
	if err != nil {
		return err
	}
	g.party.Inventory.RemoveAt(invIndex)
	if prev != nil {
		g.party.Inventory.Add(prev)
	}
	g.message(fmt.Sprintf("%s equips the %s.", c.Name, it.Name()))
	return nil
}

// Unequip returns the item in slot to the shared inventory.
func (g *Game) Unequip(member int, slot character.Slot) error {
	if !g.exploring() {
		return ErrWrongState
	}
	c, ok := g.party.Member(member)
	if !ok {
		return fmt.Errorf("no party member %d", member)
	}
	it := c.Unequip(slot)
	if it == nil {
		return fmt.Errorf("%s has nothing in the %s slot", c.Name, slot)
	}
	g.party.Inventory.Add(it)
	g.message(fmt.Sprintf("%s removes the %s.", c.Name, it.Name()))
	return nil
}

// UseItem applies the consumable at invIndex to member.
func (g *Game) UseItem(member, invIndex int) error {
	if !g.exploring() {
		return ErrWrongState
	}
	c, ok := g.party.Member(member)
	if !ok {
		return fmt.Errorf("no party member %d", member)
	}
	if c.IsDead() {
		return fmt.Errorf("%s is dead", c.Name)
	}
	it, ok := g.party.Inventory.At(invIndex)
	if !ok {
		return fmt.Errorf("no inventory item %d", invIndex)
	}
	if it.Def.Kind != inventory.KindConsumable {
		return fmt.Errorf("%s cannot be used", it.Name())
	}
	g.party.Inventory.RemoveAt(invIndex)
	healed := c.Heal(it.Def.Heal)
	g.logger.Debug("item used", zap.String("item", it.ID()), zap.String("member", c.Name), zap.Int("healed", healed))
	g.message(fmt.Sprintf("%s drinks the %s and recovers %d HP.", c.Name, it.Name(), healed))
	return nil
}
