package gameserver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// MoveOutcome classifies a movement attempt.
type MoveOutcome int

const (
	MoveOK MoveOutcome = iota
	MoveWrongState
	MoveBadDirection
	MoveOffMap
	MoveNeedShip
	MoveLocked
	MoveBlocked
)

// MoveResult reports a movement attempt. Rejections leave the party where it was.
type MoveResult struct {
	OK      bool
	Outcome MoveOutcome
	Message string
	// Encounter is set when the move triggered combat.
	Encounter bool
}

// Hazard tuning.
const (
	swampPoisonOdds = 8
	lavaDamageMax   = 6
	trapChance      = 50
	trapDamageMax   = 8
	fountainHeal    = 10
)

// MoveParty steps the party one tile in dir.
//
// Precondition: none; illegal requests are reported in the result.
// Postcondition: on success the party stands on the destination (or on the
// far side of a transition), time has advanced one turn, and an encounter
// may have started.
func (g *Game) MoveParty(dir world.Direction) MoveResult {
	switch g.state {
	case StateOverworld, StateTown, StateDungeon:
	default:
		return MoveResult{Outcome: MoveWrongState, Message: "You cannot move now."}
	}
	if !dir.IsStandard() {
		return MoveResult{Outcome: MoveBadDirection, Message: "That is not a direction."}
	}

	m := g.current
	dx, dy := dir.Delta()
	nx, ny := g.party.X+dx, g.party.Y+dy
	if m.Wraps {
		nx, ny = m.Wrap(nx, ny)
	}

	if !m.InBounds(nx, ny) {
		if m.Kind != world.KindOverworld && m.Terrain(g.party.X, g.party.Y).IsDoor() {
			g.party.Facing = dir
			g.leaveToOverworld()
			return MoveResult{OK: true, Outcome: MoveOK}
		}
		return MoveResult{Outcome: MoveOffMap, Message: "You cannot leave that way."}
	}

	terrain := m.Terrain(nx, ny)
	switch {
	case terrain.IsWater() && !g.party.HasShip:
		return MoveResult{Outcome: MoveNeedShip, Message: "You need a ship to cross the water."}
	case terrain == world.LockedDoor:
		return MoveResult{Outcome: MoveLocked, Message: "The door is locked."}
	case !terrain.Walkable() && !terrain.IsWater():
		return MoveResult{Outcome: MoveBlocked, Message: "Blocked!"}
	}

	g.party.X, g.party.Y = nx, ny
	g.party.Facing = dir
	g.passTime(1)
	if g.checkWipe() {
		return MoveResult{OK: true, Outcome: MoveOK}
	}
	g.refreshSight()
	if g.listener.OnPartyMoved != nil {
		g.listener.OnPartyMoved(nx, ny)
	}

	g.applyTile(nx, ny, terrain)
	if g.checkWipe() {
		return MoveResult{OK: true, Outcome: MoveOK}
	}

	started := g.rollEncounter()
	return MoveResult{OK: true, Outcome: MoveOK, Encounter: started}
}

// passTime advances the calendar n turns and applies its side effects:
// meals, starvation, poison and new-day hooks.
func (g *Game) passTime(n int) {
	g.advanceClock(n)
	for _, c := range g.party.LivingMembers() {
		if c.Status.Has(condition.Poisoned) {
			c.TakeDamage(n)
			if c.IsDead() {
				g.message(fmt.Sprintf("%s succumbs to poison.", c.Name))
			}
		}
	}
}

// sleepFor passes n turns of rest and then restores every member still
// alive. Poison does not tick while the party sleeps; it stays on the member
// until a healer cures it.
func (g *Game) sleepFor(n int) {
	g.advanceClock(n)
	for _, c := range g.party.LivingMembers() {
		c.FullRestore()
	}
	g.checkWipe()
}

func (g *Game) advanceClock(n int) {
	rep := g.party.AdvanceTime(n)
	if rep.Starved {
		g.message("Your party is starving!")
	}
	if rep.NewDays > 0 {
		g.logger.Debug("new day", zap.Int("day", g.party.DayCount))
		if g.hooks != nil {
			g.message(g.hooks.NewDay(g.party.DayCount))
		}
	}
}

// applyTile resolves the terrain the party just stepped onto.
func (g *Game) applyTile(x, y int, terrain world.Terrain) {
	switch terrain {
	case world.Swamp:
		for _, c := range g.party.LivingMembers() {
			if g.roller.Intn(swampPoisonOdds) == 0 {
				c.Status = c.Status.With(condition.Poisoned)
				g.message(fmt.Sprintf("%s is poisoned by the swamp!", c.Name))
			}
		}
	case world.Lava:
		for _, c := range g.party.LivingMembers() {
			dmg := g.roller.Between("lava", 1, lavaDamageMax)
			c.TakeDamage(dmg)
			g.message(fmt.Sprintf("%s is burned for %d damage!", c.Name, dmg))
		}
	case world.Trap:
		if g.roller.Chance("trap", trapChance) {
			if c := g.randomLiving("trap victim"); c != nil {
				dmg := g.roller.Between("trap", 1, trapDamageMax)
				c.TakeDamage(dmg)
				g.message(fmt.Sprintf("A trap springs! %s takes %d damage.", c.Name, dmg))
			}
		} else {
			g.message("You spot a trap and step around it.")
		}
		g.current.SetTerrain(x, y, world.Floor)
	case world.Fountain:
		for _, c := range g.party.LivingMembers() {
			c.Heal(fountainHeal)
		}
		g.message("The fountain's waters refresh the party.")
	case world.StairsDown:
		g.takeStairs(+1)
		return
	case world.StairsUp:
		g.takeStairs(-1)
		return
	}

	if loc, ok := g.current.LocationAt(x, y); ok {
		g.enterLocation(loc)
	}
}

// enterLocation follows a portal.
func (g *Game) enterLocation(loc world.Location) {
	target, ok := g.atlas.Get(loc.TargetMapID)
	if !ok {
		g.logger.Warn("portal targets unknown map", zap.String("map", loc.TargetMapID))
		return
	}
	g.message(fmt.Sprintf("You enter %s.", target.Name))
	g.enterMap(target, target.Arrival(loc.EntryPoint))
}

// takeStairs moves delta levels within the current dungeon. Climbing out
// of level 1 returns to the overworld.
func (g *Game) takeStairs(delta int) {
	level, ok := world.DungeonLevelOf(g.current.ID)
	if !ok {
		return
	}
	next := level + delta
	if next < 1 {
		g.leaveToOverworld()
		return
	}
	id, ok := world.WithDungeonLevel(g.current.ID, next)
	if !ok {
		return
	}
	target, ok := g.atlas.Get(id)
	if !ok {
		g.message("The stairs lead nowhere.")
		return
	}
	entry := "stairs_up"
	verb := "descend"
	if delta < 0 {
		entry = "stairs_down"
		verb = "climb"
	}
	g.message(fmt.Sprintf("You %s to %s.", verb, target.Name))
	g.enterMap(target, target.Arrival(entry))
}

// leaveToOverworld returns the party to the overworld tile of the site it
// is in.
func (g *Game) leaveToOverworld() {
	ow := g.atlas.Overworld()
	siteID := g.current.ID
	if g.current.Kind == world.KindDungeon {
		if first, ok := world.WithDungeonLevel(siteID, 1); ok {
			siteID = first
		}
	}
	pt := ow.Arrival("default")
	if loc, ok := ow.LocationFor(siteID); ok {
		pt = world.Point{X: loc.X, Y: loc.Y}
	}
	g.message(fmt.Sprintf("You return to %s.", ow.Name))
	g.enterMap(ow, pt)
}

// ExitLocation leaves a town from anywhere, or a dungeon from the up stairs
// of its first level.
func (g *Game) ExitLocation() MoveResult {
	switch g.state {
	case StateTown:
	case StateDungeon:
		if g.current.DungeonLevel != 1 || g.current.Terrain(g.party.X, g.party.Y) != world.StairsUp {
			return MoveResult{Outcome: MoveBlocked, Message: "You must find the way up first."}
		}
	default:
		return MoveResult{Outcome: MoveWrongState, Message: "There is nothing to leave."}
	}
	g.leaveToOverworld()
	return MoveResult{OK: true, Outcome: MoveOK}
}
