package combat

import (
	"fmt"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// nearestPlayer returns the closest living player by Chebyshev distance;
// ties go to the earliest in party order.
func (e *Encounter) nearestPlayer(from world.Point) *PlayerCombatant {
	var best *PlayerCombatant
	bestDist := 0
	for _, p := range e.players {
		if !p.IsAlive() {
			continue
		}
		d := Distance(from, p.Position())
		if best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// monsterTurn attacks the nearest player when in reach, otherwise steps one
// cell toward it. A blocked step stalls the monster for the turn.
func (e *Encounter) monsterTurn(mc *MonsterCombatant) {
	target := e.nearestPlayer(mc.Position())
	if target == nil {
		return
	}
	if e.confused(mc) {
		e.emit(fmt.Sprintf("The %s stumbles about in confusion.", mc.Name()))
		return
	}

	tmpl := mc.Monster.Template()
	reach := max(tmpl.Range, 1)
	if Distance(mc.Position(), target.Position()) <= reach {
		roll := e.roller.D20("monster attack")
		if roll+tmpl.Speed/2 < 10+target.Defense() {
			e.emit(fmt.Sprintf("The %s misses %s.", mc.Name(), target.Name()))
			return
		}
		dmg := max(e.roller.Between("monster damage", tmpl.DamageMin, tmpl.DamageMax), 1)
		dealt := target.TakeDamage(dmg)
		e.emit(fmt.Sprintf("The %s hits %s for %d damage.", mc.Name(), target.Name(), dealt))
		if !target.IsAlive() {
			e.emit(fmt.Sprintf("%s has been slain!", target.Name()))
			return
		}
		if tmpl.Special != condition.None && e.roller.Chance("monster special", specialChance) {
			target.SetStatus(target.Status().With(tmpl.Special))
			e.emit(fmt.Sprintf("%s is %s!", target.Name(), tmpl.Special))
		}
		return
	}

	from, to := mc.Position(), target.Position()
	next := world.Point{X: from.X + sign(to.X-from.X), Y: from.Y + sign(to.Y-from.Y)}
	if !e.passable(next) {
		return
	}
	if _, occupied := e.OccupantAt(next); occupied {
		return
	}
	mc.setPosition(next)
}
