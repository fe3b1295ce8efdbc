// Package combat resolves tactical encounters between the party and a band
// of monsters on a small square grid.
package combat

import (
	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/npc"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// Combatant is one participant in an encounter. The only implementations
// are *PlayerCombatant and *MonsterCombatant.
type Combatant interface {
	Name() string
	Position() world.Point
	IsAlive() bool
	// CanAct reports whether the combatant is alive and free of any status
	// that prevents acting.
	CanAct() bool
	Status() condition.Flags
	SetStatus(condition.Flags)
	Defense() int
	// InitiativeBase is dexterity for players and speed for monsters.
	InitiativeBase() int
	TakeDamage(n int) int
	Heal(n int) int
	HP() (current, max int)

	setPosition(p world.Point)
}

// PlayerCombatant wraps a party member.
type PlayerCombatant struct {
	Character *character.Character
	// Member is the character's index in the party.
	Member int
	pos    world.Point
}

func (p *PlayerCombatant) Name() string                { return p.Character.Name }
func (p *PlayerCombatant) Position() world.Point       { return p.pos }
func (p *PlayerCombatant) setPosition(pt world.Point)  { p.pos = pt }
func (p *PlayerCombatant) IsAlive() bool               { return !p.Character.IsDead() }
func (p *PlayerCombatant) CanAct() bool                { return p.IsAlive() && p.Character.CanAct() }
func (p *PlayerCombatant) Status() condition.Flags     { return p.Character.Status }
func (p *PlayerCombatant) SetStatus(f condition.Flags) { p.Character.Status = f }
func (p *PlayerCombatant) Defense() int                { return p.Character.Defense() }
func (p *PlayerCombatant) InitiativeBase() int         { return p.Character.Stats.Dexterity() }
func (p *PlayerCombatant) TakeDamage(n int) int        { return p.Character.TakeDamage(n) }
func (p *PlayerCombatant) Heal(n int) int              { return p.Character.Heal(n) }
func (p *PlayerCombatant) HP() (int, int)              { return p.Character.CurrentHP(), p.Character.MaxHP() }

// MonsterCombatant wraps a monster instance.
type MonsterCombatant struct {
	Monster *npc.Instance
	pos     world.Point
}

func (m *MonsterCombatant) Name() string                { return m.Monster.Name }
func (m *MonsterCombatant) Position() world.Point       { return m.pos }
func (m *MonsterCombatant) setPosition(pt world.Point)  { m.pos = pt }
func (m *MonsterCombatant) IsAlive() bool               { return !m.Monster.IsDead() }
func (m *MonsterCombatant) CanAct() bool                { return m.IsAlive() && !m.Monster.Status.PreventsAction() }
func (m *MonsterCombatant) Status() condition.Flags     { return m.Monster.Status }
func (m *MonsterCombatant) SetStatus(f condition.Flags) { m.Monster.Status = f }
func (m *MonsterCombatant) Defense() int                { return m.Monster.Template().Defense }
func (m *MonsterCombatant) InitiativeBase() int         { return m.Monster.Template().Speed }
func (m *MonsterCombatant) TakeDamage(n int) int        { return m.Monster.TakeDamage(n) }
func (m *MonsterCombatant) Heal(n int) int              { return m.Monster.Heal(n) }
func (m *MonsterCombatant) HP() (int, int)              { return m.Monster.CurrentHP, m.Monster.MaxHP }

// Distance is the Chebyshev distance between two grid cells.
func Distance(a, b world.Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
