// Package character defines the party member model: stats, hit and mana
// points, status, leveling and equipment.
package character

import (
	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
)

// MaxLevel is the highest attainable level.
const MaxLevel = 25

// XPPerLevel is the experience needed per current level to advance.
const XPPerLevel = 100

// Character is one party member.
//
// Invariant: 0 <= CurrentHP() <= MaxHP() and 0 <= CurrentMP() <= MaxMP().
type Character struct {
	Name   string
	RaceID string
	Stats  Stats
	Status condition.Flags
	Level  int
	XP     int
	Pack   *inventory.Backpack

	class *ruleset.Class

	currentHP int
	maxHP     int
	currentMP int
	maxMP     int

	weapon *inventory.Item
	armor  *inventory.Item
	shield *inventory.Item
}

// ClassID returns the id of the character's class.
func (c *Character) ClassID() string { return c.class.ID }

// Class returns the character's class definition.
func (c *Character) Class() *ruleset.Class { return c.class }

func (c *Character) CurrentHP() int { return c.currentHP }
func (c *Character) MaxHP() int     { return c.maxHP }
func (c *Character) CurrentMP() int { return c.currentMP }
func (c *Character) MaxMP() int     { return c.maxMP }

// IsDead reports whether the character is dead.
func (c *Character) IsDead() bool { return c.Status.Has(condition.Dead) }

// CanAct reports whether the character may take a combat turn.
func (c *Character) CanAct() bool { return !c.Status.PreventsAction() }

// TakeDamage removes up to n hit points. Negative n is treated as zero.
// Reaching zero sets the Dead flag.
//
// Postcondition: 0 <= CurrentHP() <= MaxHP(); returns the damage dealt.
func (c *Character) TakeDamage(n int) int {
	if n < 0 {
		n = 0
	}
	if n > c.currentHP {
		n = c.currentHP
	}
	c.currentHP -= n
	if c.currentHP == 0 {
		c.Status = c.Status.With(condition.Dead)
	}
	return n
}

// Heal restores up to n hit points. The dead are not healed.
//
// Postcondition: 0 <= CurrentHP() <= MaxHP(); returns the amount healed.
func (c *Character) Heal(n int) int {
	if n <= 0 || c.IsDead() {
		return 0
	}
	if c.currentHP+n > c.maxHP {
		n = c.maxHP - c.currentHP
	}
	c.currentHP += n
	return n
}

// SpendMana deducts n mana if enough is available.
//
// Postcondition: returns false and leaves MP unchanged when CurrentMP() < n.
func (c *Character) SpendMana(n int) bool {
	if n < 0 {
		n = 0
	}
	if c.currentMP < n {
		return false
	}
	c.currentMP -= n
	return true
}

// RestoreMana restores up to n mana points.
//
// Postcondition: 0 <= CurrentMP() <= MaxMP(); returns the amount restored.
func (c *Character) RestoreMana(n int) int {
	if n <= 0 {
		return 0
	}
	if c.currentMP+n > c.maxMP {
		n = c.maxMP - c.currentMP
	}
	c.currentMP += n
	return n
}

// Revive clears death and sets hit points to hp (at least 1).
func (c *Character) Revive(hp int) {
	if hp < 1 {
		hp = 1
	}
	if hp > c.maxHP {
		hp = c.maxHP
	}
	c.Status = c.Status.Without(condition.Dead)
	c.currentHP = hp
}

// FullRestore refills hit and mana points and clears sleep. Dead members stay dead.
func (c *Character) FullRestore() {
	if c.IsDead() {
		return
	}
	c.currentHP = c.maxHP
	c.currentMP = c.maxMP
	c.Status = c.Status.Without(condition.Asleep)
}

// GainExperience adds xp and applies every level-up it pays for.
//
// Postcondition: returns the number of levels gained; Level <= MaxLevel.
func (c *Character) GainExperience(xp int) int {
	if xp <= 0 || c.IsDead() {
		return 0
	}
	c.XP += xp
	gained := 0
	for c.Level < MaxLevel && c.XP >= c.Level*XPPerLevel {
		c.levelUp()
		gained++
	}
	return gained
}

func (c *Character) levelUp() {
	c.Level++
	c.maxHP += c.class.HPPerLevel + c.Stats.Strength()/5
	if c.class.IsCaster() {
		c.maxMP += c.class.MPPerLevel
	}
	c.currentHP = c.maxHP
	c.currentMP = c.maxMP
}

// Weapon returns the equipped weapon, or bare hands.
func (c *Character) Weapon() *inventory.Item { return c.weapon }

// Armor returns the equipped armor, or the empty armor slot.
func (c *Character) Armor() *inventory.Item { return c.armor }

// Shield returns the equipped shield, or the empty shield slot.
func (c *Character) Shield() *inventory.Item { return c.shield }

// AttackBonus is added to a d20 when attacking.
func (c *Character) AttackBonus() int {
	return c.Level + c.Stats.Dexterity()/4 + c.weapon.Def.AttackBonus
}

// Defense is what attackers must beat above 10.
func (c *Character) Defense() int {
	return c.armor.Def.Defense + c.shield.Def.Defense + c.Stats.Dexterity()/5
}

// DamageBonus is added to every weapon damage roll.
func (c *Character) DamageBonus() int {
	return c.Stats.Strength() / 4
}

// CastingStat returns the value of the class casting stat, or 0 for non-casters.
func (c *Character) CastingStat() int {
	switch c.class.CastingStat {
	case ruleset.CastIntelligence:
		return c.Stats.Intelligence()
	case ruleset.CastWisdom:
		return c.Stats.Wisdom()
	}
	return 0
}
