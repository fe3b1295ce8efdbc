package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
)

var (
	// ErrStatBudget is returned when an allocation spends more than PointBudget.
	ErrStatBudget = errors.New("stat allocation exceeds point budget")
	// ErrStatRange is returned when an allocated stat lies outside [MinStat, MaxStat].
	ErrStatRange = errors.New("stat allocation out of range")
)

// New builds a level-1 character. The allocation is validated against the
// point budget and stat bounds, racial modifiers are applied with clamping,
// then hit and mana points are derived from the class.
//
// Precondition: race and class must be non-nil.
// Postcondition: Returns a living character at full HP/MP with canonical
// empty equipment, or a non-nil error.
func New(name string, race *ruleset.Race, class *ruleset.Class, alloc Allocation) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if race == nil {
		return nil, errors.New("race must not be nil")
	}
	if class == nil {
		return nil, errors.New("class must not be nil")
	}
	for label, v := range map[string]int{
		"strength": alloc.Strength, "dexterity": alloc.Dexterity,
		"intelligence": alloc.Intelligence, "wisdom": alloc.Wisdom,
	} {
		if v < MinStat || v > MaxStat {
			return nil, fmt.Errorf("%w: %s is %d, must be %d-%d", ErrStatRange, label, v, MinStat, MaxStat)
		}
	}
	if alloc.Sum() > PointBudget {
		return nil, fmt.Errorf("%w: spent %d of %d", ErrStatBudget, alloc.Sum(), PointBudget)
	}

	stats := NewStats(alloc.Strength, alloc.Dexterity, alloc.Intelligence, alloc.Wisdom)
	m := race.Modifiers
	stats.Add(m.Strength, m.Dexterity, m.Intelligence, m.Wisdom)

	c := &Character{
		Name:   name,
		RaceID: race.ID,
		Stats:  stats,
		Level:  1,
		Pack:   inventory.NewBackpack(),
		class:  class,
		weapon: inventory.BareHands(),
		armor:  inventory.NoArmor(),
		shield: inventory.NoShield(),
	}
	c.maxHP = class.BaseHP + stats.Strength()/2
	if c.maxHP < 1 {
		c.maxHP = 1
	}
	if class.IsCaster() {
		c.maxMP = class.BaseMP + c.CastingStat()/2
	}
	c.currentHP = c.maxHP
	c.currentMP = c.maxMP
	return c, nil
}

// State is the flat, persistable view of a character.
type State struct {
	Name         string          `json:"name"`
	RaceID       string          `json:"race"`
	ClassID      string          `json:"class"`
	Strength     int             `json:"strength"`
	Dexterity    int             `json:"dexterity"`
	Intelligence int             `json:"intelligence"`
	Wisdom       int             `json:"wisdom"`
	CurrentHP    int             `json:"hp"`
	MaxHP        int             `json:"max_hp"`
	CurrentMP    int             `json:"mp"`
	MaxMP        int             `json:"max_mp"`
	Status       condition.Flags `json:"status"`
	Level        int             `json:"level"`
	XP           int             `json:"xp"`
	WeaponID     string          `json:"weapon,omitempty"`
	ArmorID      string          `json:"armor,omitempty"`
	ShieldID     string          `json:"shield,omitempty"`
	PackIDs      []string        `json:"pack,omitempty"`
}

// State captures c for persistence. Empty slots are recorded as "".
func (c *Character) State() State {
	st := State{
		Name: c.Name, RaceID: c.RaceID, ClassID: c.class.ID,
		Strength: c.Stats.Strength(), Dexterity: c.Stats.Dexterity(),
		Intelligence: c.Stats.Intelligence(), Wisdom: c.Stats.Wisdom(),
		CurrentHP: c.currentHP, MaxHP: c.maxHP,
		CurrentMP: c.currentMP, MaxMP: c.maxMP,
		Status: c.Status, Level: c.Level, XP: c.XP,
	}
	if !c.weapon.IsNone() {
		st.WeaponID = c.weapon.ID()
	}
	if !c.armor.IsNone() {
		st.ArmorID = c.armor.ID()
	}
	if !c.shield.IsNone() {
		st.ShieldID = c.shield.ID()
	}
	for _, it := range c.Pack.Items() {
		st.PackIDs = append(st.PackIDs, it.ID())
	}
	return st
}

// FromState rebuilds a character from a persisted State. Unknown item ids
// resolve to the canonical empty slot; numeric fields are clamped back into
// their invariants.
//
// Precondition: class must be non-nil and match st.ClassID.
func FromState(st State, class *ruleset.Class, items *inventory.Registry) *Character {
	c := &Character{
		Name:   st.Name,
		RaceID: st.RaceID,
		Stats:  NewStats(st.Strength, st.Dexterity, st.Intelligence, st.Wisdom),
		Status: st.Status,
		Level:  st.Level,
		XP:     st.XP,
		Pack:   inventory.NewBackpack(),
		class:  class,
		weapon: inventory.BareHands(),
		armor:  inventory.NoArmor(),
		shield: inventory.NoShield(),
	}
	if c.Level < 1 {
		c.Level = 1
	}
	c.maxHP = max(st.MaxHP, 1)
	c.maxMP = max(st.MaxMP, 0)
	c.currentHP = min(max(st.CurrentHP, 0), c.maxHP)
	c.currentMP = min(max(st.CurrentMP, 0), c.maxMP)
	if c.currentHP == 0 {
		c.Status = c.Status.With(condition.Dead)
	}
	if def, ok := items.Item(st.WeaponID); ok && def.Kind == inventory.KindWeapon {
		c.weapon = inventory.NewItem(def)
	}
	if def, ok := items.Item(st.ArmorID); ok && def.Kind == inventory.KindArmor {
		c.armor = inventory.NewItem(def)
	}
	if def, ok := items.Item(st.ShieldID); ok && def.Kind == inventory.KindShield {
		c.shield = inventory.NewItem(def)
	}
	for _, id := range st.PackIDs {
		if def, ok := items.Item(id); ok {
			c.Pack.AddDef(def)
		}
	}
	return c
}
