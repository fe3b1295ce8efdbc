package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/sosaria/internal/game/inventory"
)

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
	SlotShield Slot = "shield"
)

// ErrCannotEquip is returned when the class may not use an item or the item
// is not equipment.
var ErrCannotEquip = errors.New("cannot equip item")

// Equip places it in the matching slot.
//
// Precondition: it must be non-nil.
// Postcondition: on success returns the item previously in the slot, or nil
// when the slot held the canonical empty item; on error nothing changes.
func (c *Character) Equip(it *inventory.Item) (*inventory.Item, error) {
	if !c.class.CanUse(it.Def) {
		return nil, fmt.Errorf("%w: a %s cannot use %s", ErrCannotEquip, c.class.Name, it.Name())
	}
	var slot **inventory.Item
	switch it.Def.Kind {
	case inventory.KindWeapon:
		slot = &c.weapon
	case inventory.KindArmor:
		slot = &c.armor
	case inventory.KindShield:
		slot = &c.shield
	default:
		return nil, fmt.Errorf("%w: %s is not equipment", ErrCannotEquip, it.Name())
	}
	prev := *slot
	*slot = it
	if prev.IsNone() {
		return nil, nil
	}
	return prev, nil
}

// Unequip empties slot and returns what was there, or nil if it was empty.
func (c *Character) Unequip(slot Slot) *inventory.Item {
	var prev *inventory.Item
	switch slot {
	case SlotWeapon:
		prev, c.weapon = c.weapon, inventory.BareHands()
	case SlotArmor:
		prev, c.armor = c.armor, inventory.NoArmor()
	case SlotShield:
		prev, c.shield = c.shield, inventory.NoShield()
	default:
		return nil
	}
	if prev.IsNone() {
		return nil
	}
	return prev
}
