package npc

import (
	"fmt"

	"github.com/cory-johannsen/sosaria/internal/game/dice"
)

// ItemDrop defines a single item entry in a loot table with a percent drop chance.
type ItemDrop struct {
	ItemID string `yaml:"item"`
	Chance int    `yaml:"chance"`
}

// LootTable defines the possible item drops for a monster template.
type LootTable struct {
	Items []ItemDrop `yaml:"items"`
}

// Validate checks that the loot table satisfies its invariants.
//
// Precondition: lt must not be nil.
// Postcondition: Returns nil iff every entry names an item and has a chance
// in [1, 100]; an empty loot table is valid.
func (lt *LootTable) Validate() error {
	for i, item := range lt.Items {
		if item.ItemID == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item id", i)
		}
		if item.Chance < 1 || item.Chance > 100 {
			return fmt.Errorf("loot table: item[%d] chance must be in [1, 100], got %d", i, item.Chance)
		}
	}
	return nil
}

// GenerateLoot rolls each entry of lt independently and returns the ids of
// the items that dropped, in table order.
//
// Precondition: lt must have passed Validate().
func GenerateLoot(lt *LootTable, src dice.Source) []string {
	if lt == nil {
		return nil
	}
	var out []string
	for _, item := range lt.Items {
		if dice.Chance(src, item.Chance) {
			out = append(out, item.ItemID)
		}
	}
	return out
}
