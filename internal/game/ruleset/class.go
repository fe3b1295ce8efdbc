// Package ruleset holds the static reference tables the engine consumes:
// classes, races, spells and quests, plus the item and monster catalogs,
// all loaded from YAML.
package ruleset

import (
	"fmt"

	"github.com/cory-johannsen/sosaria/internal/game/inventory"
)

// Casting stat names for Class.CastingStat.
const (
	CastIntelligence = "intelligence"
	CastWisdom       = "wisdom"
)

// Class defines a playable character class.
//
// Precondition: ID and Name must be non-empty after loading.
type Class struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	BaseHP      int      `yaml:"base_hp"`
	BaseMP      int      `yaml:"base_mp"`
	HPPerLevel  int      `yaml:"hp_per_level"`
	MPPerLevel  int      `yaml:"mp_per_level"`
	CastingStat string   `yaml:"casting_stat"`
	Weapons     []string `yaml:"weapons"`
	MaxArmor    int      `yaml:"max_armor"`
	Shields     bool     `yaml:"shields"`
}

// Validate checks the class invariants.
func (c *Class) Validate() error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("class %q: id and name must not be empty", c.ID)
	}
	if c.BaseHP < 1 {
		return fmt.Errorf("class %q: base_hp must be >= 1", c.ID)
	}
	switch c.CastingStat {
	case "", CastIntelligence, CastWisdom:
	default:
		return fmt.Errorf("class %q: casting_stat must be intelligence, wisdom or empty, got %q", c.ID, c.CastingStat)
	}
	return nil
}

// IsCaster reports whether the class draws mana from a casting stat.
func (c *Class) IsCaster() bool { return c.CastingStat != "" }

// CanUse reports whether members of the class may equip def.
// Non-equipment kinds are never usable as equipment.
func (c *Class) CanUse(def *inventory.ItemDef) bool {
	switch def.Kind {
	case inventory.KindWeapon:
		for _, w := range c.Weapons {
			if w == "*" || w == def.ID {
				return true
			}
		}
		return false
	case inventory.KindArmor:
		return def.Defense <= c.MaxArmor
	case inventory.KindShield:
		return c.Shields
	default:
		return false
	}
}
