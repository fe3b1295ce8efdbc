// Package inventory defines item definitions, the item registry and the
// party's shared inventory.
package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Kind constants for ItemDef.Kind.
const (
	KindWeapon     = "weapon"
	KindArmor      = "armor"
	KindShield     = "shield"
	KindConsumable = "consumable"
	KindKey        = "key"
	KindQuest      = "quest"
)

// validKinds is the set of valid ItemDef kinds.
var validKinds = map[string]bool{
	KindWeapon:     true,
	KindArmor:      true,
	KindShield:     true,
	KindConsumable: true,
	KindKey:        true,
	KindQuest:      true,
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kind        string   `yaml:"kind"`
	DamageMin   int      `yaml:"damage_min"`
	DamageMax   int      `yaml:"damage_max"`
	Range       int      `yaml:"range"`
	AttackBonus int      `yaml:"attack_bonus"`
	Defense     int      `yaml:"defense"`
	Heal        int      `yaml:"heal"`
	Price       int      `yaml:"price"`
	QuestTag    string   `yaml:"quest_tag"`
	Shops       []string `yaml:"shops"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of weapon, armor, shield, consumable, key, quest; got %q", d.Kind))
	}
	if d.Kind == KindWeapon {
		if d.DamageMin < 1 || d.DamageMax < d.DamageMin {
			errs = append(errs, fmt.Errorf("weapon damage range %d-%d is invalid", d.DamageMin, d.DamageMax))
		}
		if d.Range < 1 {
			errs = append(errs, errors.New("weapon Range must be >= 1"))
		}
	}
	if d.Kind == KindQuest && d.QuestTag == "" {
		errs = append(errs, errors.New("QuestTag is required when Kind is quest"))
	}
	if d.Price < 0 {
		errs = append(errs, errors.New("Price must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// ParseItems decodes a YAML list of item definitions and validates each one.
//
// Postcondition: returns all valid ItemDefs or the first encountered error.
func ParseItems(data []byte) ([]*ItemDef, error) {
	var defs []*ItemDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// Item is a concrete copy of an ItemDef carried by the party or equipped by a
// character.
type Item struct {
	InstanceID string
	Def        *ItemDef
}

// NewItem creates a fresh instance of def.
//
// Precondition: def must not be nil.
func NewItem(def *ItemDef) *Item {
	return &Item{InstanceID: uuid.New().String(), Def: def}
}

// Canonical "nothing equipped" definitions. They are shared and never mutated.
var (
	bareHands = &ItemDef{ID: "bare_hands", Name: "Bare Hands", Kind: KindWeapon, DamageMin: 1, DamageMax: 2, Range: 1}
	noArmor   = &ItemDef{ID: "no_armor", Name: "Clothes", Kind: KindArmor}
	noShield  = &ItemDef{ID: "no_shield", Name: "None", Kind: KindShield}
)

// BareHands returns the canonical unarmed weapon.
func BareHands() *Item { return &Item{Def: bareHands} }

// NoArmor returns the canonical empty armor slot.
func NoArmor() *Item { return &Item{Def: noArmor} }

// NoShield returns the canonical empty shield slot.
func NoShield() *Item { return &Item{Def: noShield} }

// IsNone reports whether it is one of the canonical empty slot items.
func (it *Item) IsNone() bool {
	return it == nil || it.Def == bareHands || it.Def == noArmor || it.Def == noShield
}

// ID returns the definition id.
func (it *Item) ID() string { return it.Def.ID }

// Name returns the definition name.
func (it *Item) Name() string { return it.Def.Name }
