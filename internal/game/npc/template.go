// Package npc provides monster template definitions and per-encounter
// monster instances.
package npc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
)

// Habitat constants for Template.Habitats.
const (
	HabitatOverworld = "overworld"
	HabitatDungeon   = "dungeon"
)

// Template defines a reusable monster archetype loaded from YAML.
type Template struct {
	ID           string          `yaml:"id"`
	Name         string          `yaml:"name"`
	Description  string          `yaml:"description"`
	BaseHP       int             `yaml:"base_hp"`
	HPVariance   int             `yaml:"hp_variance"`
	DamageMin    int             `yaml:"damage_min"`
	DamageMax    int             `yaml:"damage_max"`
	Defense      int             `yaml:"defense"`
	Speed        int             `yaml:"speed"`
	Range        int             `yaml:"range"`
	Special      condition.Flags `yaml:"special"`
	Experience   int             `yaml:"experience"`
	GoldDrop     int             `yaml:"gold_drop"`
	DungeonLevel int             `yaml:"dungeon_level"`
	Habitats     []string        `yaml:"habitats"`
	Loot         *LootTable      `yaml:"loot"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, BaseHP >= 1,
// the damage range is ordered, Range >= 1 and every habitat is known;
// returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("monster template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("monster template %q: name must not be empty", t.ID)
	}
	if t.BaseHP < 1 {
		return fmt.Errorf("monster template %q: base_hp must be >= 1", t.ID)
	}
	if t.HPVariance < 0 {
		return fmt.Errorf("monster template %q: hp_variance must be >= 0", t.ID)
	}
	if t.DamageMin < 0 || t.DamageMax < t.DamageMin {
		return fmt.Errorf("monster template %q: damage range %d-%d is invalid", t.ID, t.DamageMin, t.DamageMax)
	}
	if t.Range < 1 {
		return fmt.Errorf("monster template %q: range must be >= 1", t.ID)
	}
	if t.GoldDrop < 0 || t.Experience < 0 {
		return fmt.Errorf("monster template %q: gold_drop and experience must be >= 0", t.ID)
	}
	if len(t.Habitats) == 0 {
		return fmt.Errorf("monster template %q: at least one habitat is required", t.ID)
	}
	for _, h := range t.Habitats {
		if h != HabitatOverworld && h != HabitatDungeon {
			return fmt.Errorf("monster template %q: unknown habitat %q", t.ID, h)
		}
	}
	if t.Loot != nil {
		if err := t.Loot.Validate(); err != nil {
			return fmt.Errorf("monster template %q: %w", t.ID, err)
		}
	}
	return nil
}

// LivesIn reports whether the template may appear in habitat.
func (t *Template) LivesIn(habitat string) bool {
	for _, h := range t.Habitats {
		if h == habitat {
			return true
		}
	}
	return false
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ParseTemplates parses a YAML list of monster templates.
//
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func ParseTemplates(data []byte) ([]*Template, error) {
	var templates []*Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing monster templates: %w", err)
	}
	for _, tmpl := range templates {
		if err := tmpl.Validate(); err != nil {
			return nil, err
		}
	}
	return templates, nil
}
