package ruleset

import (
	"fmt"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
)

// Spell effect kinds.
const (
	EffectHeal   = "heal"
	EffectDamage = "damage"
	EffectStatus = "status"
)

// Spell defines a castable spell.
type Spell struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	ManaCost  int             `yaml:"mana_cost"`
	MinLevel  int             `yaml:"min_level"`
	Classes   []string        `yaml:"classes"`
	Effect    string          `yaml:"effect"`
	Amount    int             `yaml:"amount"`
	DamageMin int             `yaml:"damage_min"`
	DamageMax int             `yaml:"damage_max"`
	Status    condition.Flags `yaml:"status"`
	Range     int             `yaml:"range"`
}

// Validate checks the spell invariants.
func (s *Spell) Validate() error {
	if s.ID == "" || s.Name == "" {
		return fmt.Errorf("spell %q: id and name must not be empty", s.ID)
	}
	if s.ManaCost < 0 || s.Range < 1 {
		return fmt.Errorf("spell %q: mana_cost must be >= 0 and range >= 1", s.ID)
	}
	switch s.Effect {
	case EffectHeal:
		if s.Amount < 1 {
			return fmt.Errorf("spell %q: heal amount must be >= 1", s.ID)
		}
	case EffectDamage:
		if s.DamageMin < 1 || s.DamageMax < s.DamageMin {
			return fmt.Errorf("spell %q: damage range %d-%d is invalid", s.ID, s.DamageMin, s.DamageMax)
		}
	case EffectStatus:
		if s.Status == condition.None {
			return fmt.Errorf("spell %q: status spells must name a status", s.ID)
		}
	default:
		return fmt.Errorf("spell %q: unknown effect %q", s.ID, s.Effect)
	}
	return nil
}

// CastableBy reports whether a member of classID at level may cast the spell.
func (s *Spell) CastableBy(classID string, level int) bool {
	if level < s.MinLevel {
		return false
	}
	for _, c := range s.Classes {
		if c == classID {
			return true
		}
	}
	return false
}
