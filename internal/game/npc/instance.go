package npc

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
)

// Instance is a live monster created for one encounter.
type Instance struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID.
	TemplateID string
	// Name is copied from the template for display.
	Name string
	// CurrentHP is the instance's current hit points.
	CurrentHP int
	// MaxHP is the instance's maximum hit points.
	MaxHP int
	// Status holds active status effects.
	Status condition.Flags

	tmpl *Template
}

// NewInstance creates a monster instance from tmpl, rolling its hit points
// as BaseHP plus up to HPVariance.
//
// Precondition: tmpl and src must be non-nil.
// Postcondition: CurrentHP == MaxHP and MaxHP in [BaseHP, BaseHP+HPVariance].
func NewInstance(tmpl *Template, src dice.Source) *Instance {
	hp := tmpl.BaseHP + dice.Between(src, 0, tmpl.HPVariance)
	return &Instance{
		ID:         uuid.New().String(),
		TemplateID: tmpl.ID,
		Name:       tmpl.Name,
		CurrentHP:  hp,
		MaxHP:      hp,
		tmpl:       tmpl,
	}
}

// Template returns the definition the instance was created from.
func (i *Instance) Template() *Template { return i.tmpl }

// IsDead reports whether the instance has zero or fewer hit points.
func (i *Instance) IsDead() bool {
	return i.CurrentHP <= 0 || i.Status.Has(condition.Dead)
}

// TakeDamage subtracts n hit points, clamping at zero. Reaching zero marks
// the instance dead.
//
// Postcondition: 0 <= CurrentHP <= MaxHP; returns the damage actually dealt.
func (i *Instance) TakeDamage(n int) int {
	if n < 0 {
		n = 0
	}
	if n > i.CurrentHP {
		n = i.CurrentHP
	}
	i.CurrentHP -= n
	if i.CurrentHP == 0 {
		i.Status = i.Status.With(condition.Dead)
	}
	return n
}

// Heal restores up to n hit points. Dead monsters cannot be healed.
//
// Postcondition: 0 <= CurrentHP <= MaxHP; returns the amount actually healed.
func (i *Instance) Heal(n int) int {
	if n <= 0 || i.IsDead() {
		return 0
	}
	if i.CurrentHP+n > i.MaxHP {
		n = i.MaxHP - i.CurrentHP
	}
	i.CurrentHP += n
	return n
}

// HealthDescription returns a visible health state string.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.CurrentHP <= 0 {
		return "dead"
	}
	pct := float64(i.CurrentHP) / float64(i.MaxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
