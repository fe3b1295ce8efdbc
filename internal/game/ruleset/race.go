package ruleset

import "fmt"

// StatMods are additive adjustments to the four primary stats.
type StatMods struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
}

// Race defines a playable race and its stat adjustments.
type Race struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Modifiers   StatMods `yaml:"modifiers"`
}

// Validate checks the race invariants.
func (r *Race) Validate() error {
	if r.ID == "" || r.Name == "" {
		return fmt.Errorf("race %q: id and name must not be empty", r.ID)
	}
	return nil
}
