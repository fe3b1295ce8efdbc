package combat

import "github.com/cory-johannsen/sosaria/internal/game/npc"

// Rewards is the spoils of an encounter.
type Rewards struct {
	Gold int
	// Experience is informational; it was already granted to the killers.
	Experience int
	// Loot holds dropped item definition ids.
	Loot []string
}

// Rewards totals gold, experience and loot over every monster that is no
// longer alive. Gold per monster is rolled in [GoldDrop/2, GoldDrop].
func (e *Encounter) Rewards() Rewards {
	var r Rewards
	for _, m := range e.monsters {
		if m.IsAlive() {
			continue
		}
		tmpl := m.Monster.Template()
		r.Gold += e.roller.Between("gold drop", tmpl.GoldDrop/2, tmpl.GoldDrop)
		r.Experience += tmpl.Experience
		r.Loot = append(r.Loot, npc.GenerateLoot(tmpl.Loot, e.roller.Source())...)
	}
	return r
}
