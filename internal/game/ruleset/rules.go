package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/npc"
)

//go:embed content/*.yaml
var content embed.FS

// Rules bundles every static table. It is built once and never mutated.
type Rules struct {
	classes  map[string]*Class
	races    map[string]*Race
	spells   map[string]*Spell
	Quests   *QuestCatalog
	Items    *inventory.Registry
	Monsters *npc.Catalog
}

var (
	defaultOnce  sync.Once
	defaultRules *Rules
	defaultErr   error
)

// Default returns the rules built from the embedded content tables.
//
// Postcondition: every call returns the same *Rules (or the same error).
func Default() (*Rules, error) {
	defaultOnce.Do(func() {
		defaultRules, defaultErr = Load(content)
	})
	return defaultRules, defaultErr
}

// MustDefault is Default for callers that treat broken embedded content as a
// programming error.
func MustDefault() *Rules {
	r, err := Default()
	if err != nil {
		panic("ruleset: embedded content is invalid: " + err.Error())
	}
	return r
}

// Load reads classes.yaml, races.yaml, spells.yaml, quests.yaml, items.yaml
// and monsters.yaml from the content directory of fsys and cross-checks them.
//
// Postcondition: Returns fully validated Rules or the first error found.
func Load(fsys fs.FS) (*Rules, error) {
	r := &Rules{
		classes: make(map[string]*Class),
		races:   make(map[string]*Race),
		spells:  make(map[string]*Spell),
	}

	var classes []*Class
	if err := decode(fsys, "content/classes.yaml", &classes); err != nil {
		return nil, err
	}
	for _, c := range classes {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		r.classes[c.ID] = c
	}

	var races []*Race
	if err := decode(fsys, "content/races.yaml", &races); err != nil {
		return nil, err
	}
	for _, rc := range races {
		if err := rc.Validate(); err != nil {
			return nil, err
		}
		r.races[rc.ID] = rc
	}

	var spells []*Spell
	if err := decode(fsys, "content/spells.yaml", &spells); err != nil {
		return nil, err
	}
	for _, s := range spells {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		r.spells[s.ID] = s
	}

	var quests []*QuestDef
	if err := decode(fsys, "content/quests.yaml", &quests); err != nil {
		return nil, err
	}
	for _, q := range quests {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	qc, err := NewQuestCatalog(quests)
	if err != nil {
		return nil, err
	}
	r.Quests = qc

	data, err := fs.ReadFile(fsys, "content/items.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	items, err := inventory.ParseItems(data)
	if err != nil {
		return nil, err
	}
	r.Items = inventory.NewRegistry()
	for _, it := range items {
		if err := r.Items.RegisterItem(it); err != nil {
			return nil, err
		}
	}

	data, err = fs.ReadFile(fsys, "content/monsters.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading monsters: %w", err)
	}
	templates, err := npc.ParseTemplates(data)
	if err != nil {
		return nil, err
	}
	r.Monsters, err = npc.NewCatalog(templates)
	if err != nil {
		return nil, err
	}

	if err := r.crossCheck(); err != nil {
		return nil, err
	}
	return r, nil
}

func decode(fsys fs.FS, path string, out interface{}) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// crossCheck verifies every id reference between tables resolves.
func (r *Rules) crossCheck() error {
	for _, s := range r.spells {
		for _, c := range s.Classes {
			if _, ok := r.classes[c]; !ok {
				return fmt.Errorf("spell %q: unknown class %q", s.ID, c)
			}
		}
	}
	for _, q := range r.Quests.All() {
		if q.Kind == QuestKill {
			if _, ok := r.Monsters.Get(q.Target); !ok {
				return fmt.Errorf("quest %q: unknown monster %q", q.ID, q.Target)
			}
		}
		if q.Prerequisite != "" {
			if _, ok := r.Quests.Get(q.Prerequisite); !ok {
				return fmt.Errorf("quest %q: unknown prerequisite %q", q.ID, q.Prerequisite)
			}
		}
		if q.Reward.ItemID != "" {
			if _, ok := r.Items.Item(q.Reward.ItemID); !ok {
				return fmt.Errorf("quest %q: unknown reward item %q", q.ID, q.Reward.ItemID)
			}
		}
	}
	for _, m := range r.Monsters.All() {
		if m.Loot == nil {
			continue
		}
		for _, drop := range m.Loot.Items {
			if _, ok := r.Items.Item(drop.ItemID); !ok {
				return fmt.Errorf("monster %q: unknown loot item %q", m.ID, drop.ItemID)
			}
		}
	}
	return nil
}

// Class returns the class for id, or (nil, false) if not found.
func (r *Rules) Class(id string) (*Class, bool) {
	c, ok := r.classes[id]
	return c, ok
}

// Race returns the race for id, or (nil, false) if not found.
func (r *Rules) Race(id string) (*Race, bool) {
	rc, ok := r.races[id]
	return rc, ok
}

// Spell returns the spell for id, or (nil, false) if not found.
func (r *Rules) Spell(id string) (*Spell, bool) {
	s, ok := r.spells[id]
	return s, ok
}

// Classes returns every class ordered by ID.
func (r *Rules) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Races returns every race ordered by ID.
func (r *Rules) Races() []*Race {
	out := make([]*Race, 0, len(r.races))
	for _, rc := range r.races {
		out = append(out, rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SpellsFor returns the spells castable by classID at level, cheapest first.
func (r *Rules) SpellsFor(classID string, level int) []*Spell {
	var out []*Spell
	for _, s := range r.spells {
		if s.CastableBy(classID, level) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ManaCost != out[j].ManaCost {
			return out[i].ManaCost < out[j].ManaCost
		}
		return out[i].ID < out[j].ID
	})
	return out
}
