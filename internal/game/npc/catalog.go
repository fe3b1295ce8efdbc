package npc

import (
	"fmt"
	"sort"
)

// Catalog is the immutable set of monster templates, indexed by ID.
type Catalog struct {
	byID    map[string]*Template
	ordered []*Template
}

// NewCatalog indexes templates.
//
// Postcondition: returns an error if two templates share an ID.
func NewCatalog(templates []*Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("monster template %q registered twice", t.ID)
		}
		c.byID[t.ID] = t
		c.ordered = append(c.ordered, t)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })
	return c, nil
}

// Get returns the template for id, or (nil, false) if not found.
func (c *Catalog) Get(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// All returns every template ordered by ID.
func (c *Catalog) All() []*Template {
	out := make([]*Template, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Candidates returns the templates eligible for an encounter in habitat.
// Templates whose DungeonLevel is at most maxLevel are preferred; when none
// qualify, every template of the habitat is returned instead.
func (c *Catalog) Candidates(habitat string, maxLevel int) []*Template {
	var preferred, any []*Template
	for _, t := range c.ordered {
		if !t.LivesIn(habitat) {
			continue
		}
		any = append(any, t)
		if t.DungeonLevel <= maxLevel {
			preferred = append(preferred, t)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	return any
}
