package ruleset

import (
	"fmt"
	"sort"
)

// Quest kinds.
const (
	QuestKill    = "kill"
	QuestFetch   = "fetch"
	QuestExplore = "explore"
)

// QuestReward is paid once when a completed quest is turned in.
type QuestReward struct {
	Gold       int    `yaml:"gold"`
	Experience int    `yaml:"experience"`
	ItemID     string `yaml:"item"`
}

// QuestDef is a static quest definition.
type QuestDef struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Kind         string      `yaml:"kind"`
	Giver        string      `yaml:"giver"`
	Target       string      `yaml:"target"`
	Count        int         `yaml:"count"`
	FetchTag     string      `yaml:"fetch_tag"`
	Prerequisite string      `yaml:"prerequisite"`
	MinLevel     int         `yaml:"min_level"`
	Reward       QuestReward `yaml:"reward"`
}

// Validate checks the quest invariants.
func (q *QuestDef) Validate() error {
	if q.ID == "" || q.Name == "" {
		return fmt.Errorf("quest %q: id and name must not be empty", q.ID)
	}
	switch q.Kind {
	case QuestKill:
		if q.Target == "" || q.Count < 1 {
			return fmt.Errorf("quest %q: kill quests need a target and count >= 1", q.ID)
		}
	case QuestFetch:
		if q.FetchTag == "" {
			return fmt.Errorf("quest %q: fetch quests need a fetch_tag", q.ID)
		}
	case QuestExplore:
		if q.Target == "" {
			return fmt.Errorf("quest %q: explore quests need a target map", q.ID)
		}
	default:
		return fmt.Errorf("quest %q: unknown kind %q", q.ID, q.Kind)
	}
	return nil
}

// QuestCatalog is the immutable, ordered set of quest definitions.
type QuestCatalog struct {
	byID    map[string]*QuestDef
	ordered []*QuestDef
}

// NewQuestCatalog indexes defs. Order is by ID.
func NewQuestCatalog(defs []*QuestDef) (*QuestCatalog, error) {
	c := &QuestCatalog{byID: make(map[string]*QuestDef, len(defs))}
	for _, d := range defs {
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("quest %q registered twice", d.ID)
		}
		c.byID[d.ID] = d
		c.ordered = append(c.ordered, d)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })
	return c, nil
}

// Get returns the quest for id, or (nil, false) if not found.
func (c *QuestCatalog) Get(id string) (*QuestDef, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// All returns every quest ordered by ID.
func (c *QuestCatalog) All() []*QuestDef {
	out := make([]*QuestDef, len(c.ordered))
	copy(out, c.ordered)
	return out
}
