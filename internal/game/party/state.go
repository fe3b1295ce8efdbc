package party

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// State is the flat, persistable view of a party.
type State struct {
	Members      []character.State `json:"members"`
	Gold         int               `json:"gold"`
	Food         int               `json:"food"`
	X            int               `json:"x"`
	Y            int               `json:"y"`
	Facing       world.Direction   `json:"facing"`
	MapID        string            `json:"map_id"`
	DungeonLevel int               `json:"dungeon_level"`
	HasShip      bool              `json:"has_ship"`
	HasHorse     bool              `json:"has_horse"`
	TurnCount    int               `json:"turn"`
	DayCount     int               `json:"day"`
	TrammelPhase int               `json:"trammel"`
	FeluccaPhase int               `json:"felucca"`
	Marks        []string          `json:"marks,omitempty"`
	Completed    []string          `json:"completed_quests,omitempty"`
	Active       []QuestProgress   `json:"active_quests,omitempty"`
	InventoryIDs []string          `json:"inventory,omitempty"`
}

// State captures p for persistence. Set-valued fields are sorted so equal
// parties produce equal snapshots.
func (p *Party) State() State {
	st := State{
		Gold: p.gold, Food: p.food,
		X: p.X, Y: p.Y, Facing: p.Facing,
		MapID: p.MapID, DungeonLevel: p.DungeonLevel,
		HasShip: p.HasShip, HasHorse: p.HasHorse,
		TurnCount: p.TurnCount, DayCount: p.DayCount,
		TrammelPhase: p.TrammelPhase, FeluccaPhase: p.FeluccaPhase,
		Marks:     p.MarkList(),
		Completed: p.CompletedList(),
	}
	for _, c := range p.members {
		st.Members = append(st.Members, c.State())
	}
	for _, qp := range p.ActiveQuests {
		st.Active = append(st.Active, *qp)
	}
	sort.Slice(st.Active, func(i, j int) bool { return st.Active[i].QuestID < st.Active[j].QuestID })
	for _, it := range p.Inventory.Items() {
		st.InventoryIDs = append(st.InventoryIDs, it.ID())
	}
	return st
}

// FromState rebuilds a party from a snapshot. Unknown inventory items are
// dropped; DayCount is recomputed from TurnCount.
//
// Precondition: rules must be non-nil.
// Postcondition: Returns a party satisfying the Party invariants, or an error
// when a member's class or the member count is invalid.
func FromState(st State, rules *ruleset.Rules) (*Party, error) {
	if len(st.Members) > MaxMembers {
		return nil, fmt.Errorf("restoring party: %d members: %w", len(st.Members), ErrPartyFull)
	}
	p := New(st.Gold, st.Food)
	for _, ms := range st.Members {
		class, ok := rules.Class(ms.ClassID)
		if !ok {
			return nil, fmt.Errorf("restoring member %q: unknown class %q", ms.Name, ms.ClassID)
		}
		p.members = append(p.members, character.FromState(ms, class, rules.Items))
	}
	p.X, p.Y = st.X, st.Y
	p.Facing = st.Facing
	if !p.Facing.IsStandard() {
		p.Facing = world.South
	}
	p.MapID = st.MapID
	p.DungeonLevel = max(st.DungeonLevel, 0)
	p.HasShip, p.HasHorse = st.HasShip, st.HasHorse
	p.TurnCount = max(st.TurnCount, 0)
	p.DayCount = p.TurnCount / TurnsPerDay
	p.TrammelPhase = ((st.TrammelPhase % MoonPhases) + MoonPhases) % MoonPhases
	p.FeluccaPhase = ((st.FeluccaPhase % MoonPhases) + MoonPhases) % MoonPhases
	for _, m := range st.Marks {
		p.Marks.Put(m)
	}
	for _, q := range st.Completed {
		p.CompletedQuests.Put(q)
	}
	for _, qp := range st.Active {
		qp := qp
		p.ActiveQuests[qp.QuestID] = &qp
	}
	for _, id := range st.InventoryIDs {
		if def, ok := rules.Items.Item(id); ok {
			p.Inventory.AddDef(def)
		}
	}
	return p, nil
}
