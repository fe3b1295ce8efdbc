// Package quest tracks quest availability, progress and rewards for a party.
// Every function is a pure operation over the party and the quest catalog.
package quest

import (
	"maps"
	"slices"

	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
)

// Reward is what TurnIn paid out. Item is nil when the quest grants none.
type Reward struct {
	Gold       int
	Experience int
	Item       *inventory.Item
}

// Available returns the quests the party may accept now, in catalog order.
// Active and completed quests are excluded, as are quests whose
// prerequisite is not completed or whose MinLevel exceeds the party's
// highest member level.
func Available(p *party.Party, cat *ruleset.QuestCatalog) []*ruleset.QuestDef {
	var out []*ruleset.QuestDef
	for _, q := range cat.All() {
		if canAccept(p, q) {
			out = append(out, q)
		}
	}
	return out
}

// AvailableFrom narrows Available to quests offered by giver.
func AvailableFrom(p *party.Party, cat *ruleset.QuestCatalog, giver string) []*ruleset.QuestDef {
	var out []*ruleset.QuestDef
	for _, q := range Available(p, cat) {
		if q.Giver == giver {
			out = append(out, q)
		}
	}
	return out
}

func canAccept(p *party.Party, q *ruleset.QuestDef) bool {
	if _, active := p.ActiveQuests[q.ID]; active {
		return false
	}
	if p.CompletedQuests.Has(q.ID) {
		return false
	}
	if q.Prerequisite != "" && !p.CompletedQuests.Has(q.Prerequisite) {
		return false
	}
	return p.MaxLevel() >= q.MinLevel
}

// Accept starts tracking quest id.
//
// Postcondition: returns false and leaves the party unchanged when the quest
// is unknown or not currently available.
func Accept(p *party.Party, cat *ruleset.QuestCatalog, id string) bool {
	q, ok := cat.Get(id)
	if !ok || !canAccept(p, q) {
		return false
	}
	p.ActiveQuests[id] = &party.QuestProgress{QuestID: id}
	return true
}

// OnMonsterKilled advances every active kill quest targeting templateID and
// returns the ids of quests that became complete with this kill.
func OnMonsterKilled(p *party.Party, cat *ruleset.QuestCatalog, templateID string) []string {
	var done []string
	for _, id := range activeIDs(p) {
		q, ok := cat.Get(id)
		if !ok || q.Kind != ruleset.QuestKill || q.Target != templateID {
			continue
		}
		prog := p.ActiveQuests[id]
		wasDone := prog.KillCount >= q.Count
		prog.KillCount++
		if !wasDone && prog.KillCount >= q.Count {
			done = append(done, id)
		}
	}
	return done
}

// OnMapEntered marks every active explore quest targeting mapID as visited
// and returns the ids that became complete.
func OnMapEntered(p *party.Party, cat *ruleset.QuestCatalog, mapID string) []string {
	var done []string
	for _, id := range activeIDs(p) {
		q, ok := cat.Get(id)
		if !ok || q.Kind != ruleset.QuestExplore || q.Target != mapID {
			continue
		}
		prog := p.ActiveQuests[id]
		if !prog.VisitedPlace {
			prog.VisitedPlace = true
			done = append(done, id)
		}
	}
	return done
}

// IsComplete reports whether active quest id has met its goal.
func IsComplete(p *party.Party, cat *ruleset.QuestCatalog, id string) bool {
	prog, active := p.ActiveQuests[id]
	q, ok := cat.Get(id)
	if !active || !ok {
		return false
	}
	switch q.Kind {
	case ruleset.QuestKill:
		return prog.KillCount >= q.Count
	case ruleset.QuestFetch:
		return p.Inventory.IndexOfTag(q.FetchTag) >= 0
	case ruleset.QuestExplore:
		return prog.VisitedPlace
	}
	return false
}

// TurnIn pays out a completed quest: the fetched item is removed from the
// shared inventory, gold goes to the purse, experience goes to every living
// member, and a fresh copy of the reward item (if any) is added to the
// shared inventory. The quest moves from active to completed.
//
// Postcondition: returns ok=false and changes nothing unless IsComplete(id).
func TurnIn(p *party.Party, cat *ruleset.QuestCatalog, items *inventory.Registry, id string) (Reward, bool) {
	if !IsComplete(p, cat, id) {
		return Reward{}, false
	}
	q, _ := cat.Get(id)

	if q.Kind == ruleset.QuestFetch {
		p.Inventory.RemoveAt(p.Inventory.IndexOfTag(q.FetchTag))
	}
	rw := Reward{Gold: q.Reward.Gold, Experience: q.Reward.Experience}
	p.AddGold(rw.Gold)
	for _, c := range p.LivingMembers() {
		c.GainExperience(rw.Experience)
	}
	if q.Reward.ItemID != "" && items != nil {
		if def, ok := items.Item(q.Reward.ItemID); ok {
			rw.Item = p.Inventory.AddDef(def)
		}
	}

	delete(p.ActiveQuests, id)
	p.CompletedQuests.Put(id)
	return rw, true
}

// activeIDs returns the ids of the party's active quests in sorted order.
func activeIDs(p *party.Party) []string {
	return slices.Sorted(maps.Keys(p.ActiveQuests))
}
