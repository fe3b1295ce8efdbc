// Package party holds the adventuring party: its members, purse, larder,
// position in the world, calendar and quest records.
package party

import (
	"errors"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/inventory"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// MaxMembers is the largest party size.
const MaxMembers = 4

// ErrPartyFull is returned by AddMember when the party already has MaxMembers.
var ErrPartyFull = errors.New("party is full")

// QuestProgress tracks one accepted quest.
type QuestProgress struct {
	QuestID      string `json:"quest_id"`
	KillCount    int    `json:"kill_count"`
	VisitedPlace bool   `json:"visited"`
}

// Party is the player's group.
//
// Invariant: Gold() >= 0, Food() >= 0, len(Members()) <= MaxMembers.
type Party struct {
	members []*character.Character
	gold    int
	food    int

	X, Y         int
	Facing       world.Direction
	MapID        string
	DungeonLevel int
	Inventory    *inventory.Backpack
	HasShip      bool
	HasHorse     bool

	TurnCount    int
	DayCount     int
	TrammelPhase int
	FeluccaPhase int

	Marks           mapset.Set[string]
	CompletedQuests mapset.Set[string]
	ActiveQuests    map[string]*QuestProgress
}

// New returns an empty party with the given starting gold and food.
func New(gold, food int) *Party {
	return &Party{
		gold:            max(gold, 0),
		food:            max(food, 0),
		Facing:          world.South,
		Inventory:       inventory.NewBackpack(),
		Marks:           mapset.New[string](),
		CompletedQuests: mapset.New[string](),
		ActiveQuests:    make(map[string]*QuestProgress),
	}
}

// AddMember appends c to the party.
//
// Postcondition: returns ErrPartyFull and leaves the party unchanged when full.
func (p *Party) AddMember(c *character.Character) error {
	if len(p.members) >= MaxMembers {
		return ErrPartyFull
	}
	p.members = append(p.members, c)
	return nil
}

// RemoveMember detaches and returns the member at index i. The character
// itself is left intact.
func (p *Party) RemoveMember(i int) (*character.Character, bool) {
	if i < 0 || i >= len(p.members) {
		return nil, false
	}
	c := p.members[i]
	p.members = append(p.members[:i], p.members[i+1:]...)
	return c, true
}

// Members returns the members in party order.
func (p *Party) Members() []*character.Character {
	out := make([]*character.Character, len(p.members))
	copy(out, p.members)
	return out
}

// Member returns the member at index i.
func (p *Party) Member(i int) (*character.Character, bool) {
	if i < 0 || i >= len(p.members) {
		return nil, false
	}
	return p.members[i], true
}

// Size returns the number of members, living or dead.
func (p *Party) Size() int { return len(p.members) }

// LivingMembers returns the members that are not dead, in party order.
func (p *Party) LivingMembers() []*character.Character {
	var out []*character.Character
	for _, c := range p.members {
		if !c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

// AllDead reports whether no member is alive. An empty party counts as dead.
func (p *Party) AllDead() bool {
	return len(p.LivingMembers()) == 0
}

// MaxLevel returns the highest member level, or 0 for an empty party.
func (p *Party) MaxLevel() int {
	lvl := 0
	for _, c := range p.members {
		lvl = max(lvl, c.Level)
	}
	return lvl
}

// Gold returns the purse.
func (p *Party) Gold() int { return p.gold }

// Food returns the larder.
func (p *Party) Food() int { return p.food }

// AddGold adds n gold; negative n is ignored.
func (p *Party) AddGold(n int) {
	if n > 0 {
		p.gold += n
	}
}

// SpendGold deducts n gold if the purse covers it.
//
// Postcondition: returns false and leaves gold unchanged when Gold() < n.
func (p *Party) SpendGold(n int) bool {
	if n < 0 || p.gold < n {
		return false
	}
	p.gold -= n
	return true
}

// AddFood adds n rations; negative n is ignored.
func (p *Party) AddFood(n int) {
	if n > 0 {
		p.food += n
	}
}

// ConsumeFood removes up to n rations and reports whether the larder covered
// the whole amount.
//
// Postcondition: Food() >= 0.
func (p *Party) ConsumeFood(n int) bool {
	if n <= 0 {
		return true
	}
	if p.food < n {
		p.food = 0
		return false
	}
	p.food -= n
	return true
}

// SetPurse overwrites gold and food, clamping each at zero. Used when
// restoring a saved game.
func (p *Party) SetPurse(gold, food int) {
	p.gold = max(gold, 0)
	p.food = max(food, 0)
}

// MarkList returns the marks in sorted order.
func (p *Party) MarkList() []string { return sortedSet(p.Marks) }

// CompletedList returns the completed quest ids in sorted order.
func (p *Party) CompletedList() []string { return sortedSet(p.CompletedQuests) }

func sortedSet(s mapset.Set[string]) []string {
	out := make([]string, 0, s.Size())
	s.Each(func(k string) { out = append(out, k) })
	sort.Strings(out)
	return out
}
