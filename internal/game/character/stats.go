package character

// Stat bounds and the creation point budget.
const (
	MinStat     = 3
	MaxStat     = 25
	PointBudget = 50
)

// Stats holds the four primary attributes. Every value is kept in
// [MinStat, MaxStat]; the only way to change one is through a clamping setter.
type Stats struct {
	strength     int
	dexterity    int
	intelligence int
	wisdom       int
}

// NewStats returns Stats with each argument clamped into range.
//
// Postcondition: every field is in [MinStat, MaxStat].
func NewStats(str, dex, intl, wis int) Stats {
	var s Stats
	s.SetStrength(str)
	s.SetDexterity(dex)
	s.SetIntelligence(intl)
	s.SetWisdom(wis)
	return s
}

func clampStat(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

func (s Stats) Strength() int     { return s.strength }
func (s Stats) Dexterity() int    { return s.dexterity }
func (s Stats) Intelligence() int { return s.intelligence }
func (s Stats) Wisdom() int       { return s.wisdom }

func (s *Stats) SetStrength(v int)     { s.strength = clampStat(v) }
func (s *Stats) SetDexterity(v int)    { s.dexterity = clampStat(v) }
func (s *Stats) SetIntelligence(v int) { s.intelligence = clampStat(v) }
func (s *Stats) SetWisdom(v int)       { s.wisdom = clampStat(v) }

// Add applies deltas to all four stats, clamping each result.
func (s *Stats) Add(str, dex, intl, wis int) {
	s.SetStrength(s.strength + str)
	s.SetDexterity(s.dexterity + dex)
	s.SetIntelligence(s.intelligence + intl)
	s.SetWisdom(s.wisdom + wis)
}

// Total returns the sum of the four stats.
func (s Stats) Total() int {
	return s.strength + s.dexterity + s.intelligence + s.wisdom
}

// Allocation is the raw point spread a player picks at creation, before
// racial modifiers. It is validated, not clamped.
type Allocation struct {
	Strength     int
	Dexterity    int
	Intelligence int
	Wisdom       int
}

// Sum returns the total points spent.
func (a Allocation) Sum() int {
	return a.Strength + a.Dexterity + a.Intelligence + a.Wisdom
}
