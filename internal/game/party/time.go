package party

// Calendar constants, in turns.
const (
	TurnsPerDay      = 200
	TurnsPerHalfDay  = 100
	TurnsPerMeal     = 20
	TurnsPerTrammel  = 200
	TurnsPerFelucca  = 75
	MoonPhases       = 8
	StarvationDamage = 1
)

// TimeReport summarises what happened during AdvanceTime.
type TimeReport struct {
	NewDays      int
	FoodConsumed int
	Starved      bool
}

// IsNight reports whether the current half-day is night.
func (p *Party) IsNight() bool {
	return (p.TurnCount/TurnsPerHalfDay)%2 == 1
}

// AdvanceTime moves the calendar forward n turns. Every TurnsPerMeal turns
// each member eats one ration; if the larder runs short it is emptied and
// every living member takes StarvationDamage.
//
// Postcondition: DayCount == TurnCount / TurnsPerDay; Food() >= 0.
func (p *Party) AdvanceTime(n int) TimeReport {
	var rep TimeReport
	for i := 0; i < n; i++ {
		p.TurnCount++
		if p.TurnCount%TurnsPerMeal == 0 {
			need := len(p.members)
			before := p.food
			if !p.ConsumeFood(need) {
				rep.Starved = true
				for _, c := range p.LivingMembers() {
					c.TakeDamage(StarvationDamage)
				}
			}
			rep.FoodConsumed += before - p.food
		}
		if p.TurnCount%TurnsPerTrammel == 0 {
			p.TrammelPhase = (p.TrammelPhase + 1) % MoonPhases
		}
		if p.TurnCount%TurnsPerFelucca == 0 {
			p.FeluccaPhase = (p.FeluccaPhase + 1) % MoonPhases
		}
		day := p.TurnCount / TurnsPerDay
		if day != p.DayCount {
			rep.NewDays += day - p.DayCount
			p.DayCount = day
		}
	}
	return rep
}
