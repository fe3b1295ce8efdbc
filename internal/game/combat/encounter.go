package combat

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/condition"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/npc"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// Grid geometry.
const (
	GridSize      = 11
	PartyColumn   = 1
	MonsterColumn = 9
	firstRow      = 2
	rowsPerColumn = 7
	minObstacles  = 3
	maxObstacles  = 6
)

// Status chances, in percent.
const (
	wakeChance      = 25
	confusionChance = 33
	specialChance   = 25
	baseFleeChance  = 50
	// stallRotations bounds how many full rotations are tried when nobody
	// can act before the encounter is abandoned.
	stallRotations = 20
)

// State is the encounter lifecycle.
type State int

const (
	StateSetup State = iota
	StateActive
	StateVictory
	StateDefeat
	StateFled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateActive:
		return "active"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	case StateFled:
		return "fled"
	}
	return "unknown"
}

// Listener receives encounter notifications. Nil fields are skipped.
type Listener struct {
	OnMessage       func(msg string)
	OnTurnChanged   func(c Combatant)
	OnMonsterKilled func(m *npc.Instance)
	OnCombatEnded   func(s State)
}

// SpellBook looks up spell definitions.
type SpellBook interface {
	Spell(id string) (*ruleset.Spell, bool)
}

// Options carries the optional collaborators of an encounter.
type Options struct {
	Spells   SpellBook
	Listener Listener
	Logger   *zap.Logger
}

// Encounter is one combat episode.
type Encounter struct {
	Terrain world.Terrain

	obstacles map[world.Point]world.Terrain
	order     []Combatant
	players   []*PlayerCombatant
	monsters  []*MonsterCombatant
	turn      int
	state     State

	roller   *dice.Roller
	spells   SpellBook
	listener Listener
	logger   *zap.Logger
}

// StartCombat builds the grid, places the combatants, rolls initiative and
// runs monster turns until a player may act or the encounter ends.
//
// Precondition: roller must be non-nil; monsters must be non-empty.
// Postcondition: State() is Active, or already terminal if the monsters
// finished the fight before any player could act.
func StartCombat(members []*character.Character, monsters []*npc.Instance, terrain world.Terrain, roller *dice.Roller, opts Options) *Encounter {
	if roller == nil {
		panic("combat: StartCombat precondition violated: nil roller")
	}
	e := &Encounter{
		Terrain:   terrain,
		obstacles: make(map[world.Point]world.Terrain),
		roller:    roller,
		spells:    opts.Spells,
		listener:  opts.Listener,
		logger:    opts.Logger,
		state:     StateSetup,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	n := roller.Between("obstacle count", minObstacles, maxObstacles)
	for placed, attempt := 0, 0; placed < n && attempt < n*GridSize; attempt++ {
		x := roller.Intn(GridSize)
		y := roller.Intn(GridSize)
		if x == PartyColumn || x == MonsterColumn {
			continue
		}
		obstacle := world.Forest
		if roller.Intn(2) == 1 {
			obstacle = world.Mountain
		}
		e.obstacles[world.Point{X: x, Y: y}] = obstacle
		placed++
	}

	row := firstRow
	for i, c := range members {
		if c.IsDead() {
			continue
		}
		pc := &PlayerCombatant{Character: c, Member: i, pos: world.Point{X: PartyColumn, Y: row}}
		row++
		e.players = append(e.players, pc)
		e.order = append(e.order, pc)
	}
	for i, m := range monsters {
		mc := &MonsterCombatant{
			Monster: m,
			pos:     world.Point{X: MonsterColumn - i/rowsPerColumn, Y: firstRow + i%rowsPerColumn},
		}
		e.monsters = append(e.monsters, mc)
		e.order = append(e.order, mc)
	}

	for _, c := range e.order {
		delete(e.obstacles, c.Position())
	}

	scores := make(map[Combatant]int, len(e.order))
	for _, c := range e.order {
		scores[c] = c.InitiativeBase() + roller.D20("initiative")
	}
	sort.SliceStable(e.order, func(i, j int) bool { return scores[e.order[i]] > scores[e.order[j]] })

	e.state = StateActive
	e.logger.Info("combat started",
		zap.Int("players", len(e.players)),
		zap.Int("monsters", len(e.monsters)),
		zap.String("terrain", terrain.String()),
	)
	e.emit(fmt.Sprintf("Combat begins against %s!", e.monsterSummary()))

	if e.checkEnd() {
		return e
	}
	e.turn = len(e.order) - 1
	e.advance()
	return e
}

// State returns the current lifecycle state.
func (e *Encounter) State() State { return e.state }

// IsOver reports whether the encounter has reached a terminal state.
func (e *Encounter) IsOver() bool {
	return e.state == StateVictory || e.state == StateDefeat || e.state == StateFled
}

// Order returns the combatants in initiative order.
func (e *Encounter) Order() []Combatant {
	out := make([]Combatant, len(e.order))
	copy(out, e.order)
	return out
}

// Players returns the player combatants in party order.
func (e *Encounter) Players() []*PlayerCombatant {
	out := make([]*PlayerCombatant, len(e.players))
	copy(out, e.players)
	return out
}

// Monsters returns the monster combatants in the order they were given;
// Attack targets index into this slice.
func (e *Encounter) Monsters() []*MonsterCombatant {
	out := make([]*MonsterCombatant, len(e.monsters))
	copy(out, e.monsters)
	return out
}

// Current returns the combatant whose turn it is, or nil once the encounter is over.
func (e *Encounter) Current() Combatant {
	if e.IsOver() || len(e.order) == 0 {
		return nil
	}
	return e.order[e.turn]
}

// CurrentPlayer returns the acting player, or nil when it is not a player's turn.
func (e *Encounter) CurrentPlayer() *PlayerCombatant {
	p, _ := e.Current().(*PlayerCombatant)
	return p
}

// Cell returns the terrain drawn at (x, y) of the grid.
func (e *Encounter) Cell(x, y int) world.Terrain {
	if t, ok := e.obstacles[world.Point{X: x, Y: y}]; ok {
		return t
	}
	return e.Terrain
}

// OccupantAt returns the living combatant standing at p.
func (e *Encounter) OccupantAt(p world.Point) (Combatant, bool) {
	for _, c := range e.order {
		if c.IsAlive() && c.Position() == p {
			return c, true
		}
	}
	return nil, false
}

func inGrid(p world.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < GridSize && p.Y < GridSize
}

func (e *Encounter) passable(p world.Point) bool {
	if !inGrid(p) {
		return false
	}
	_, blocked := e.obstacles[p]
	return !blocked
}

// ExecutePlayerAction performs a on behalf of the current player and then
// runs every following monster turn.
//
// Postcondition: a rejected action (OK false) changes nothing and does not
// advance the turn.
func (e *Encounter) ExecutePlayerAction(a Action) ActionResult {
	if e.state != StateActive {
		return rejected("The battle is over.")
	}
	pc := e.CurrentPlayer()
	if pc == nil || !pc.CanAct() {
		return rejected("It is not your turn.")
	}

	var res ActionResult
	switch a.Type {
	case ActionAttack:
		res = e.playerAttack(pc, a.Target)
	case ActionCast:
		res = e.playerCast(pc, a)
	case ActionPass:
		res = ActionResult{OK: true, Message: fmt.Sprintf("%s waits.", pc.Name())}
	case ActionFlee:
		res = e.playerFlee(pc)
	default:
		return rejected("Unknown action.")
	}
	if !res.OK {
		return res
	}
	e.emit(res.Message)
	if e.state == StateActive {
		e.advance()
	}
	return res
}

// confused rolls the confusion check for c and reports whether the turn is lost.
func (e *Encounter) confused(c Combatant) bool {
	if !c.Status().Has(condition.Confused) {
		return false
	}
	return e.roller.Chance("confusion", confusionChance)
}

func (e *Encounter) playerAttack(pc *PlayerCombatant, target int) ActionResult {
	if target < 0 || target >= len(e.monsters) {
		return rejected("There is no such target.")
	}
	mc := e.monsters[target]
	if !mc.IsAlive() {
		return rejected(fmt.Sprintf("The %s is already dead.", mc.Name()))
	}
	weapon := pc.Character.Weapon().Def
	if Distance(pc.Position(), mc.Position()) > weapon.Range {
		return rejected(fmt.Sprintf("The %s is out of range.", mc.Name()))
	}
	if e.confused(pc) {
		return ActionResult{OK: true, Message: fmt.Sprintf("%s stumbles about in confusion.", pc.Name())}
	}

	roll := e.roller.D20("player attack")
	if roll+pc.Character.AttackBonus() < 10+mc.Defense() {
		return ActionResult{OK: true, Message: fmt.Sprintf("%s misses the %s.", pc.Name(), mc.Name())}
	}
	dmg := max(e.roller.Between("weapon damage", weapon.DamageMin, weapon.DamageMax)+pc.Character.DamageBonus(), 1)
	dealt := mc.TakeDamage(dmg)
	res := ActionResult{
		OK:      true,
		Hit:     true,
		Damage:  dealt,
		Message: fmt.Sprintf("%s hits the %s for %d damage.", pc.Name(), mc.Name(), dealt),
	}
	if !mc.IsAlive() {
		res.Killed = true
		res.Message += " " + e.monsterSlain(pc, mc)
	}
	return res
}

// monsterSlain credits pc with mc's experience and returns the narration.
func (e *Encounter) monsterSlain(pc *PlayerCombatant, mc *MonsterCombatant) string {
	xp := mc.Monster.Template().Experience
	levels := pc.Character.GainExperience(xp)
	if e.listener.OnMonsterKilled != nil {
		e.listener.OnMonsterKilled(mc.Monster)
	}
	msg := fmt.Sprintf("The %s is slain! %s gains %d experience.", mc.Name(), pc.Name(), xp)
	if levels > 0 {
		msg += fmt.Sprintf(" %s is now level %d!", pc.Name(), pc.Character.Level)
	}
	return msg
}

func (e *Encounter) playerCast(pc *PlayerCombatant, a Action) ActionResult {
	if e.spells == nil {
		return rejected("Nobody here knows any magic.")
	}
	sp, ok := e.spells.Spell(a.SpellID)
	if !ok {
		return rejected("Unknown spell.")
	}
	c := pc.Character
	if !sp.CastableBy(c.ClassID(), c.Level) {
		return rejected(fmt.Sprintf("%s cannot cast %s.", pc.Name(), sp.Name))
	}
	if c.CurrentMP() < sp.ManaCost {
		return rejected("Not enough mana.")
	}
	cell := world.Point{X: a.X, Y: a.Y}
	if !inGrid(cell) || Distance(pc.Position(), cell) > sp.Range {
		return rejected("The target is out of range.")
	}
	if e.confused(pc) {
		return ActionResult{OK: true, Message: fmt.Sprintf("%s garbles the incantation in confusion.", pc.Name())}
	}
	c.SpendMana(sp.ManaCost)

	target, occupied := e.OccupantAt(cell)
	switch sp.Effect {
	case ruleset.EffectHeal:
		if !occupied {
			return ActionResult{OK: true, Message: fmt.Sprintf("%s casts %s on empty ground.", pc.Name(), sp.Name)}
		}
		healed := target.Heal(sp.Amount)
		return ActionResult{OK: true, Message: fmt.Sprintf("%s casts %s; %s recovers %d HP.", pc.Name(), sp.Name, target.Name(), healed)}

	case ruleset.EffectDamage:
		if !occupied {
			return ActionResult{OK: true, Message: fmt.Sprintf("%s casts %s but hits nothing.", pc.Name(), sp.Name)}
		}
		dmg := e.roller.Between("spell damage", sp.DamageMin, sp.DamageMax)
		dealt := target.TakeDamage(dmg)
		res := ActionResult{
			OK: true, Hit: true, Damage: dealt,
			Message: fmt.Sprintf("%s casts %s at %s for %d damage.", pc.Name(), sp.Name, target.Name(), dealt),
		}
		if !target.IsAlive() {
			res.Killed = true
			if mc, ok := target.(*MonsterCombatant); ok {
				res.Message += " " + e.monsterSlain(pc, mc)
			} else {
				res.Message += fmt.Sprintf(" %s falls!", target.Name())
			}
		}
		return res

	case ruleset.EffectStatus:
		if !occupied {
			return ActionResult{OK: true, Message: fmt.Sprintf("%s casts %s but hits nothing.", pc.Name(), sp.Name)}
		}
		target.SetStatus(target.Status().With(sp.Status))
		return ActionResult{OK: true, Hit: true, Message: fmt.Sprintf("%s casts %s; %s is %s.", pc.Name(), sp.Name, target.Name(), sp.Status)}
	}
	return rejected("The spell has no effect.")
}

func (e *Encounter) playerFlee(pc *PlayerCombatant) ActionResult {
	chance := baseFleeChance + pc.Character.Stats.Dexterity()
	if e.roller.Percent("flee") <= chance {
		e.finish(StateFled)
		return ActionResult{OK: true, Message: "The party flees!"}
	}
	return ActionResult{OK: true, Message: fmt.Sprintf("%s fails to escape.", pc.Name())}
}

// advance hands the turn to the next combatant able to act and resolves
// monster turns in a loop until a player must choose or the fight ends.
func (e *Encounter) advance() {
	for e.state == StateActive {
		if e.checkEnd() {
			return
		}
		if !e.nextActor() {
			e.emit("Nobody is able to fight on; the combatants drift apart.")
			e.finish(StateFled)
			return
		}
		cur := e.order[e.turn]
		if e.listener.OnTurnChanged != nil {
			e.listener.OnTurnChanged(cur)
		}
		if cur.Status().Has(condition.Poisoned) {
			cur.TakeDamage(1)
			e.emit(fmt.Sprintf("%s suffers from poison.", cur.Name()))
			if !cur.IsAlive() {
				e.emit(fmt.Sprintf("%s succumbs to the poison!", cur.Name()))
				if mc, ok := cur.(*MonsterCombatant); ok && e.listener.OnMonsterKilled != nil {
					e.listener.OnMonsterKilled(mc.Monster)
				}
				continue
			}
		}
		mc, isMonster := cur.(*MonsterCombatant)
		if !isMonster {
			return
		}
		e.monsterTurn(mc)
	}
}

// nextActor rotates the turn index to the next combatant able to act.
// Sleepers passed over may wake. It reports false when no combatant could
// act after stallRotations full rotations.
func (e *Encounter) nextActor() bool {
	n := len(e.order)
	for rotation := 0; rotation < stallRotations; rotation++ {
		for step := 1; step <= n; step++ {
			idx := (e.turn + step) % n
			c := e.order[idx]
			if !c.IsAlive() {
				continue
			}
			if c.CanAct() {
				e.turn = idx
				return true
			}
			if c.Status().Has(condition.Asleep) && e.roller.Chance("wake", wakeChance) {
				c.SetStatus(c.Status().Without(condition.Asleep))
				e.emit(fmt.Sprintf("%s wakes up.", c.Name()))
			}
		}
	}
	return false
}

// checkEnd moves the encounter to Defeat or Victory when a side is wiped out.
func (e *Encounter) checkEnd() bool {
	playersAlive, monstersAlive := false, false
	for _, p := range e.players {
		playersAlive = playersAlive || p.IsAlive()
	}
	for _, m := range e.monsters {
		monstersAlive = monstersAlive || m.IsAlive()
	}
	switch {
	case !playersAlive:
		e.emit("The party has fallen.")
		e.finish(StateDefeat)
	case !monstersAlive:
		e.emit("Victory!")
		e.finish(StateVictory)
	default:
		return false
	}
	return true
}

func (e *Encounter) finish(s State) {
	if e.IsOver() {
		return
	}
	e.state = s
	e.logger.Info("combat ended", zap.String("outcome", s.String()))
	if e.listener.OnCombatEnded != nil {
		e.listener.OnCombatEnded(s)
	}
}

func (e *Encounter) emit(msg string) {
	e.logger.Debug("combat message", zap.String("message", msg))
	if e.listener.OnMessage != nil {
		e.listener.OnMessage(msg)
	}
}

func (e *Encounter) monsterSummary() string {
	counts := make(map[string]int)
	var names []string
	for _, m := range e.monsters {
		if counts[m.Name()] == 0 {
			names = append(names, m.Name())
		}
		counts[m.Name()]++
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if counts[n] == 1 {
			parts = append(parts, "a "+n)
		} else {
			parts = append(parts, fmt.Sprintf("%d %ss", counts[n], n))
		}
	}
	return strings.Join(parts, " and ")
}
