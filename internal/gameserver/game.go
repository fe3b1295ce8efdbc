// Package gameserver hosts the game orchestrator: the top-level state
// machine that owns the party and the world and routes every player
// request to movement, combat, shops, persistence and quests.
package gameserver

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/combat"
	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/quest"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// State is the orchestrator's top-level mode.
type State int

const (
	StateMainMenu State = iota
	StateCharacterCreation
	StateOverworld
	StateTown
	StateDungeon
	StateCombat
	StateShop
	StateGameOver
	// StateVictory is reserved; nothing enters it yet.
	StateVictory
)

var stateNames = [...]string{
	StateMainMenu:          "main_menu",
	StateCharacterCreation: "character_creation",
	StateOverworld:         "overworld",
	StateTown:              "town",
	StateDungeon:           "dungeon",
	StateCombat:            "combat",
	StateShop:              "shop",
	StateGameOver:          "game_over",
	StateVictory:           "victory",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

var (
	// ErrWrongState is returned when an operation is not legal in the current state.
	ErrWrongState = errors.New("operation not allowed in current state")
	// ErrEmptyParty is returned by StartGame when no character has been created.
	ErrEmptyParty = errors.New("party has no members")
	// ErrUnknownRace and ErrUnknownClass are returned by CreateCharacter.
	ErrUnknownRace  = errors.New("unknown race")
	ErrUnknownClass = errors.New("unknown class")
)

// Listener receives orchestrator notifications. Nil fields are skipped.
type Listener struct {
	OnMessage       func(msg string)
	OnStateChanged  func(from, to State)
	OnMapChanged    func(m *world.GameMap)
	OnPartyMoved    func(x, y int)
	OnCombatMessage func(msg string)
	OnTurnChanged   func(c combat.Combatant)
	OnCombatEnded   func(outcome combat.State)
}

// ScriptHooks lets event scripts react to the party. Each hook returns a
// message for the player, or "" for none.
type ScriptHooks interface {
	MapEntered(mapID string) string
	NewDay(day int) string
}

// Deps are the collaborators of a Game.
type Deps struct {
	Rules     *ruleset.Rules
	Roller    *dice.Roller
	Generator *world.Generator
	Logger    *zap.Logger
	Tracer    trace.Tracer
	Hooks     ScriptHooks
	// Seed fixes the world seed; 0 draws one from Roller at StartGame.
	Seed         int64
	StartingGold int
	StartingFood int
}

// Game is the orchestrator. It is not safe for concurrent use.
type Game struct {
	rules     *ruleset.Rules
	roller    *dice.Roller
	generator *world.Generator
	logger    *zap.Logger
	tracer    trace.Tracer
	hooks     ScriptHooks
	listener  Listener

	fixedSeed    int64
	startingGold int
	startingFood int

	state     State
	seed      int64
	party     *party.Party
	atlas     *world.Atlas
	current   *world.GameMap
	encounter *combat.Encounter
	encSpan   trace.Span
	shop      *Shop
}

// NewGame builds a Game in the main menu with an empty party.
//
// Precondition: d.Rules and d.Roller must be non-nil.
// Postcondition: State() == StateMainMenu.
func NewGame(d Deps) *Game {
	if d.Rules == nil || d.Roller == nil {
		panic("gameserver: NewGame precondition violated: nil rules or roller")
	}
	g := &Game{
		rules:        d.Rules,
		roller:       d.Roller,
		generator:    d.Generator,
		logger:       d.Logger,
		tracer:       d.Tracer,
		hooks:        d.Hooks,
		fixedSeed:    d.Seed,
		startingGold: d.StartingGold,
		startingFood: d.StartingFood,
		state:        StateMainMenu,
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.tracer == nil {
		g.tracer = noop.NewTracerProvider().Tracer("sosaria/gameserver")
	}
	if g.generator == nil {
		g.generator = world.NewGenerator(g.tracer, g.logger)
	}
	g.party = party.New(g.startingGold, g.startingFood)
	return g
}

// SetListener replaces the notification listener.
func (g *Game) SetListener(l Listener) { g.listener = l }

// SetHooks replaces the script hooks; nil disables scripting.
func (g *Game) SetHooks(h ScriptHooks) { g.hooks = h }

// State returns the current mode.
func (g *Game) State() State { return g.state }

// Party returns the party.
func (g *Game) Party() *party.Party { return g.party }

// Rules returns the static tables the game was built with.
func (g *Game) Rules() *ruleset.Rules { return g.rules }

// CurrentMap returns the map the party is on, or nil before StartGame.
func (g *Game) CurrentMap() *world.GameMap { return g.current }

// Atlas returns every generated map, or nil before StartGame.
func (g *Game) Atlas() *world.Atlas { return g.atlas }

// Seed returns the world seed of the running game.
func (g *Game) Seed() int64 { return g.seed }

// Encounter returns the active combat, or nil.
func (g *Game) Encounter() *combat.Encounter { return g.encounter }

// Clock returns the in-game hour derived from the party's turn counter.
func (g *Game) Clock() GameHour { return HourOf(g.party.TurnCount) }

// BeginCharacterCreation resets the party and enters character creation.
//
// Postcondition: State() == StateCharacterCreation and the party is empty.
func (g *Game) BeginCharacterCreation() error {
	switch g.state {
	case StateMainMenu, StateGameOver, StateCharacterCreation:
	default:
		return ErrWrongState
	}
	g.party = party.New(g.startingGold, g.startingFood)
	g.atlas, g.current, g.encounter, g.shop = nil, nil, nil, nil
	g.setState(StateCharacterCreation)
	return nil
}

// CreateCharacter builds a character and appends it to the party.
//
// Precondition: State() == StateCharacterCreation.
// Postcondition: on success the party has one more member; on error it is unchanged.
func (g *Game) CreateCharacter(name, raceID, classID string, alloc character.Allocation) error {
	if g.state != StateCharacterCreation {
		return ErrWrongState
	}
	race, ok := g.rules.Race(raceID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRace, raceID)
	}
	class, ok := g.rules.Class(classID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, classID)
	}
	if g.party.Size() >= party.MaxMembers {
		return party.ErrPartyFull
	}
	c, err := character.New(name, race, class, alloc)
	if err != nil {
		return err
	}
	if err := g.party.AddMember(c); err != nil {
		return err
	}
	g.logger.Info("character created",
		zap.String("name", c.Name),
		zap.String("race", raceID),
		zap.String("class", classID),
	)
	return nil
}

// PremadeMember describes one member of the ready-made party.
type PremadeMember struct {
	Name, Race, Class string
	Alloc             character.Allocation
}

// PremadeParty is the party CreatePremadeParty builds.
var PremadeParty = []PremadeMember{
	{"Dupre", "human", "paladin", character.Allocation{Strength: 16, Dexterity: 12, Intelligence: 8, Wisdom: 14}},
	{"Iolo", "bobbit", "ranger", character.Allocation{Strength: 12, Dexterity: 16, Intelligence: 14, Wisdom: 8}},
	{"Shamino", "elf", "wizard", character.Allocation{Strength: 8, Dexterity: 14, Intelligence: 18, Wisdom: 10}},
	{"Mariah", "dwarf", "cleric", character.Allocation{Strength: 14, Dexterity: 10, Intelligence: 8, Wisdom: 18}},
}

// CreatePremadeParty fills the party with PremadeParty, entering character
// creation first if needed.
func (g *Game) CreatePremadeParty() error {
	if g.state != StateCharacterCreation {
		if err := g.BeginCharacterCreation(); err != nil {
			return err
		}
	}
	for _, m := range PremadeParty {
		if err := g.CreateCharacter(m.Name, m.Race, m.Class, m.Alloc); err != nil {
			return fmt.Errorf("creating %s: %w", m.Name, err)
		}
	}
	return nil
}

// StartGame generates the world and places the party at the overworld spawn.
//
// Precondition: the party must have at least one member; State() must be
// CharacterCreation or MainMenu.
// Postcondition: State() == StateOverworld with the party at (SpawnX, SpawnY).
func (g *Game) StartGame(ctx context.Context) error {
	if g.state != StateCharacterCreation && g.state != StateMainMenu {
		return ErrWrongState
	}
	if g.party.Size() == 0 {
		return ErrEmptyParty
	}
	seed := g.fixedSeed
	if seed == 0 {
		seed = int64(g.roller.Intn(1<<31-1)) + 1
	}

	ctx, span := g.tracer.Start(ctx, "game.start", trace.WithAttributes(attribute.Int64("world.seed", seed)))
	defer span.End()

	atlas, err := g.generator.Generate(ctx, seed)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("generating world: %w", err)
	}
	g.seed = seed
	g.atlas = atlas

	ow := atlas.Overworld()
	g.party.X, g.party.Y = world.SpawnX, world.SpawnY
	g.party.Facing = world.South
	g.party.DungeonLevel = 0
	g.enterMap(ow, world.Point{X: world.SpawnX, Y: world.SpawnY})

	g.logger.Info("game started",
		zap.Int64("seed", seed),
		zap.Int("members", g.party.Size()),
	)
	g.message("Your party sets out from the heart of Sosaria.")
	return nil
}

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	from := g.state
	g.state = s
	g.logger.Debug("state changed", zap.Stringer("from", from), zap.Stringer("to", s))
	if g.listener.OnStateChanged != nil {
		g.listener.OnStateChanged(from, s)
	}
}

func (g *Game) message(msg string) {
	if msg == "" {
		return
	}
	if g.listener.OnMessage != nil {
		g.listener.OnMessage(msg)
	}
}

// stateFor maps a map kind to the exploration state it implies.
func stateFor(m *world.GameMap) State {
	switch m.Kind {
	case world.KindTown:
		return StateTown
	case world.KindDungeon:
		return StateDungeon
	}
	return StateOverworld
}

// enterMap moves the party onto m at pt, refreshes sight and runs the
// map-entry observers.
func (g *Game) enterMap(m *world.GameMap, pt world.Point) {
	g.current = m
	g.party.MapID = m.ID
	g.party.X, g.party.Y = pt.X, pt.Y
	if m.Kind == world.KindDungeon {
		g.party.DungeonLevel = m.DungeonLevel
	} else {
		g.party.DungeonLevel = 0
	}
	g.refreshSight()
	g.setState(stateFor(m))
	if g.listener.OnMapChanged != nil {
		g.listener.OnMapChanged(m)
	}
	if g.listener.OnPartyMoved != nil {
		g.listener.OnPartyMoved(pt.X, pt.Y)
	}
	for _, id := range quest.OnMapEntered(g.party, g.rules.Quests, m.ID) {
		g.questReady(id)
	}
	if g.hooks != nil {
		g.message(g.hooks.MapEntered(m.ID))
	}
}

func (g *Game) refreshSight() {
	radius := world.SightRadius(g.current.Kind, g.party.IsNight())
	g.current.Reveal(g.party.X, g.party.Y, radius)
}

func (g *Game) questReady(id string) {
	if q, ok := g.rules.Quests.Get(id); ok {
		g.message(fmt.Sprintf("Quest complete: %s. Return to the guild for your reward.", q.Name))
	}
}

// checkWipe moves to GameOver when no member survives.
func (g *Game) checkWipe() bool {
	if !g.party.AllDead() {
		return false
	}
	g.logger.Info("party wiped out", zap.Int("day", g.party.DayCount))
	g.message("Your party has perished. The land of Sosaria mourns.")
	g.setState(StateGameOver)
	return true
}

// randomLiving picks one living member, or nil.
func (g *Game) randomLiving(purpose string) *character.Character {
	living := g.party.LivingMembers()
	if len(living) == 0 {
		return nil
	}
	return living[g.roller.Between(purpose, 0, len(living)-1)]
}
