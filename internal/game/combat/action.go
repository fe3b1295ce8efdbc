package combat

// ActionType identifies what a player does on their turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota
	ActionAttack
	ActionCast
	ActionPass
	ActionFlee
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionCast:
		return "cast"
	case ActionPass:
		return "pass"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is a player's choice for the current turn.
type Action struct {
	Type ActionType
	// Target is the index into Monsters() for ActionAttack.
	Target int
	// SpellID and the X, Y target cell are used by ActionCast.
	SpellID string
	X, Y    int
}

// Attack targets the monster at index target.
func Attack(target int) Action { return Action{Type: ActionAttack, Target: target} }

// Cast targets the grid cell (x, y) with spellID.
func Cast(spellID string, x, y int) Action {
	return Action{Type: ActionCast, SpellID: spellID, X: x, Y: y}
}

// Pass ends the turn without acting.
func Pass() Action { return Action{Type: ActionPass} }

// Flee attempts to end the encounter for the whole party.
func Flee() Action { return Action{Type: ActionFlee} }

// ActionResult reports what a player action did.
//
// Invariant: when OK is false the encounter state is unchanged.
type ActionResult struct {
	OK      bool
	Message string
	Hit     bool
	Damage  int
	Killed  bool
}

func rejected(msg string) ActionResult { return ActionResult{Message: msg} }
