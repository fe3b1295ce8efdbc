// Package command defines the typed command vocabulary of the game: the
// verbs, their aliases and arity, and the parser that resolves a line of
// input against them.
package command

// Categories for organizing commands in help output.
const (
	CategoryParty    = "party"
	CategoryMovement = "movement"
	CategoryExplore  = "explore"
	CategoryItems    = "items"
	CategoryShop     = "shop"
	CategoryCombat   = "combat"
	CategorySystem   = "system"
)

// Handler identifiers. Front ends dispatch on these rather than on names
// so aliases never need special cases.
const (
	HandlerCreate  = "create"
	HandlerPremade = "premade"
	HandlerStart   = "start"
	HandlerMove    = "move"
	HandlerOpen    = "open"
	HandlerSearch  = "search"
	HandlerRest    = "rest"
	HandlerShop    = "shop"
	HandlerExit    = "exit"
	HandlerEquip   = "equip"
	HandlerUnequip = "unequip"
	HandlerUse     = "use"
	HandlerBuy     = "buy"
	HandlerSell    = "sell"
	HandlerFood    = "food"
	HandlerHeal    = "heal"
	HandlerCure    = "cure"
	HandlerRaise   = "raise"
	HandlerSleep   = "sleep"
	HandlerQuests  = "quests"
	HandlerAccept  = "accept"
	HandlerTurnIn  = "turnin"
	HandlerLeave   = "leave"
	HandlerStock   = "stock"
	HandlerAttack  = "attack"
	HandlerCast    = "cast"
	HandlerPass    = "pass"
	HandlerFlee    = "flee"
	HandlerSave    = "save"
	HandlerLoad    = "load"
	HandlerSlots   = "slots"
	HandlerDelete  = "delete"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage is the argument synopsis, without the name.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command for help output.
	Category string
	// Handler identifies the action a front end performs.
	Handler string
	// MinArgs and MaxArgs bound the argument count; MaxArgs < 0 means unbounded.
	MinArgs, MaxArgs int
}

// Synopsis returns "name usage".
func (c *Command) Synopsis() string {
	if c.Usage == "" {
		return c.Name
	}
	return c.Name + " " + c.Usage
}

func move(name, alias string) Command {
	return Command{Name: name, Aliases: []string{alias}, Help: "Walk " + name, Category: CategoryMovement, Handler: HandlerMove}
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "create", Usage: "<name> <race> <class> <str> <dex> <int> <wis>", Help: "Add a character to the new party", Category: CategoryParty, Handler: HandlerCreate, MinArgs: 7, MaxArgs: 7},
		{Name: "premade", Help: "Fill the party with ready-made adventurers", Category: CategoryParty, Handler: HandlerPremade},
		{Name: "start", Aliases: []string{"begin"}, Help: "Set out into the world", Category: CategoryParty, Handler: HandlerStart},

		move("north", "n"),
		move("south", "s"),
		move("east", "e"),
		move("west", "w"),
		move("northeast", "ne"),
		move("northwest", "nw"),
		move("southeast", "se"),
		move("southwest", "sw"),

		{Name: "open", Usage: "<direction>", Help: "Open or pick a locked door", Category: CategoryExplore, Handler: HandlerOpen, MinArgs: 1, MaxArgs: 1},
		{Name: "search", Aliases: []string{"look"}, Help: "Search for secret doors and chests", Category: CategoryExplore, Handler: HandlerSearch},
		{Name: "rest", Help: "Rest in town until healed", Category: CategoryExplore, Handler: HandlerRest},
		{Name: "shop", Aliases: []string{"enter"}, Help: "Step up to an adjacent counter", Category: CategoryExplore, Handler: HandlerShop},
		{Name: "exit", Aliases: []string{"climb"}, Help: "Leave the town or dungeon", Category: CategoryExplore, Handler: HandlerExit},

		{Name: "equip", Aliases: []string{"eq", "wield", "wear"}, Usage: "<member> <item>", Help: "Equip an inventory item on a member", Category: CategoryItems, Handler: HandlerEquip, MinArgs: 2, MaxArgs: 2},
		{Name: "unequip", Aliases: []string{"ueq", "remove"}, Usage: "<member> <weapon|armor|shield>", Help: "Return an equipped item to the inventory", Category: CategoryItems, Handler: HandlerUnequip, MinArgs: 2, MaxArgs: 2},
		{Name: "use", Aliases: []string{"drink"}, Usage: "<member> <item>", Help: "Use a consumable on a member", Category: CategoryItems, Handler: HandlerUse, MinArgs: 2, MaxArgs: 2},

		{Name: "buy", Usage: "<item>", Help: "Buy an item from the shop", Category: CategoryShop, Handler: HandlerBuy, MinArgs: 1, MaxArgs: 1},
		{Name: "sell", Usage: "<inventory index>", Help: "Sell an inventory item for half its price", Category: CategoryShop, Handler: HandlerSell, MinArgs: 1, MaxArgs: 1},
		{Name: "food", Help: "Buy rations at a tavern", Category: CategoryShop, Handler: HandlerFood},
		{Name: "heal", Usage: "<member>", Help: "Restore a member's health", Category: CategoryShop, Handler: HandlerHeal, MinArgs: 1, MaxArgs: 1},
		{Name: "cure", Usage: "<member>", Help: "Cure a member's poison", Category: CategoryShop, Handler: HandlerCure, MinArgs: 1, MaxArgs: 1},
		{Name: "raise", Aliases: []string{"resurrect"}, Usage: "<member>", Help: "Bring a fallen member back", Category: CategoryShop, Handler: HandlerRaise, MinArgs: 1, MaxArgs: 1},
		{Name: "sleep", Aliases: []string{"inn"}, Help: "Take rooms at the inn", Category: CategoryShop, Handler: HandlerSleep},
		{Name: "quests", Help: "List the guild's open quests", Category: CategoryShop, Handler: HandlerQuests},
		{Name: "accept", Usage: "<quest>", Help: "Accept a guild quest", Category: CategoryShop, Handler: HandlerAccept, MinArgs: 1, MaxArgs: 1},
		{Name: "turnin", Usage: "<quest>", Help: "Claim a finished quest's reward", Category: CategoryShop, Handler: HandlerTurnIn, MinArgs: 1, MaxArgs: 1},
		{Name: "leave", Help: "Step away from the counter", Category: CategoryShop, Handler: HandlerLeave},
		{Name: "stock", Aliases: []string{"list"}, Help: "Show what the shop sells", Category: CategoryShop, Handler: HandlerStock},

		{Name: "attack", Aliases: []string{"att", "kill"}, Usage: "<monster letter>", Help: "Attack a monster", Category: CategoryCombat, Handler: HandlerAttack, MinArgs: 1, MaxArgs: 1},
		{Name: "cast", Usage: "<spell> <x> <y>", Help: "Cast a spell at a grid cell", Category: CategoryCombat, Handler: HandlerCast, MinArgs: 3, MaxArgs: 3},
		{Name: "pass", Help: "End the current member's turn", Category: CategoryCombat, Handler: HandlerPass},
		{Name: "flee", Aliases: []string{"run"}, Help: "Try to break away", Category: CategoryCombat, Handler: HandlerFlee},

		{Name: "save", Usage: "[slot]", Help: "Save the game", Category: CategorySystem, Handler: HandlerSave, MaxArgs: 1},
		{Name: "load", Usage: "[slot]", Help: "Load a saved game", Category: CategorySystem, Handler: HandlerLoad, MaxArgs: 1},
		{Name: "slots", Help: "List saved games", Category: CategorySystem, Handler: HandlerSlots},
		{Name: "delete", Usage: "<slot>", Help: "Delete a saved game", Category: CategorySystem, Handler: HandlerDelete, MinArgs: 1, MaxArgs: 1},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp, MaxArgs: 1},
		{Name: "quit", Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}
