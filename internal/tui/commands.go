package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/sosaria/internal/game/character"
	"github.com/cory-johannsen/sosaria/internal/game/command"
	"github.com/cory-johannsen/sosaria/internal/game/save"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
)

// QuickSlot is the slot used by the quick save and load keys.
const QuickSlot = "quick"

// commands is the verb table the command line resolves against.
var commands = command.DefaultRegistry()

// runCommand executes one command line against the game and returns the
// lines to show. quit is true when the player asked to leave.
func (m *Model) runCommand(ctx context.Context, line string) (out []string, quit bool) {
	inv, err := commands.Lookup(line)
	switch {
	case inv.Verb == "" && err != nil:
		return nil, false
	case errors.Is(err, command.ErrUnknownCommand):
		return []string{fmt.Sprintf("Unknown command %q. Type help.", inv.Verb)}, false
	case err != nil:
		return []string{"! " + err.Error()}, false
	}
	g, args := m.game, inv.Args
	syn := inv.Command.Synopsis()

	shopLine := func(r gameserver.ShopResult) []string { return []string{r.Message} }
	errLine := func(err error) []string {
		if err != nil {
			return []string{"! " + err.Error()}
		}
		return nil
	}

	switch inv.Command.Handler {
	case command.HandlerHelp:
		if len(args) == 1 {
			return commands.HelpLines(strings.ToLower(args[0])), false
		}
		return commands.HelpLines(""), false
	case command.HandlerQuit:
		return []string{"Farewell."}, true

	case command.HandlerCreate:
		stats, err := ints(args[3:])
		if err != nil {
			return errLine(err), false
		}
		if g.State() != gameserver.StateCharacterCreation {
			if err := g.BeginCharacterCreation(); err != nil {
				return errLine(err), false
			}
		}
		alloc := character.Allocation{Strength: stats[0], Dexterity: stats[1], Intelligence: stats[2], Wisdom: stats[3]}
		if err := g.CreateCharacter(args[0], args[1], args[2], alloc); err != nil {
			return errLine(err), false
		}
		return []string{fmt.Sprintf("%s joins the party.", args[0])}, false
	case command.HandlerPremade:
		return errLine(g.CreatePremadeParty()), false
	case command.HandlerStart:
		return errLine(g.StartGame(ctx)), false

	case command.HandlerMove:
		dir, _ := world.ParseDirection(inv.Command.Name)
		return moveLine(g.MoveParty(dir)), false
	case command.HandlerOpen:
		dir, ok := world.ParseDirection(args[0])
		if !ok {
			return []string{"! unknown direction " + args[0]}, false
		}
		return moveLine(g.OpenDoor(dir)), false
	case command.HandlerSearch:
		return []string{g.Search().Message}, false
	case command.HandlerRest:
		if err := g.Rest(); err != nil {
			return []string{"You can only rest safely in town."}, false
		}
		return nil, false
	case command.HandlerShop:
		return shopLine(g.EnterShop()), false
	case command.HandlerExit:
		return moveLine(g.ExitLocation()), false

	case command.HandlerEquip, command.HandlerUse:
		n, err := ints(args)
		if err != nil {
			return usage(syn), false
		}
		if inv.Command.Handler == command.HandlerEquip {
			return errLine(g.Equip(n[0]-1, n[1])), false
		}
		return errLine(g.UseItem(n[0]-1, n[1])), false
	case command.HandlerUnequip:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usage(syn), false
		}
		return errLine(g.Unequip(n-1, character.Slot(strings.ToLower(args[1])))), false

	case command.HandlerBuy:
		return shopLine(g.Buy(args[0])), false
	case command.HandlerSell:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usage(syn), false
		}
		return shopLine(g.Sell(n)), false
	case command.HandlerFood:
		return shopLine(g.BuyFood()), false
	case command.HandlerHeal, command.HandlerCure, command.HandlerRaise:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usage(syn), false
		}
		switch inv.Command.Handler {
		case command.HandlerHeal:
			return shopLine(g.HealMember(n - 1)), false
		case command.HandlerCure:
			return shopLine(g.CurePoison(n - 1)), false
		}
		return shopLine(g.ResurrectMember(n - 1)), false
	case command.HandlerSleep:
		return shopLine(g.StayAtInn()), false
	case command.HandlerQuests:
		return m.questLines(), false
	case command.HandlerAccept:
		return shopLine(g.AcceptQuest(args[0])), false
	case command.HandlerTurnIn:
		return shopLine(g.TurnInQuest(args[0])), false
	case command.HandlerLeave:
		return shopLine(g.LeaveShop()), false
	case command.HandlerStock:
		return m.stockLines(), false

	case command.HandlerAttack:
		if len(args[0]) != 1 || args[0][0] < 'a' || args[0][0] > 'z' {
			return usage(syn), false
		}
		return []string{g.Attack(int(args[0][0] - 'a')).Message}, false
	case command.HandlerCast:
		xy, err := ints(args[1:])
		if err != nil {
			return usage(syn), false
		}
		return []string{g.Cast(args[0], xy[0], xy[1]).Message}, false
	case command.HandlerPass:
		return []string{g.Pass().Message}, false
	case command.HandlerFlee:
		return []string{g.Flee().Message}, false

	case command.HandlerSave:
		return m.saveGame(ctx, slotArg(args)), false
	case command.HandlerLoad:
		return m.loadGame(ctx, slotArg(args)), false
	case command.HandlerSlots:
		return m.slotLines(ctx), false
	case command.HandlerDelete:
		if m.store == nil {
			return []string{"! saving is disabled"}, false
		}
		if err := m.store.Delete(ctx, args[0]); err != nil {
			return errLine(err), false
		}
		return []string{fmt.Sprintf("Slot %q deleted.", args[0])}, false
	}
	return []string{fmt.Sprintf("Unknown command %q. Type help.", inv.Verb)}, false
}

func usage(synopsis string) []string {
	return []string{fmt.Sprintf("! %v: %s", command.ErrUsage, synopsis)}
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out[i] = n
	}
	return out, nil
}

func slotArg(args []string) string {
	if len(args) == 0 {
		return QuickSlot
	}
	return args[0]
}

func moveLine(r gameserver.MoveResult) []string {
	if r.Message == "" {
		return nil
	}
	return []string{r.Message}
}

func (m *Model) questLines() []string {
	qs := m.game.GuildQuests()
	if len(qs) == 0 {
		return []string{"No quests are on offer here."}
	}
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, fmt.Sprintf("%s: %s (%d gold)", q.ID, q.Description, q.Reward.Gold))
	}
	return out
}

func (m *Model) stockLines() []string {
	stock := m.game.ShopInventory()
	if len(stock) == 0 {
		return []string{"Nothing for sale."}
	}
	out := make([]string, 0, len(stock))
	for _, d := range stock {
		out = append(out, fmt.Sprintf("%-16s %-18s %4d gold", d.ID, d.Name, d.Price))
	}
	return out
}

func (m *Model) saveGame(ctx context.Context, slot string) []string {
	if m.store == nil {
		return []string{"! saving is disabled"}
	}
	if err := m.game.SaveTo(ctx, m.store, slot); err != nil {
		return []string{"! " + err.Error()}
	}
	return nil
}

func (m *Model) loadGame(ctx context.Context, slot string) []string {
	if m.store == nil {
		return []string{"! saving is disabled"}
	}
	if err := m.game.LoadFrom(ctx, m.store, slot); err != nil {
		if errors.Is(err, save.ErrSlotNotFound) {
			return []string{fmt.Sprintf("No game saved in %q.", slot)}
		}
		return []string{"! " + err.Error()}
	}
	return nil
}

func (m *Model) slotLines(ctx context.Context) []string {
	if m.store == nil {
		return []string{"! saving is disabled"}
	}
	slots, err := m.store.List(ctx)
	if err != nil {
		return []string{"! " + err.Error()}
	}
	if len(slots) == 0 {
		return []string{"No saved games."}
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, fmt.Sprintf("%-16s %s", s.Name, s.SavedAt.Local().Format("2006-01-02 15:04")))
	}
	return out
}
