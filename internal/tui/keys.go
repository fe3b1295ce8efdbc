package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// keyMap holds every single-key binding.
type keyMap struct {
	North, South, East, West         key.Binding
	Northeast, Northwest             key.Binding
	Southeast, Southwest             key.Binding
	Search, Rest, Shop, Exit         key.Binding
	Inventory, Command, Help         key.Binding
	QuickSave, QuickLoad, Quit       key.Binding
	Attack, Pass, Flee, Leave        key.Binding
	Premade, Create, Load, ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		North:     key.NewBinding(key.WithKeys("up", "k", "8"), key.WithHelp("↑/k", "north")),
		South:     key.NewBinding(key.WithKeys("down", "j", "2"), key.WithHelp("↓/j", "south")),
		East:      key.NewBinding(key.WithKeys("right", "l", "6"), key.WithHelp("→/l", "east")),
		West:      key.NewBinding(key.WithKeys("left", "h", "4"), key.WithHelp("←/h", "west")),
		Northeast: key.NewBinding(key.WithKeys("u", "9")),
		Northwest: key.NewBinding(key.WithKeys("y", "7")),
		Southeast: key.NewBinding(key.WithKeys("n", "3")),
		Southwest: key.NewBinding(key.WithKeys("b", "1")),
		Search:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Rest:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rest")),
		Shop:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "shop")),
		Exit:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "leave area")),
		Inventory: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		Command:   key.NewBinding(key.WithKeys(":", "enter"), key.WithHelp(":", "command")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		QuickSave: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "save")),
		QuickLoad: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^o", "load")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Attack:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attack nearest")),
		Pass:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pass")),
		Flee:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flee")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave shop")),
		Premade:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "premade party")),
		Create:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create party")),
		Load:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// direction maps a movement key to its direction.
func (k keyMap) direction(msg string) (world.Direction, bool) {
	pairs := []struct {
		b key.Binding
		d world.Direction
	}{
		{k.North, world.North}, {k.South, world.South},
		{k.East, world.East}, {k.West, world.West},
		{k.Northeast, world.Northeast}, {k.Northwest, world.Northwest},
		{k.Southeast, world.Southeast}, {k.Southwest, world.Southwest},
	}
	for _, p := range pairs {
		for _, s := range p.b.Keys() {
			if s == msg {
				return p.d, true
			}
		}
	}
	return "", false
}

// exploreHelp is shown under the map while exploring.
func (k keyMap) exploreHelp() []key.Binding {
	return []key.Binding{k.North, k.South, k.East, k.West, k.Search, k.Rest, k.Shop, k.Exit, k.Inventory, k.Command, k.QuickSave, k.Quit}
}

func (k keyMap) combatHelp() []key.Binding {
	return []key.Binding{k.Attack, k.Pass, k.Flee, k.Command}
}

func (k keyMap) shopHelp() []key.Binding {
	return []key.Binding{k.Command, k.Leave}
}

func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Premade, k.Create, k.Load, k.Quit}
}

func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
