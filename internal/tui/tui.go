// Package tui is the terminal front end: a Bubble Tea program that draws
// the map, party and message log and turns key presses into orchestrator
// calls.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/combat"
	"github.com/cory-johannsen/sosaria/internal/game/save"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
)

// Layout.
const (
	mapWidth   = 41
	mapHeight  = 17
	maxLogSize = 500
)

// lineKind identifies the type of a log line for styling.
type lineKind int

const (
	kindMessage lineKind = iota
	kindCombat
	kindSystem
	kindError
)

type logLine struct {
	text string
	kind lineKind
}

// messageLog is shared between the model copies Bubble Tea passes around
// and the game listener that feeds it.
type messageLog struct {
	lines []logLine
}

func (l *messageLog) add(kind lineKind, text string) {
	if text == "" {
		return
	}
	if strings.HasPrefix(text, "! ") {
		kind = kindError
	}
	l.lines = append(l.lines, logLine{text: text, kind: kind})
	if n := len(l.lines); n > maxLogSize {
		l.lines = l.lines[n-maxLogSize:]
	}
}

// Model is the Bubble Tea model for the game.
type Model struct {
	ctx    context.Context
	game   *gameserver.Game
	store  save.Store
	logger *zap.Logger

	log      *messageLog
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	input    textinput.Model

	width, height int
	ready         bool
	typing        bool
	showInventory bool
	quitting      bool
}

// New creates a model driving game. store may be nil to disable saving.
//
// Precondition: game must be non-nil.
func New(ctx context.Context, game *gameserver.Game, store save.Store, logger *zap.Logger) Model {
	if game == nil {
		panic("tui: New precondition violated: nil game")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = ": "
	ti.CharLimit = 128
	ti.PromptStyle = styleInputPrompt

	log := &messageLog{}
	game.SetListener(gameserver.Listener{
		OnMessage:       func(msg string) { log.add(kindMessage, msg) },
		OnCombatMessage: func(msg string) { log.add(kindCombat, msg) },
		OnCombatEnded: func(s combat.State) {
			log.add(kindSystem, fmt.Sprintf("[combat over: %s]", s))
		},
	})

	m := Model{
		ctx:    ctx,
		game:   game,
		store:  store,
		logger: logger,
		log:    log,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  ti,
	}
	log.add(kindSystem, "Welcome to Sosaria. Press p for a ready-made party, c to create your own, l to load.")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := max(m.height-mapHeight-6, 3)
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.help.Width = m.width
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.typing || m.game.State() == gameserver.StateCharacterCreation {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		next, cmd := m.handleKey(msg)
		next.refreshViewport()
		return next, cmd
	}
	return m, nil
}

// updateInput routes keys to the command line.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.typing = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if m.game.State() != gameserver.StateCharacterCreation {
			m.typing = false
			m.input.Blur()
		}
		if line == "" {
			return m, nil
		}
		m.log.add(kindSystem, "> "+line)
		out, quit := m.runCommand(m.ctx, line)
		for _, l := range out {
			m.log.add(kindMessage, l)
		}
		if m.game.State() == gameserver.StateCharacterCreation {
			m.input.Focus()
		}
		m.refreshViewport()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	if !m.input.Focused() {
		m.input.Focus()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openCommandLine(prefill string) (Model, tea.Cmd) {
	m.typing = true
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

// handleKey applies a single-key command for the current state.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	g := m.game
	k := m.keys
	if key.Matches(msg, k.Help) {
		for _, l := range commands.HelpLines("") {
			m.log.add(kindSystem, l)
		}
		return m, nil
	}

	switch g.State() {
	case gameserver.StateMainMenu, gameserver.StateGameOver:
		switch {
		case key.Matches(msg, k.Premade):
			if err := g.CreatePremadeParty(); err != nil {
				m.log.add(kindError, "! "+err.Error())
				return m, nil
			}
			if err := g.StartGame(m.ctx); err != nil {
				m.log.add(kindError, "! "+err.Error())
			}
		case key.Matches(msg, k.Create):
			if err := g.BeginCharacterCreation(); err != nil {
				m.log.add(kindError, "! "+err.Error())
				return m, nil
			}
			m.log.add(kindSystem, "Type: create <name> <race> <class> <str> <dex> <int> <wis>, then start.")
			return m.openCommandLine("create ")
		case key.Matches(msg, k.Load):
			for _, l := range m.loadGame(m.ctx, QuickSlot) {
				m.log.add(kindMessage, l)
			}
		case key.Matches(msg, k.Quit):
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case gameserver.StateCombat:
		switch {
		case key.Matches(msg, k.Attack):
			m.log.add(kindCombat, m.attackNearest())
		case key.Matches(msg, k.Pass):
			m.log.add(kindCombat, g.Pass().Message)
		case key.Matches(msg, k.Flee):
			m.log.add(kindCombat, g.Flee().Message)
		case key.Matches(msg, k.Command):
			return m.openCommandLine("")
		}
		return m, nil

	case gameserver.StateShop:
		switch {
		case key.Matches(msg, k.Leave):
			m.log.add(kindMessage, g.LeaveShop().Message)
		case key.Matches(msg, k.Command):
			return m.openCommandLine("")
		}
		return m, nil
	}

	if dir, ok := k.direction(msg.String()); ok {
		if res := g.MoveParty(dir); !res.OK {
			m.log.add(kindSystem, res.Message)
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Search):
		m.log.add(kindMessage, g.Search().Message)
	case key.Matches(msg, k.Rest):
		if err := g.Rest(); err != nil {
			m.log.add(kindSystem, "You can only rest safely in town.")
		}
	case key.Matches(msg, k.Shop):
		res := g.EnterShop()
		if !res.OK {
			m.log.add(kindSystem, res.Message)
		}
	case key.Matches(msg, k.Exit):
		if res := g.ExitLocation(); !res.OK {
			m.log.add(kindSystem, res.Message)
		}
	case key.Matches(msg, k.Inventory):
		m.showInventory = !m.showInventory
	case key.Matches(msg, k.QuickSave):
		for _, l := range m.saveGame(m.ctx, QuickSlot) {
			m.log.add(kindMessage, l)
		}
	case key.Matches(msg, k.QuickLoad):
		for _, l := range m.loadGame(m.ctx, QuickSlot) {
			m.log.add(kindMessage, l)
		}
	case key.Matches(msg, k.Command):
		return m.openCommandLine("")
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// attackNearest attacks the closest living monster.
func (m Model) attackNearest() string {
	enc := m.game.Encounter()
	if enc == nil || enc.CurrentPlayer() == nil {
		return "It is not your turn."
	}
	from := enc.CurrentPlayer().Position()
	best, bestDist := -1, 0
	for i, mc := range enc.Monsters() {
		if !mc.IsAlive() {
			continue
		}
		if d := combat.Distance(from, mc.Position()); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return "There is nothing left to fight."
	}
	return m.game.Attack(best).Message
}

// refreshViewport re-styles the log at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	styled := make([]string, 0, len(m.log.lines))
	for _, l := range m.log.lines {
		text := lipgloss.NewStyle().Width(max(m.width, 10)).Render(l.text)
		switch l.kind {
		case kindCombat:
			styled = append(styled, styleCombat.Render(text))
		case kindSystem:
			styled = append(styled, styleSystem.Render(text))
		case kindError:
			styled = append(styled, styleError.Render(text))
		default:
			styled = append(styled, styleMessage.Render(text))
		}
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	g := m.game

	var top string
	switch g.State() {
	case gameserver.StateMainMenu:
		top = stylePanel.Render(styleTitle.Render("S O S A R I A") + "\n\n" +
			"p  ready-made party\nc  create your own\nl  load quick save\nq  quit")
	case gameserver.StateCharacterCreation:
		top = lipgloss.JoinHorizontal(lipgloss.Top,
			stylePanel.Render(styleTitle.Render("Your party")+"\n"+renderParty(g.Party())),
			stylePanel.Render(m.creationHelp()))
	default:
		top = lipgloss.JoinHorizontal(lipgloss.Top, m.leftPanel(), m.rightPanel())
	}

	bottom := m.help.ShortHelpView(m.helpKeys())
	if m.typing || g.State() == gameserver.StateCharacterCreation {
		bottom = m.input.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		m.viewport.View(),
		renderStatusBar(g, m.width),
		bottom,
	)
}

func (m Model) leftPanel() string {
	g := m.game
	if enc := g.Encounter(); enc != nil {
		return stylePanel.Render(renderCombat(enc))
	}
	if cm := g.CurrentMap(); cm != nil {
		return stylePanel.Render(renderMap(cm, g.Party().X, g.Party().Y, mapWidth, mapHeight))
	}
	return stylePanel.Render(styleTitle.Render(g.State().String()))
}

func (m Model) rightPanel() string {
	g := m.game
	sections := []string{styleTitle.Render("Party"), renderParty(g.Party())}
	switch {
	case g.Encounter() != nil:
		sections = append(sections, "", styleTitle.Render("Foes"), renderMonsters(g.Encounter()))
	case g.CurrentShop() != nil:
		shop := g.CurrentShop()
		sections = append(sections, "", styleTitle.Render(shop.Name))
		sections = append(sections, m.stockLines()...)
		sections = append(sections, "", styleTitle.Render("Inventory"), renderInventory(g.Party()))
	case m.showInventory:
		sections = append(sections, "", styleTitle.Render("Inventory"), renderInventory(g.Party()))
	}
	return stylePanel.Render(strings.Join(sections, "\n"))
}

func (m Model) creationHelp() string {
	var races, classes []string
	for _, r := range m.game.Rules().Races() {
		races = append(races, r.ID)
	}
	for _, c := range m.game.Rules().Classes() {
		classes = append(classes, c.ID)
	}
	return strings.Join([]string{
		styleTitle.Render("Create a character"),
		"create <name> <race> <class> <str> <dex> <int> <wis>",
		"races:   " + strings.Join(races, ", "),
		"classes: " + strings.Join(classes, ", "),
		"type start when the party is ready, premade for a ready-made one",
	}, "\n")
}

func (m Model) helpKeys() []key.Binding {
	switch m.game.State() {
	case gameserver.StateMainMenu, gameserver.StateGameOver:
		return m.keys.menuHelp()
	case gameserver.StateCombat:
		return m.keys.combatHelp()
	case gameserver.StateShop:
		return m.keys.shopHelp()
	}
	return m.keys.exploreHelp()
}

// Run starts the program and blocks until the player quits or ctx ends.
func Run(ctx context.Context, game *gameserver.Game, store save.Store, logger *zap.Logger) error {
	p := tea.NewProgram(New(ctx, game, store, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
