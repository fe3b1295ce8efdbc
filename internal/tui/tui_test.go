package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/sosaria/internal/game/dice"
	"github.com/cory-johannsen/sosaria/internal/game/ruleset"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
	"github.com/cory-johannsen/sosaria/internal/storage/sqlite"
)

func newModel(t *testing.T) Model {
	t.Helper()
	g := gameserver.NewGame(gameserver.Deps{
		Rules:        ruleset.MustDefault(),
		Roller:       dice.NewLoggedRoller(dice.NewFixedSource(99), nil),
		Logger:       zaptest.NewLogger(t),
		Seed:         4242,
		StartingGold: 100,
		StartingFood: 200,
	})
	return New(context.Background(), g, nil, zaptest.NewLogger(t))
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRunCommand_PremadeAndStart(t *testing.T) {
	m := newModel(t)
	out, quit := m.runCommand(context.Background(), "premade")
	assert.False(t, quit)
	assert.Empty(t, out)
	assert.Equal(t, gameserver.StateCharacterCreation, m.game.State())
	assert.Equal(t, len(gameserver.PremadeParty), m.game.Party().Size())

	_, _ = m.runCommand(context.Background(), "start")
	assert.Equal(t, gameserver.StateOverworld, m.game.State())
}

func TestRunCommand_Create(t *testing.T) {
	m := newModel(t)
	out, _ := m.runCommand(context.Background(), "create Ann human paladin 16 12 8 14")
	require.Len(t, out, 1)
	assert.Equal(t, "Ann joins the party.", out[0])
	assert.Equal(t, 1, m.game.Party().Size())

	out, _ = m.runCommand(context.Background(), "create Bob goblin paladin 16 12 8 14")
	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0], "! "), out[0])
	assert.Equal(t, 1, m.game.Party().Size())
}

func TestRunCommand_Usage(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"create Ann human", "! usage: create"},
		{"equip 1", "! usage: equip"},
		{"heal x", "! usage: heal"},
		{"cast fireball 1", "! usage: cast"},
		{"attack 12", "! usage: attack"},
		{"open sideways", "! unknown direction"},
		{"dance", "Unknown command \"dance\""},
	}
	m := newModel(t)
	for _, tt := range tests {
		out, quit := m.runCommand(context.Background(), tt.line)
		require.NotEmpty(t, out, tt.line)
		assert.False(t, quit)
		assert.True(t, strings.HasPrefix(out[0], tt.want), "%q gave %q", tt.line, out[0])
	}
}

func TestRunCommand_Quit(t *testing.T) {
	m := newModel(t)
	_, quit := m.runCommand(context.Background(), "QUIT")
	assert.True(t, quit)
}

func TestRunCommand_SavingDisabled(t *testing.T) {
	m := newModel(t)
	for _, line := range []string{"save", "load", "slots", "delete quick"} {
		out, _ := m.runCommand(context.Background(), line)
		assert.Equal(t, []string{"! saving is disabled"}, out, line)
	}
}

func TestRunCommand_SaveAndLoad(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "saves.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := newModel(t)
	m.store = store
	ctx := context.Background()

	out, _ := m.runCommand(ctx, "load")
	assert.Equal(t, []string{`No game saved in "quick".`}, out)

	_, _ = m.runCommand(ctx, "premade")
	_, _ = m.runCommand(ctx, "start")
	m.game.Party().AddGold(7)
	out, _ = m.runCommand(ctx, "save")
	assert.Empty(t, out)

	out, _ = m.runCommand(ctx, "slots")
	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0], "quick"))

	m.game.Party().AddGold(100)
	out, _ = m.runCommand(ctx, "load")
	assert.Empty(t, out)
	assert.Equal(t, 107, m.game.Party().Gold())

	out, _ = m.runCommand(ctx, "delete quick")
	assert.Equal(t, []string{`Slot "quick" deleted.`}, out)
	out, _ = m.runCommand(ctx, "slots")
	assert.Equal(t, []string{"No saved games."}, out)
}

func TestKeyMap_Direction(t *testing.T) {
	k := defaultKeyMap()
	tests := []struct {
		key  string
		want world.Direction
	}{
		{"up", world.North}, {"k", world.North}, {"8", world.North},
		{"j", world.South}, {"l", world.East}, {"h", world.West},
		{"u", world.Northeast}, {"y", world.Northwest},
		{"n", world.Southeast}, {"b", world.Southwest},
	}
	for _, tt := range tests {
		got, ok := k.direction(tt.key)
		assert.True(t, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
	_, ok := k.direction("s")
	assert.False(t, ok)
}

func TestRenderMap_PartyAtCentre(t *testing.T) {
	m := newModel(t)
	_, _ = m.runCommand(context.Background(), "premade")
	_, _ = m.runCommand(context.Background(), "start")
	p := m.game.Party()

	out := renderMap(m.game.CurrentMap(), p.X, p.Y, 9, 5)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "@")
	assert.Equal(t, 1, strings.Count(out, "@"))
}

func TestStatusLine(t *testing.T) {
	m := newModel(t)
	_, _ = m.runCommand(context.Background(), "premade")
	_, _ = m.runCommand(context.Background(), "start")
	line := statusLine(m.game)
	p := m.game.Party()
	assert.Contains(t, line, fmt.Sprintf("(%d,%d)", p.X, p.Y))
	assert.Contains(t, line, "gold 100 food 200")
	assert.Contains(t, line, gameserver.StateOverworld.String())
}

func TestMessageLog(t *testing.T) {
	l := &messageLog{}
	l.add(kindMessage, "")
	assert.Empty(t, l.lines)

	l.add(kindMessage, "! broken")
	assert.Equal(t, kindError, l.lines[0].kind)

	for i := 0; i < maxLogSize+20; i++ {
		l.add(kindCombat, fmt.Sprintf("line %d", i))
	}
	assert.Len(t, l.lines, maxLogSize)
	assert.Equal(t, fmt.Sprintf("line %d", maxLogSize+19), l.lines[len(l.lines)-1].text)
}

func TestUpdate_MainMenuKeys(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.True(t, m.ready)
	assert.Contains(t, m.View(), "S O S A R I A")

	next, _ = m.Update(runeKey('p'))
	m = next.(Model)
	assert.Equal(t, gameserver.StateOverworld, m.game.State())
	assert.Contains(t, m.View(), "@")

	next, _ = m.Update(runeKey('i'))
	m = next.(Model)
	assert.True(t, m.showInventory)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_CommandLine(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	next, _ = m.Update(runeKey('c'))
	m = next.(Model)
	require.Equal(t, gameserver.StateCharacterCreation, m.game.State())
	assert.Equal(t, "create ", m.input.Value())

	for _, r := range "Ann human paladin 16 12 8 14" {
		next, _ = m.Update(runeKey(r))
		m = next.(Model)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, 1, m.game.Party().Size())
	assert.Equal(t, "", m.input.Value())
	assert.True(t, m.input.Focused())
}

func TestRunCommand_AliasesAndHelp(t *testing.T) {
	m := newModel(t)
	_, _ = m.runCommand(context.Background(), "premade")
	_, _ = m.runCommand(context.Background(), "begin")
	require.Equal(t, gameserver.StateOverworld, m.game.State())

	out, _ := m.runCommand(context.Background(), "help combat")
	require.Len(t, out, 4)
	assert.Contains(t, out[0], "attack")

	out, _ = m.runCommand(context.Background(), "kill a")
	assert.Equal(t, []string{"You are not in combat."}, out)

	out, _ = m.runCommand(context.Background(), "kill 12")
	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0], "! usage: attack"), out[0])
}
