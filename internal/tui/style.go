package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleMessage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleParty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("21")).
			Bold(true)

	styleMonster = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleActive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	styleDead = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	styleFog = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// glyph is how one terrain is drawn.
type glyph struct {
	r     rune
	color string
}

var terrainGlyphs = map[world.Terrain]glyph{
	world.DeepWater:   {'≈', "19"},
	world.Water:       {'~', "33"},
	world.Grass:       {'.', "34"},
	world.Forest:      {'♣', "28"},
	world.Desert:      {':', "223"},
	world.Hills:       {'∩', "136"},
	world.Mountain:    {'▲', "250"},
	world.Swamp:       {'%', "65"},
	world.Lava:        {'≈', "202"},
	world.Wall:        {'#', "245"},
	world.Floor:       {'.', "244"},
	world.Door:        {'+', "130"},
	world.LockedDoor:  {'+', "160"},
	world.SecretDoor:  {'#', "245"},
	world.Counter:     {'=', "180"},
	world.StairsUp:    {'<', "255"},
	world.StairsDown:  {'>', "255"},
	world.Chest:       {'$', "220"},
	world.Fountain:    {'♠', "45"},
	world.Trap:        {'.', "244"},
	world.Path:        {'·', "180"},
	world.TownSite:    {'T', "226"},
	world.DungeonSite: {'D', "196"},
}

func glyphFor(t world.Terrain) glyph {
	if g, ok := terrainGlyphs[t]; ok {
		return g
	}
	return glyph{'?', "201"}
}

// renderTerrain draws one tile. Remembered tiles out of sight are dimmed.
func renderTerrain(t world.Terrain, visible bool) string {
	g := glyphFor(t)
	if !visible {
		return styleFog.Render(string(g.r))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(g.color)).Render(string(g.r))
}
