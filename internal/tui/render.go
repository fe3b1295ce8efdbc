package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/sosaria/internal/game/combat"
	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/gameserver"
)

// renderMap draws a w×h window of m centred on (px, py). Unexplored tiles
// are blank and the party is drawn as '@'.
func renderMap(m *world.GameMap, px, py, w, h int) string {
	var b strings.Builder
	x0, y0 := px-w/2, py-h/2
	for row := 0; row < h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < w; col++ {
			x, y := m.Wrap(x0+col, y0+row)
			if x == px && y == py {
				b.WriteString(styleParty.Render("@"))
				continue
			}
			t, ok := m.Tile(x, y)
			if !ok || !t.Explored {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(renderTerrain(t.Terrain, t.Visible))
		}
	}
	return b.String()
}

// renderCombat draws the encounter grid. Players are numbered 1-4 and
// monsters lettered a-z in Monsters() order.
func renderCombat(enc *combat.Encounter) string {
	labels := make(map[world.Point]string)
	current := enc.Current()
	for i, pc := range enc.Players() {
		style := styleParty
		switch {
		case !pc.IsAlive():
			style = styleDead
		case combat.Combatant(pc) == current:
			style = styleActive
		}
		labels[pc.Position()] = style.Render(fmt.Sprint(i + 1))
	}
	for i, mc := range enc.Monsters() {
		if !mc.IsAlive() {
			continue
		}
		labels[mc.Position()] = styleMonster.Render(string(rune('a' + i%26)))
	}

	var b strings.Builder
	for y := 0; y < combat.GridSize; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < combat.GridSize; x++ {
			if l, ok := labels[world.Point{X: x, Y: y}]; ok {
				b.WriteString(l)
			} else {
				b.WriteString(renderTerrain(enc.Cell(x, y), true))
			}
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// renderMonsters lists the encounter's monsters with their letters.
func renderMonsters(enc *combat.Encounter) string {
	var lines []string
	for i, mc := range enc.Monsters() {
		line := fmt.Sprintf("%c) %-14s %s", 'a'+i%26, mc.Name(), mc.Monster.HealthDescription())
		if !mc.IsAlive() {
			line = styleDead.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderParty lists every member with HP, MP and conditions.
func renderParty(p *party.Party) string {
	var lines []string
	for i, c := range p.Members() {
		line := fmt.Sprintf("%d %-8s L%-2d HP %3d/%-3d MP %2d/%-2d %s",
			i+1, c.Name, c.Level, c.CurrentHP(), c.MaxHP(), c.CurrentMP(), c.MaxMP(), c.Status)
		if c.IsDead() {
			line = styleDead.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return styleSystem.Render("(no adventurers yet)")
	}
	return strings.Join(lines, "\n")
}

// renderInventory lists the shared inventory with indices.
func renderInventory(p *party.Party) string {
	items := p.Inventory.Items()
	if len(items) == 0 {
		return styleSystem.Render("(inventory empty)")
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%2d %s", i, it.Name())
	}
	return strings.Join(lines, "\n")
}

// statusLine is the one-line summary shown under the map.
func statusLine(g *gameserver.Game) string {
	p := g.Party()
	where := "Sosaria"
	if m := g.CurrentMap(); m != nil {
		where = m.Name
	}
	moons := fmt.Sprintf("moons %d/%d", p.TrammelPhase, p.FeluccaPhase)
	return fmt.Sprintf(" %s (%d,%d) | day %d %s %s | %s | gold %d food %d | %s ",
		where, p.X, p.Y, p.DayCount+1, g.Clock(), g.Clock().Period(), moons,
		p.Gold(), p.Food(), g.State())
}

// renderStatusBar pads statusLine to the terminal width.
func renderStatusBar(g *gameserver.Game, width int) string {
	line := statusLine(g)
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return styleStatusBar.Render(line)
}
