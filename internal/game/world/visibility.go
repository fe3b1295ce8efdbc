package world

// Visibility radii.
const (
	SightDay     = 5
	SightNight   = 3
	SightDungeon = 2
)

// Reveal clears all visibility on m and then marks every tile within
// Chebyshev radius of (x, y) as visible and explored. Wrapping maps fold
// coordinates across the edges.
func (m *GameMap) Reveal(x, y, radius int) {
	for i := range m.tiles {
		m.tiles[i].Visible = false
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			tx, ty := m.Wrap(x+dx, y+dy)
			if !m.InBounds(tx, ty) {
				continue
			}
			t := &m.tiles[ty*m.Width+tx]
			t.Visible = true
			t.Explored = true
		}
	}
}

// SightRadius returns the visibility radius for a map kind at the given time of day.
func SightRadius(kind Kind, night bool) int {
	switch {
	case kind == KindDungeon:
		return SightDungeon
	case night:
		return SightNight
	default:
		return SightDay
	}
}
