package combat

import "github.com/cory-johannsen/sosaria/internal/game/world"

// MoveTo repositions c and clears any obstacle under it.
func (e *Encounter) MoveTo(c Combatant, p world.Point) {
	delete(e.obstacles, p)
	c.setPosition(p)
}

// PlaceObstacle puts terrain t on cell p.
func (e *Encounter) PlaceObstacle(p world.Point, t world.Terrain) {
	e.obstacles[p] = t
}
