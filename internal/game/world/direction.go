// Package world provides the tile map model and the seeded generators for
// the overworld, towns and dungeon levels.
package world

import "strings"

// Direction is a compass direction for movement and facing.
type Direction string

// Compass directions.
const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
)

// StandardDirections contains all eight compass directions.
var StandardDirections = []Direction{
	North, South, East, West,
	Northeast, Northwest, Southeast, Southwest,
}

// IsStandard reports whether d is one of the eight compass directions.
func (d Direction) IsStandard() bool {
	for _, sd := range StandardDirections {
		if d == sd {
			return true
		}
	}
	return false
}

// Opposite returns the opposite of a standard direction.
// For unknown directions, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Northeast:
		return Southwest
	case Southwest:
		return Northeast
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	default:
		return ""
	}
}

// Delta returns the (dx, dy) step for d. Y grows southwards.
// Unknown directions return (0, 0).
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	case Northeast:
		return 1, -1
	case Northwest:
		return -1, -1
	case Southeast:
		return 1, 1
	case Southwest:
		return -1, 1
	default:
		return 0, 0
	}
}

// ParseDirection accepts full names and the usual one or two letter
// abbreviations ("n", "se").
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, true
	case "s", "south":
		return South, true
	case "e", "east":
		return East, true
	case "w", "west":
		return West, true
	case "ne", "northeast":
		return Northeast, true
	case "nw", "northwest":
		return Northwest, true
	case "se", "southeast":
		return Southeast, true
	case "sw", "southwest":
		return Southwest, true
	}
	return "", false
}
