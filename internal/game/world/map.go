package world

import (
	"fmt"
	"sort"
)

// Kind classifies a map.
type Kind string

const (
	KindOverworld Kind = "overworld"
	KindTown      Kind = "town"
	KindDungeon   Kind = "dungeon"
)

// Location is a portal on one map leading to an entry point on another.
type Location struct {
	X, Y        int
	TargetMapID string
	EntryPoint  string
}

// Point is a tile coordinate.
type Point struct{ X, Y int }

// TileDelta records a terrain change made after generation.
type TileDelta struct {
	MapID   string  `json:"map_id"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Terrain Terrain `json:"terrain"`
}

// GameMap is a fixed-size grid of tiles plus its portals and entry points.
type GameMap struct {
	ID           string
	Name         string
	Kind         Kind
	DungeonLevel int
	Width        int
	Height       int
	Wraps        bool
	Locations    []Location

	tiles   []Tile
	entries map[string]Point
	sealed  bool
	deltas  map[Point]Terrain
}

// NewGameMap returns a map filled with fill.
//
// Precondition: width > 0 and height > 0.
func NewGameMap(id, name string, kind Kind, width, height int, fill Terrain) *GameMap {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: NewGameMap precondition violated: size %dx%d", width, height))
	}
	m := &GameMap{
		ID: id, Name: name, Kind: kind,
		Width: width, Height: height,
		tiles:   make([]Tile, width*height),
		entries: make(map[string]Point),
		deltas:  make(map[Point]Terrain),
	}
	for i := range m.tiles {
		m.tiles[i].Terrain = fill
	}
	return m
}

// InBounds reports whether (x, y) lies on the map.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// Wrap folds (x, y) onto the map for wrapping maps; other maps return it unchanged.
func (m *GameMap) Wrap(x, y int) (int, int) {
	if !m.Wraps {
		return x, y
	}
	return ((x % m.Width) + m.Width) % m.Width, ((y % m.Height) + m.Height) % m.Height
}

// Tile returns a copy of the tile at (x, y).
//
// Postcondition: ok is false for out-of-bounds coordinates.
func (m *GameMap) Tile(x, y int) (Tile, bool) {
	if !m.InBounds(x, y) {
		return Tile{}, false
	}
	return m.tiles[y*m.Width+x], true
}

// Terrain returns the terrain at (x, y), or Wall when out of bounds.
func (m *GameMap) Terrain(x, y int) Terrain {
	t, ok := m.Tile(x, y)
	if !ok {
		return Wall
	}
	return t.Terrain
}

// SetTile overwrites the tile at (x, y). Once the map is sealed, terrain
// changes are recorded as deltas.
//
// Postcondition: returns false and changes nothing when out of bounds.
func (m *GameMap) SetTile(x, y int, t Tile) bool {
	if !m.InBounds(x, y) {
		return false
	}
	i := y*m.Width + x
	if m.sealed && m.tiles[i].Terrain != t.Terrain {
		m.deltas[Point{x, y}] = t.Terrain
	}
	m.tiles[i] = t
	return true
}

// SetTerrain changes only the terrain at (x, y), keeping visibility and entity id.
func (m *GameMap) SetTerrain(x, y int, terrain Terrain) bool {
	t, ok := m.Tile(x, y)
	if !ok {
		return false
	}
	t.Terrain = terrain
	return m.SetTile(x, y, t)
}

// Seal marks the end of generation; subsequent terrain changes are tracked.
func (m *GameMap) Seal() { m.sealed = true }

// Deltas returns the recorded terrain changes ordered by position.
func (m *GameMap) Deltas() []TileDelta {
	out := make([]TileDelta, 0, len(m.deltas))
	for p, terr := range m.deltas {
		out = append(out, TileDelta{MapID: m.ID, X: p.X, Y: p.Y, Terrain: terr})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// SetEntryPoint registers a named arrival point.
func (m *GameMap) SetEntryPoint(name string, x, y int) {
	m.entries[name] = Point{x, y}
}

// EntryPoint looks up a named arrival point.
func (m *GameMap) EntryPoint(name string) (Point, bool) {
	p, ok := m.entries[name]
	return p, ok
}

// Arrival resolves where a party entering through name should stand: the
// named entry point, else "default", else the map centre.
func (m *GameMap) Arrival(name string) Point {
	if p, ok := m.entries[name]; ok {
		return p
	}
	if p, ok := m.entries["default"]; ok {
		return p
	}
	return Point{m.Width / 2, m.Height / 2}
}

// LocationAt returns the portal at (x, y), if any.
func (m *GameMap) LocationAt(x, y int) (Location, bool) {
	for _, l := range m.Locations {
		if l.X == x && l.Y == y {
			return l, true
		}
	}
	return Location{}, false
}

// LocationFor returns the portal on this map that targets mapID.
func (m *GameMap) LocationFor(mapID string) (Location, bool) {
	for _, l := range m.Locations {
		if l.TargetMapID == mapID {
			return l, true
		}
	}
	return Location{}, false
}

// Count returns how many tiles hold terrain.
func (m *GameMap) Count(terrain Terrain) int {
	n := 0
	for _, t := range m.tiles {
		if t.Terrain == terrain {
			n++
		}
	}
	return n
}

// Find returns every coordinate holding terrain, in row-major order.
func (m *GameMap) Find(terrain Terrain) []Point {
	var out []Point
	for i, t := range m.tiles {
		if t.Terrain == terrain {
			out = append(out, Point{i % m.Width, i / m.Width})
		}
	}
	return out
}
