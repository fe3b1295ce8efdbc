package world

import "math/rand"

// Room placement parameters.
const (
	targetRooms   = 8
	roomAttempts  = 24
	roomMinSize   = 3
	roomMaxSize   = 5
	lavaFromLevel = 5
	trapFromLevel = 4
)

// Room is an axis-aligned rectangle of floor.
type Room struct{ X, Y, W, H int }

// Center returns the room's centre tile.
func (r Room) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// overlaps reports whether r and o intersect once r is grown by buffer tiles.
func (r Room) overlaps(o Room, buffer int) bool {
	return r.X-buffer < o.X+o.W && r.X+r.W+buffer > o.X &&
		r.Y-buffer < o.Y+o.H && r.Y+r.H+buffer > o.Y
}

// GenerateDungeonLevel builds one level of a dungeon.
//
// Precondition: 1 <= level <= DungeonDepth.
// Postcondition: exactly one StairsUp; exactly one StairsDown unless level is
// the deepest.
func GenerateDungeonLevel(seed int64, id, name string, level int) *GameMap {
	rng := rand.New(rand.NewSource(seed))
	w, h := DungeonWidth, DungeonHeight
	m := NewGameMap(id, name, KindDungeon, w, h, Wall)
	m.DungeonLevel = level

	rooms := placeRooms(rng, w, h)
	for _, r := range rooms {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				m.SetTile(x, y, Tile{Terrain: Floor})
			}
		}
	}
	for i := 1; i < len(rooms); i++ {
		carveCorridor(m, rooms[i-1].Center(), rooms[i].Center())
	}

	first, last := rooms[0].Center(), rooms[len(rooms)-1].Center()
	m.SetTile(first.X, first.Y, Tile{Terrain: StairsUp})
	m.SetEntryPoint("default", first.X, first.Y)
	m.SetEntryPoint("stairs_up", first.X, first.Y)
	if level < DungeonDepth {
		m.SetTile(last.X, last.Y, Tile{Terrain: StairsDown})
		m.SetEntryPoint("stairs_down", last.X, last.Y)
	}

	for _, r := range rooms[1 : len(rooms)-1] {
		decorateRoom(m, rng, r, level)
	}

	if level >= lavaFromLevel {
		floors := m.Find(Floor)
		for i := 0; i < level-4 && len(floors) > 0; i++ {
			j := rng.Intn(len(floors))
			p := floors[j]
			m.SetTile(p.X, p.Y, Tile{Terrain: Lava})
			floors = append(floors[:j], floors[j+1:]...)
		}
	}

	m.Seal()
	return m
}

// placeRooms rejection-samples rooms; fewer than two placements fall back to
// a fixed pair so the level always has both stairs.
func placeRooms(rng *rand.Rand, w, h int) []Room {
	var rooms []Room
	for attempt := 0; attempt < roomAttempts && len(rooms) < targetRooms; attempt++ {
		rw := roomMinSize + rng.Intn(roomMaxSize-roomMinSize+1)
		rh := roomMinSize + rng.Intn(roomMaxSize-roomMinSize+1)
		r := Room{
			X: 1 + rng.Intn(w-rw-2),
			Y: 1 + rng.Intn(h-rh-2),
			W: rw, H: rh,
		}
		fits := true
		for _, o := range rooms {
			if r.overlaps(o, 1) {
				fits = false
				break
			}
		}
		if fits {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) < 2 {
		rooms = []Room{{X: 2, Y: 2, W: 4, H: 4}, {X: w - 7, Y: h - 7, W: 4, H: 4}}
	}
	return rooms
}

// carveCorridor digs an L from a to b: horizontal along a's row, then
// vertical along b's column. Only walls are replaced.
func carveCorridor(m *GameMap, a, b Point) {
	step := func(from, to int) int {
		if to < from {
			return -1
		}
		return 1
	}
	for x := a.X; x != b.X; x += step(a.X, b.X) {
		if m.Terrain(x, a.Y) == Wall {
			m.SetTile(x, a.Y, Tile{Terrain: Floor})
		}
	}
	for y := a.Y; ; y += step(a.Y, b.Y) {
		if m.Terrain(b.X, y) == Wall {
			m.SetTile(b.X, y, Tile{Terrain: Floor})
		}
		if y == b.Y {
			break
		}
	}
}

// decorateRoom rolls a single feature for an interior room.
func decorateRoom(m *GameMap, rng *rand.Rand, r Room, level int) {
	roll := rng.Intn(100)
	switch {
	case roll < 15:
		x, y := r.X+rng.Intn(r.W), r.Y+rng.Intn(r.H)
		if m.Terrain(x, y) == Floor {
			m.SetTile(x, y, Tile{Terrain: Chest})
		}
	case roll < 25:
		c := r.Center()
		if m.Terrain(c.X, c.Y) == Floor {
			m.SetTile(c.X, c.Y, Tile{Terrain: Fountain})
		}
	case roll < 35:
		if level < trapFromLevel {
			return
		}
		x, y := r.X+rng.Intn(r.W), r.Y+rng.Intn(r.H)
		if m.Terrain(x, y) == Floor {
			m.SetTile(x, y, Tile{Terrain: Trap})
		}
	case roll < 40:
		var walls []Point
		for x := r.X; x < r.X+r.W; x++ {
			walls = appendWall(m, walls, x, r.Y-1)
			walls = appendWall(m, walls, x, r.Y+r.H)
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			walls = appendWall(m, walls, r.X-1, y)
			walls = appendWall(m, walls, r.X+r.W, y)
		}
		if len(walls) > 0 {
			p := walls[rng.Intn(len(walls))]
			m.SetTile(p.X, p.Y, Tile{Terrain: SecretDoor})
		}
	}
}

// appendWall keeps only interior wall tiles so a secret door never opens off-map.
func appendWall(m *GameMap, walls []Point, x, y int) []Point {
	if x <= 0 || y <= 0 || x >= m.Width-1 || y >= m.Height-1 {
		return walls
	}
	if m.Terrain(x, y) != Wall {
		return walls
	}
	return append(walls, Point{x, y})
}
