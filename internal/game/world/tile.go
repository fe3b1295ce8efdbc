package world

// Terrain is the kind of ground a tile holds.
type Terrain uint8

const (
	DeepWater Terrain = iota
	Water
	Grass
	Forest
	Desert
	Hills
	Mountain
	Swamp
	Lava
	Wall
	Floor
	Door
	LockedDoor
	SecretDoor
	Counter
	StairsUp
	StairsDown
	Chest
	Fountain
	Trap
	Path
	TownSite
	DungeonSite
)

var terrainNames = [...]string{
	DeepWater:   "deep water",
	Water:       "water",
	Grass:       "grass",
	Forest:      "forest",
	Desert:      "desert",
	Hills:       "hills",
	Mountain:    "mountain",
	Swamp:       "swamp",
	Lava:        "lava",
	Wall:        "wall",
	Floor:       "floor",
	Door:        "door",
	LockedDoor:  "locked door",
	SecretDoor:  "wall",
	Counter:     "counter",
	StairsUp:    "stairs up",
	StairsDown:  "stairs down",
	Chest:       "chest",
	Fountain:    "fountain",
	Trap:        "floor",
	Path:        "path",
	TownSite:    "town",
	DungeonSite: "dungeon entrance",
}

// String returns the player-facing name. Secret doors and traps present
// themselves as what they hide behind.
func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "unknown"
}

// Walkable reports whether a party on foot may enter the tile. Water is not
// walkable; ships are handled by the caller.
func (t Terrain) Walkable() bool {
	switch t {
	case DeepWater, Water, Mountain, Wall, LockedDoor, SecretDoor, Counter:
		return false
	}
	return true
}

// IsWater reports whether the tile is water of any depth.
func (t Terrain) IsWater() bool { return t == DeepWater || t == Water }

// IsDoor reports whether the tile is an open or locked door.
func (t Terrain) IsDoor() bool { return t == Door || t == LockedDoor }

// Tile is one cell of a map. Tiles are values: reading one yields a copy and
// writes go through GameMap.SetTile.
type Tile struct {
	Terrain  Terrain
	Explored bool
	Visible  bool
	EntityID string
}
