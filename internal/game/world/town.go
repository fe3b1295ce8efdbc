package world

import (
	"math/rand"
	"strings"
)

// Shop types carried in counter entity ids.
const (
	ShopWeapon = "weapon"
	ShopArmor  = "armor"
	ShopTavern = "tavern"
	ShopHealer = "healer"
	ShopGuild  = "guild"
	ShopInn    = "inn"
)

var shopNames = map[string][]string{
	ShopWeapon: {"The Sharp Edge", "Iron and Oak", "Blades of Sosaria", "The Honest Smith"},
	ShopArmor:  {"The Iron Shell", "Plate and Mail", "The Sturdy Hide", "Guardian Outfitters"},
	ShopTavern: {"The Blue Boar", "The Jolly Fiddler", "The Salty Dog", "The Empty Bottle"},
	ShopHealer: {"House of Mending", "The Gentle Hand", "Temple of Light", "The Herbalist"},
	ShopGuild:  {"Adventurers' Guild", "The Rangers' Lodge", "Order of the Silver Serpent", "The Fellowship Hall"},
	ShopInn:    {"The Sleeping Bull", "The Wayfarer's Rest", "The Quiet Lamp", "The Ferryman's Inn"},
}

// ShopEntity builds the entity id stored on counter tiles.
func ShopEntity(shopType, name string) string { return shopType + "|" + name }

// ParseShopEntity splits a counter entity id into shop type and name.
func ParseShopEntity(id string) (shopType, name string, ok bool) {
	shopType, name, ok = strings.Cut(id, "|")
	if !ok || shopType == "" {
		return "", "", false
	}
	if _, known := shopNames[shopType]; !known {
		return "", "", false
	}
	return shopType, name, true
}

// Town gate and plaza geometry.
const (
	townGateX  = 16
	townGateY  = TownHeight - 1
	plazaX0    = 12
	plazaX1    = 20
	plazaY0    = 12
	plazaY1    = 19
	fountainX  = 16
	fountainY  = 15
	roadNorthY = 10
	roadSouthY = 20
	forestRate = 0.06
)

type doorSide int

const (
	doorSouth doorSide = iota
	doorNorth
	doorEast
)

type building struct {
	shop       string
	x, y, w, h int
	side       doorSide
	locked     bool
}

var townBuildings = []building{
	{shop: ShopWeapon, x: 2, y: 2, w: 8, h: 7, side: doorSouth},
	{shop: ShopArmor, x: 12, y: 2, w: 8, h: 7, side: doorSouth},
	{shop: ShopTavern, x: 22, y: 2, w: 8, h: 7, side: doorSouth},
	{shop: ShopInn, x: 2, y: 12, w: 7, h: 7, side: doorEast},
	{shop: ShopHealer, x: 2, y: 22, w: 8, h: 7, side: doorNorth},
	{shop: ShopGuild, x: 22, y: 22, w: 8, h: 7, side: doorNorth, locked: true},
}

// GenerateTown builds a walled 32x32 town.
//
// Postcondition: the only gap in the outer wall is the door at (16,31), and
// every walkable-side neighbour of every door is walkable.
func GenerateTown(seed int64, id, name string) *GameMap {
	rng := rand.New(rand.NewSource(seed))
	w, h := TownWidth, TownHeight
	m := NewGameMap(id, name, KindTown, w, h, Grass)

	for x := 0; x < w; x++ {
		m.SetTile(x, 0, Tile{Terrain: Wall})
		m.SetTile(x, h-1, Tile{Terrain: Wall})
	}
	for y := 0; y < h; y++ {
		m.SetTile(0, y, Tile{Terrain: Wall})
		m.SetTile(w-1, y, Tile{Terrain: Wall})
	}
	m.SetTile(townGateX, townGateY, Tile{Terrain: Door})
	m.SetEntryPoint("default", townGateX, townGateY-1)

	var doors []Point
	for _, b := range townBuildings {
		doors = append(doors, stampBuilding(m, rng, b))
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if m.Terrain(x, y) == Grass && rng.Float64() < forestRate {
				m.SetTile(x, y, Tile{Terrain: Forest})
			}
		}
	}

	for y := plazaY0; y <= plazaY1; y++ {
		for x := plazaX0; x <= plazaX1; x++ {
			paveGrass(m, x, y)
		}
	}
	m.SetTile(fountainX, fountainY, Tile{Terrain: Fountain})
	for y := roadSouthY; y < townGateY; y++ {
		paveGrass(m, townGateX, y)
	}
	for x := 1; x < w-1; x++ {
		paveGrass(m, x, roadNorthY)
		paveGrass(m, x, roadSouthY)
	}

	doors = append(doors, Point{townGateX, townGateY})
	for _, d := range doors {
		for _, dir := range []Direction{North, South, East, West} {
			dx, dy := dir.Delta()
			nx, ny := d.X+dx, d.Y+dy
			if !m.InBounds(nx, ny) {
				continue
			}
			switch m.Terrain(nx, ny) {
			case Wall, Floor, Counter, Door, LockedDoor:
			default:
				m.SetTile(nx, ny, Tile{Terrain: Path})
			}
		}
	}

	m.Seal()
	return m
}

// paveGrass turns grass and forest decoration into path; buildings are left alone.
func paveGrass(m *GameMap, x, y int) {
	switch m.Terrain(x, y) {
	case Grass, Forest:
		m.SetTile(x, y, Tile{Terrain: Path})
	}
}

// stampBuilding draws b and returns its door position.
func stampBuilding(m *GameMap, rng *rand.Rand, b building) Point {
	for y := b.y; y < b.y+b.h; y++ {
		for x := b.x; x < b.x+b.w; x++ {
			edge := x == b.x || y == b.y || x == b.x+b.w-1 || y == b.y+b.h-1
			if edge {
				m.SetTile(x, y, Tile{Terrain: Wall})
			} else {
				m.SetTile(x, y, Tile{Terrain: Floor})
			}
		}
	}

	pool := shopNames[b.shop]
	entity := ShopEntity(b.shop, pool[rng.Intn(len(pool))])

	var door Point
	switch b.side {
	case doorSouth:
		door = Point{b.x + b.w/2, b.y + b.h - 1}
		for x := b.x + 1; x < b.x+b.w-2; x++ {
			m.SetTile(x, b.y+2, Tile{Terrain: Counter, EntityID: entity})
		}
	case doorNorth:
		door = Point{b.x + b.w/2, b.y}
		for x := b.x + 1; x < b.x+b.w-2; x++ {
			m.SetTile(x, b.y+b.h-3, Tile{Terrain: Counter, EntityID: entity})
		}
	case doorEast:
		door = Point{b.x + b.w - 1, b.y + b.h/2}
		for y := b.y + 1; y < b.y+b.h-2; y++ {
			m.SetTile(b.x+2, y, Tile{Terrain: Counter, EntityID: entity})
		}
	}
	terrain := Door
	if b.locked {
		terrain = LockedDoor
	}
	m.SetTile(door.X, door.Y, Tile{Terrain: terrain})
	return door
}
