package world

import "math/rand"

// Terrain thresholds on normalised height.
const (
	deepWaterBelow = 0.2
	waterBelow     = 0.3
	grassBelow     = 0.55
	forestBelow    = 0.65
	desertBelow    = 0.75
	hillsBelow     = 0.85
)

// Moisture gates.
const (
	wetForest      = 0.6
	dryGrass       = 0.3
	wetDesert      = 0.7
	swampMoisture  = 0.65
	swampMaxHeight = 0.35
	swampChance    = 0.3
)

// GenerateOverworld builds the wrapping overworld for seed.
//
// Postcondition: identical seeds yield identical maps; the 11x11 block around
// the spawn is grass; every town and dungeon site has a Location.
func GenerateOverworld(seed int64) *GameMap {
	rng := rand.New(rand.NewSource(seed))
	w, h := OverworldWidth, OverworldHeight
	m := NewGameMap(OverworldID, "Sosaria", KindOverworld, w, h, Grass)
	m.Wraps = true

	height := layeredNoise(rng, w, h, 4)
	moisture := layeredNoise(rng, w, h, 3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m.SetTile(x, y, Tile{Terrain: classify(height[i], moisture[i], rng)})
		}
	}

	for dy := -spawnRadius; dy <= spawnRadius; dy++ {
		for dx := -spawnRadius; dx <= spawnRadius; dx++ {
			m.SetTile(SpawnX+dx, SpawnY+dy, Tile{Terrain: Grass})
		}
	}
	m.SetEntryPoint("default", SpawnX, SpawnY)

	for _, s := range Towns {
		m.SetTile(s.X, s.Y, Tile{Terrain: TownSite, EntityID: TownMapID(s.Key)})
		for _, d := range []Direction{North, South, East, West} {
			dx, dy := d.Delta()
			m.SetTile(s.X+dx, s.Y+dy, Tile{Terrain: Grass})
		}
		m.Locations = append(m.Locations, Location{X: s.X, Y: s.Y, TargetMapID: TownMapID(s.Key), EntryPoint: "default"})
	}
	for _, s := range Dungeons {
		id := DungeonMapID(s.Key, 1)
		m.SetTile(s.X, s.Y, Tile{Terrain: DungeonSite, EntityID: id})
		m.SetTile(s.X, s.Y-1, Tile{Terrain: Mountain})
		m.SetTile(s.X+1, s.Y, Tile{Terrain: Mountain})
		m.SetTile(s.X-1, s.Y, Tile{Terrain: Mountain})
		m.SetTile(s.X, s.Y+1, Tile{Terrain: Grass})
		m.Locations = append(m.Locations, Location{X: s.X, Y: s.Y, TargetMapID: id, EntryPoint: "default"})
	}
	m.Seal()
	return m
}

// classify maps height and moisture samples to terrain. The swamp roll only
// consumes randomness for tiles that qualify.
func classify(height, moisture float64, rng *rand.Rand) Terrain {
	var t Terrain
	switch {
	case height < deepWaterBelow:
		return DeepWater
	case height < waterBelow:
		return Water
	case height < grassBelow:
		t = Grass
	case height < forestBelow:
		t = Forest
	case height < desertBelow:
		t = Desert
	case height < hillsBelow:
		t = Hills
	default:
		return Mountain
	}

	switch {
	case t == Grass && moisture > wetForest:
		t = Forest
	case t == Forest && moisture < dryGrass:
		t = Grass
	case t == Desert && moisture > wetDesert:
		t = Grass
	}
	if (t == Grass || t == Forest) && moisture > swampMoisture && height < swampMaxHeight {
		if rng.Float64() < swampChance {
			t = Swamp
		}
	}
	return t
}
