package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Overworld dimensions and spawn point.
const (
	OverworldID     = "overworld"
	OverworldWidth  = 128
	OverworldHeight = 128
	SpawnX          = 64
	SpawnY          = 64
	spawnRadius     = 5

	TownWidth  = 32
	TownHeight = 32

	DungeonWidth  = 40
	DungeonHeight = 40
	DungeonDepth  = 8
)

// Site is a fixed town or dungeon placement on the overworld.
type Site struct {
	Key  string
	Name string
	X, Y int
}

// Towns lists the eight towns in a fixed order.
var Towns = []Site{
	{"britain", "Britain", 52, 64},
	{"moonglow", "Moonglow", 100, 40},
	{"yew", "Yew", 25, 20},
	{"minoc", "Minoc", 90, 12},
	{"trinsic", "Trinsic", 70, 105},
	{"jhelom", "Jhelom", 15, 100},
	{"skara_brae", "Skara Brae", 10, 60},
	{"magincia", "Magincia", 110, 90},
}

// Dungeons lists the four dungeons in a fixed order.
var Dungeons = []Site{
	{"deceit", "Deceit", 105, 20},
	{"despise", "Despise", 40, 35},
	{"destard", "Destard", 40, 90},
	{"wrong", "Wrong", 80, 30},
}

// TownMapID returns the map id of a town.
func TownMapID(key string) string { return "town_" + key }

// DungeonMapID returns the map id of a dungeon level.
func DungeonMapID(key string, level int) string {
	return fmt.Sprintf("dungeon_%s_l%d", key, level)
}

// DungeonLevelOf parses the "_l<N>" suffix of a dungeon map id.
func DungeonLevelOf(mapID string) (int, bool) {
	i := strings.LastIndex(mapID, "_l")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(mapID[i+2:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// WithDungeonLevel rewrites the "_l<N>" suffix of mapID to level.
func WithDungeonLevel(mapID string, level int) (string, bool) {
	i := strings.LastIndex(mapID, "_l")
	if i < 0 {
		return "", false
	}
	if _, ok := DungeonLevelOf(mapID); !ok {
		return "", false
	}
	return fmt.Sprintf("%s_l%d", mapID[:i], level), true
}
