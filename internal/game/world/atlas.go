package world

import (
	"fmt"
	"sort"
)

// Atlas indexes every generated map by id.
type Atlas struct {
	Seed int64
	maps map[string]*GameMap
}

// NewAtlas creates an Atlas from the given maps.
//
// Postcondition: Returns an Atlas with all maps indexed by ID, or an error on duplicate map IDs.
func NewAtlas(seed int64, maps []*GameMap) (*Atlas, error) {
	a := &Atlas{Seed: seed, maps: make(map[string]*GameMap, len(maps))}
	for _, m := range maps {
		if _, exists := a.maps[m.ID]; exists {
			return nil, fmt.Errorf("duplicate map ID: %q", m.ID)
		}
		a.maps[m.ID] = m
	}
	return a, nil
}

// ValidateLocations checks that every portal resolves to a known map.
//
// Precondition: Atlas must be fully constructed.
// Postcondition: Returns nil if all portals resolve, or an error naming the first dangling target.
func (a *Atlas) ValidateLocations() error {
	for _, id := range a.IDs() {
		for _, l := range a.maps[id].Locations {
			if _, ok := a.maps[l.TargetMapID]; !ok {
				return fmt.Errorf("map %q: location (%d,%d) targets unknown map %q", id, l.X, l.Y, l.TargetMapID)
			}
		}
	}
	return nil
}

// Get returns the map with the given ID.
//
// Postcondition: Returns (map, true) if found, or (nil, false) otherwise.
func (a *Atlas) Get(id string) (*GameMap, bool) {
	m, ok := a.maps[id]
	return m, ok
}

// Overworld returns the overworld map, or nil when absent.
func (a *Atlas) Overworld() *GameMap { return a.maps[OverworldID] }

// MapCount returns the number of indexed maps.
func (a *Atlas) MapCount() int { return len(a.maps) }

// IDs returns all map ids in sorted order.
func (a *Atlas) IDs() []string {
	ids := make([]string, 0, len(a.maps))
	for id := range a.maps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Deltas collects the recorded tile changes of every map.
func (a *Atlas) Deltas() []TileDelta {
	var out []TileDelta
	for _, id := range a.IDs() {
		out = append(out, a.maps[id].Deltas()...)
	}
	return out
}

// ApplyDeltas replays recorded tile changes onto freshly generated maps.
//
// Postcondition: returns an error naming the first delta whose map is unknown
// or whose coordinates are out of bounds; earlier deltas stay applied.
func (a *Atlas) ApplyDeltas(deltas []TileDelta) error {
	for _, d := range deltas {
		m, ok := a.maps[d.MapID]
		if !ok {
			return fmt.Errorf("tile delta targets unknown map %q", d.MapID)
		}
		if !m.SetTerrain(d.X, d.Y, d.Terrain) {
			return fmt.Errorf("tile delta (%d,%d) out of bounds on %q", d.X, d.Y, d.MapID)
		}
	}
	return nil
}
