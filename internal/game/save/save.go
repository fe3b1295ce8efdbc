// Package save defines the saved-game record and the store contract that
// persistence backends implement.
package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

// FormatVersion is the payload version written by Encode.
const FormatVersion = 1

var (
	// ErrSlotNotFound is returned when a slot holds no save.
	ErrSlotNotFound = errors.New("save slot not found")
	// ErrInvalidSlot is returned for blank or oversized slot names.
	ErrInvalidSlot = errors.New("invalid save slot name")
	// ErrUnsupportedVersion is returned by Decode for payloads from a newer format.
	ErrUnsupportedVersion = errors.New("unsupported save format version")
)

// MaxSlotLength bounds slot names.
const MaxSlotLength = 64

// Data is one saved game. The world is not stored: it is regenerated from
// Seed and the recorded tile changes are replayed on top.
type Data struct {
	Version int               `json:"version"`
	Seed    int64             `json:"seed"`
	State   string            `json:"state"`
	Party   party.State       `json:"party"`
	Deltas  []world.TileDelta `json:"deltas,omitempty"`
}

// Slot describes a stored save without loading its payload.
type Slot struct {
	Name    string
	SavedAt time.Time
}

// Store persists saves by slot name.
type Store interface {
	// Save writes d to slot, replacing any previous save there.
	Save(ctx context.Context, slot string, d Data) error
	// Load returns the save in slot or ErrSlotNotFound.
	Load(ctx context.Context, slot string) (Data, error)
	// List returns every slot, most recently saved first.
	List(ctx context.Context) ([]Slot, error)
	// Delete removes slot or returns ErrSlotNotFound.
	Delete(ctx context.Context, slot string) error
}

// NormalizeSlot trims name and checks its length.
//
// Postcondition: Returns a non-empty slot name of at most MaxSlotLength
// bytes, or ErrInvalidSlot.
func NormalizeSlot(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxSlotLength {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidSlot)
	}
	return name, nil
}

// Encode serialises d as JSON, stamping the current FormatVersion.
func Encode(d Data) ([]byte, error) {
	d.Version = FormatVersion
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return b, nil
}

// Decode parses a payload written by Encode.
//
// Postcondition: Returns the save or an error; payloads with a version newer
// than FormatVersion yield ErrUnsupportedVersion.
func Decode(b []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("decoding save: %w", err)
	}
	if d.Version > FormatVersion {
		return Data{}, fmt.Errorf("version %d: %w", d.Version, ErrUnsupportedVersion)
	}
	return d, nil
}
