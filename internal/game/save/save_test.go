package save_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/save"
	"github.com/cory-johannsen/sosaria/internal/game/world"
)

func TestEncodeDecode(t *testing.T) {
	d := save.Data{
		Seed:  99,
		State: "dungeon",
		Party: party.State{Gold: 10, MapID: "dungeon_wrong_l3", DungeonLevel: 3},
		Deltas: []world.TileDelta{
			{MapID: "dungeon_wrong_l3", X: 4, Y: 5, Terrain: world.Floor},
		},
	}
	b, err := save.Encode(d)
	require.NoError(t, err)

	got, err := save.Decode(b)
	require.NoError(t, err)
	d.Version = save.FormatVersion
	assert.Equal(t, d, got)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := save.Decode([]byte(`{"version": 99}`))
	assert.ErrorIs(t, err, save.ErrUnsupportedVersion)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := save.Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestNormalizeSlot(t *testing.T) {
	got, err := save.NormalizeSlot("  autosave ")
	require.NoError(t, err)
	assert.Equal(t, "autosave", got)

	_, err = save.NormalizeSlot("   ")
	assert.ErrorIs(t, err, save.ErrInvalidSlot)

	_, err = save.NormalizeSlot(strings.Repeat("x", save.MaxSlotLength+1))
	assert.ErrorIs(t, err, save.ErrInvalidSlot)
}
