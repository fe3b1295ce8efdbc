package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/party"
	"github.com/cory-johannsen/sosaria/internal/game/save"
	"github.com/cory-johannsen/sosaria/internal/game/world"
	"github.com/cory-johannsen/sosaria/internal/storage/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "saves.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleData(seed int64) save.Data {
	return save.Data{
		Seed:  seed,
		State: "overworld",
		Party: party.State{Gold: 55, Food: 80, X: 64, Y: 64, MapID: world.OverworldID, Facing: world.South},
		Deltas: []world.TileDelta{
			{MapID: "dungeon_deceit_l1", X: 3, Y: 7, Terrain: world.Floor},
		},
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ", nil)
	assert.Error(t, err)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	s1, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s1.Save(context.Background(), "one", sampleData(1)))
	require.NoError(t, s1.Close())

	s2, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Load(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Seed)
}

func TestStore_SaveLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	want := sampleData(42)
	require.NoError(t, s.Save(ctx, "slot1", want))

	got, err := s.Load(ctx, "slot1")
	require.NoError(t, err)
	want.Version = save.FormatVersion
	assert.Equal(t, want, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "slot1", sampleData(1)))
	require.NoError(t, s.Save(ctx, "slot1", sampleData(2)))

	got, err := s.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Seed)

	slots, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestStore_LoadMissing(t *testing.T) {
	s := openStore(t)
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, save.ErrSlotNotFound)
}

func TestStore_InvalidSlot(t *testing.T) {
	s := openStore(t)
	assert.ErrorIs(t, s.Save(context.Background(), "", sampleData(1)), save.ErrInvalidSlot)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"alpha", "beta", "gamma"} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.SetClock(func() time.Time { return at })
		require.NoError(t, s.Save(ctx, name, sampleData(int64(i))))
	}

	slots, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "gamma", slots[0].Name)
	assert.Equal(t, "alpha", slots[2].Name)
	assert.True(t, slots[0].SavedAt.Equal(base.Add(2*time.Minute)))
}

func TestStore_Delete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "slot1", sampleData(1)))
	require.NoError(t, s.Delete(ctx, "slot1"))
	assert.ErrorIs(t, s.Delete(ctx, "slot1"), save.ErrSlotNotFound)
	_, err := s.Load(ctx, "slot1")
	assert.ErrorIs(t, err, save.ErrSlotNotFound)
}

func TestStore_RoundTripProperty(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		d := save.Data{
			Seed:  rapid.Int64().Draw(rt, "seed"),
			State: rapid.SampledFrom([]string{"overworld", "town", "dungeon"}).Draw(rt, "state"),
			Party: party.State{
				Gold:      rapid.IntRange(0, 1_000_000).Draw(rt, "gold"),
				TurnCount: rapid.IntRange(0, 100_000).Draw(rt, "turn"),
			},
		}
		slot := rapid.StringMatching(`[a-z][a-z0-9_]{0,20}`).Draw(rt, "slot")
		if err := s.Save(ctx, slot, d); err != nil {
			rt.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, slot)
		if err != nil {
			rt.Fatalf("load: %v", err)
		}
		d.Version = save.FormatVersion
		if got.Seed != d.Seed || got.State != d.State || got.Party.Gold != d.Party.Gold || got.Party.TurnCount != d.Party.TurnCount {
			rt.Fatalf("round trip mismatch: got %+v want %+v", got, d)
		}
	})
}
