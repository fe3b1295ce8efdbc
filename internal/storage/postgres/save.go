package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/save"
)

// SaveRepository stores saved games in the saves table.
type SaveRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

var _ save.Store = (*SaveRepository)(nil)

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the saves
// migration applied.
func NewSaveRepository(db *pgxpool.Pool, logger *zap.Logger) *SaveRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveRepository{db: db, logger: logger}
}

// Save upserts d into slot.
//
// Postcondition: A later Load(slot) returns d with the current format version.
func (r *SaveRepository) Save(ctx context.Context, slot string, d save.Data) error {
	slot, err := save.NormalizeSlot(slot)
	if err != nil {
		return err
	}
	payload, err := save.Encode(d)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO saves (slot, seed, state, payload, saved_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (slot) DO UPDATE SET
			seed = EXCLUDED.seed,
			state = EXCLUDED.state,
			payload = EXCLUDED.payload,
			saved_at = EXCLUDED.saved_at`,
		slot, d.Seed, d.State, payload,
	)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	r.logger.Debug("game saved", zap.String("slot", slot), zap.Int("bytes", len(payload)))
	return nil
}

// Load returns the save in slot.
//
// Postcondition: Returns the save or save.ErrSlotNotFound.
func (r *SaveRepository) Load(ctx context.Context, slot string) (save.Data, error) {
	slot, err := save.NormalizeSlot(slot)
	if err != nil {
		return save.Data{}, err
	}
	var payload []byte
	err = r.db.QueryRow(ctx, `SELECT payload FROM saves WHERE slot = $1`, slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return save.Data{}, save.ErrSlotNotFound
		}
		return save.Data{}, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	return save.Decode(payload)
}

// List returns every slot, most recently saved first.
func (r *SaveRepository) List(ctx context.Context) ([]save.Slot, error) {
	rows, err := r.db.Query(ctx, `SELECT slot, saved_at FROM saves ORDER BY saved_at DESC, slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	defer rows.Close()

	slots := make([]save.Slot, 0)
	for rows.Next() {
		var (
			name string
			at   time.Time
		)
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("scanning save row: %w", err)
		}
		slots = append(slots, save.Slot{Name: name, SavedAt: at.UTC()})
	}
	return slots, rows.Err()
}

// Delete removes slot.
//
// Postcondition: Returns save.ErrSlotNotFound when slot held no save.
func (r *SaveRepository) Delete(ctx context.Context, slot string) error {
	slot, err := save.NormalizeSlot(slot)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	if tag.RowsAffected() == 0 {
		return save.ErrSlotNotFound
	}
	return nil
}
