// Package sqlite provides the local SQLite save store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/sosaria/internal/game/save"
	"github.com/cory-johannsen/sosaria/internal/storage/sqlite/migrations"
)

// Store persists saves in a SQLite file.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

var _ save.Store = (*Store)(nil)

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open opens (creating if needed) the SQLite database at path and applies the
// embedded migrations.
//
// Precondition: path must be non-blank.
// Postcondition: Returns a ready Store or a non-nil error; no handle leaks on error.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite save path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite save store ready",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

func applyMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("loading sqlite migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("creating sqlite migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running sqlite migrations: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes d to slot, replacing any previous save there.
//
// Postcondition: A later Load(slot) returns d with the current format version.
func (s *Store) Save(ctx context.Context, slot string, d save.Data) error {
	slot, err := save.NormalizeSlot(slot)
	if err != nil {
		return err
	}
	payload, err := save.Encode(d)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, seed, state, payload, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			seed = excluded.seed,
			state = excluded.state,
			payload = excluded.payload,
			saved_at = excluded.saved_at`,
		slot, d.Seed, d.State, payload, toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	s.logger.Debug("game saved", zap.String("slot", slot), zap.Int("bytes", len(payload)))
	return nil
}

// Load returns the save in slot.
//
// Postcondition: Returns the save or save.ErrSlotNotFound.
func (s *Store) Load(ctx context.Context, slot string) (save.Data, error) {
	slot, err := save.NormalizeSlot(slot)
	if err != nil {
		return save.Data{}, err
	}
	var payload []byte
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM saves WHERE slot = ?`, slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return save.Data{}, save.ErrSlotNotFound
		}
		return save.Data{}, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	return save.Decode(payload)
}

// List returns every slot, most recently saved first.
func (s *Store) List(ctx context.Context) ([]save.Slot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, saved_at FROM saves ORDER BY saved_at DESC, slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	defer rows.Close()

	slots := make([]save.Slot, 0)
	for rows.Next() {
		var (
			name string
			at   int64
		)
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("scanning save row: %w", err)
		}
		slots = append(slots, save.Slot{Name: name, SavedAt: fromMillis(at)})
	}
	return slots, rows.Err()
}

// Delete removes slot.
//
// Postcondition: Returns save.ErrSlotNotFound when slot held no save.
func (s *Store) Delete(ctx context.Context, slot string) error {
	slot, err := save.NormalizeSlot(slot)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	if n == 0 {
		return save.ErrSlotNotFound
	}
	return nil
}
