// Package postgres keeps saved games in PostgreSQL through a pgx pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/config"
)

// ApplicationName is reported to the server for every pooled session.
const ApplicationName = "sosaria-saves"

// Pool is the save store's connection pool.
type Pool struct {
	pool        *pgxpool.Pool
	pingTimeout time.Duration
	logger      *zap.Logger
}

// Connect opens the save database pool described by cfg and waits until the
// server answers a ping.
//
// Precondition: cfg passed config validation for the postgres save driver.
// Postcondition: Returns a reachable Pool or a non-nil error; on error no
// connection is left open.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing save database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	poolCfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating save database pool: %w", err)
	}
	p := &Pool{pool: pool, pingTimeout: cfg.ConnectTimeout, logger: logger}
	if err := p.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reaching save database at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	logger.Info("save database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return p, nil
}

// Ping reports whether the server answers within the configured connect
// timeout.
func (p *Pool) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.pingTimeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Saves returns the save repository backed by this pool.
func (p *Pool) Saves() *SaveRepository {
	return NewSaveRepository(p.pool, p.logger)
}

// Close releases every connection. The pool is unusable afterwards.
func (p *Pool) Close() {
	st := p.pool.Stat()
	p.pool.Close()
	p.logger.Info("save database closed",
		zap.Int64("acquires", st.AcquireCount()),
		zap.Duration("acquire_wait", st.AcquireDuration()),
	)
}
