// Package db is the PostgreSQL save layer: skill loadouts, energy
// balances and recorded fights.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skirmish/internal/config"
)

// DB owns the connection pool shared by every repository.
type DB struct {
	pool *pgxpool.Pool
}

// New connects with the parameters in cfg and pings the server.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	slog.Debug("database connected",
		"host", cfg.Host,
		"db", cfg.DBName,
		"max_conns", poolCfg.MaxConns)
	return &DB{pool: pool}, nil
}

// Close releases every pooled connection.
func (d *DB) Close() { d.pool.Close() }

// Pool exposes the pool for callers that need raw queries.
func (d *DB) Pool() *pgxpool.Pool { return d.pool }

func (d *DB) Loadouts() *LoadoutRepository { return NewLoadoutRepository(d.pool) }
func (d *DB) Energy() *EnergyRepository    { return NewEnergyRepository(d.pool) }
func (d *DB) Runs() *RunRepository         { return NewRunRepository(d.pool) }
