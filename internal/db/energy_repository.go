package db

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skirmish/internal/game/energy"
)

// EnergyRepository stores resource account balances.
type EnergyRepository struct {
	db *pgxpool.Pool
}

// NewEnergyRepository creates a new EnergyRepository.
func NewEnergyRepository(db *pgxpool.Pool) *EnergyRepository {
	return &EnergyRepository{db: db}
}

// Save upserts every balance in one batch.
func (r *EnergyRepository) Save(ctx context.Context, balances map[string]energy.Balance) error {
	if len(balances) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	ids := slices.Sorted(maps.Keys(balances))
	batch := &pgx.Batch{}
	for _, id := range ids {
		b := balances[id]
		batch.Queue(
			`INSERT INTO energy_accounts (account_id, current, capacity, regen, updated_at)
			 VALUES ($1, $2, $3, $4, now())
			 ON CONFLICT (account_id) DO UPDATE SET
			  current=$2, capacity=$3, regen=$4, updated_at=now()`,
			id, b.Current, b.Capacity, b.Regen,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for _, id := range ids {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving energy account %q: %w", id, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing energy batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing energy save: %w", err)
	}
	return nil
}

// Load returns the balances whose account id starts with prefix.
// An empty prefix loads every account.
func (r *EnergyRepository) Load(ctx context.Context, prefix string) (map[string]energy.Balance, error) {
	query := `
		SELECT account_id, current, capacity, regen
		FROM energy_accounts
		WHERE starts_with(account_id, $1)
	`

	rows, err := r.db.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("querying energy accounts %q: %w", prefix, err)
	}
	defer rows.Close()

	out := make(map[string]energy.Balance)
	for rows.Next() {
		var (
			id string
			b  energy.Balance
		)
		if err := rows.Scan(&id, &b.Current, &b.Capacity, &b.Regen); err != nil {
			return nil, fmt.Errorf("scanning energy row: %w", err)
		}
		out[id] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating energy rows: %w", err)
	}

	return out, nil
}
