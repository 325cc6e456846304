package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SlotRecord is one persisted skill slot of an actor.
type SlotRecord struct {
	Slot      int
	SkillID   string
	AccountID string
}

// LoadoutRepository stores the equipped skill ids of actors.
type LoadoutRepository struct {
	db *pgxpool.Pool
}

// NewLoadoutRepository creates a new LoadoutRepository.
func NewLoadoutRepository(db *pgxpool.Pool) *LoadoutRepository {
	return &LoadoutRepository{db: db}
}

// Load returns the slots of actorID ordered by slot index.
func (r *LoadoutRepository) Load(ctx context.Context, actorID string) ([]SlotRecord, error) {
	query := `
		SELECT slot, skill_id, account_id
		FROM loadouts
		WHERE actor_id = $1
		ORDER BY slot
	`

	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("querying loadout for %q: %w", actorID, err)
	}
	defer rows.Close()

	slots := make([]SlotRecord, 0, 4)
	for rows.Next() {
		var rec SlotRecord
		if err := rows.Scan(&rec.Slot, &rec.SkillID, &rec.AccountID); err != nil {
			return nil, fmt.Errorf("scanning loadout row: %w", err)
		}
		slots = append(slots, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loadout rows: %w", err)
	}

	return slots, nil
}

// Save replaces the loadout of actorID in one transaction.
func (r *LoadoutRepository) Save(ctx context.Context, actorID string, slots []SlotRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM loadouts WHERE actor_id = $1`, actorID); err != nil {
		return fmt.Errorf("deleting existing loadout: %w", err)
	}

	for _, s := range slots {
		if _, err := tx.Exec(ctx,
			`INSERT INTO loadouts (actor_id, slot, skill_id, account_id) VALUES ($1, $2, $3, $4)`,
			actorID, s.Slot, s.SkillID, s.AccountID,
		); err != nil {
			return fmt.Errorf("inserting slot %d: %w", s.Slot, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing loadout save: %w", err)
	}

	return nil
}

// Delete removes the loadout of actorID.
func (r *LoadoutRepository) Delete(ctx context.Context, actorID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM loadouts WHERE actor_id = $1`, actorID); err != nil {
		return fmt.Errorf("deleting loadout for %q: %w", actorID, err)
	}
	return nil
}
