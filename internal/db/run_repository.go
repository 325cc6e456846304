package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is the persisted summary of one arena simulation.
type RunRecord struct {
	ID         string
	Scenario   string
	Seed       uint64
	WinnerTeam int // -1 for a draw
	Duration   float64
	Frames     int
	CreatedAt  time.Time
	Units      []RunUnitRecord
}

// RunUnitRecord is the per-unit line of a run.
type RunUnitRecord struct {
	UnitID      uint32
	Archetype   string
	Team        int
	DamageDealt int
	HealingDone int
	Kills       int
	Survived    bool
}

// RunRepository stores simulation outcomes.
type RunRepository struct {
	db *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(db *pgxpool.Pool) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts run and its unit lines in one transaction.
func (r *RunRepository) Save(ctx context.Context, run RunRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx,
		`INSERT INTO sim_runs (id, scenario, seed, winner_team, duration, frames)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Scenario, int64(run.Seed), run.WinnerTeam, run.Duration, run.Frames,
	); err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	if len(run.Units) > 0 {
		batch := &pgx.Batch{}
		for _, u := range run.Units {
			batch.Queue(
				`INSERT INTO sim_run_units
				 (run_id, unit_id, archetype, team, damage_dealt, healing_done, kills, survived)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				run.ID, int32(u.UnitID), u.Archetype, u.Team,
				u.DamageDealt, u.HealingDone, u.Kills, u.Survived,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range run.Units {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return fmt.Errorf("inserting run units: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("closing run unit batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing run save: %w", err)
	}
	return nil
}

// Get loads a run with its unit lines. Returns nil, nil if it does not exist.
func (r *RunRepository) Get(ctx context.Context, id string) (*RunRecord, error) {
	var (
		run  RunRecord
		seed int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT id::text, scenario, seed, winner_team, duration, frames, created_at
		 FROM sim_runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.Scenario, &seed, &run.WinnerTeam, &run.Duration, &run.Frames, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}
	run.Seed = uint64(seed)

	rows, err := r.db.Query(ctx,
		`SELECT unit_id, archetype, team, damage_dealt, healing_done, kills, survived
		 FROM sim_run_units WHERE run_id = $1 ORDER BY unit_id`, id)
	if err != nil {
		return nil, fmt.Errorf("querying units of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			u      RunUnitRecord
			unitID int32
		)
		if err := rows.Scan(&unitID, &u.Archetype, &u.Team, &u.DamageDealt, &u.HealingDone, &u.Kills, &u.Survived); err != nil {
			return nil, fmt.Errorf("scanning run unit row: %w", err)
		}
		u.UnitID = uint32(unitID)
		run.Units = append(run.Units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run unit rows: %w", err)
	}

	return &run, nil
}

// CountByScenario returns how many runs of each team won a scenario.
// The draw count is keyed by -1.
func (r *RunRepository) CountByScenario(ctx context.Context, scenario string) (map[int]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT winner_team, count(*) FROM sim_runs WHERE scenario = $1 GROUP BY winner_team`,
		scenario)
	if err != nil {
		return nil, fmt.Errorf("counting runs of %q: %w", scenario, err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var team, n int
		if err := rows.Scan(&team, &n); err != nil {
			return nil, fmt.Errorf("scanning run count: %w", err)
		}
		out[team] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run counts: %w", err)
	}
	return out, nil
}
