package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/game/arena"
	"github.com/udisondev/skirmish/internal/game/energy"
)

var (
	runScenario string
	runCount    int
	runSeed     uint64
	runWorkers  int
	runSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fight a scenario one or more times",
	Long:  `Run fights the scenario runs times in parallel, seeding run i with seed+i, and prints the win counts.`,
	RunE:  runFights,
}

func init() {
	runCmd.Flags().StringVar(&runScenario, "scenario", "duel", "scenario id from the catalog")
	runCmd.Flags().IntVar(&runCount, "runs", 0, "number of fights (default from config)")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "base seed (default from config)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "parallel fights (default from config, then GOMAXPROCS)")
	runCmd.Flags().BoolVar(&runSave, "save", false, "record every fight in the database")
}

// fight is everything one run produced that the database may want.
type fight struct {
	id       string
	outcome  arena.Outcome
	balances map[string]energy.Balance
	loadouts map[string][]db.SlotRecord
}

func runFights(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sim := cfg.Simulation
	if cmd.Flags().Changed("runs") {
		sim.Runs = runCount
	}
	if cmd.Flags().Changed("seed") {
		sim.Seed = runSeed
	}
	if cmd.Flags().Changed("workers") {
		sim.Workers = runWorkers
	}
	if sim.Runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", sim.Runs)
	}
	if sim.Workers <= 0 {
		sim.Workers = runtime.GOMAXPROCS(0)
	}
	if _, err := catalog.Scenario(runScenario); err != nil {
		return err
	}

	var database *db.DB
	if runSave {
		if _, err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		d, err := db.New(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer d.Close()
		database = d
	}

	slog.Info("starting fights",
		"scenario", runScenario,
		"runs", sim.Runs,
		"seed", sim.Seed,
		"workers", sim.Workers)
	start := time.Now()

	results := make([]arena.Outcome, sim.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sim.Workers)
	for i := range sim.Runs {
		g.Go(func() error {
			f, err := fightOnce(gctx, runScenario, sim.Seed+uint64(i))
			if err != nil {
				return err
			}
			results[i] = f.outcome
			if database != nil {
				return record(gctx, database, f)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("fights finished", "elapsed", time.Since(start))
	printSummary(cmd.OutOrStdout(), runScenario, results)
	return nil
}

func fightOnce(ctx context.Context, scenario string, seed uint64) (fight, error) {
	a, err := arena.New(catalog, scenario, arena.Config{
		TickRate:      cfg.Simulation.TickRate,
		MaxDuration:   cfg.Simulation.Duration,
		Seed:          seed,
		ArmorConstant: cfg.Resolver.ArmorConstant,
		MinDamage:     cfg.Resolver.MinDamage,
	})
	if err != nil {
		return fight{}, fmt.Errorf("building arena: %w", err)
	}
	defer a.Close()

	a.Died.Subscribe(func(u *arena.Unit) {
		slog.Debug("unit down", "unit", u.Character().Name(), "at", a.Now(), "seed", seed)
	})

	out, err := a.Run(ctx)
	if err != nil {
		return fight{}, err
	}

	f := fight{
		id:       uuid.NewString(),
		outcome:  out,
		balances: make(map[string]energy.Balance),
		loadouts: make(map[string][]db.SlotRecord),
	}
	for acc, b := range a.Ledger().Snapshot() {
		f.balances[f.id+"/"+acc] = b
	}
	for _, u := range a.Units() {
		actor := fmt.Sprintf("%s/%d", f.id, u.ID())
		for _, s := range u.Skills().Slots() {
			f.loadouts[actor] = append(f.loadouts[actor], db.SlotRecord{
				Slot:      s.Index,
				SkillID:   s.SkillID,
				AccountID: f.id + "/" + s.AccountID,
			})
		}
	}
	return f, nil
}

func record(ctx context.Context, database *db.DB, f fight) error {
	if err := database.Runs().Save(ctx, toRunRecord(f.id, f.outcome)); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	if err := database.Energy().Save(ctx, f.balances); err != nil {
		return fmt.Errorf("saving energy: %w", err)
	}
	for actor, slots := range f.loadouts {
		if err := database.Loadouts().Save(ctx, actor, slots); err != nil {
			return fmt.Errorf("saving loadout of %s: %w", actor, err)
		}
	}
	slog.Debug("fight recorded", "run", f.id, "seed", f.outcome.Seed)
	return nil
}

func toRunRecord(id string, out arena.Outcome) db.RunRecord {
	rec := db.RunRecord{
		ID:         id,
		Scenario:   out.Scenario,
		Seed:       out.Seed,
		WinnerTeam: out.Winner,
		Duration:   out.Duration,
		Frames:     out.Frames,
		Units:      make([]db.RunUnitRecord, 0, len(out.Units)),
	}
	for _, u := range out.Units {
		rec.Units = append(rec.Units, db.RunUnitRecord{
			UnitID:      u.ID,
			Archetype:   u.Archetype,
			Team:        u.Team,
			DamageDealt: u.DamageDealt,
			HealingDone: u.HealingDone,
			Kills:       u.Kills,
			Survived:    u.Survived,
		})
	}
	return rec
}

func printSummary(w io.Writer, scenario string, results []arena.Outcome) {
	wins := make(map[int]int)
	var duration float64
	for _, out := range results {
		wins[out.Winner]++
		duration += out.Duration
	}

	fmt.Fprintf(w, "scenario %s: %d fights, mean length %.1fs\n",
		scenario, len(results), duration/float64(max(len(results), 1)))
	teams := make([]int, 0, len(wins))
	for team := range wins {
		teams = append(teams, team)
	}
	slices.Sort(teams)
	for _, team := range teams {
		label := fmt.Sprintf("team %d", team)
		if team == arena.Draw {
			label = "draw"
		}
		fmt.Fprintf(w, "  %-8s %d\n", label, wins[team])
	}
}
