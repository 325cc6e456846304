package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/game/arena"
)

var historyScenario string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded win counts of a scenario",
	RunE: func(cmd *cobra.Command, _ []string) error {
		database, err := db.New(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		counts, err := database.Runs().CountByScenario(cmd.Context(), historyScenario)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		total := 0
		for _, n := range counts {
			total += n
		}
		fmt.Fprintf(w, "scenario %s: %d recorded fights\n", historyScenario, total)
		teams := make([]int, 0, len(counts))
		for team := range counts {
			teams = append(teams, team)
		}
		slices.Sort(teams)
		for _, team := range teams {
			label := fmt.Sprintf("team %d", team)
			if team == arena.Draw {
				label = "draw"
			}
			fmt.Fprintf(w, "  %-8s %d\n", label, counts[team])
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded fight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.New(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		run, err := database.Runs().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", args[0])
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s seed=%d winner=%d %.2fs (%d frames) at %s\n",
			run.Scenario, run.Seed, run.WinnerTeam, run.Duration, run.Frames, run.CreatedAt.Format("2006-01-02 15:04:05"))
		for _, u := range run.Units {
			fmt.Fprintf(w, "  #%-3d team %d %-8s dmg=%-5d heal=%-5d kills=%d survived=%t\n",
				u.UnitID, u.Team, u.Archetype, u.DamageDealt, u.HealingDone, u.Kills, u.Survived)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyScenario, "scenario", "duel", "scenario id")
}
