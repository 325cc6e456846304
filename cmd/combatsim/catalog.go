package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the loaded catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, "skills:")
		for _, id := range catalog.SkillIDs() {
			s, err := catalog.Skill(id)
			if err != nil {
				return err
			}
			effects := make([]string, 0, len(s.Effects))
			for _, e := range s.Effects {
				effects = append(effects, e.ID)
			}
			fmt.Fprintf(w, "  %-12s cd=%-5g cost=%-2d delay=%-4g %-7s [%s]\n",
				id, s.Cooldown, s.EnergyCost, s.DetectionDelay, s.Affects, strings.Join(effects, " "))
		}

		fmt.Fprintln(w, "archetypes:")
		for _, id := range catalog.ArchetypeIDs() {
			a, err := catalog.Archetype(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %-12s skills=[%s] talents=[%s]\n",
				id, strings.Join(a.Skills, " "), strings.Join(a.Talents, " "))
		}

		fmt.Fprintln(w, "scenarios:")
		for _, id := range catalog.ScenarioIDs() {
			sc, err := catalog.Scenario(id)
			if err != nil {
				return err
			}
			teams := make([]string, 0, len(sc.Teams))
			for _, team := range sc.Teams {
				teams = append(teams, strings.Join(team, "+"))
			}
			fmt.Fprintf(w, "  %-12s %s\n", id, strings.Join(teams, " vs "))
		}
		return nil
	},
}
