package arena

// Draw is the Winner of a fight that ended with no single team standing.
const Draw = -1

// Outcome is the result of one fight.
type Outcome struct {
	Scenario string
	Seed     uint64
	Winner   int // team index or Draw
	Duration float64
	Frames   int
	Units    []UnitReport
}

// UnitReport is one unit's totals for a fight.
type UnitReport struct {
	ID          uint32
	Name        string
	Archetype   string
	Team        int
	HP          int
	DamageDealt int
	HealingDone int
	Kills       int
	Dodged      int // hits of this unit the target dodged
	Casts       int
	Survived    bool
}

// TeamDamage sums DamageDealt per team.
func (o Outcome) TeamDamage() map[int]int {
	out := make(map[int]int)
	for _, u := range o.Units {
		out[u.Team] += u.DamageDealt
	}
	return out
}
