package arena

import (
	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/model"
)

// creditingResolver wraps the arena's resolver for the effects of one
// unit. Everything resolved through it is credited to that unit, and the
// victim's threat list learns who hit it.
type creditingResolver struct {
	unit  *Unit
	arena *Arena
	res   *combat.Resolver
}

func (r *creditingResolver) Resolve(target *model.Character, info model.DamageInfo) model.DamageResult {
	res := r.res.Resolve(target, info)
	if res.FinalDamage > 0 {
		r.unit.report.DamageDealt += res.FinalDamage
		if victim := r.arena.unitOf(target); victim != nil {
			victim.threat.Add(r.unit.ID(), res.FinalDamage)
		}
	}
	if res.IsDodged {
		r.unit.report.Dodged++
	}
	if res.IsKilled {
		r.unit.report.Kills++
	}
	return res
}

func (r *creditingResolver) Heal(target *model.Character, amount float64) int {
	healed := r.res.Heal(target, amount)
	r.unit.report.HealingDone += healed
	return healed
}

func (r *creditingResolver) Outgoing(attacker *model.Character, amount float64) float64 {
	return r.res.Outgoing(attacker, amount)
}
