package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// DamageOverTimeEffect deals periodic damage through the damage resolver.
// Elapsed time accumulates across ticks; every full interval deals one hit,
// so frame rate does not change total damage.
// Params: "damage" (per hit), "interval" (seconds, default 1),
// "true_damage" (bool).
type DamageOverTimeEffect struct {
	Base
	resolver Resolver
	damage   float64
	interval float64
	trueDmg  bool
	elapsed  float64
}

func NewDamageOverTimeEffect(def Definition, caster *model.Character, res Resolver) Instance {
	interval := def.Float("interval", 1)
	if interval <= 0 {
		interval = 1
	}
	return &DamageOverTimeEffect{
		Base:     NewBase(def, caster),
		resolver: res,
		damage:   def.Float("damage", 0),
		interval: interval,
		trueDmg:  def.Bool("true_damage", false),
	}
}

func (e *DamageOverTimeEffect) OnTick(r *Registry, dt float64) {
	target := r.Owner()
	if target == nil || target.IsDead() {
		e.Expire() // stop ticking on dead target
		return
	}
	if e.resolver == nil || e.damage <= 0 {
		return
	}

	e.elapsed += dt
	for e.elapsed >= e.interval && !target.IsDead() {
		e.elapsed -= e.interval
		amount := e.damage
		if caster := e.Caster(); caster != nil && !caster.IsDead() {
			amount = e.resolver.Outgoing(caster, amount)
		}
		res := e.resolver.Resolve(target, model.DamageInfo{
			Amount:       amount,
			Source:       e.Caster(),
			IsTrueDamage: e.trueDmg,
		})
		slog.Debug("dot tick",
			"effect", e.ID(),
			"damage", res.FinalDamage,
			"dodged", res.IsDodged,
			"target", target.ID())
	}
}
