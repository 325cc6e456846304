package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// HealOverTimeEffect restores HP every interval.
// Params: "heal" (per tick), "interval" (seconds, default 1).
type HealOverTimeEffect struct {
	Base
	resolver Resolver
	heal     float64
	interval float64
	elapsed  float64
}

func NewHealOverTimeEffect(def Definition, caster *model.Character, res Resolver) Instance {
	interval := def.Float("interval", 1)
	if interval <= 0 {
		interval = 1
	}
	return &HealOverTimeEffect{
		Base:     NewBase(def, caster),
		resolver: res,
		heal:     def.Float("heal", 0),
		interval: interval,
	}
}

func (e *HealOverTimeEffect) OnTick(r *Registry, dt float64) {
	target := r.Owner()
	if target == nil || target.IsDead() {
		e.Expire()
		return
	}
	if e.resolver == nil || e.heal <= 0 {
		return
	}

	e.elapsed += dt
	for e.elapsed >= e.interval {
		e.elapsed -= e.interval
		healed := e.resolver.Heal(target, e.heal)
		slog.Debug("hot tick", "effect", e.ID(), "healed", healed, "target", target.ID())
	}
}
