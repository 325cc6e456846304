package effect

import "github.com/udisondev/skirmish/internal/model"

// DamageReductionEffect scales incoming damage down by a percentage.
// Stacked reductions apply one after another in registry order.
// Params: "percent" (0.25 = take 25% less).
type DamageReductionEffect struct {
	Base
	percent float64
}

func NewDamageReductionEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	return &DamageReductionEffect{
		Base:    NewBase(def, caster),
		percent: min(max(def.Float("percent", 0), 0), 1),
	}
}

func (e *DamageReductionEffect) ModifyIncomingDamage(_ *Registry, v float64) float64 {
	return v * (1 - e.percent)
}
