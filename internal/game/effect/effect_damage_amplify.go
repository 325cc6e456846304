package effect

import "github.com/udisondev/skirmish/internal/model"

// DamageAmplifyEffect scales the owner's outgoing damage up.
// Params: "percent" (0.2 = deal 20% more).
type DamageAmplifyEffect struct {
	Base
	percent float64
}

func NewDamageAmplifyEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	return &DamageAmplifyEffect{
		Base:    NewBase(def, caster),
		percent: def.Float("percent", 0),
	}
}

func (e *DamageAmplifyEffect) ModifyOutgoingDamage(_ *Registry, v float64) float64 {
	return max(v*(1+e.percent), 0)
}
