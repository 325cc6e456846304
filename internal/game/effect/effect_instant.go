package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// InstantDamageEffect hits its owner once when applied.
// Params: "damage", "true_damage" (bool).
type InstantDamageEffect struct {
	Base
	resolver Resolver
	damage   float64
	trueDmg  bool
}

func NewInstantDamageEffect(def Definition, caster *model.Character, res Resolver) Instance {
	return &InstantDamageEffect{
		Base:     NewBase(def, caster),
		resolver: res,
		damage:   def.Float("damage", 0),
		trueDmg:  def.Bool("true_damage", false),
	}
}

func (e *InstantDamageEffect) OnApply(r *Registry) {
	target := r.Owner()
	if e.resolver == nil {
		slog.Warn("instant damage without resolver", "effect", e.ID())
		return
	}
	if target == nil || e.damage <= 0 {
		return
	}
	amount := e.damage
	if caster := e.Caster(); caster != nil {
		amount = e.resolver.Outgoing(caster, amount)
	}
	res := e.resolver.Resolve(target, model.DamageInfo{
		Amount:       amount,
		Source:       e.Caster(),
		IsTrueDamage: e.trueDmg,
	})
	slog.Debug("instant damage",
		"effect", e.ID(),
		"damage", res.FinalDamage,
		"dodged", res.IsDodged,
		"killed", res.IsKilled,
		"target", target.ID())
}

// InstantHealEffect heals its owner once when applied.
// Params: "heal".
type InstantHealEffect struct {
	Base
	resolver Resolver
	heal     float64
}

func NewInstantHealEffect(def Definition, caster *model.Character, res Resolver) Instance {
	return &InstantHealEffect{
		Base:     NewBase(def, caster),
		resolver: res,
		heal:     def.Float("heal", 0),
	}
}

func (e *InstantHealEffect) OnApply(r *Registry) {
	if e.resolver == nil {
		slog.Warn("instant heal without resolver", "effect", e.ID())
		return
	}
	target := r.Owner()
	if target == nil {
		return
	}
	healed := e.resolver.Heal(target, e.heal)
	slog.Debug("instant heal", "effect", e.ID(), "healed", healed, "target", target.ID())
}
