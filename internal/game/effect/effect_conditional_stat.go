package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

// ConditionalStatEffect grants a stat modifier only while the owner's HP
// ratio is at or below a threshold (e.g. "+50% armor below 30% HP").
// The condition is re-evaluated on apply and on every tick.
// Params: "stat", "kind", "value", "hp_below" (ratio, default 0.3).
type ConditionalStatEffect struct {
	Base
	stat      stat.Name
	modifier  stat.Modifier
	threshold float64
	active    bool
}

func NewConditionalStatEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	e := &ConditionalStatEffect{Base: NewBase(def, caster)}
	e.stat = stat.Name(def.String("stat", ""))
	kind, err := stat.ParseKind(def.String("kind", "flat"))
	if err != nil {
		slog.Warn("conditional stat effect: bad kind, using flat", "effect", def.ID, "error", err)
	}
	e.modifier = stat.Modifier{Value: def.Float("value", 0), Kind: kind, Source: e.Handle()}
	e.threshold = def.Float("hp_below", 0.3)
	return e
}

// Active reports whether the modifier is currently applied.
func (e *ConditionalStatEffect) Active() bool { return e.active }

func (e *ConditionalStatEffect) OnApply(r *Registry) {
	e.evaluate(r)
}

func (e *ConditionalStatEffect) OnTick(r *Registry, _ float64) {
	e.evaluate(r)
}

func (e *ConditionalStatEffect) OnRemove(r *Registry) {
	if e.active {
		r.ownerStats().RemoveAllFromSource(e.Handle())
		e.active = false
	}
}

func (e *ConditionalStatEffect) evaluate(r *Registry) {
	owner := r.Owner()
	if owner == nil || e.stat == "" {
		return
	}
	want := !owner.IsDead() && owner.HPRatio() <= e.threshold
	switch {
	case want && !e.active:
		owner.Stats().AddModifier(e.stat, e.modifier)
		e.active = true
	case !want && e.active:
		owner.Stats().RemoveAllFromSource(e.Handle())
		e.active = false
	}
}
