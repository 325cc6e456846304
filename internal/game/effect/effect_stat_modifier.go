package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

// StatModifierEffect adds one modifier to a stat of its owner while active.
// Params: "stat" (stat name), "kind" (flat|percent_add|percent_mult),
// "value" (float64).
type StatModifierEffect struct {
	Base
	stat     stat.Name
	modifier stat.Modifier
}

func NewStatModifierEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	e := &StatModifierEffect{Base: NewBase(def, caster)}
	e.stat = stat.Name(def.String("stat", ""))
	kind, err := stat.ParseKind(def.String("kind", "flat"))
	if err != nil {
		slog.Warn("stat modifier effect: bad kind, using flat", "effect", def.ID, "error", err)
	}
	e.modifier = stat.Modifier{Value: def.Float("value", 0), Kind: kind, Source: e.Handle()}
	return e
}

func (e *StatModifierEffect) OnApply(r *Registry) {
	if e.stat == "" {
		return
	}
	r.ownerStats().AddModifier(e.stat, e.modifier)
}

func (e *StatModifierEffect) OnRemove(r *Registry) {
	r.ownerStats().RemoveAllFromSource(e.Handle())
}
