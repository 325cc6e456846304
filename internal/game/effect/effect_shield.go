package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// ShieldEffect absorbs incoming damage until its capacity is spent, then
// expires. A refresh restores the full capacity along with the timer.
// Params: "capacity" (float64).
type ShieldEffect struct {
	Base
	full     float64
	capacity float64
}

func NewShieldEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	capacity := def.Float("capacity", 0)
	return &ShieldEffect{
		Base:     NewBase(def, caster),
		full:     capacity,
		capacity: capacity,
	}
}

func (e *ShieldEffect) Refresh(remaining float64) {
	e.Base.Refresh(remaining)
	e.capacity = e.full
}

// Capacity returns the damage the shield can still absorb.
func (e *ShieldEffect) Capacity() float64 { return e.capacity }

func (e *ShieldEffect) ModifyIncomingDamage(r *Registry, v float64) float64 {
	if v <= 0 || e.capacity <= 0 {
		return v
	}
	absorbed := min(v, e.capacity)
	e.capacity -= absorbed
	if e.capacity <= 0 {
		e.Expire()
		slog.Debug("shield broken", "effect", e.ID(), "target", r.ownerID())
	}
	return v - absorbed
}
